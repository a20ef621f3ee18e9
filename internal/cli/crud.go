package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/firetree/pkg/firetree"
)

var (
	flagQuery  []string
	flagHeader []string
	flagPretty bool
)

func callOptionsFromFlags() ([]firetree.CallOption, error) {
	query, err := parseKVPairs(flagQuery, "query")
	if err != nil {
		return nil, err
	}
	header, err := parseKVPairs(flagHeader, "header")
	if err != nil {
		return nil, err
	}

	var opts []firetree.CallOption
	if len(query) > 0 {
		opts = append(opts, firetree.WithQueryMap(query))
	}
	if len(header) > 0 {
		opts = append(opts, firetree.WithHeaderMap(header))
	}
	return opts, nil
}

type writeFn func(ctx context.Context, path string, data any, opts ...firetree.CallOption) (*firetree.Result, error)

// runWrite covers set, push and update: read the payload, build the client,
// issue the write, print the response.
func runWrite(cmd *cobra.Command, args []string, pick func(*firetree.Client) writeFn) error {
	payloadArg := "-"
	if len(args) == 2 {
		payloadArg = args[1]
	}
	payload, err := readPayload(payloadArg)
	if err != nil {
		return err
	}

	client, cleanup, err := buildClient(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	opts, err := callOptionsFromFlags()
	if err != nil {
		return err
	}

	res, err := pick(client)(cmd.Context(), args[0], payload, opts...)
	if err != nil {
		return err
	}
	return printResult(res, flagPretty)
}

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Read the document at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		opts, err := callOptionsFromFlags()
		if err != nil {
			return err
		}

		res, err := client.Get(cmd.Context(), args[0], opts...)
		if err != nil {
			return err
		}
		return printResult(res, flagPretty)
	},
}

var setCmd = &cobra.Command{
	Use:   "set <path> [json]",
	Short: "Overwrite the document at path (reads stdin when json is omitted or \"-\")",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrite(cmd, args, func(c *firetree.Client) writeFn { return c.Set })
	},
}

var pushCmd = &cobra.Command{
	Use:   "push <path> [json]",
	Short: "Append the payload under path with a server-assigned key",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrite(cmd, args, func(c *firetree.Client) writeFn { return c.Push })
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <path> [json]",
	Short: "Merge the payload into the document at path",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWrite(cmd, args, func(c *firetree.Client) writeFn { return c.Update })
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete the document at path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		opts, err := callOptionsFromFlags()
		if err != nil {
			return err
		}

		res, err := client.Remove(cmd.Context(), args[0], opts...)
		if err != nil {
			return err
		}
		return printResult(res, flagPretty)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{getCmd, setCmd, pushCmd, updateCmd, removeCmd} {
		cmd.Flags().StringArrayVar(&flagQuery, "query", nil, "Extra query parameter as key=value (repeatable)")
		cmd.Flags().StringArrayVar(&flagHeader, "header", nil, "Extra request header as key=value (repeatable)")
		cmd.Flags().BoolVar(&flagPretty, "pretty", false, "Indent the response body")
	}
}
