package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/firetree/internal/watch"
)

var (
	flagWatchInterval int
	flagWatchBody     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Poll the document at path and print each observed revision",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		interval := time.Duration(flagWatchInterval) * time.Second
		watcher, err := watch.New(client, args[0], interval, func(c watch.Change) {
			fmt.Printf("%s %s %d bytes (hash %s)\n",
				c.ObservedAt.Format(time.RFC3339), c.Path, c.Bytes, c.Hash[:12])
			if flagWatchBody {
				body := c.Body
				var buf bytes.Buffer
				if err := json.Indent(&buf, body, "", "  "); err == nil {
					body = buf.Bytes()
				}
				fmt.Println(string(body))
			}
		})
		if err != nil {
			return err
		}

		return watcher.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().IntVar(&flagWatchInterval, "interval", 10, "Poll interval in seconds")
	watchCmd.Flags().BoolVar(&flagWatchBody, "body", false, "Print each revision body, indented")
}
