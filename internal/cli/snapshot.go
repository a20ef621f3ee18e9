package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/firetree/internal/snapshot"
)

var flagSnapshotDB string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Export and import documents through a local archive",
}

var snapshotExportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Fetch the document at path and store it locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cleanup, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := client.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("server returned status %d for %q", res.StatusCode, args[0])
		}

		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Save(args[0], res.Body); err != nil {
			return err
		}
		fmt.Printf("exported %s (%d bytes)\n", args[0], len(res.Body))
		return nil
	},
}

var snapshotImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Write the locally stored document back to path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		body, info, err := store.Load(args[0])
		if err != nil {
			return err
		}

		client, cleanup, err := buildClient(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		res, err := client.Set(cmd.Context(), args[0], json.RawMessage(body))
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("server returned status %d for %q", res.StatusCode, args[0])
		}
		fmt.Printf("imported %s (%d bytes, saved %s)\n", args[0], info.Bytes, info.SavedAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List locally stored documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		infos, err := store.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("no snapshots stored")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tBYTES\tSAVED AT")
		for _, info := range infos {
			fmt.Fprintf(w, "%s\t%d\t%s\n", info.Path, info.Bytes, info.SavedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Remove a locally stored document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Delete(args[0])
	},
}

func openSnapshotStore() (*snapshot.Store, error) {
	path := cfg.SnapshotPath
	if flagSnapshotDB != "" {
		path = flagSnapshotDB
	}
	return snapshot.Open(path)
}

func init() {
	snapshotCmd.PersistentFlags().StringVar(&flagSnapshotDB, "db", "", "Snapshot archive path (overrides config)")
	snapshotCmd.AddCommand(snapshotExportCmd)
	snapshotCmd.AddCommand(snapshotImportCmd)
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotDeleteCmd)
}
