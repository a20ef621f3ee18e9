package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/firetree/internal/config"
	"github.com/samvad-hq/firetree/internal/logger"
)

var (
	cfg *config.Config

	flagProfile  string
	flagBaseURI  string
	flagToken    string
	flagTimeout  int
	flagInsecure bool
	flagSinks    string
)

var rootCmd = &cobra.Command{
	Use:   "firetree",
	Short: "Client for Firebase-style JSON document trees",
	Long: `firetree reads and writes documents in a remote JSON tree exposed over
HTTP. Connection settings come from flags, named profiles, or FIRETREE_*
environment variables, in that order of precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded

		if _, err := logger.Init(cfg); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
}

// NewRootCmd wires flags and subcommands onto the root command.
func NewRootCmd() *cobra.Command {
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Named connection profile from the profiles file")
	rootCmd.PersistentFlags().StringVar(&flagBaseURI, "base-uri", "", "Base URI of the document tree (overrides profile and env)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "Auth token appended to every request")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds (0 uses profile or config default)")
	rootCmd.PersistentFlags().BoolVar(&flagInsecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().StringVar(&flagSinks, "sinks", "", "Sinks file for publishing call events (overrides config)")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

// Execute runs the CLI until completion or interruption.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	defer logger.Close()

	return NewRootCmd().ExecuteContext(ctx)
}
