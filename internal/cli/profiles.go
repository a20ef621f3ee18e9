package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/firetree/pkg/profiles"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the connection profiles registry",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profiles.LoadProfiles(cfg.ProfilesFile); err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tBASE URI\tTIMEOUT\tDEFAULT")
		for _, p := range profiles.Profiles() {
			def := ""
			if p.Default {
				def = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.BaseURI, p.Timeout(), def)
		}
		return w.Flush()
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show one profile (token values are never printed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := profiles.LoadProfiles(cfg.ProfilesFile); err != nil {
			return fmt.Errorf("load profiles: %w", err)
		}

		p, ok := profiles.ProfileByName(args[0])
		if !ok {
			return fmt.Errorf("profile %q not found in %s", args[0], cfg.ProfilesFile)
		}

		auth := "none"
		switch {
		case p.AuthTokenEnv != "":
			auth = "env " + p.AuthTokenEnv
		case p.AuthToken != "":
			auth = "inline (set)"
		}

		fmt.Printf("name:         %s\n", p.Name)
		fmt.Printf("base_uri:     %s\n", p.BaseURI)
		fmt.Printf("auth:         %s\n", auth)
		fmt.Printf("timeout:      %s\n", p.Timeout())
		fmt.Printf("insecure_tls: %v\n", p.InsecureTLS)
		fmt.Printf("default:      %v\n", p.Default)
		return nil
	},
}

func init() {
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
}
