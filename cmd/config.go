package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCmd with no subcommand shows the merged rules: active profile plus
// whatever rule flags were given, and the pattern they compile to.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the dubfilter config profiles, or show the merged rules",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, used, err := newRunner(ruleOptions(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Loaded config from:\n  %s\n\n", used)
		r.cfg.Print(out)

		if p := r.cls.Pattern(); p != "" {
			fmt.Fprintf(out, "\n%d languages, pattern: %s\n", len(r.cfg.Languages), p)
		} else {
			fmt.Fprintln(out, "\nno languages, only the legacy marker hides entries")
		}

		return nil
	},
}

func init() {
	addRuleFlags(configCmd)
	rootCmd.AddCommand(configCmd)
}
