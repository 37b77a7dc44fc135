package cmd

import (
	"fmt"

	"github.com/brogergvhs/dubfilter/internal/filter"

	"github.com/spf13/cobra"
)

func init() {
	checkCmd := &cobra.Command{
		Use:   "check <title> [title ...]",
		Short: "Show whether titles would be hidden with the current rules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := newRunner(ruleOptions(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if p := r.cls.Pattern(); p != "" {
				fmt.Fprintf(out, "pattern: %s\n", p)
			} else {
				fmt.Fprintln(out, "pattern: (no languages configured)")
			}

			for _, t := range args {
				v := r.cls.Classify(t)
				mark := "show"
				if v != filter.Keep {
					mark = "hide"
				}
				fmt.Fprintf(out, "%s  %q  [%s]\n", mark, t, v)
			}

			return nil
		},
	}

	addRuleFlags(checkCmd)
	rootCmd.AddCommand(checkCmd)
}
