package cmd

import (
	"fmt"
	"strings"

	"github.com/brogergvhs/dubfilter/internal/config"

	"github.com/spf13/cobra"
)

var configRenameCmd = &cobra.Command{
	Use:   "rename <old_label> <new_label>",
	Short: "Rename a profile; the active profile stays active under its new label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// "config list" shows profile paths; accept "Weekend.yaml" too
		oldLabel := strings.TrimSuffix(args[0], ".yaml")
		newLabel := strings.TrimSuffix(args[1], ".yaml")

		active, _ := config.CurrentLabel()

		if err := config.RenameConfig(oldLabel, newLabel); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Renamed config %q to %q\n", oldLabel, newLabel)
		if active == oldLabel {
			fmt.Fprintf(out, "%q is still the active config\n", newLabel)
		}

		return nil
	},
}

func init() {
	configCmd.AddCommand(configRenameCmd)
}
