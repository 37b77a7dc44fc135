package cmd

import (
	"fmt"

	"github.com/brogergvhs/dubfilter/internal/config"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var configSwitchCmd = &cobra.Command{
	Use:   "switch [label]",
	Short: "Switch to a different configuration profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {

		var label string

		if len(args) == 1 {
			label = args[0]
		} else {
			list, err := config.ListConfigs()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				return fmt.Errorf("no configs available")
			}

			items := make([]string, 0, len(list))
			for _, c := range list {
				items = append(items, switchItem(c))
			}

			prompt := promptui.Select{
				Label: "Select config",
				Items: items,
				Size:  10,
			}

			idx, _, err := prompt.Run()
			if err != nil {
				return fmt.Errorf("selection cancelled")
			}

			label = list[idx].Label
		}

		if err := config.SwitchConfig(label); err != nil {
			return err
		}

		fmt.Println("Switched to:", label)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSwitchCmd)
}

// switchItem shows how many languages a profile hides so similar profiles
// can be told apart in the picker.
func switchItem(c config.ConfigInfo) string {
	item := c.Label
	if n, err := config.CountLanguages(c.Path); err == nil {
		item += fmt.Sprintf("  [%d languages]", n)
	}
	if c.Active {
		item += "  (active)"
	}

	return item
}
