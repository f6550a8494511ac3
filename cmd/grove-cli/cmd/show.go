package cmd

import (
	"github.com/spf13/cobra"

	"grove/internal/application/commands"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show every field of an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := commands.NewShowCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		printItem(cmd.OutOrStdout(), item)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
