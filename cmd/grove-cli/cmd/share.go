package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grove/internal/application/commands"
)

var shareVisibility string

var shareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Create a share link for an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		link, err := commands.NewShareCommand(GetStore(), args[0], shareVisibility).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Shared %s (%s): %s\n", link.ItemID, link.Visibility, link.Token)
		return nil
	},
}

var unshareCmd = &cobra.Command{
	Use:   "unshare <token>",
	Short: "Remove a share link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		msg, err := commands.NewUnshareCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		return nil
	},
}

func init() {
	shareCmd.Flags().StringVar(&shareVisibility, "visibility", "", "public or unlisted (default unlisted)")
	rootCmd.AddCommand(shareCmd, unshareCmd)
}
