package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"grove/internal/application/commands"
)

var convertCmd = &cobra.Command{
	Use:   "convert <id> <note|task|scratch>",
	Short: "Change the kind of an item",
	Long: `Change the kind of an item. The new status follows the conversion table
(e.g. a done task becomes a permanent note) and fields the new kind does not
carry are cleared.

Examples:
  grove-cli convert 3f2a... note`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, commands.NewConvertCommand(GetStore(), args[0], args[1]).Execute)
	},
}

var advanceCmd = &cobra.Command{
	Use:   "advance <id>",
	Short: "Move an item to the next stage of its lifecycle",
	Long: `Move an item one step along its lifecycle:
  note: fleeting -> developing -> permanent -> exported
  task: active -> done`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, commands.NewAdvanceCommand(GetStore(), args[0]).Execute)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive <id>",
	Short: "Archive an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, commands.NewArchiveCommand(GetStore(), args[0]).Execute)
	},
}

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpdate(cmd, commands.NewCompleteCommand(GetStore(), args[0]).Execute)
	},
}

func runUpdate(cmd *cobra.Command, execute func(context.Context) (*commands.UpdateResult, error)) error {
	result, err := execute(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func init() {
	rootCmd.AddCommand(convertCmd, advanceCmd, archiveCmd, doneCmd)
}
