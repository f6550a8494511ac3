package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grove/internal/adapters/editor"
	"grove/internal/adapters/obsidian"
	"grove/internal/application/commands"
	"grove/internal/domain"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item body in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := commands.NewShowCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		ed := editor.NewOpener("")
		path, err := ed.PrepareBuffer(item.ID, item.Body)
		if err != nil {
			return err
		}
		editErr := ed.OpenFile(path)
		body, err := ed.ReadBuffer(path)
		if editErr != nil {
			return fmt.Errorf("editor exited: %w", editErr)
		}
		if err != nil {
			return err
		}
		if body == item.Body {
			fmt.Fprintln(cmd.OutOrStdout(), "Body unchanged")
			return nil
		}

		result, err := commands.NewUpdateCommand(GetStore(), item.ID, domain.Patch{Body: &body}).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

var openPrintOnly bool

var openCmd = &cobra.Command{
	Use:   "open <id>",
	Short: "Open an exported note in Obsidian",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := commands.NewShowCommand(GetStore(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		opener := obsidian.NewOpener(app.Config.ObsidianVault, app.Config.ExportFolder)
		if openPrintOnly {
			uri, err := opener.NoteURI(item)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		}
		return opener.OpenNote(item)
	},
}

func init() {
	openCmd.Flags().BoolVar(&openPrintOnly, "print", false, "print the obsidian:// URI instead of opening it")
	rootCmd.AddCommand(editCmd, openCmd)
}
