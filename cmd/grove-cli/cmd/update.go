package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grove/internal/application"
	"grove/internal/application/commands"
	"grove/internal/domain"
)

var updateFlags struct {
	title    string
	body     string
	status   string
	tags     string
	aliases  string
	priority string
	due      string
	link     string
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of an item",
	Long: `Change fields of an item. Only the flags you pass are applied; pass an
empty value (e.g. --due "") to clear a field.

Editing the title or body of an exported note moves it back to permanent.

Examples:
  grove-cli update 3f2a... --status developing
  grove-cli update 3f2a... --tags reading,books
  grove-cli update 3f2a... --due ""`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patch := patchFromFlags(cmd)
		if patch.IsEmpty() {
			return fmt.Errorf("nothing to update: pass at least one field flag")
		}

		result, err := commands.NewUpdateCommand(GetStore(), args[0], patch).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

// patchFromFlags sets exactly the fields whose flags were given
func patchFromFlags(cmd *cobra.Command) domain.Patch {
	var p domain.Patch
	changed := cmd.Flags().Changed

	if changed("title") {
		p.Title = &updateFlags.title
	}
	if changed("body") {
		p.Body = &updateFlags.body
	}
	if changed("status") {
		p.Status = domain.Ptr(domain.Status(updateFlags.status))
	}
	if changed("tags") {
		p.Tags = domain.Ptr(application.ParseTags(updateFlags.tags))
	}
	if changed("aliases") {
		p.Aliases = domain.Ptr(application.ParseTags(updateFlags.aliases))
	}
	if changed("priority") {
		p.Priority = domain.Ptr(domain.Priority(updateFlags.priority))
	}
	if changed("due") {
		p.Due = &updateFlags.due
	}
	if changed("link") {
		p.LinkedRef = &updateFlags.link
	}
	return p
}

func init() {
	f := updateCmd.Flags()
	f.StringVar(&updateFlags.title, "title", "", "new title")
	f.StringVarP(&updateFlags.body, "body", "b", "", "new body")
	f.StringVarP(&updateFlags.status, "status", "s", "", "new status (must belong to the item's kind)")
	f.StringVarP(&updateFlags.tags, "tags", "t", "", "replace tags (comma separated)")
	f.StringVar(&updateFlags.aliases, "aliases", "", "replace aliases (comma separated)")
	f.StringVarP(&updateFlags.priority, "priority", "p", "", "low, medium, high or empty")
	f.StringVarP(&updateFlags.due, "due", "d", "", "due date YYYY-MM-DD or empty")
	f.StringVar(&updateFlags.link, "link", "", "id of the note the task belongs to, or empty")
	rootCmd.AddCommand(updateCmd)
}
