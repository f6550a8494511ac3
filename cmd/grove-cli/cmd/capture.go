package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grove/internal/application"
	"grove/internal/application/commands"
	"grove/internal/domain"
)

var captureFlags struct {
	kind     string
	body     string
	status   string
	tags     string
	aliases  string
	priority string
	due      string
	link     string
	source   string
}

var captureCmd = &cobra.Command{
	Use:   "capture <title...>",
	Short: "Capture a new note, task or scratch entry",
	Long: `Capture a new item. The kind defaults to note.

Fields that do not apply to the kind are dropped: priority, due and link
are task-only, aliases are note-only, scratch entries keep none of them.

Examples:
  grove-cli capture "Spaced repetition works"
  grove-cli capture -k task -p high -d 2026-04-01 "Book venue"
  grove-cli capture -k scratch -b "call back re: invoice"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := domain.NewItem{
			Kind:           domain.Kind(captureFlags.kind),
			Title:          strings.Join(args, " "),
			Body:           captureFlags.body,
			Status:         domain.Status(captureFlags.status),
			Tags:           application.ParseTags(captureFlags.tags),
			Aliases:        application.ParseTags(captureFlags.aliases),
			Priority:       domain.Priority(captureFlags.priority),
			Due:            captureFlags.due,
			LinkedRef:      captureFlags.link,
			Origin:         "cli",
			ExternalSource: captureFlags.source,
		}

		result, err := commands.NewCaptureCommand(GetStore(), in).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	f := captureCmd.Flags()
	f.StringVarP(&captureFlags.kind, "kind", "k", "", "note, task or scratch")
	f.StringVarP(&captureFlags.body, "body", "b", "", "item body")
	f.StringVarP(&captureFlags.status, "status", "s", "", "initial status (default per kind)")
	f.StringVarP(&captureFlags.tags, "tags", "t", "", "comma separated tags")
	f.StringVar(&captureFlags.aliases, "aliases", "", "comma separated aliases (notes)")
	f.StringVarP(&captureFlags.priority, "priority", "p", "", "low, medium or high (tasks)")
	f.StringVarP(&captureFlags.due, "due", "d", "", "due date YYYY-MM-DD (tasks)")
	f.StringVar(&captureFlags.link, "link", "", "id of the note a task belongs to")
	f.StringVar(&captureFlags.source, "source", "", "where the item came from, e.g. a URL")
	rootCmd.AddCommand(captureCmd)
}
