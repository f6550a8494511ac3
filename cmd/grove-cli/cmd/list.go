package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"grove/internal/application/commands"
	"grove/internal/domain"
)

var listFlags struct {
	kind     string
	status   string
	tag      string
	archived bool
	sort     string
	order    string
	limit    int
	offset   int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List items",
	Long: `List items, newest first by default. Archived items are hidden unless
--archived is given or --status archived is asked for.

Examples:
  grove-cli list
  grove-cli list -k task --sort priority
  grove-cli list --tag reading --limit 10 --offset 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := domain.ListFilter{
			Kind:   domain.Kind(listFlags.kind),
			Status: domain.Status(listFlags.status),
			Tag:    listFlags.tag,
			Sort:   domain.SortKey(listFlags.sort),
			Order:  domain.SortOrder(listFlags.order),
			Limit:  listFlags.limit,
			Offset: listFlags.offset,
		}
		if !listFlags.archived && filter.Status == "" {
			filter.ExcludeStatuses = []domain.Status{domain.StatusArchived}
		}

		result, err := commands.NewListCommand(GetStore(), filter).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range result.Page.Items {
			printItemLine(out, item)
		}
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

func init() {
	f := listCmd.Flags()
	f.StringVarP(&listFlags.kind, "kind", "k", "", "only this kind")
	f.StringVarP(&listFlags.status, "status", "s", "", "only this status")
	f.StringVarP(&listFlags.tag, "tag", "t", "", "only items carrying this tag")
	f.BoolVarP(&listFlags.archived, "archived", "a", false, "include archived items")
	f.StringVar(&listFlags.sort, "sort", "", "created, modified, priority or due")
	f.StringVar(&listFlags.order, "order", "", "asc or desc")
	f.IntVarP(&listFlags.limit, "limit", "n", 0, fmt.Sprintf("page size (default %d, max %d)", domain.DefaultListLimit, domain.MaxListLimit))
	f.IntVar(&listFlags.offset, "offset", 0, "items to skip")
	rootCmd.AddCommand(listCmd)
}
