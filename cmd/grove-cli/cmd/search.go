package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"grove/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Full-text search over titles and bodies",
	Long: `Search titles and bodies. Every word must appear. Words of three or more
characters use the full-text index and results are ranked by relevance;
shorter queries match substrings, newest first.

Examples:
  grove-cli search spaced repetition
  grove-cli search go`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		result, err := commands.NewSearchCommand(GetIndex(), GetStore(), query, searchLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, item := range result.Items {
			printItemLine(out, item)
		}
		fmt.Fprintln(out, result.Message)
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from stored items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewReindexCommand(GetIndex()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Message)
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum results (default 20, max 100)")
	rootCmd.AddCommand(searchCmd, reindexCmd)
}
