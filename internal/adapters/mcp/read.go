package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"grove/internal/application/commands"
	"grove/internal/domain"
)

// RegisterReadTools adds the listing, search and show tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listTool(), listHandler(deps))
	s.AddTool(searchTool(), searchHandler(deps))
	s.AddTool(showTool(), showHandler(deps))
}

// --- list_items ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_items",
		mcp.WithDescription("List captured items, newest first. Results are numbered #1..#N; later calls may refer to an item as #N for ten minutes."),
		mcp.WithString("kind",
			mcp.Description("Only items of this kind"),
			mcp.Enum("note", "task", "scratch"),
		),
		mcp.WithString("status",
			mcp.Description("Only items in this status (e.g. fleeting, active, draft)"),
		),
		mcp.WithString("tag",
			mcp.Description("Only items carrying this tag"),
		),
		mcp.WithString("exclude_statuses",
			mcp.Description("Comma-separated statuses to leave out, e.g. archived,done"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort key"),
			mcp.Enum("created", "modified", "priority", "due"),
		),
		mcp.WithString("order",
			mcp.Description("Sort order"),
			mcp.Enum("asc", "desc"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Page size, 1-100 (default 50)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Items to skip"),
		),
	)
}

func listHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := parseKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}

		filter := domain.ListFilter{
			Kind:            kind,
			Status:          domain.Status(req.GetString("status", "")),
			Tag:             req.GetString("tag", ""),
			ExcludeStatuses: parseStatuses(req.GetString("exclude_statuses", "")),
			Sort:            domain.SortKey(req.GetString("sort", "")),
			Order:           domain.SortOrder(req.GetString("order", "")),
			Limit:           req.GetInt("limit", 0),
			Offset:          req.GetInt("offset", 0),
		}

		result, err := commands.NewListCommand(deps.Store, filter).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		page := result.Page
		header := fmt.Sprintf("%d-%d of %d", page.Offset+1, page.Offset+len(page.Items), page.Total)
		return deps.formatNumbered(ctx, header, page.Items), nil
	}
}

// --- search_items ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_items",
		mcp.WithDescription("Full-text search over item titles and bodies. Results are numbered #1..#N like list_items."),
		mcp.WithString("query",
			mcp.Description("Words to look for; every word must match"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results, 1-100 (default 20)"),
		),
	)
}

func searchHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")

		result, err := commands.NewSearchCommand(deps.Index, deps.Store, query, req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return deps.formatNumbered(ctx, "", result.Items), nil
	}
}

// --- show_item ---

func showTool() mcp.Tool {
	return mcp.NewTool("show_item",
		mcp.WithDescription("Show one item in full."),
		mcp.WithString("ref",
			mcp.Description("#N from the last listing, or an item ID"),
			mcp.Required(),
		),
	)
}

func showHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		item, err := commands.NewShowCommand(deps.Store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatItem(item)), nil
	}
}
