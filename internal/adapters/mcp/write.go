package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"grove/internal/application"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// RegisterWriteTools adds the capture and mutation tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(captureTool(), captureHandler(deps))
	s.AddTool(updateTool(), updateHandler(deps))
	s.AddTool(convertTool(), convertHandler(deps))
	s.AddTool(advanceTool(), advanceHandler(deps))
	s.AddTool(archiveTool(), statusHandler(deps, commands.NewArchiveCommand))
	s.AddTool(completeTool(), statusHandler(deps, commands.NewCompleteCommand))
	s.AddTool(deleteTool(), deleteHandler(deps))
	s.AddTool(triageTool(), triageHandler(deps))
}

func refArg() mcp.ToolOption {
	return mcp.WithString("ref",
		mcp.Description("#N from the last listing, or an item ID"),
		mcp.Required(),
	)
}

// --- capture ---

func captureTool() mcp.Tool {
	return mcp.NewTool("capture",
		mcp.WithDescription("Capture a new item. Notes start fleeting, tasks active, scratch entries draft."),
		mcp.WithString("kind",
			mcp.Description("Kind of item (default note)"),
			mcp.Enum("note", "task", "scratch"),
		),
		mcp.WithString("title", mcp.Description("Short title")),
		mcp.WithString("body", mcp.Description("Free text")),
		mcp.WithString("status", mcp.Description("Initial status; must belong to the kind")),
		mcp.WithString("priority",
			mcp.Description("Task priority"),
			mcp.Enum("low", "medium", "high"),
		),
		mcp.WithString("due", mcp.Description("Task due date, YYYY-MM-DD")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags (notes and tasks)")),
		mcp.WithString("aliases", mcp.Description("Comma-separated alternate names (notes)")),
		mcp.WithString("linked_ref", mcp.Description("Note this task belongs to: #N or an item ID")),
		mcp.WithString("external_source", mcp.Description("Where the item came from, e.g. a URL")),
	)
}

func captureHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kind, err := parseKind(req.GetString("kind", ""))
		if err != nil {
			return toolError(err)
		}

		linked := req.GetString("linked_ref", "")
		if linked != "" {
			if linked, err = deps.resolveRef(ctx, linked); err != nil {
				return toolError(err)
			}
		}

		input := domain.NewItem{
			Kind:           kind,
			Title:          req.GetString("title", ""),
			Body:           req.GetString("body", ""),
			Status:         domain.Status(req.GetString("status", "")),
			Priority:       domain.Priority(req.GetString("priority", "")),
			Due:            req.GetString("due", ""),
			Tags:           application.ParseTags(req.GetString("tags", "")),
			Aliases:        splitList(req.GetString("aliases", "")),
			LinkedRef:      linked,
			Origin:         "mcp",
			ExternalSource: req.GetString("external_source", ""),
		}

		result, err := commands.NewCaptureCommand(deps.Store, input).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		deps.logger().Info("captured via mcp", "id", result.Item.ID, "kind", result.Item.Kind)
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update_item ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_item",
		mcp.WithDescription("Edit fields of an item. Only the fields sent are changed; send an empty string to clear. Editing the title or body of an exported note moves it back to permanent."),
		refArg(),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("body", mcp.Description("New body")),
		mcp.WithString("status", mcp.Description("New status; must belong to the item's kind")),
		mcp.WithString("priority", mcp.Description("Task priority: low, medium, high or empty")),
		mcp.WithString("due", mcp.Description("Task due date, YYYY-MM-DD or empty")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags, replacing the current set")),
		mcp.WithString("aliases", mcp.Description("Comma-separated aliases, replacing the current list")),
		mcp.WithString("linked_ref", mcp.Description("Note this task belongs to: #N, an item ID, or empty")),
	)
}

func updateHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		patch, err := deps.patchFromArgs(ctx, req)
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewUpdateCommand(deps.Store, id, patch).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func (d Deps) patchFromArgs(ctx context.Context, req mcp.CallToolRequest) (domain.Patch, error) {
	var p domain.Patch
	p.Title = optString(req, "title")
	p.Body = optString(req, "body")
	p.Due = optString(req, "due")
	if v := optString(req, "status"); v != nil {
		p.Status = domain.Ptr(domain.Status(*v))
	}
	if v := optString(req, "priority"); v != nil {
		p.Priority = domain.Ptr(domain.Priority(*v))
	}
	if v := optString(req, "tags"); v != nil {
		p.Tags = domain.Ptr(application.ParseTags(*v))
	}
	if v := optString(req, "aliases"); v != nil {
		p.Aliases = domain.Ptr(splitList(*v))
	}
	if v := optString(req, "linked_ref"); v != nil {
		ref := strings.TrimSpace(*v)
		if ref != "" {
			id, err := d.resolveRef(ctx, ref)
			if err != nil {
				return p, err
			}
			ref = id
		}
		p.LinkedRef = &ref
	}
	return p, nil
}

// --- convert_item ---

func convertTool() mcp.Tool {
	return mcp.NewTool("convert_item",
		mcp.WithDescription("Change an item's kind. The status is mapped automatically (e.g. active task -> fleeting note) and fields the new kind does not have are cleared."),
		refArg(),
		mcp.WithString("kind",
			mcp.Description("Target kind"),
			mcp.Enum("note", "task", "scratch"),
			mcp.Required(),
		),
	)
}

func convertHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewConvertCommand(deps.Store, id, req.GetString("kind", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- advance_item ---

func advanceTool() mcp.Tool {
	return mcp.NewTool("advance_item",
		mcp.WithDescription("Move an item one stage forward: fleeting -> developing -> permanent -> exported for notes, active -> done for tasks."),
		refArg(),
	)
}

func advanceHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewAdvanceCommand(deps.Store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- archive_item / complete_item ---

func archiveTool() mcp.Tool {
	return mcp.NewTool("archive_item",
		mcp.WithDescription("Archive an item of any kind."),
		refArg(),
	)
}

func completeTool() mcp.Tool {
	return mcp.NewTool("complete_item",
		mcp.WithDescription("Mark a task done."),
		refArg(),
	)
}

type statusCommandFactory func(store ports.ItemStore, itemID string) *commands.SetStatusCommand

func statusHandler(deps Deps, newCmd statusCommandFactory) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := newCmd(deps.Store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_item ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_item",
		mcp.WithDescription("Permanently delete an item and its share links. Prefer archive_item unless the user asks to delete."),
		refArg(),
	)
}

func deleteHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := deps.resolveRef(ctx, req.GetString("ref", ""))
		if err != nil {
			return toolError(err)
		}

		result, err := commands.NewDeleteCommand(deps.Store, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- triage ---

func triageTool() mcp.Tool {
	return mcp.NewTool("triage",
		mcp.WithDescription("Apply several decisions at once, e.g. after reviewing the inbox. Each decision is applied on its own; one failure does not undo the others."),
		mcp.WithArray("decisions",
			mcp.Description(`Decisions as "ref=action", e.g. "#1=task", "#2=archive". Actions: keep, archive, done, advance, delete, note, task`),
			mcp.WithStringItems(),
			mcp.Required(),
		),
	)
}

func triageHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raw := req.GetStringSlice("decisions", nil)

		decisions := make([]commands.TriageDecision, 0, len(raw))
		for _, entry := range raw {
			ref, action, ok := strings.Cut(entry, "=")
			if !ok {
				return toolError(fmt.Errorf("decision %q must look like ref=action", entry))
			}
			id, err := deps.resolveRef(ctx, ref)
			if err != nil {
				return toolError(err)
			}
			a, err := commands.ParseTriageAction(strings.TrimSpace(action))
			if err != nil {
				return toolError(err)
			}
			decisions = append(decisions, commands.TriageDecision{ItemID: id, Action: a})
		}

		result, err := commands.NewTriageCommand(deps.Store, decisions).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		sb.WriteByte('\n')
		for _, o := range result.Outcomes {
			switch {
			case o.Err != nil:
				fmt.Fprintf(&sb, "%s %s: failed: %v\n", o.ItemID, o.Action, o.Err)
			case o.Item != nil:
				fmt.Fprintf(&sb, "%s %s: %s/%s\n", o.ItemID, o.Action, o.Item.Kind, o.Item.Status)
			default:
				fmt.Fprintf(&sb, "%s %s: ok\n", o.ItemID, o.Action)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// splitList splits a comma-separated list keeping order
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return domain.NormalizeAliases(strings.Split(raw, ","))
}
