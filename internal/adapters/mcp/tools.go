package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"grove/internal/application"
	"grove/internal/application/commands"
	"grove/internal/domain"
	"grove/internal/ports"
)

// Deps are the services the tools operate on
type Deps struct {
	Store    ports.ItemStore
	Index    ports.SearchIndex
	Sessions ports.ReferenceSession
	Logger   *slog.Logger
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// userKey identifies the conversation a call belongs to. Numbered
// references never leak between client sessions.
func userKey(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil && cs.SessionID() != "" {
		return cs.SessionID()
	}
	return commands.DefaultUserKey
}

// resolveRef turns "#N", "N" or an ID into an item ID for the caller
func (d Deps) resolveRef(ctx context.Context, ref string) (string, error) {
	return commands.ResolveItemRef(d.Sessions, userKey(ctx), ref)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// formatNumbered renders a listing as #1..#N and remembers the numbering
func (d Deps) formatNumbered(ctx context.Context, header string, items []domain.Item) *mcp.CallToolResult {
	commands.RememberListing(d.Sessions, userKey(ctx), items)

	if len(items) == 0 {
		return mcp.NewToolResultText("No results.")
	}
	var sb strings.Builder
	if header != "" {
		sb.WriteString(header)
		sb.WriteByte('\n')
	}
	for i, item := range items {
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, formatItemLine(item))
	}
	return mcp.NewToolResultText(sb.String())
}

func formatItemLine(item domain.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s/%s] %s", item.Kind, item.Status, displayTitle(item))
	if item.Priority != domain.PriorityNone {
		fmt.Fprintf(&sb, "  !%s", item.Priority)
	}
	if item.Due != "" {
		fmt.Fprintf(&sb, "  due %s", item.Due)
	}
	for _, tag := range item.Tags {
		fmt.Fprintf(&sb, "  #%s", tag)
	}
	fmt.Fprintf(&sb, "  (%s)", item.ID)
	return sb.String()
}

func formatItem(item *domain.Item) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", displayTitle(*item))
	fmt.Fprintf(&sb, "id: %s\nkind: %s\nstatus: %s\n", item.ID, item.Kind, item.Status)
	if item.Priority != domain.PriorityNone {
		fmt.Fprintf(&sb, "priority: %s\n", item.Priority)
	}
	if item.Due != "" {
		fmt.Fprintf(&sb, "due: %s\n", item.Due)
	}
	if len(item.Tags) > 0 {
		fmt.Fprintf(&sb, "tags: %s\n", strings.Join(item.Tags, ", "))
	}
	if len(item.Aliases) > 0 {
		fmt.Fprintf(&sb, "aliases: %s\n", strings.Join(item.Aliases, ", "))
	}
	if item.LinkedRef != "" {
		fmt.Fprintf(&sb, "linked note: %s (%s)\n", item.LinkedNoteTitle, item.LinkedRef)
	}
	if item.Kind == domain.KindNote && item.LinkedTaskCount > 0 {
		fmt.Fprintf(&sb, "open tasks: %d\n", item.LinkedTaskCount)
	}
	if item.ShareVisibility != "" {
		fmt.Fprintf(&sb, "shared: %s\n", item.ShareVisibility)
	}
	fmt.Fprintf(&sb, "origin: %s\n", item.Origin)
	if item.ExternalSource != "" {
		fmt.Fprintf(&sb, "source: %s\n", item.ExternalSource)
	}
	fmt.Fprintf(&sb, "created: %s\nmodified: %s\n",
		item.Created.Format("2006-01-02 15:04"), item.Modified.Format("2006-01-02 15:04"))
	if item.Body != "" {
		fmt.Fprintf(&sb, "\n%s\n", item.Body)
	}
	return sb.String()
}

func displayTitle(item domain.Item) string {
	if item.Title != "" {
		return item.Title
	}
	body := strings.TrimSpace(item.Body)
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	if len([]rune(body)) > 60 {
		body = string([]rune(body)[:60]) + "..."
	}
	if body == "" {
		return "(untitled)"
	}
	return body
}

// optString returns a pointer to an argument's value when the caller sent it
func optString(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	s := fmt.Sprint(v)
	return &s
}

// parseStatuses splits a comma-separated status list
func parseStatuses(raw string) []domain.Status {
	var out []domain.Status
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, domain.Status(s))
		}
	}
	return out
}

// parseKind accepts an empty value as "any"
func parseKind(raw string) (domain.Kind, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return application.ValidateKind("kind", raw)
}
