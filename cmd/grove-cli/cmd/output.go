package cmd

import (
	"fmt"
	"io"
	"strings"

	"grove/internal/domain"
)

// printItemLine writes the one-line form used by list and search
func printItemLine(w io.Writer, item domain.Item) {
	title := item.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s  [%s/%s] %s", item.ID, item.Kind, item.Status, title)
	if item.Priority != domain.PriorityNone {
		line += "  !" + string(item.Priority)
	}
	if item.Due != "" {
		line += "  due " + item.Due
	}
	for _, tag := range item.Tags {
		line += "  #" + tag
	}
	fmt.Fprintln(w, line)
}

// printItem writes every populated field of an item
func printItem(w io.Writer, item *domain.Item) {
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(w, "%-10s %s\n", label+":", value)
		}
	}

	field("id", item.ID)
	field("kind", string(item.Kind))
	field("status", string(item.Status))
	field("title", item.Title)
	field("priority", string(item.Priority))
	field("due", item.Due)
	field("tags", strings.Join(item.Tags, ", "))
	field("aliases", strings.Join(item.Aliases, ", "))
	if item.LinkedRef != "" {
		field("linked", fmt.Sprintf("%s (%s)", item.LinkedRef, item.LinkedNoteTitle))
	}
	if item.LinkedTaskCount > 0 {
		field("tasks", fmt.Sprintf("%d open", item.LinkedTaskCount))
	}
	field("shared", item.ShareVisibility)
	field("origin", item.Origin)
	field("source", item.ExternalSource)
	field("created", item.Created.Format("2006-01-02 15:04"))
	field("modified", item.Modified.Format("2006-01-02 15:04"))
	if item.Body != "" {
		fmt.Fprintf(w, "\n%s\n", item.Body)
	}
}
