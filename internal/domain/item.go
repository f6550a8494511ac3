package domain

import (
	"slices"
	"strings"
	"time"
)

// Kind is the category of an item
type Kind string

const (
	KindNote    Kind = "note"
	KindTask    Kind = "task"
	KindScratch Kind = "scratch"
)

// Kinds lists every kind in display order
var Kinds = []Kind{KindNote, KindTask, KindScratch}

// ParseKind converts a string to a Kind, reporting whether it is known
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, slices.Contains(Kinds, k)
}

func (k Kind) String() string {
	return string(k)
}

// Status is the kind-scoped lifecycle stage of an item
type Status string

const (
	StatusFleeting   Status = "fleeting"
	StatusDeveloping Status = "developing"
	StatusPermanent  Status = "permanent"
	StatusExported   Status = "exported"
	StatusArchived   Status = "archived"
	StatusActive     Status = "active"
	StatusDone       Status = "done"
	StatusDraft      Status = "draft"
)

func (s Status) String() string {
	return string(s)
}

// Priority applies to tasks only; empty means unset
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank orders priorities for sorting (unset sorts lowest)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// DateLayout is the layout of Item.Due
const DateLayout = "2006-01-02"

// DefaultOrigin is stamped on items captured without an explicit origin
const DefaultOrigin = "manual"

// Item is a captured note, task or scratch entry
type Item struct {
	ID             string
	Kind           Kind
	Title          string
	Body           string
	Status         Status
	Priority       Priority // task only
	Due            string   // task only, YYYY-MM-DD
	Tags           []string // note and task only
	Aliases        []string // note only
	LinkedRef      string   // task only, id of a note
	Origin         string
	ExternalSource string
	Created        time.Time
	Modified       time.Time

	// Derived at read time, never stored
	LinkedTaskCount int    // non-archived tasks linking to this note
	LinkedNoteTitle string // title of the note this task links to
	ShareVisibility string // visibility of the newest share link, if any
}

// HasTag reports whether the item carries tag
func (i *Item) HasTag(tag string) bool {
	return slices.Contains(i.Tags, tag)
}

// NewItem holds the input for capturing an item
type NewItem struct {
	Kind           Kind
	Title          string   `validate:"max=500"`
	Body           string   `validate:"max=100000"`
	Status         Status
	Priority       Priority `validate:"omitempty,oneof=low medium high"`
	Due            string   `validate:"omitempty,datetime=2006-01-02"`
	Tags           []string `validate:"max=50,dive,required,max=64"`
	Aliases        []string `validate:"max=50,dive,required,max=200"`
	LinkedRef      string
	Origin         string `validate:"max=100"`
	ExternalSource string `validate:"max=2000"`
}

// Patch is a partial update; nil fields are left untouched and a set
// field holding the zero value clears it. Field rules live in ValidatePatch.
type Patch struct {
	Kind      *Kind
	Title     *string
	Body      *string
	Status    *Status
	Priority  *Priority
	Due       *string
	Tags      *[]string
	Aliases   *[]string
	LinkedRef *string
}

// IsEmpty reports whether the patch changes nothing
func (p Patch) IsEmpty() bool {
	return p.Kind == nil && p.Title == nil && p.Body == nil && p.Status == nil &&
		p.Priority == nil && p.Due == nil && p.Tags == nil && p.Aliases == nil &&
		p.LinkedRef == nil
}

// Ptr returns a pointer to v, for building patches
func Ptr[T any](v T) *T {
	return &v
}

// NormalizeTags trims, drops empties, deduplicates and sorts tags
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// NormalizeAliases trims and drops empty aliases, keeping order
func NormalizeAliases(aliases []string) []string {
	out := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// ShareLink exposes an item outside the store
type ShareLink struct {
	Token      string
	ItemID     string
	Visibility string
	Created    time.Time
}

// Share link visibilities
const (
	VisibilityPublic   = "public"
	VisibilityUnlisted = "unlisted"
)
