package application

import "grove/internal/domain"

// Re-export domain types for use by adapters
type (
	Item       = domain.Item
	NewItem    = domain.NewItem
	Patch      = domain.Patch
	Kind       = domain.Kind
	Status     = domain.Status
	Priority   = domain.Priority
	ListFilter = domain.ListFilter
	ListPage   = domain.ListPage
	ShareLink  = domain.ShareLink
)

// Re-export kinds
const (
	KindNote    = domain.KindNote
	KindTask    = domain.KindTask
	KindScratch = domain.KindScratch
)

// ParseKind converts user input to a Kind
func ParseKind(s string) (Kind, bool) {
	return domain.ParseKind(s)
}

// ValidStatuses returns the statuses allowed for kind
func ValidStatuses(kind Kind) []Status {
	return domain.ValidStatuses(kind)
}
