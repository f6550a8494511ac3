package domain

import (
	"fmt"
	"time"
)

// Listing limits
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// SortKey selects the column a listing is ordered by
type SortKey string

const (
	SortCreated  SortKey = "created"
	SortModified SortKey = "modified"
	SortPriority SortKey = "priority"
	SortDue      SortKey = "due"
)

// SortOrder is the direction of a listing
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ListFilter narrows and pages a listing. Zero values mean "no filter"
// for the predicates and defaults for paging.
type ListFilter struct {
	Status          Status
	Kind            Kind
	Tag             string
	ExcludeStatuses []Status
	Sort            SortKey
	Order           SortOrder
	Limit           int
	Offset          int
}

// Normalize applies defaults and checks ranges
func (f ListFilter) Normalize() (ListFilter, error) {
	if f.Kind != "" {
		if _, ok := validStatuses[f.Kind]; !ok {
			return f, &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", f.Kind)}
		}
	}
	switch f.Sort {
	case "":
		f.Sort = SortCreated
	case SortCreated, SortModified, SortPriority, SortDue:
	default:
		return f, &ValidationError{Field: "sort", Message: fmt.Sprintf("unknown sort key %q", f.Sort)}
	}
	switch f.Order {
	case "":
		f.Order = OrderDesc
	case OrderAsc, OrderDesc:
	default:
		return f, &ValidationError{Field: "order", Message: fmt.Sprintf("unknown order %q", f.Order)}
	}
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit < 1 || f.Limit > MaxListLimit {
		return f, &ValidationError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", MaxListLimit)}
	}
	if f.Offset < 0 {
		return f, &ValidationError{Field: "offset", Message: "must not be negative"}
	}
	return f, nil
}

// ListPage is one page of a listing plus the total number of matches
type ListPage struct {
	Items  []Item
	Total  int
	Limit  int
	Offset int
}

// RebuildStats holds statistics from a full search index rebuild
type RebuildStats struct {
	ItemsIndexed int
	Duration     time.Duration
}
