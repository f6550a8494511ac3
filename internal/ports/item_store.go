package ports

import (
	"context"

	"grove/internal/domain"
)

// ItemStore is the persistent collection of items. Create and Update run
// the taxonomy rules and refresh the search index in the same transaction,
// so a committed write is immediately visible to SearchIndex.Query.
type ItemStore interface {
	Create(ctx context.Context, in domain.NewItem) (*domain.Item, error)
	Get(ctx context.Context, id string) (*domain.Item, error)
	List(ctx context.Context, filter domain.ListFilter) (*domain.ListPage, error)
	Update(ctx context.Context, id string, patch domain.Patch) (*domain.Item, error)
	Delete(ctx context.Context, id string) (bool, error)

	// Share links
	Share(ctx context.Context, id, visibility string) (*domain.ShareLink, error)
	Unshare(ctx context.Context, token string) (bool, error)
}
