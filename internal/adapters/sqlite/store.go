package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"grove/internal/domain"
	"grove/internal/metrics"
	"grove/internal/ports"
)

// selectItem reads an item together with its derived fields
const selectItem = `
	SELECT i.id, i.kind, i.title, i.body, i.status, i.priority, i.due, i.tags, i.aliases,
		i.linked_ref, i.origin, i.external_source, i.created, i.modified,
		CASE WHEN i.kind = 'note' THEN (
			SELECT COUNT(*) FROM items t
			WHERE t.kind = 'task' AND t.linked_ref = i.id AND t.status != 'archived'
		) ELSE 0 END,
		COALESCE((
			SELECT n.title FROM items n WHERE n.id = i.linked_ref AND n.kind = 'note'
		), ''),
		COALESCE((
			SELECT s.visibility FROM share_links s WHERE s.item_id = i.id
			ORDER BY s.created DESC, s.rowid DESC LIMIT 1
		), '')
	FROM items i`

// Store implements ports.ItemStore
type Store struct {
	db *Database
}

// Ensure Store implements ItemStore
var _ ports.ItemStore = (*Store)(nil)

// NewStore creates an item store on an open database
func NewStore(db *Database) *Store {
	return &Store{db: db}
}

// Create inserts a new item and its index row
func (s *Store) Create(ctx context.Context, in domain.NewItem) (*domain.Item, error) {
	if in.Kind == "" {
		in.Kind = domain.KindNote
	}
	if err := domain.ValidateNewItem(in); err != nil {
		return nil, err
	}
	in = domain.MaskNewItem(in)

	now := s.db.now()
	item := domain.Item{
		ID:             uuid.NewString(),
		Kind:           in.Kind,
		Title:          strings.TrimSpace(in.Title),
		Body:           in.Body,
		Status:         in.Status,
		Priority:       in.Priority,
		Due:            in.Due,
		Tags:           domain.NormalizeTags(in.Tags),
		Aliases:        domain.NormalizeAliases(in.Aliases),
		LinkedRef:      strings.TrimSpace(in.LinkedRef),
		Origin:         in.Origin,
		ExternalSource: in.ExternalSource,
		Created:        now,
		Modified:       now,
	}
	if item.Status == "" {
		item.Status = domain.DefaultStatus(item.Kind)
	}
	if item.Origin == "" {
		item.Origin = domain.DefaultOrigin
	}

	var created *domain.Item
	err := s.db.withTx(ctx, func(tx *itemTx) error {
		if item.LinkedRef != "" {
			if err := checkLinkedRef(ctx, tx, item.ID, item.LinkedRef); err != nil {
				return err
			}
		}
		if err := tx.insertItem(ctx, &item); err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
		if err := tx.upsertSearchRow(ctx, item.ID, item.Title, item.Body); err != nil {
			return fmt.Errorf("failed to index item: %w", err)
		}
		var err error
		created, err = tx.getItem(ctx, item.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("create")
	s.db.logger.Debug("item created", "id", created.ID, "kind", created.Kind, "status", created.Status)
	return created, nil
}

// Get returns an item with derived fields populated
func (s *Store) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := scanItem(s.db.db.QueryRowContext(ctx, selectItem+` WHERE i.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return item, nil
}

// List returns one page of items matching filter plus the total match count
func (s *Store) List(ctx context.Context, filter domain.ListFilter) (*domain.ListPage, error) {
	f, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	where, args := listPredicates(f)
	page := &domain.ListPage{Items: []domain.Item{}, Limit: f.Limit, Offset: f.Offset}

	err = s.db.withTx(ctx, func(tx *itemTx) error {
		if err := tx.tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM items i`+where, args...).Scan(&page.Total); err != nil {
			return fmt.Errorf("failed to count items: %w", err)
		}

		query := selectItem + where + orderBy(f) + ` LIMIT ? OFFSET ?`
		rows, err := tx.tx.QueryContext(ctx, query, append(args, f.Limit, f.Offset)...)
		if err != nil {
			return fmt.Errorf("failed to list items: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			item, err := scanItem(rows)
			if err != nil {
				return err
			}
			page.Items = append(page.Items, *item)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Update applies patch to an item after running it through the taxonomy rules
func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Item, error) {
	if err := domain.ValidatePatch(patch); err != nil {
		return nil, err
	}
	if patch.Title != nil {
		patch.Title = domain.Ptr(strings.TrimSpace(*patch.Title))
	}

	var updated *domain.Item
	err := s.db.withTx(ctx, func(tx *itemTx) error {
		existing, err := tx.getItem(ctx, id)
		if err != nil {
			return err
		}

		resolved, err := domain.ResolvePatch(*existing, patch)
		if err != nil {
			return err
		}

		cols, err := changedColumns(ctx, tx, existing, resolved)
		if err != nil {
			return err
		}
		cols = append(cols, column{"modified", s.db.now().UnixNano()})

		if err := tx.updateItem(ctx, id, cols); err != nil {
			return fmt.Errorf("failed to update item: %w", err)
		}

		// a note converted away can no longer be linked to
		if existing.Kind == domain.KindNote && resolved.Kind != nil && *resolved.Kind != domain.KindNote {
			if err := s.unlink(ctx, tx, id); err != nil {
				return err
			}
		}

		updated, err = tx.getItem(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.upsertSearchRow(ctx, id, updated.Title, updated.Body); err != nil {
			return fmt.Errorf("failed to index item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("update")
	s.db.logger.Debug("item updated", "id", id, "kind", updated.Kind, "status", updated.Status)
	return updated, nil
}

// Delete removes an item, its share links and its index row
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := s.db.withTx(ctx, func(tx *itemTx) error {
		if err := tx.deleteShareLinksFor(ctx, id); err != nil {
			return fmt.Errorf("failed to delete share links: %w", err)
		}
		if err := tx.deleteSearchRow(ctx, id); err != nil {
			return fmt.Errorf("failed to unindex item: %w", err)
		}
		if err := s.unlink(ctx, tx, id); err != nil {
			return err
		}
		var err error
		deleted, err = tx.deleteItem(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to delete item: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	if deleted {
		metrics.RecordMutation("delete")
		s.db.logger.Debug("item deleted", "id", id)
	}
	return deleted, nil
}

// Share creates a share link for an item
func (s *Store) Share(ctx context.Context, id, visibility string) (*domain.ShareLink, error) {
	if visibility == "" {
		visibility = domain.VisibilityUnlisted
	}
	if visibility != domain.VisibilityPublic && visibility != domain.VisibilityUnlisted {
		return nil, &domain.ValidationError{
			Field:   "visibility",
			Message: fmt.Sprintf("%q is not one of: public unlisted", visibility),
		}
	}

	link := &domain.ShareLink{
		Token:      strings.ReplaceAll(uuid.NewString(), "-", ""),
		ItemID:     id,
		Visibility: visibility,
		Created:    s.db.now(),
	}
	err := s.db.withTx(ctx, func(tx *itemTx) error {
		if _, err := tx.getItem(ctx, id); err != nil {
			return err
		}
		if err := tx.insertShareLink(ctx, link); err != nil {
			return fmt.Errorf("failed to create share link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordMutation("share")
	return link, nil
}

// Unshare removes a share link, reporting whether it existed
func (s *Store) Unshare(ctx context.Context, token string) (bool, error) {
	var removed bool
	err := s.db.withTx(ctx, func(tx *itemTx) error {
		var err error
		removed, err = tx.deleteShareLink(ctx, token)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete share link: %w", err)
	}
	if removed {
		metrics.RecordMutation("unshare")
	}
	return removed, nil
}

// unlink clears links to noteID so no task is left pointing at a missing note
func (s *Store) unlink(ctx context.Context, tx *itemTx, noteID string) error {
	n, err := tx.unlinkTasks(ctx, noteID, s.db.now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to clear links to %s: %w", noteID, err)
	}
	if n > 0 {
		s.db.logger.Debug("cleared dangling links", "note", noteID, "items", n)
	}
	return nil
}

// changedColumns turns a resolved patch into the columns that differ from
// the stored item
func changedColumns(ctx context.Context, tx *itemTx, existing *domain.Item, p domain.Patch) ([]column, error) {
	var cols []column

	if p.Kind != nil && *p.Kind != existing.Kind {
		cols = append(cols, column{"kind", string(*p.Kind)})
	}
	if p.Status != nil && *p.Status != existing.Status {
		cols = append(cols, column{"status", string(*p.Status)})
	}
	if p.Title != nil && *p.Title != existing.Title {
		cols = append(cols, column{"title", *p.Title})
	}
	if p.Body != nil && *p.Body != existing.Body {
		cols = append(cols, column{"body", *p.Body})
	}
	if p.Priority != nil && *p.Priority != existing.Priority {
		cols = append(cols, column{"priority", string(*p.Priority)})
	}
	if p.Due != nil && *p.Due != existing.Due {
		cols = append(cols, column{"due", *p.Due})
	}
	if p.Tags != nil {
		if tags := domain.NormalizeTags(*p.Tags); !slices.Equal(tags, existing.Tags) {
			raw, err := encodeList(tags)
			if err != nil {
				return nil, err
			}
			cols = append(cols, column{"tags", raw})
		}
	}
	if p.Aliases != nil {
		if aliases := domain.NormalizeAliases(*p.Aliases); !slices.Equal(aliases, existing.Aliases) {
			raw, err := encodeList(aliases)
			if err != nil {
				return nil, err
			}
			cols = append(cols, column{"aliases", raw})
		}
	}
	if p.LinkedRef != nil {
		if ref := strings.TrimSpace(*p.LinkedRef); ref != existing.LinkedRef {
			if ref != "" {
				if err := checkLinkedRef(ctx, tx, existing.ID, ref); err != nil {
					return nil, err
				}
			}
			cols = append(cols, column{"linked_ref", ref})
		}
	}
	return cols, nil
}

// checkLinkedRef verifies that ref names an existing note other than self
func checkLinkedRef(ctx context.Context, tx *itemTx, self, ref string) error {
	if ref == self {
		return &domain.ValidationError{Field: "linkedRef", Message: "an item cannot link to itself"}
	}
	ok, err := tx.isNote(ctx, ref)
	if err != nil {
		return fmt.Errorf("failed to check linked note: %w", err)
	}
	if !ok {
		return &domain.ValidationError{Field: "linkedRef", Message: fmt.Sprintf("%s is not an existing note", ref)}
	}
	return nil
}

// listPredicates builds the WHERE clause shared by the page and count queries
func listPredicates(f domain.ListFilter) (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "i.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Kind != "" {
		conds = append(conds, "i.kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.Tag != "" {
		// EXISTS keeps one row per item whatever the tag expansion yields
		conds = append(conds, "EXISTS (SELECT 1 FROM json_each(i.tags) WHERE json_each.value = ?)")
		args = append(args, strings.TrimSpace(f.Tag))
	}
	if len(f.ExcludeStatuses) > 0 {
		marks := make([]string, len(f.ExcludeStatuses))
		for n, st := range f.ExcludeStatuses {
			marks[n] = "?"
			args = append(args, string(st))
		}
		conds = append(conds, "i.status NOT IN ("+strings.Join(marks, ", ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderBy renders the ORDER BY clause of a listing
func orderBy(f domain.ListFilter) string {
	dir := " DESC"
	if f.Order == domain.OrderAsc {
		dir = " ASC"
	}
	var key string
	switch f.Sort {
	case domain.SortModified:
		key = "i.modified" + dir
	case domain.SortPriority:
		key = `CASE i.priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 WHEN 'low' THEN 1 ELSE 0 END` + dir
	case domain.SortDue:
		// undated tasks last in either direction
		key = "(i.due = '') ASC, i.due" + dir
	default:
		key = "i.created" + dir
	}
	return " ORDER BY " + key + ", i.created DESC, i.rowid DESC"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var tags, aliases string
	var created, modified int64

	err := row.Scan(&item.ID, &item.Kind, &item.Title, &item.Body, &item.Status,
		&item.Priority, &item.Due, &tags, &aliases, &item.LinkedRef, &item.Origin,
		&item.ExternalSource, &created, &modified,
		&item.LinkedTaskCount, &item.LinkedNoteTitle, &item.ShareVisibility)
	if err != nil {
		return nil, err
	}

	if item.Tags, err = decodeList(tags); err != nil {
		return nil, err
	}
	if item.Aliases, err = decodeList(aliases); err != nil {
		return nil, err
	}
	item.Created = unixNano(created)
	item.Modified = unixNano(modified)
	return &item, nil
}
