package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"grove/internal/domain"
)

// itemTx groups the statements of one store call
type itemTx struct {
	tx *sql.Tx
}

// column is one changed field of an update
type column struct {
	name  string
	value any
}

// insertItem inserts a new item row
func (t *itemTx) insertItem(ctx context.Context, item *domain.Item) error {
	tags, err := encodeList(item.Tags)
	if err != nil {
		return err
	}
	aliases, err := encodeList(item.Aliases)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO items (id, kind, title, body, status, priority, due, tags, aliases,
			linked_ref, origin, external_source, created, modified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, item.ID, item.Kind, item.Title, item.Body, item.Status, item.Priority, item.Due,
		tags, aliases, item.LinkedRef, item.Origin, item.ExternalSource,
		item.Created.UnixNano(), item.Modified.UnixNano())
	return err
}

// updateItem writes the given columns of an existing row
func (t *itemTx) updateItem(ctx context.Context, id string, cols []column) error {
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		sets = append(sets, c.name+" = ?")
		args = append(args, c.value)
	}
	args = append(args, id)
	_, err := t.tx.ExecContext(ctx,
		`UPDATE items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	return err
}

// deleteItem removes an item row, reporting whether it existed
func (t *itemTx) deleteItem(ctx context.Context, id string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// unlinkTasks clears linked_ref on every item pointing at noteID
func (t *itemTx) unlinkTasks(ctx context.Context, noteID string, modified int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE items SET linked_ref = '', modified = ? WHERE linked_ref = ?`, modified, noteID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// getItem loads an item with its derived fields
func (t *itemTx) getItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := scanItem(t.tx.QueryRowContext(ctx, selectItem+` WHERE i.id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, &domain.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return item, nil
}

// isNote reports whether id names an existing note
func (t *itemTx) isNote(ctx context.Context, id string) (bool, error) {
	var n int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE id = ? AND kind = 'note'`, id).Scan(&n)
	return n > 0, err
}

// upsertSearchRow replaces the index row of an item
func (t *itemTx) upsertSearchRow(ctx context.Context, id, title, body string) error {
	if err := t.deleteSearchRow(ctx, id); err != nil {
		return err
	}
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO items_fts (id, title, body) VALUES (?, ?, ?)`, id, title, body)
	return err
}

// deleteSearchRow removes the index row of an item
func (t *itemTx) deleteSearchRow(ctx context.Context, id string) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM items_fts WHERE id = ?`, id)
	return err
}

// insertShareLink adds a share link
func (t *itemTx) insertShareLink(ctx context.Context, link *domain.ShareLink) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO share_links (token, item_id, visibility, created)
		VALUES (?, ?, ?, ?)
	`, link.Token, link.ItemID, link.Visibility, link.Created.UnixNano())
	return err
}

// deleteShareLink removes a share link by token
func (t *itemTx) deleteShareLink(ctx context.Context, token string) (bool, error) {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM share_links WHERE token = ?`, token)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// deleteShareLinksFor removes every share link of an item
func (t *itemTx) deleteShareLinksFor(ctx context.Context, itemID string) error {
	_, err := t.tx.ExecContext(ctx, `DELETE FROM share_links WHERE item_id = ?`, itemID)
	return err
}

func encodeList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	return out, nil
}
