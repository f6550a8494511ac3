package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"grove/internal/domain"
	"grove/internal/metrics"
	"grove/internal/ports"
)

// Search limits
const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// trigramSize is the token width of the FTS5 trigram tokenizer. Fragments
// shorter than this can never match the index.
const trigramSize = 3

// noMatch is a phrase no item can contain, used for empty input
const noMatch = `"` + "\u2063grove\u2063no-match\u2063" + `"`

// SearchIndex implements ports.SearchIndex over the items_fts table
type SearchIndex struct {
	db *Database
}

// Ensure SearchIndex implements ports.SearchIndex
var _ ports.SearchIndex = (*SearchIndex)(nil)

// NewSearchIndex creates a search index on an open database
func NewSearchIndex(db *Database) *SearchIndex {
	return &SearchIndex{db: db}
}

// Query returns ids of items whose title or body matches text. Input of at
// least three characters per word goes through the trigram index ranked by
// relevance; shorter input is answered by a substring scan, newest first.
func (s *SearchIndex) Query(ctx context.Context, text string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	text = strings.TrimSpace(text)
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		metrics.RecordSearch(metrics.StrategyEmpty)
		return s.matchIndex(ctx, noMatch, limit)
	}

	if utf8.RuneCountInString(text) < trigramSize || hasShortToken(tokens) {
		metrics.RecordSearch(metrics.StrategySubstring)
		return s.scanSubstring(ctx, tokens, limit)
	}

	metrics.RecordSearch(metrics.StrategyTrigram)
	return s.matchIndex(ctx, SanitizeQuery(text), limit)
}

// matchIndex runs an already sanitized expression against the FTS table.
// Grammar failures are logged and reported as no matches.
func (s *SearchIndex) matchIndex(ctx context.Context, expr string, limit int) ([]string, error) {
	rows, err := s.db.db.QueryContext(ctx, `
		SELECT id FROM items_fts
		WHERE items_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, expr, limit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.RecordSearchFailure()
		s.db.logger.Warn("search query rejected", "expr", expr, "error", err)
		return []string{}, nil
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to read search result: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordSearchFailure()
		s.db.logger.Warn("search query failed", "expr", expr, "error", err)
		return []string{}, nil
	}
	return ids, nil
}

// scanSubstring matches every token case-insensitively against title or body
func (s *SearchIndex) scanSubstring(ctx context.Context, tokens []string, limit int) ([]string, error) {
	conds := make([]string, 0, len(tokens))
	args := make([]any, 0, 2*len(tokens)+1)
	for _, tok := range tokens {
		conds = append(conds, "(instr(lower(title), lower(?)) > 0 OR instr(lower(body), lower(?)) > 0)")
		args = append(args, tok, tok)
	}
	args = append(args, limit)

	rows, err := s.db.db.QueryContext(ctx, `
		SELECT id FROM items
		WHERE `+strings.Join(conds, " AND ")+`
		ORDER BY created DESC, rowid DESC
		LIMIT ?
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan items: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to read search result: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Rebuild repopulates the index from the items table in one transaction
func (s *SearchIndex) Rebuild(ctx context.Context) (*domain.RebuildStats, error) {
	start := s.db.now()
	stats := &domain.RebuildStats{}

	err := s.db.withTx(ctx, func(tx *itemTx) error {
		// Clear existing data
		if _, err := tx.tx.ExecContext(ctx, `DELETE FROM items_fts`); err != nil {
			return fmt.Errorf("failed to clear index: %w", err)
		}
		res, err := tx.tx.ExecContext(ctx, `
			INSERT INTO items_fts (id, title, body)
			SELECT id, title, body FROM items
		`)
		if err != nil {
			return fmt.Errorf("failed to populate index: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		stats.ItemsIndexed = int(n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Update last rebuild time
	finished := s.db.now()
	if err := s.db.setMeta(ctx, "last_rebuild_time", strconv.FormatInt(finished.UnixNano(), 10)); err != nil {
		s.db.logger.Warn("failed to record rebuild time", "error", err)
	}

	stats.Duration = finished.Sub(start)
	metrics.RecordRebuild(stats.Duration)
	s.db.logger.Info("search index rebuilt", "items", stats.ItemsIndexed, "duration", stats.Duration)
	return stats, nil
}

// SanitizeQuery turns free text into an FTS5 expression that cannot trip the
// query grammar: every whitespace-separated token becomes a quoted phrase
// with embedded quotes doubled, and tokens are AND-joined.
func SanitizeQuery(text string) string {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return noMatch
	}
	for i, tok := range tokens {
		tokens[i] = `"` + strings.ReplaceAll(tok, `"`, `""`) + `"`
	}
	return strings.Join(tokens, " AND ")
}

func hasShortToken(tokens []string) bool {
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < trigramSize {
			return true
		}
	}
	return false
}
