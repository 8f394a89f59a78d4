package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/whiskr/backend/internal/domain"
)

// AddFavorite saves whiskeyID for userID. Saving it again is a no-op.
// An unknown whiskey yields domain.ErrWhiskeyNotFound.
func (c *Catalog) AddFavorite(ctx context.Context, userID, whiskeyID string, at time.Time) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO user_favorites(user_id, whiskey_id, created_at) VALUES(?,?,?)
		 ON CONFLICT(user_id, whiskey_id) DO NOTHING`,
		userID, whiskeyID, formatTime(at),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrWhiskeyNotFound, whiskeyID)
	}
	return err
}

// RemoveFavorite deletes the favorite if present
func (c *Catalog) RemoveFavorite(ctx context.Context, userID, whiskeyID string) error {
	_, err := c.db.ExecContext(ctx,
		`DELETE FROM user_favorites WHERE user_id = ? AND whiskey_id = ?`,
		userID, whiskeyID,
	)
	return err
}

// ListFavorites returns the user's saved whiskeys with their ratings, most recently saved first
func (c *Catalog) ListFavorites(ctx context.Context, userID string, page domain.Page) ([]domain.Favorite, error) {
	limit, offset := pageBounds(page)
	rows, err := c.db.QueryContext(ctx,
		`SELECT f.created_at, `+qualify("v.", readColumns)+`
		 FROM user_favorites f
		 JOIN whiskey_with_ratings v ON v.id = f.whiskey_id
		 WHERE f.user_id = ?
		 ORDER BY f.created_at DESC, v.id
		 LIMIT ? OFFSET ?`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Favorite, 0)
	for rows.Next() {
		var savedAt string
		w, err := scanWhiskey(prefixScanner{rows: rows, first: &savedAt})
		if err != nil {
			return nil, err
		}
		out = append(out, domain.Favorite{
			WhiskeyID: w.ID,
			CreatedAt: parseTime(savedAt),
			Whiskey:   *w,
		})
	}
	return out, rows.Err()
}

// prefixScanner scans one leading column before handing the rest to scanWhiskey
type prefixScanner struct {
	rows  scanner
	first any
}

func (p prefixScanner) Scan(dest ...any) error {
	return p.rows.Scan(append([]any{p.first}, dest...)...)
}

func qualify(prefix, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, col := range parts {
		parts[i] = prefix + col
	}
	return strings.Join(parts, ", ")
}
