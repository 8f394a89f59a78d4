// Package sqlite implements the internal whiskey catalog on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/whiskr/backend/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

const schema = `
CREATE TABLE IF NOT EXISTS whiskeys (
  id          TEXT PRIMARY KEY,
  name        TEXT NOT NULL,
  brand       TEXT NOT NULL,
  distillery  TEXT NOT NULL,
  type        TEXT NOT NULL DEFAULT 'other',
  region      TEXT NOT NULL DEFAULT 'other',
  age         INTEGER,
  abv         REAL,
  description TEXT,
  image_url   TEXT,
  barcode     TEXT,
  created_by  TEXT,
  created_at  TEXT NOT NULL,
  updated_at  TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_whiskeys_barcode ON whiskeys(barcode) WHERE barcode IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_whiskeys_name ON whiskeys(name);

CREATE TABLE IF NOT EXISTS reviews (
  id            TEXT PRIMARY KEY,
  whiskey_id    TEXT NOT NULL REFERENCES whiskeys(id) ON DELETE CASCADE,
  user_id       TEXT NOT NULL,
  rating        INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  tasting_notes TEXT,
  tags          TEXT NOT NULL DEFAULT '[]',
  created_at    TEXT NOT NULL,
  updated_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reviews_whiskey ON reviews(whiskey_id, created_at);
CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id, created_at);

CREATE TABLE IF NOT EXISTS user_favorites (
  user_id    TEXT NOT NULL,
  whiskey_id TEXT NOT NULL REFERENCES whiskeys(id) ON DELETE CASCADE,
  created_at TEXT NOT NULL,
  PRIMARY KEY (user_id, whiskey_id)
);

CREATE VIEW IF NOT EXISTS whiskey_with_ratings AS
SELECT w.*,
       COALESCE(AVG(r.rating), 0.0) AS average_rating,
       COUNT(r.id) AS review_count
FROM whiskeys w
LEFT JOIN reviews r ON r.whiskey_id = w.id
GROUP BY w.id;
`

// insertColumns are the stored whiskey columns; readColumns add the rating aggregates of the view
const (
	insertColumns = `id, name, brand, distillery, type, region, age, abv, description, image_url, barcode, created_by, created_at, updated_at`
	readColumns   = insertColumns + `, average_rating, review_count`
)

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Catalog is a domain.CatalogRepository backed by a SQLite file.
// It also stores reviews and favorites.
type Catalog struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at path and ensures the schema exists
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Ping reports whether the database is reachable
func (c *Catalog) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Catalog) FindByBarcode(ctx context.Context, barcode string) (*domain.Whiskey, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+readColumns+` FROM whiskey_with_ratings WHERE barcode = ?`, barcode)
	return scanWhiskey(row)
}

func (c *Catalog) FindByID(ctx context.Context, id string) (*domain.Whiskey, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+readColumns+` FROM whiskey_with_ratings WHERE id = ?`, id)
	return scanWhiskey(row)
}

// Insert stores w as a new record. A barcode already present yields domain.ErrDuplicateBarcode.
func (c *Catalog) Insert(ctx context.Context, w *domain.Whiskey) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO whiskeys(`+insertColumns+`) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		w.ID, w.Name, w.Brand, w.Distillery, string(w.Type), string(w.Region),
		nullInt(w.Age), nullFloat(w.ABV),
		nullIfEmpty(w.Description), nullIfEmpty(w.ImageURL), nullIfEmpty(w.Barcode), nullIfEmpty(w.CreatedBy),
		formatTime(w.CreatedAt), formatTime(w.UpdatedAt),
	)
	if isBarcodeConflict(err) {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateBarcode, w.Barcode)
	}
	return err
}

// Search lists catalog records matching filter, best rated first, then by name
func (c *Catalog) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.Whiskey, error) {
	var (
		where []string
		args  []any
	)

	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		where = append(where, `(name LIKE ? ESCAPE '\' OR brand LIKE ? ESCAPE '\' OR distillery LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.Region != "" {
		where = append(where, "region = ?")
		args = append(args, string(filter.Region))
	}
	if filter.MinAge > 0 {
		where = append(where, "age >= ?")
		args = append(args, filter.MinAge)
	}
	if filter.MaxAge > 0 {
		where = append(where, "age <= ?")
		args = append(args, filter.MaxAge)
	}
	if filter.MinRating > 0 {
		where = append(where, "average_rating >= ?")
		args = append(args, filter.MinRating)
	}

	limit, offset := pageBounds(domain.Page{Limit: filter.Limit, Offset: filter.Offset})

	query := `SELECT ` + readColumns + ` FROM whiskey_with_ratings`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY average_rating DESC, name COLLATE NOCASE, id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Whiskey, 0)
	for rows.Next() {
		w, err := scanWhiskey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWhiskey(s scanner) (*domain.Whiskey, error) {
	var (
		w                                       domain.Whiskey
		typ, region                             string
		age                                     sql.NullInt64
		abv                                     sql.NullFloat64
		description, imageURL, barcode, creator sql.NullString
		createdAt, updatedAt                    string
	)
	err := s.Scan(&w.ID, &w.Name, &w.Brand, &w.Distillery, &typ, &region, &age, &abv,
		&description, &imageURL, &barcode, &creator, &createdAt, &updatedAt,
		&w.AverageRating, &w.ReviewCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrWhiskeyNotFound
	}
	if err != nil {
		return nil, err
	}

	w.Type = domain.ParseWhiskeyType(typ)
	w.Region = domain.ParseRegion(region)
	if age.Valid {
		v := int(age.Int64)
		w.Age = &v
	}
	if abv.Valid {
		v := abv.Float64
		w.ABV = &v
	}
	w.Description = description.String
	w.ImageURL = imageURL.String
	w.Barcode = barcode.String
	w.CreatedBy = creator.String
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return &w, nil
}

// isBarcodeConflict reports a violation of the barcode unique index only.
// Primary key collisions are left as plain errors.
func isBarcodeConflict(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "whiskeys.barcode")
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(se.Error(), "FOREIGN KEY")
	}
	return false
}

// pageBounds applies the default and maximum page size
func pageBounds(p domain.Page) (limit, offset int) {
	limit = p.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	offset = p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
