package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/whiskr/backend/internal/domain"
)

const reviewColumns = `id, whiskey_id, user_id, rating, tasting_notes, tags, created_at, updated_at`

// InsertReview stores r. A review for an unknown whiskey yields domain.ErrWhiskeyNotFound.
func (c *Catalog) InsertReview(ctx context.Context, r *domain.Review) error {
	tags, err := encodeTags(r.Tags)
	if err != nil {
		return err
	}

	_, err = c.db.ExecContext(ctx,
		`INSERT INTO reviews(`+reviewColumns+`) VALUES(?,?,?,?,?,?,?,?)`,
		r.ID, r.WhiskeyID, r.UserID, r.Rating, nullIfEmpty(r.TastingNotes), tags,
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrWhiskeyNotFound, r.WhiskeyID)
	}
	return err
}

func (c *Catalog) FindReview(ctx context.Context, id string) (*domain.Review, error) {
	row := c.db.QueryRowContext(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = ?`, id)
	return scanReview(row)
}

// UpdateReview overwrites the rating, notes, tags and update time of an existing review
func (c *Catalog) UpdateReview(ctx context.Context, r *domain.Review) error {
	tags, err := encodeTags(r.Tags)
	if err != nil {
		return err
	}

	res, err := c.db.ExecContext(ctx,
		`UPDATE reviews SET rating = ?, tasting_notes = ?, tags = ?, updated_at = ? WHERE id = ?`,
		r.Rating, nullIfEmpty(r.TastingNotes), tags, formatTime(r.UpdatedAt), r.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrReviewNotFound)
}

func (c *Catalog) DeleteReview(ctx context.Context, id string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, domain.ErrReviewNotFound)
}

// ListWhiskeyReviews returns the reviews of one whiskey, newest first
func (c *Catalog) ListWhiskeyReviews(ctx context.Context, whiskeyID string, page domain.Page) ([]domain.Review, error) {
	return c.listReviews(ctx, "whiskey_id", whiskeyID, page)
}

// ListUserReviews returns the reviews written by one user, newest first
func (c *Catalog) ListUserReviews(ctx context.Context, userID string, page domain.Page) ([]domain.Review, error) {
	return c.listReviews(ctx, "user_id", userID, page)
}

// listReviews filters on column, which is always one of the fixed names above
func (c *Catalog) listReviews(ctx context.Context, column, value string, page domain.Page) ([]domain.Review, error) {
	limit, offset := pageBounds(page)
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+reviewColumns+` FROM reviews WHERE `+column+` = ? ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		value, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func scanReview(s scanner) (*domain.Review, error) {
	var (
		r                    domain.Review
		notes                sql.NullString
		tags                 string
		createdAt, updatedAt string
	)
	err := s.Scan(&r.ID, &r.WhiskeyID, &r.UserID, &r.Rating, &notes, &tags, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(tags), &r.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of review %s: %w", r.ID, err)
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.TastingNotes = notes.String
	r.CreatedAt = parseTime(createdAt)
	r.UpdatedAt = parseTime(updatedAt)
	return &r, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
