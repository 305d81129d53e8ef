package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ar "acme_reviews"
	"acme_reviews/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ReviewRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

var _ Reviews = (*ReviewRepository)(nil)

const (
	reviewColumns = `id, user_id, item_id, rating, review, created_at, updated_at`

	insertReviewSQL = `
		INSERT INTO reviews (id, user_id, item_id, rating, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectReviewByIDSQL      = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = ?`
	selectReviewsByItemSQL   = `SELECT ` + reviewColumns + ` FROM reviews WHERE item_id = ? ORDER BY created_at DESC`
	selectReviewsByUserSQL   = `SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = ? ORDER BY created_at DESC`
	updateReviewReturningSQL = `
		UPDATE reviews SET rating = ?, review = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + reviewColumns
	deleteReviewSQL = `DELETE FROM reviews WHERE id = ?`
)

// Create inserts rv with a generated id and timestamps and returns the stored row.
// A missing user or item yields ErrNotFound.
func (r *ReviewRepository) Create(ctx context.Context, rv models.Review) (models.Review, error) {
	now := r.now()
	rv.ID = uuid.NewString()
	rv.CreatedAt, rv.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertReviewSQL),
		rv.ID, rv.UserID, rv.ItemID, rv.Rating, rv.Review, rv.CreatedAt, rv.UpdatedAt)
	if err != nil {
		return models.Review{}, wrapWriteErr(err, "review", "insert review")
	}
	return rv, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (models.Review, error) {
	var rv models.Review
	if err := r.db.GetContext(ctx, &rv, r.db.Rebind(selectReviewByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ar.NotFoundf("review %s", id)
		}
		return models.Review{}, fmt.Errorf("select review %s: %w", id, err)
	}
	return normalizeReview(rv), nil
}

// ListByItem returns only the reviews of itemID, newest first.
func (r *ReviewRepository) ListByItem(ctx context.Context, itemID string) ([]models.Review, error) {
	return r.list(ctx, selectReviewsByItemSQL, itemID)
}

// ListByUser returns the reviews written by userID, newest first.
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, selectReviewsByUserSQL, userID)
}

func (r *ReviewRepository) list(ctx context.Context, query, arg string) ([]models.Review, error) {
	out := make([]models.Review, 0)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), arg); err != nil {
		return nil, fmt.Errorf("select reviews: %w", err)
	}
	for i := range out {
		out[i] = normalizeReview(out[i])
	}
	return out, nil
}

// Update overwrites rating and text. Last writer wins.
func (r *ReviewRepository) Update(ctx context.Context, id string, rating int, text string) (models.Review, error) {
	var rv models.Review
	err := r.db.GetContext(ctx, &rv, r.db.Rebind(updateReviewReturningSQL), rating, text, r.now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Review{}, ar.NotFoundf("review %s", id)
		}
		return models.Review{}, fmt.Errorf("update review %s: %w", id, err)
	}
	return normalizeReview(rv), nil
}

// Delete removes the review; deleting a missing id is not an error.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(deleteReviewSQL), id); err != nil {
		return fmt.Errorf("delete review %s: %w", id, err)
	}
	return nil
}

func normalizeReview(rv models.Review) models.Review {
	rv.CreatedAt = rv.CreatedAt.UTC()
	rv.UpdatedAt = rv.UpdatedAt.UTC()
	return rv
}
