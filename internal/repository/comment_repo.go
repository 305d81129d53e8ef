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

type CommentRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

var _ Comments = (*CommentRepository)(nil)

const (
	commentColumns = `id, review_id, user_id, comment, created_at, updated_at`

	insertCommentSQL = `
		INSERT INTO comments (id, review_id, user_id, comment, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectCommentByIDSQL      = `SELECT ` + commentColumns + ` FROM comments WHERE id = ?`
	selectCommentsByReviewSQL = `SELECT ` + commentColumns + ` FROM comments WHERE review_id = ? ORDER BY created_at ASC`
	selectCommentsByUserSQL   = `SELECT ` + commentColumns + ` FROM comments WHERE user_id = ? ORDER BY created_at DESC`
	updateCommentReturningSQL = `
		UPDATE comments SET comment = ?, updated_at = ?
		WHERE id = ?
		RETURNING ` + commentColumns
	deleteCommentSQL = `DELETE FROM comments WHERE id = ?`
)

// Create inserts c with a generated id and timestamps. A missing review or
// user yields ErrNotFound.
func (r *CommentRepository) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	now := r.now()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx, r.db.Rebind(insertCommentSQL),
		c.ID, c.ReviewID, c.UserID, c.Comment, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Comment{}, wrapWriteErr(err, "comment", "insert comment")
	}
	return c, nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (models.Comment, error) {
	var c models.Comment
	if err := r.db.GetContext(ctx, &c, r.db.Rebind(selectCommentByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, ar.NotFoundf("comment %s", id)
		}
		return models.Comment{}, fmt.Errorf("select comment %s: %w", id, err)
	}
	return normalizeComment(c), nil
}

// ListByReview returns the comments on reviewID, oldest first.
func (r *CommentRepository) ListByReview(ctx context.Context, reviewID string) ([]models.Comment, error) {
	return r.list(ctx, selectCommentsByReviewSQL, reviewID)
}

// ListByUser returns the comments written by userID, newest first.
func (r *CommentRepository) ListByUser(ctx context.Context, userID string) ([]models.Comment, error) {
	return r.list(ctx, selectCommentsByUserSQL, userID)
}

func (r *CommentRepository) list(ctx context.Context, query, arg string) ([]models.Comment, error) {
	out := make([]models.Comment, 0)
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), arg); err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	for i := range out {
		out[i] = normalizeComment(out[i])
	}
	return out, nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, text string) (models.Comment, error) {
	var c models.Comment
	err := r.db.GetContext(ctx, &c, r.db.Rebind(updateCommentReturningSQL), text, r.now(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, ar.NotFoundf("comment %s", id)
		}
		return models.Comment{}, fmt.Errorf("update comment %s: %w", id, err)
	}
	return normalizeComment(c), nil
}

// Delete removes the comment; deleting a missing id is not an error.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(deleteCommentSQL), id); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

func normalizeComment(c models.Comment) models.Comment {
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c
}
