package repository

import (
	"context"

	"acme_reviews/internal/models"

	"github.com/jmoiron/sqlx"
)

type Users interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Items interface {
	Create(ctx context.Context, name, description string) (models.Item, error)
	GetByID(ctx context.Context, id string) (models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	Count(ctx context.Context) (int, error)
}

type Reviews interface {
	Create(ctx context.Context, r models.Review) (models.Review, error)
	GetByID(ctx context.Context, id string) (models.Review, error)
	ListByItem(ctx context.Context, itemID string) ([]models.Review, error)
	ListByUser(ctx context.Context, userID string) ([]models.Review, error)
	Update(ctx context.Context, id string, rating int, text string) (models.Review, error)
	Delete(ctx context.Context, id string) error
}

type Comments interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	GetByID(ctx context.Context, id string) (models.Comment, error)
	ListByReview(ctx context.Context, reviewID string) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID string) ([]models.Comment, error)
	Update(ctx context.Context, id string, text string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Users    Users
	Items    Items
	Reviews  Reviews
	Comments Comments
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:    NewUserRepository(db),
		Items:    NewItemRepository(db),
		Reviews:  NewReviewRepository(db),
		Comments: NewCommentRepository(db),
	}
}
