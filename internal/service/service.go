package service

import (
	"context"
	"time"

	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (models.User, string, error)
	SignIn(ctx context.Context, username, password string) (string, error)
	ParseToken(token string) (string, error)
	Me(ctx context.Context, userID string) (models.User, error)
}

// Catalog exposes the item list and item creation.
type Catalog interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	GetItem(ctx context.Context, id string) (models.Item, error)
	CreateItem(ctx context.Context, name, description string) (models.Item, error)
	SeedIfEmpty(ctx context.Context, seed []models.Item) (int, error)
}

// Reviews exposes review reads for everyone and owner-only mutations.
type Reviews interface {
	ListReviews(ctx context.Context, itemID string) ([]models.Review, error)
	GetReview(ctx context.Context, itemID, reviewID string) (models.Review, error)
	CreateReview(ctx context.Context, actorID, itemID string, in ReviewInput) (models.Review, error)
	UpdateReview(ctx context.Context, actorID, pathUserID, reviewID string, in ReviewInput) (models.Review, error)
	DeleteReview(ctx context.Context, actorID, pathUserID, reviewID string) error
	ListUserReviews(ctx context.Context, userID string) ([]models.Review, error)
}

// Comments mirrors Reviews one level down.
type Comments interface {
	ListComments(ctx context.Context, itemID, reviewID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, actorID, itemID, reviewID, text string) (models.Comment, error)
	UpdateComment(ctx context.Context, actorID, pathUserID, commentID, text string) (models.Comment, error)
	DeleteComment(ctx context.Context, actorID, pathUserID, commentID string) error
	ListUserComments(ctx context.Context, userID string) ([]models.Comment, error)
}

type Users interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Catalog
	Reviews
	Comments
	Users
}

// Options carries the auth settings loaded at startup.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	// Now overrides the token clock; nil means time.Now.
	Now func() time.Time
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	creds := NewCredentialStore(repos.Users, opts.BcryptCost)
	tokens := NewTokenManager(opts.JWTSecret, opts.TokenTTL, opts.Now)
	reviews := NewReviewService(repos.Reviews, repos.Items)

	return &Service{
		Authorization: NewAuthService(repos.Users, creds, tokens),
		Catalog:       NewCatalogService(repos.Items),
		Reviews:       reviews,
		Comments:      NewCommentService(repos.Comments, reviews),
		Users:         NewUserService(repos.Users),
	}
}
