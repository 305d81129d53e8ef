package service

import (
	"context"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

// ReviewInput is the writable part of a review.
type ReviewInput struct {
	Rating int
	Review string
}

func (in ReviewInput) validate() error {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return ar.Validationf("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	return nil
}

type ReviewService struct {
	reviews repository.Reviews
	items   repository.Items
}

func NewReviewService(reviews repository.Reviews, items repository.Items) *ReviewService {
	return &ReviewService{reviews: reviews, items: items}
}

// ListReviews returns the reviews of itemID only.
func (s *ReviewService) ListReviews(ctx context.Context, itemID string) ([]models.Review, error) {
	return s.reviews.ListByItem(ctx, itemID)
}

// GetReview fetches reviewID and requires it to belong to itemID.
func (s *ReviewService) GetReview(ctx context.Context, itemID, reviewID string) (models.Review, error) {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	if rv.ItemID != itemID {
		return models.Review{}, ar.NotFoundf("review %s", reviewID)
	}
	return rv, nil
}

// CreateReview stores a review by actorID. The rating is checked before any
// storage call.
func (s *ReviewService) CreateReview(ctx context.Context, actorID, itemID string, in ReviewInput) (models.Review, error) {
	if err := in.validate(); err != nil {
		return models.Review{}, err
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return models.Review{}, err
	}
	return s.reviews.Create(ctx, models.Review{
		UserID: actorID,
		ItemID: itemID,
		Rating: in.Rating,
		Review: cleanText(in.Review),
	})
}

// UpdateReview overwrites a review owned by actorID.
func (s *ReviewService) UpdateReview(ctx context.Context, actorID, pathUserID, reviewID string, in ReviewInput) (models.Review, error) {
	if err := in.validate(); err != nil {
		return models.Review{}, err
	}
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return models.Review{}, err
	}
	if err := authorizeOwner(actorID, pathUserID, rv.UserID); err != nil {
		return models.Review{}, err
	}
	return s.reviews.Update(ctx, reviewID, in.Rating, cleanText(in.Review))
}

// DeleteReview removes a review owned by actorID together with its comments.
// A review that is already gone is ErrNotFound.
func (s *ReviewService) DeleteReview(ctx context.Context, actorID, pathUserID, reviewID string) error {
	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actorID, pathUserID, rv.UserID); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, reviewID)
}

// ListUserReviews returns the reviews written by userID.
func (s *ReviewService) ListUserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	return s.reviews.ListByUser(ctx, userID)
}
