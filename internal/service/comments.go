package service

import (
	"context"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

const maxCommentLen = 2000

type CommentService struct {
	comments repository.Comments
	reviews  *ReviewService
}

func NewCommentService(comments repository.Comments, reviews *ReviewService) *CommentService {
	return &CommentService{comments: comments, reviews: reviews}
}

func validateComment(text string) (string, error) {
	text = cleanText(text)
	if text == "" {
		return "", ar.Validationf("comment is required")
	}
	if len([]rune(text)) > maxCommentLen {
		return "", ar.Validationf("comment must be at most %d characters", maxCommentLen)
	}
	return text, nil
}

// ListComments returns the comments on reviewID, which must belong to itemID.
func (s *CommentService) ListComments(ctx context.Context, itemID, reviewID string) ([]models.Comment, error) {
	if _, err := s.reviews.GetReview(ctx, itemID, reviewID); err != nil {
		return nil, err
	}
	return s.comments.ListByReview(ctx, reviewID)
}

// CreateComment adds a comment by actorID. Any authenticated user may comment.
func (s *CommentService) CreateComment(ctx context.Context, actorID, itemID, reviewID, text string) (models.Comment, error) {
	text, err := validateComment(text)
	if err != nil {
		return models.Comment{}, err
	}
	if _, err := s.reviews.GetReview(ctx, itemID, reviewID); err != nil {
		return models.Comment{}, err
	}
	return s.comments.Create(ctx, models.Comment{ReviewID: reviewID, UserID: actorID, Comment: text})
}

func (s *CommentService) UpdateComment(ctx context.Context, actorID, pathUserID, commentID, text string) (models.Comment, error) {
	text, err := validateComment(text)
	if err != nil {
		return models.Comment{}, err
	}
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, err
	}
	if err := authorizeOwner(actorID, pathUserID, c.UserID); err != nil {
		return models.Comment{}, err
	}
	return s.comments.Update(ctx, commentID, text)
}

func (s *CommentService) DeleteComment(ctx context.Context, actorID, pathUserID, commentID string) error {
	c, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(actorID, pathUserID, c.UserID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) ListUserComments(ctx context.Context, userID string) ([]models.Comment, error) {
	return s.comments.ListByUser(ctx, userID)
}
