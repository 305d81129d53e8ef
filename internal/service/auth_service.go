package service

import (
	"context"
	"fmt"

	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

// AuthService handles registration, login and token checks.
type AuthService struct {
	creds  *CredentialStore
	tokens *TokenManager
	users  repository.Users
}

func NewAuthService(users repository.Users, creds *CredentialStore, tokens *TokenManager) *AuthService {
	return &AuthService{creds: creds, tokens: tokens, users: users}
}

// SignUp registers the user and logs them in straight away.
func (s *AuthService) SignUp(ctx context.Context, username, password string) (models.User, string, error) {
	u, err := s.creds.Register(ctx, username, password)
	if err != nil {
		return models.User{}, "", err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// SignIn verifies credentials and returns a fresh token.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	u, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, err := s.tokens.Issue(u.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ParseToken returns the user id carried by a valid token.
func (s *AuthService) ParseToken(token string) (string, error) {
	return s.tokens.Verify(token)
}

// Me loads the caller's profile without the password hash.
func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}
