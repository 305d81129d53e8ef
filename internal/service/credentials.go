package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// MaxUsernameLen matches the users.username column width.
const MaxUsernameLen = 20

// CredentialStore registers users and verifies their passwords. Only bcrypt
// hashes are persisted.
type CredentialStore struct {
	users repository.Users
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialStore(users repository.Users, cost int) *CredentialStore {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{users: users, cost: cost}
}

// Register validates the credentials, hashes the password and stores the user.
// The returned user carries no hash.
func (s *CredentialStore) Register(ctx context.Context, username, password string) (models.User, error) {
	username, err := normalizeUsername(username)
	if err != nil {
		return models.User{}, err
	}
	if strings.TrimSpace(password) == "" {
		return models.User{}, ar.Validationf("password is required")
	}
	// bcrypt ignores everything past 72 bytes; refuse rather than truncate silently.
	if len(password) > 72 {
		return models.User{}, ar.Validationf("password must be at most 72 bytes")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Verify returns the user when password matches. Unknown usernames and wrong
// passwords both yield ErrUnauthorized, and both pay for one bcrypt comparison.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	switch {
	case errors.Is(err, ar.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return models.User{}, ar.ErrUnauthorized
	case err != nil:
		return models.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ar.ErrUnauthorized
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *CredentialStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	n := utf8.RuneCountInString(username)
	if n == 0 {
		return "", ar.Validationf("username is required")
	}
	if n > MaxUsernameLen {
		return "", ar.Validationf("username must be at most %d characters", MaxUsernameLen)
	}
	return username, nil
}
