package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	ar "acme_reviews"
	"acme_reviews/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, username, password_hash FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, username, password_hash FROM users WHERE id = ?`
	selectUsersSQL          = `SELECT id, username FROM users ORDER BY username`
)

// Create inserts a new user with a generated id. A taken username yields ErrConflict.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string) (models.User, error) {
	u := models.User{ID: uuid.NewString(), Username: username, PasswordHash: passwordHash}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertUserSQL), u.ID, u.Username, u.PasswordHash); err != nil {
		return models.User{}, wrapWriteErr(err, "username", fmt.Sprintf("insert user %q", username))
	}
	return u, nil
}

// GetByUsername fetches a user by username, hash included.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(selectUserByUsernameSQL), username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ar.NotFoundf("user %q", username)
		}
		return models.User{}, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByID fetches a user by id, hash included.
func (r *UserRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.db.Rebind(selectUserByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ar.NotFoundf("user %s", id)
		}
		return models.User{}, fmt.Errorf("select user %s: %w", id, err)
	}
	return u, nil
}

// List returns every user without password hashes.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := r.db.SelectContext(ctx, &users, selectUsersSQL); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}
