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

type ItemRepository struct {
	db *sqlx.DB
}

func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

var _ Items = (*ItemRepository)(nil)

const (
	insertItemSQL     = `INSERT INTO items (id, name, description) VALUES (?, ?, ?)`
	selectItemByIDSQL = `SELECT id, name, description FROM items WHERE id = ?`
	selectItemsSQL    = `SELECT id, name, description FROM items ORDER BY name`
	countItemsSQL     = `SELECT COUNT(*) FROM items`
)

func (r *ItemRepository) Create(ctx context.Context, name, description string) (models.Item, error) {
	it := models.Item{ID: uuid.NewString(), Name: name, Description: description}
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(insertItemSQL), it.ID, it.Name, it.Description); err != nil {
		return models.Item{}, fmt.Errorf("insert item %q: %w", name, err)
	}
	return it, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (models.Item, error) {
	var it models.Item
	if err := r.db.GetContext(ctx, &it, r.db.Rebind(selectItemByIDSQL), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ar.NotFoundf("item %s", id)
		}
		return models.Item{}, fmt.Errorf("select item %s: %w", id, err)
	}
	return it, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	items := make([]models.Item, 0)
	if err := r.db.SelectContext(ctx, &items, selectItemsSQL); err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, countItemsSQL); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
