package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

const maxItemNameLen = 100

type CatalogService struct {
	items repository.Items
}

func NewCatalogService(items repository.Items) *CatalogService {
	return &CatalogService{items: items}
}

func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.items.List(ctx)
}

func (s *CatalogService) GetItem(ctx context.Context, id string) (models.Item, error) {
	return s.items.GetByID(ctx, id)
}

// CreateItem adds a catalog entry. Name is required.
func (s *CatalogService) CreateItem(ctx context.Context, name, description string) (models.Item, error) {
	name = cleanText(name)
	if name == "" {
		return models.Item{}, ar.Validationf("name is required")
	}
	if utf8.RuneCountInString(name) > maxItemNameLen {
		return models.Item{}, ar.Validationf("name must be at most %d characters", maxItemNameLen)
	}
	return s.items.Create(ctx, name, cleanText(description))
}

// SeedIfEmpty inserts seed only when the catalog has no items yet and
// returns how many were added.
func (s *CatalogService) SeedIfEmpty(ctx context.Context, seed []models.Item) (int, error) {
	n, err := s.items.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	added := 0
	for _, it := range seed {
		if _, err := s.CreateItem(ctx, it.Name, it.Description); err != nil {
			return added, fmt.Errorf("seed item %q: %w", it.Name, err)
		}
		added++
	}
	return added, nil
}
