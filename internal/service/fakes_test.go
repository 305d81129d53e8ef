package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
)

// memStore is an in-memory stand-in for the four repositories.
type memStore struct {
	mu       sync.Mutex
	seq      int
	users    map[string]models.User
	items    map[string]models.Item
	reviews  map[string]models.Review
	comments map[string]models.Comment

	reviewWrites int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]models.User{},
		items:    map[string]models.Item{},
		reviews:  map[string]models.Review{},
		comments: map[string]models.Comment{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) repos() *repository.Repository {
	return &repository.Repository{
		Users:    memUsers{m},
		Items:    memItems{m},
		Reviews:  memReviews{m},
		Comments: memComments{m},
	}
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, username, hash string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			return models.User{}, ar.Errorf(ar.ErrConflict, "username already exists")
		}
	}
	u := models.User{ID: r.m.nextID("u"), Username: username, PasswordHash: hash}
	r.m.users[u.ID] = u
	return u, nil
}

func (r memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ar.NotFoundf("user %q", username)
}

func (r memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return models.User{}, ar.NotFoundf("user %s", id)
	}
	return u, nil
}

func (r memUsers) List(_ context.Context) ([]models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.User, 0, len(r.m.users))
	for _, u := range r.m.users {
		out = append(out, models.User{ID: u.ID, Username: u.Username})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

type memItems struct{ m *memStore }

func (r memItems) Create(_ context.Context, name, description string) (models.Item, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	it := models.Item{ID: r.m.nextID("i"), Name: name, Description: description}
	r.m.items[it.ID] = it
	return it, nil
}

func (r memItems) GetByID(_ context.Context, id string) (models.Item, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	it, ok := r.m.items[id]
	if !ok {
		return models.Item{}, ar.NotFoundf("item %s", id)
	}
	return it, nil
}

func (r memItems) List(_ context.Context) ([]models.Item, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Item, 0, len(r.m.items))
	for _, it := range r.m.items {
		out = append(out, it)
	}
	return out, nil
}

func (r memItems) Count(_ context.Context) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	return len(r.m.items), nil
}

type memReviews struct{ m *memStore }

func (r memReviews) Create(_ context.Context, rv models.Review) (models.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.reviewWrites++
	rv.ID = r.m.nextID("r")
	rv.CreatedAt = time.Now().UTC()
	rv.UpdatedAt = rv.CreatedAt
	r.m.reviews[rv.ID] = rv
	return rv, nil
}

func (r memReviews) GetByID(_ context.Context, id string) (models.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rv, ok := r.m.reviews[id]
	if !ok {
		return models.Review{}, ar.NotFoundf("review %s", id)
	}
	return rv, nil
}

func (r memReviews) ListByItem(_ context.Context, itemID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.ItemID == itemID }), nil
}

func (r memReviews) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.UserID == userID }), nil
}

func (r memReviews) filter(keep func(models.Review) bool) []models.Review {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rv := range r.m.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	return out
}

func (r memReviews) Update(_ context.Context, id string, rating int, text string) (models.Review, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rv, ok := r.m.reviews[id]
	if !ok {
		return models.Review{}, ar.NotFoundf("review %s", id)
	}
	r.m.reviewWrites++
	rv.Rating, rv.Review, rv.UpdatedAt = rating, text, time.Now().UTC()
	r.m.reviews[id] = rv
	return rv, nil
}

func (r memReviews) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.reviews, id)
	for cid, c := range r.m.comments {
		if c.ReviewID == id {
			delete(r.m.comments, cid)
		}
	}
	return nil
}

type memComments struct{ m *memStore }

func (r memComments) Create(_ context.Context, c models.Comment) (models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c.ID = r.m.nextID("c")
	c.CreatedAt = time.Now().UTC()
	c.UpdatedAt = c.CreatedAt
	r.m.comments[c.ID] = c
	return c, nil
}

func (r memComments) GetByID(_ context.Context, id string) (models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return models.Comment{}, ar.NotFoundf("comment %s", id)
	}
	return c, nil
}

func (r memComments) ListByReview(_ context.Context, reviewID string) ([]models.Comment, error) {
	return r.filter(func(c models.Comment) bool { return c.ReviewID == reviewID }), nil
}

func (r memComments) ListByUser(_ context.Context, userID string) ([]models.Comment, error) {
	return r.filter(func(c models.Comment) bool { return c.UserID == userID }), nil
}

func (r memComments) filter(keep func(models.Comment) bool) []models.Comment {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]models.Comment, 0)
	for _, c := range r.m.comments {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func (r memComments) Update(_ context.Context, id string, text string) (models.Comment, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.comments[id]
	if !ok {
		return models.Comment{}, ar.NotFoundf("comment %s", id)
	}
	c.Comment, c.UpdatedAt = text, time.Now().UTC()
	r.m.comments[id] = c
	return c, nil
}

func (r memComments) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.comments, id)
	return nil
}

const testSecret = "test-secret-at-least-16-bytes"

// newTestService builds a Service over a fresh memStore with cheap bcrypt.
func newTestService() (*Service, *memStore) {
	store := newMemStore()
	svc := NewService(store.repos(), Options{
		JWTSecret:  testSecret,
		TokenTTL:   time.Hour,
		BcryptCost: 4, // bcrypt.MinCost
	})
	return svc, store
}
