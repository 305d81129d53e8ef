package handlers

import (
	"context"
	"net/http"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

// mockAuth accepts exactly the tokens listed in tokens (token -> user id).
type mockAuth struct {
	signUpUser  models.User
	signUpToken string
	signUpErr   error
	signInToken string
	signInErr   error
	meUser      models.User
	meErr       error
	tokens      map[string]string

	lastSignUpUsername string
	lastSignUpPassword string
	lastSignInUsername string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (models.User, string, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpUser, m.signUpToken, m.signUpErr
}

func (m *mockAuth) SignIn(_ context.Context, username, _ string) (string, error) {
	m.lastSignInUsername = username
	return m.signInToken, m.signInErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	if uid, ok := m.tokens[token]; ok {
		return uid, nil
	}
	return "", ar.ErrUnauthorized
}

func (m *mockAuth) Me(_ context.Context, _ string) (models.User, error) {
	return m.meUser, m.meErr
}

type mockCatalog struct {
	items     []models.Item
	item      models.Item
	err       error
	lastName  string
	seedCalls int
}

func (m *mockCatalog) ListItems(context.Context) ([]models.Item, error) { return m.items, m.err }

func (m *mockCatalog) GetItem(context.Context, string) (models.Item, error) { return m.item, m.err }

func (m *mockCatalog) CreateItem(_ context.Context, name, _ string) (models.Item, error) {
	m.lastName = name
	return m.item, m.err
}

func (m *mockCatalog) SeedIfEmpty(context.Context, []models.Item) (int, error) {
	m.seedCalls++
	return 0, m.err
}

// reviewCall records the ids a review mutation was invoked with.
type reviewCall struct {
	actorID, pathUserID, reviewID string
	in                            service.ReviewInput
}

type mockReviews struct {
	list    []models.Review
	review  models.Review
	err     error
	calls   []reviewCall
	itemIDs []string
}

func (m *mockReviews) ListReviews(_ context.Context, itemID string) ([]models.Review, error) {
	m.itemIDs = append(m.itemIDs, itemID)
	return m.list, m.err
}

func (m *mockReviews) GetReview(_ context.Context, itemID, _ string) (models.Review, error) {
	m.itemIDs = append(m.itemIDs, itemID)
	return m.review, m.err
}

func (m *mockReviews) CreateReview(_ context.Context, actorID, itemID string, in service.ReviewInput) (models.Review, error) {
	m.itemIDs = append(m.itemIDs, itemID)
	m.calls = append(m.calls, reviewCall{actorID: actorID, in: in})
	return m.review, m.err
}

func (m *mockReviews) UpdateReview(_ context.Context, actorID, pathUserID, reviewID string, in service.ReviewInput) (models.Review, error) {
	m.calls = append(m.calls, reviewCall{actorID, pathUserID, reviewID, in})
	return m.review, m.err
}

func (m *mockReviews) DeleteReview(_ context.Context, actorID, pathUserID, reviewID string) error {
	m.calls = append(m.calls, reviewCall{actorID: actorID, pathUserID: pathUserID, reviewID: reviewID})
	return m.err
}

func (m *mockReviews) ListUserReviews(_ context.Context, userID string) ([]models.Review, error) {
	m.calls = append(m.calls, reviewCall{actorID: userID})
	return m.list, m.err
}

type mockComments struct {
	list        []models.Comment
	comment     models.Comment
	err         error
	lastActor   string
	lastPath    string
	lastID      string
	lastComment string
}

func (m *mockComments) ListComments(context.Context, string, string) ([]models.Comment, error) {
	return m.list, m.err
}

func (m *mockComments) CreateComment(_ context.Context, actorID, _, reviewID, text string) (models.Comment, error) {
	m.lastActor, m.lastID, m.lastComment = actorID, reviewID, text
	return m.comment, m.err
}

func (m *mockComments) UpdateComment(_ context.Context, actorID, pathUserID, commentID, text string) (models.Comment, error) {
	m.lastActor, m.lastPath, m.lastID, m.lastComment = actorID, pathUserID, commentID, text
	return m.comment, m.err
}

func (m *mockComments) DeleteComment(_ context.Context, actorID, pathUserID, commentID string) error {
	m.lastActor, m.lastPath, m.lastID = actorID, pathUserID, commentID
	return m.err
}

func (m *mockComments) ListUserComments(_ context.Context, userID string) ([]models.Comment, error) {
	m.lastActor = userID
	return m.list, m.err
}

type mockUsers struct {
	users []models.User
	err   error
}

func (m *mockUsers) ListUsers(context.Context) ([]models.User, error) { return m.users, m.err }

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service, opts ...Option) *gin.Engine {
	h := NewHandler(s, nil, opts...)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
