package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"acme_reviews/internal/config"
	"acme_reviews/internal/models"
	"acme_reviews/internal/repository"
	"acme_reviews/internal/repository/db"
	"acme_reviews/internal/service"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newE2ERouter wires the real stack over a temp SQLite file and returns the
// router plus one seeded item.
func newE2ERouter(t *testing.T) (http.Handler, models.Item) {
	t.Helper()
	ctx := context.Background()

	conn, err := db.Open(ctx, config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "e2e.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	svc := service.NewService(repository.NewRepository(conn), service.Options{
		JWTSecret:  "e2e-secret-0123456789abcdef",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost,
	})
	_, err = svc.SeedIfEmpty(ctx, []models.Item{{Name: "Item X", Description: "the thing"}})
	require.NoError(t, err)
	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	return newTestRouter(svc), items[0]
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func registerUser(t *testing.T, r http.Handler, username, password string) registerResponse {
	t.Helper()
	w := do(r, http.MethodPost, "/api/auth/register",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[registerResponse](t, w.Body.Bytes())
}

func TestEndToEnd_ReviewOwnership(t *testing.T) {
	r, item := newE2ERouter(t)
	reviewsPath := "/api/items/" + item.ID + "/reviews"

	alice := registerUser(t, r, "alice", "pw123")
	bob := registerUser(t, r, "bob", "hunter2")

	// login returns a token usable on protected routes
	w := do(r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"pw123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	aliceTok := decode[tokenResponse](t, w.Body.Bytes()).Token
	require.NotEmpty(t, aliceTok)

	w = do(r, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodPost, reviewsPath, `{"rating":5,"review":"great"}`, authHeader(aliceTok))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	rv := decode[models.Review](t, w.Body.Bytes())
	require.Equal(t, alice.User.ID, rv.UserID)
	require.Equal(t, item.ID, rv.ItemID)

	w = do(r, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]models.Review](t, w.Body.Bytes())
	require.Len(t, list, 1)
	require.Equal(t, rv.ID, list[0].ID)

	// bob cannot touch alice's review, under either path id
	for _, owner := range []string{bob.User.ID, alice.User.ID} {
		w = do(r, http.MethodDelete, "/api/users/"+owner+"/reviews/"+rv.ID, "", authHeader(bob.Token))
		require.Equal(t, http.StatusUnauthorized, w.Code)
		w = do(r, http.MethodPut, "/api/users/"+owner+"/reviews/"+rv.ID, `{"rating":1,"review":"bad"}`, authHeader(bob.Token))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w = do(r, http.MethodGet, reviewsPath+"/"+rv.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	still := decode[models.Review](t, w.Body.Bytes())
	require.Equal(t, 5, still.Rating)
	require.Equal(t, "great", still.Review)

	// bob may comment; the comment goes away with the review
	w = do(r, http.MethodPost, reviewsPath+"/"+rv.ID+"/comments", `{"comment":"agreed"}`, authHeader(bob.Token))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(r, http.MethodDelete, "/api/users/"+alice.User.ID+"/reviews/"+rv.ID, "", authHeader(aliceTok))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodGet, reviewsPath, "", nil)
	require.Empty(t, decode[[]models.Review](t, w.Body.Bytes()))

	w = do(r, http.MethodGet, "/api/comments/me", "", authHeader(bob.Token))
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, decode[[]models.Comment](t, w.Body.Bytes()))

	// second delete reports not found and changes nothing
	w = do(r, http.MethodDelete, "/api/users/"+alice.User.ID+"/reviews/"+rv.ID, "", authHeader(aliceTok))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEndToEnd_ValidationAndConflicts(t *testing.T) {
	r, item := newE2ERouter(t)
	alice := registerUser(t, r, "alice", "pw123")

	w := do(r, http.MethodPost, "/api/auth/register", `{"username":"alice","password":"other"}`, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	w = do(r, http.MethodPost, "/api/auth/register", `{"username":"this-name-is-far-too-long","password":"x"}`, nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	for _, body := range []string{`{"rating":0}`, `{"rating":6}`, `{"rating":-3}`, `{"review":"no rating"}`} {
		w = do(r, http.MethodPost, "/api/items/"+item.ID+"/reviews", body, authHeader(alice.Token))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, body)
	}
	w = do(r, http.MethodGet, "/api/reviews/me", "", authHeader(alice.Token))
	require.Empty(t, decode[[]models.Review](t, w.Body.Bytes()), "rejected ratings must not be stored")

	w = do(r, http.MethodPost, "/api/items/does-not-exist/reviews", `{"rating":3}`, authHeader(alice.Token))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/api/auth/me", "", authHeader(alice.Token))
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.User](t, w.Body.Bytes())
	require.Equal(t, "alice", me.Username)

	w = do(r, http.MethodGet, "/api/users", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotContains(t, w.Body.String(), "$2a$", "bcrypt hashes must never be served")
}
