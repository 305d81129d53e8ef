package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ar "acme_reviews"
	"acme_reviews/internal/models"
	"acme_reviews/internal/service"
)

func jsonBody(s string) io.Reader { return bytes.NewBufferString(s) }

// do sends a request through r and returns the recorder.
func do(r http.Handler, method, path, body string, hdr http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = jsonBody(body)
	}
	req := httptest.NewRequest(method, path, rd)
	for k, v := range hdr {
		req.Header[k] = v
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal error body %q: %v", w.Body.String(), err)
	}
	return out.Error
}

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	auth := &mockAuth{
		signUpUser:  models.User{ID: "u-42", Username: "u", PasswordHash: "secret-hash"},
		signUpToken: "tok-new",
		signInToken: "tok123",
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	// register success
	w := do(r, http.MethodPost, "/api/auth/register", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var reg registerResponse
	_ = json.Unmarshal(w.Body.Bytes(), &reg)
	if reg.Token != "tok-new" || reg.User.ID != "u-42" {
		t.Fatalf("unexpected register response: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret-hash") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("register leaked password material: %s", w.Body.String())
	}
	if auth.lastSignUpUsername != "u" || auth.lastSignUpPassword != "p" {
		t.Fatalf("SignUp got %q/%q", auth.lastSignUpUsername, auth.lastSignUpPassword)
	}

	// login success
	w = do(r, http.MethodPost, "/api/auth/login", `{"username":"u","password":"p"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var tok tokenResponse
	_ = json.Unmarshal(w.Body.Bytes(), &tok)
	if tok.Token != "tok123" {
		t.Fatalf("expected token tok123, got %v", tok.Token)
	}

	// login invalid body → 400
	w = do(r, http.MethodPost, "/api/auth/login", `{"username":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		auth     *mockAuth
		wantCode int
		wantMsg  string
	}{
		{
			name:     "duplicate username",
			path:     "/api/auth/register",
			auth:     &mockAuth{signUpErr: ar.Errorf(ar.ErrConflict, "username already exists")},
			wantCode: http.StatusConflict,
			wantMsg:  "username already exists",
		},
		{
			name:     "invalid username",
			path:     "/api/auth/register",
			auth:     &mockAuth{signUpErr: ar.Validationf("username must be at most 20 characters")},
			wantCode: http.StatusUnprocessableEntity,
			wantMsg:  "username must be at most 20 characters",
		},
		{
			name:     "storage failure hides detail",
			path:     "/api/auth/register",
			auth:     &mockAuth{signUpErr: io.ErrUnexpectedEOF},
			wantCode: http.StatusInternalServerError,
			wantMsg:  msgInternal,
		},
		{
			name:     "wrong password",
			path:     "/api/auth/login",
			auth:     &mockAuth{signInErr: ar.ErrUnauthorized},
			wantCode: http.StatusUnauthorized,
			wantMsg:  msgNotAuthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: tt.auth})
			w := do(r, http.MethodPost, tt.path, `{"username":"alice","password":"pw123"}`, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tt.wantCode, w.Body.String())
			}
			if got := errorMessage(t, w); got != tt.wantMsg {
				t.Fatalf("error=%q want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestAuthHandlers_Me(t *testing.T) {
	auth := &mockAuth{
		tokens: map[string]string{"tok": "u-1"},
		meUser: models.User{ID: "u-1", Username: "alice"},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := do(r, http.MethodGet, "/api/auth/me", "", authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d body=%s", w.Code, w.Body.String())
	}
	var u map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &u)
	if u["id"] != "u-1" || u["username"] != "alice" || len(u) != 2 {
		t.Fatalf("unexpected me body: %v", u)
	}

	if w := do(r, http.MethodGet, "/api/auth/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("me without token: %d", w.Code)
	}

	auth.meErr = ar.NotFoundf("user u-1")
	if w := do(r, http.MethodGet, "/api/auth/me", "", authHeader("tok")); w.Code != http.StatusUnauthorized {
		t.Fatalf("me for vanished user: got %d, want 401", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := do(r, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), statusOK) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}
