package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"appointment-api/internal/apperror"
	"appointment-api/internal/auth"
	"appointment-api/internal/middleware"
	"appointment-api/internal/model"
)

const testSecret = "test-secret"

type fakeResolver struct {
	users map[string]*model.User
}

func (f *fakeResolver) UserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user not found")
	}
	cp := *u
	return &cp, nil
}

func reject(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}

func guarded(resolver middleware.UserResolver) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.Authenticate(testSecret, resolver, reject)(next)
}

func do(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/users/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticateMissingHeader(t *testing.T) {
	h := guarded(&fakeResolver{users: map[string]*model.User{}})
	if rec := do(h, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	h := guarded(&fakeResolver{users: map[string]*model.User{}})
	for _, header := range []string{"Bearer", "Bearer ", "Token abc", "abc"} {
		if rec := do(h, header); rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuthenticateBadToken(t *testing.T) {
	h := guarded(&fakeResolver{users: map[string]*model.User{}})
	if rec := do(h, "Bearer not.a.token"); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"},
	}}
	h := guarded(resolver)
	tok, err := auth.MakeToken("u1", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if rec := do(h, "Bearer "+tok); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthenticateUserGone(t *testing.T) {
	h := guarded(&fakeResolver{users: map[string]*model.User{}})
	tok, err := auth.MakeToken("missing", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	if rec := do(h, "Bearer "+tok); rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 when subject no longer exists, got %d", rec.Code)
	}
}

func TestAuthenticateSuccessStripsHash(t *testing.T) {
	resolver := &fakeResolver{users: map[string]*model.User{
		"u1": {ID: "u1", Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"},
	}}

	var got *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := middleware.Authenticate(testSecret, resolver, reject)(next)

	tok, err := auth.MakeToken("u1", testSecret, time.Minute)
	if err != nil {
		t.Fatalf("make token: %v", err)
	}
	rec := do(h, "Bearer "+tok)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("expected user u1 in context, got %+v", got)
	}
	if got.PasswordHash != "" {
		t.Error("password hash not stripped")
	}
}
