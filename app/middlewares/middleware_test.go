package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/utils/renderer"
	"github.com/Rakhulsr/general-equipments/app/utils/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	userID string
}

func (s stubStore) GetUserID(*http.Request) string                             { return s.userID }
func (s stubStore) SetUserID(http.ResponseWriter, *http.Request, string) error { return nil }
func (s stubStore) ClearSession(http.ResponseWriter, *http.Request) error      { return nil }

type stubUsers struct {
	repositories.UserRepositoryImpl
	user *models.AdminUser
	err  error
}

func (s stubUsers) FindByID(context.Context, string) (*models.AdminUser, error) {
	return s.user, s.err
}

func captureState(t *testing.T, store sessions.SessionStore, users repositories.UserRepositoryImpl) sessions.AuthState {
	t.Helper()
	var got sessions.AuthState
	h := AuthStateMiddleware(store, users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = sessions.AuthStateFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	return got
}

func TestAuthStateMiddleware(t *testing.T) {
	admin := &models.AdminUser{ID: "u-1", Name: "Ops"}

	tests := []struct {
		name   string
		store  stubStore
		users  stubUsers
		status sessions.AuthStatus
	}{
		{"no session", stubStore{}, stubUsers{}, sessions.AuthUnauthenticated},
		{"known user", stubStore{userID: "u-1"}, stubUsers{user: admin}, sessions.AuthAuthenticated},
		{"deleted user", stubStore{userID: "u-1"}, stubUsers{}, sessions.AuthUnauthenticated},
		{"lookup failure", stubStore{userID: "u-1"}, stubUsers{err: errors.New("db down")}, sessions.AuthLoading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := captureState(t, tt.store, tt.users)
			assert.Equal(t, tt.status, state.Status)
			if tt.status == sessions.AuthAuthenticated {
				require.NotNil(t, state.User)
				assert.Equal(t, "u-1", state.User.ID)
			}
		})
	}
}

func TestAdminGuard(t *testing.T) {
	rnd := renderer.New("../../templates", true)
	reached := false
	guarded := AdminGuard(rnd)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(state sessions.AuthState) *httptest.ResponseRecorder {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/admin/leads", nil)
		req = req.WithContext(sessions.WithAuthState(req.Context(), state))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		return rec
	}

	rec := serve(sessions.Authenticated(&models.AdminUser{ID: "u-1"}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)

	rec = serve(sessions.Unauthenticated())
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.False(t, reached)

	rec = serve(sessions.AuthState{})
	assert.Contains(t, rec.Body.String(), "Checking your session")
	assert.Equal(t, 1, strings.Count(rec.Body.String(), "<!DOCTYPE"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.False(t, reached)
}

func TestCORS(t *testing.T) {
	called := false
	h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/submit-lead", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization, X-Client-Info, Apikey", rec.Header().Get("Access-Control-Allow-Headers"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/submit-lead", strings.NewReader("{}")))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodOverride(t *testing.T) {
	var method string
	h := MethodOverrideMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
	}))

	form := url.Values{"_method": {"delete"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/products/1/delete", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodDelete, method)

	req = httptest.NewRequest(http.MethodPost, "/submit-lead", strings.NewReader(`{"_method":"DELETE"}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, http.MethodPost, method)
}
