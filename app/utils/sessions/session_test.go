package sessions

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSessionStore_RoundTrip(t *testing.T) {
	store := NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))

	rec := httptest.NewRecorder()
	require.NoError(t, store.SetUserID(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil), "u-1"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, "u-1", store.GetUserID(req))

	rec = httptest.NewRecorder()
	require.NoError(t, store.ClearSession(rec, req))
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.True(t, cleared[0].MaxAge < 0)
}

func TestCookieSessionStore_ForeignCookie(t *testing.T) {
	issuer := NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))
	reader := NewCookieSessionStore(false, securecookie.GenerateRandomKey(64), securecookie.GenerateRandomKey(32))

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.SetUserID(rec, httptest.NewRequest(http.MethodPost, "/", nil), "u-1"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	assert.Equal(t, "", reader.GetUserID(req))
}

func TestAuthState(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	state := AuthStateFrom(req.Context())
	assert.Equal(t, AuthLoading, state.Status)
	assert.False(t, state.IsAuthenticated())

	ctx := WithAuthState(req.Context(), Authenticated(&models.AdminUser{ID: "u-1"}))
	state = AuthStateFrom(ctx)
	assert.True(t, state.IsAuthenticated())
	assert.Equal(t, "authenticated", state.Status.String())

	assert.False(t, Unauthenticated().IsAuthenticated())
	assert.Equal(t, "unauthenticated", Unauthenticated().Status.String())
}
