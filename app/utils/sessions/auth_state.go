package sessions

import (
	"context"

	"github.com/Rakhulsr/general-equipments/app/models"
)

type AuthStatus int

const (
	// AuthLoading is the zero value: the identity has not been resolved yet,
	// or resolving it failed for a reason other than a missing session.
	AuthLoading AuthStatus = iota
	AuthAuthenticated
	AuthUnauthenticated
)

func (s AuthStatus) String() string {
	switch s {
	case AuthAuthenticated:
		return "authenticated"
	case AuthUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

type AuthState struct {
	Status AuthStatus
	User   *models.AdminUser
}

func Authenticated(user *models.AdminUser) AuthState {
	return AuthState{Status: AuthAuthenticated, User: user}
}

func Unauthenticated() AuthState {
	return AuthState{Status: AuthUnauthenticated}
}

func (a AuthState) IsAuthenticated() bool {
	return a.Status == AuthAuthenticated && a.User != nil
}

type authStateKey struct{}

func WithAuthState(ctx context.Context, state AuthState) context.Context {
	return context.WithValue(ctx, authStateKey{}, state)
}

// AuthStateFrom returns the zero (loading) state when nothing resolved the
// identity for this request.
func AuthStateFrom(ctx context.Context) AuthState {
	if state, ok := ctx.Value(authStateKey{}).(AuthState); ok {
		return state
	}
	return AuthState{}
}
