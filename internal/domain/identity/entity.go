package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when no valid user is attached to a request.
var ErrUnauthenticated = errors.New("unauthenticated")

// DefaultBusinessType is shown when the profile carries none.
const DefaultBusinessType = "General Enterprise"

// User as reported by the identity provider.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name,omitempty"`
	BusinessType string `json:"business_type"`
}

// Name prefers the display name over the email.
func (u User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Email
}

// AuthState is delivered to subscribers on every login or logout.
type AuthState struct {
	User     *User
	LoggedIn bool
}

// AuthProvider port (interface untuk identity provider)
type AuthProvider interface {
	// Login exchanges a token for a user and marks the session active.
	Login(ctx context.Context, token string) (*User, error)
	// CurrentUser resolves an active session token.
	CurrentUser(ctx context.Context, token string) (*User, error)
	Logout(ctx context.Context, token string) error
	// Subscribe registers fn for auth changes and returns the unsubscribe func.
	Subscribe(fn func(AuthState)) func()
}

type ctxKey struct{}

func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFromContext returns the authenticated user or ErrUnauthenticated.
func UserFromContext(ctx context.Context) (*User, error) {
	if u, ok := ctx.Value(ctxKey{}).(*User); ok && u != nil {
		return u, nil
	}
	return nil, ErrUnauthenticated
}
