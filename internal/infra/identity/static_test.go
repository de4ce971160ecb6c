package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
)

func newProvider() *TokenProvider {
	return NewTokenProvider(map[string]domain.User{
		"tok-a": {ID: "u-a", Email: "a@example.com"},
		"tok-b": {ID: "u-b", Email: "b@example.com", BusinessType: "Casino"},
	})
}

func TestCurrentUser(t *testing.T) {
	p := newProvider()
	ctx := context.Background()

	u, err := p.CurrentUser(ctx, "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "u-a", u.ID)
	assert.Equal(t, domain.DefaultBusinessType, u.BusinessType)

	u, err = p.CurrentUser(ctx, "tok-b")
	require.NoError(t, err)
	assert.Equal(t, "Casino", u.BusinessType)

	_, err = p.CurrentUser(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = p.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestLogoutRevokesUntilLogin(t *testing.T) {
	p := newProvider()
	ctx := context.Background()

	var states []domain.AuthState
	unsubscribe := p.Subscribe(func(s domain.AuthState) { states = append(states, s) })

	require.NoError(t, p.Logout(ctx, "tok-a"))
	_, err := p.CurrentUser(ctx, "tok-a")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.ErrorIs(t, p.Logout(ctx, "tok-a"), domain.ErrUnauthenticated)

	// other users unaffected
	_, err = p.CurrentUser(ctx, "tok-b")
	assert.NoError(t, err)

	u, err := p.Login(ctx, "tok-a")
	require.NoError(t, err)
	assert.Equal(t, "u-a", u.ID)
	_, err = p.CurrentUser(ctx, "tok-a")
	assert.NoError(t, err)

	require.Len(t, states, 2)
	assert.False(t, states[0].LoggedIn)
	assert.Equal(t, "u-a", states[0].User.ID)
	assert.True(t, states[1].LoggedIn)

	unsubscribe()
	unsubscribe()
	require.NoError(t, p.Logout(ctx, "tok-a"))
	assert.Len(t, states, 2)
}

func TestLoginUnknownToken(t *testing.T) {
	p := newProvider()
	_, err := p.Login(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
