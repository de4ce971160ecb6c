// Package identity implements the AuthProvider port with a static token table.
package identity

import (
	"context"
	"crypto/subtle"
	"sync"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
)

// TokenProvider resolves bearer tokens against a fixed table. A logged out
// token stays rejected until Login is called with it again.
type TokenProvider struct {
	mu      sync.RWMutex
	users   map[string]domain.User
	revoked map[string]bool

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(domain.AuthState)
}

// NewTokenProvider copies users (token -> user).
func NewTokenProvider(users map[string]domain.User) *TokenProvider {
	p := &TokenProvider{
		users:   make(map[string]domain.User, len(users)),
		revoked: map[string]bool{},
		subs:    map[int]func(domain.AuthState){},
	}
	for tok, u := range users {
		if u.BusinessType == "" {
			u.BusinessType = domain.DefaultBusinessType
		}
		p.users[tok] = u
	}
	return p
}

// lookup compares tokens in constant time
func (p *TokenProvider) lookup(token string) (domain.User, bool) {
	if token == "" {
		return domain.User{}, false
	}
	for tok, u := range p.users {
		if subtle.ConstantTimeCompare([]byte(token), []byte(tok)) == 1 {
			return u, true
		}
	}
	return domain.User{}, false
}

func (p *TokenProvider) Login(ctx context.Context, token string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	u, ok := p.lookup(token)
	if ok {
		delete(p.revoked, token)
	}
	p.mu.Unlock()
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	p.publish(domain.AuthState{User: &u, LoggedIn: true})
	return &u, nil
}

func (p *TokenProvider) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	u, ok := p.lookup(token)
	if !ok || p.revoked[token] {
		return nil, domain.ErrUnauthenticated
	}
	return &u, nil
}

func (p *TokenProvider) Logout(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	u, ok := p.lookup(token)
	already := p.revoked[token]
	if ok {
		p.revoked[token] = true
	}
	p.mu.Unlock()
	if !ok || already {
		return domain.ErrUnauthenticated
	}
	p.publish(domain.AuthState{User: &u, LoggedIn: false})
	return nil
}

func (p *TokenProvider) Subscribe(fn func(domain.AuthState)) func() {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, id)
			p.subMu.Unlock()
		})
	}
}

// publish calls subscribers outside the lock so they may call back into p
func (p *TokenProvider) publish(s domain.AuthState) {
	p.subMu.Lock()
	fns := make([]func(domain.AuthState), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}
