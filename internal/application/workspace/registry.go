package workspace

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
)

// Registry keeps one Controller per user and forgets it on logout.
type Registry struct {
	svc    Analyzer
	dims   radar.Dimensions
	logger *zap.Logger

	mu          sync.Mutex
	controllers map[string]*Controller
	// logouts counts logout events per user
	logouts     map[string]uint64
	unsubscribe func()
}

func NewRegistry(svc Analyzer, auth identity.AuthProvider, dims radar.Dimensions, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{svc: svc, dims: dims, logger: logger, controllers: map[string]*Controller{}, logouts: map[string]uint64{}}
	if auth != nil {
		r.unsubscribe = auth.Subscribe(r.onAuthChange)
	}
	return r
}

func (r *Registry) onAuthChange(s identity.AuthState) {
	if s.LoggedIn || s.User == nil {
		return
	}
	r.mu.Lock()
	delete(r.controllers, s.User.ID)
	r.logouts[s.User.ID]++
	r.mu.Unlock()
	r.logger.Info("workspace discarded", zap.String("user_id", s.User.ID))
}

// For returns the user's controller, creating it with a fresh history.
func (r *Registry) For(ctx context.Context, user *identity.User) (*Controller, error) {
	if user == nil {
		return nil, identity.ErrUnauthenticated
	}
	r.mu.Lock()
	c, ok := r.controllers[user.ID]
	gen := r.logouts[user.ID]
	r.mu.Unlock()
	if ok {
		return c, nil
	}

	c = NewController(r.svc, user, r.dims)
	if _, err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// logged out while the history was loading
	if r.logouts[user.ID] != gen {
		return nil, identity.ErrUnauthenticated
	}
	// lost a race with a concurrent first request
	if existing, ok := r.controllers[user.ID]; ok {
		return existing, nil
	}
	r.controllers[user.ID] = c
	return c, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Close stops listening for auth changes.
func (r *Registry) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}
