// Package memory is an in-process Repository for development and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

// Repository keeps analyses and blind spots in maps guarded by a RWMutex.
// Values are copied on the way in and out.
type Repository struct {
	mu         sync.RWMutex
	analyses   map[domain.AnalysisID]*domain.Analysis
	blindSpots map[domain.AnalysisID][]*domain.BlindSpot
}

func NewRepository() *Repository {
	return &Repository{
		analyses:   make(map[domain.AnalysisID]*domain.Analysis),
		blindSpots: make(map[domain.AnalysisID][]*domain.BlindSpot),
	}
}

func copyAnalysis(a *domain.Analysis) *domain.Analysis {
	c := *a
	if a.Market != nil {
		m := *a.Market
		c.Market = &m
	}
	return &c
}

func copySpot(b *domain.BlindSpot) *domain.BlindSpot {
	c := *b
	return &c
}

func (r *Repository) Create(ctx context.Context, a *domain.Analysis, spots []*domain.BlindSpot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]*domain.BlindSpot, 0, len(spots))
	for _, b := range spots {
		c := copySpot(b)
		c.AnalysisID = a.ID
		stored = append(stored, c)
	}
	r.analyses[a.ID] = copyAnalysis(a)
	r.blindSpots[a.ID] = stored
	return nil
}

// owned returns the analysis when it exists and belongs to userID. Caller holds the lock.
func (r *Repository) owned(userID string, id domain.AnalysisID) (*domain.Analysis, error) {
	a, ok := r.analyses[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (r *Repository) Get(ctx context.Context, userID string, id domain.AnalysisID) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return copyAnalysis(a), nil
}

func (r *Repository) List(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Analysis, 0)
	for _, a := range r.analyses {
		if a.UserID == userID {
			out = append(out, copyAnalysis(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repository) BlindSpots(ctx context.Context, userID string, id domain.AnalysisID) ([]*domain.BlindSpot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, err := r.owned(userID, id); err != nil {
		return nil, err
	}
	spots := r.blindSpots[id]
	out := make([]*domain.BlindSpot, 0, len(spots))
	for _, b := range spots {
		out = append(out, copySpot(b))
	}
	return out, nil
}

func (r *Repository) Delete(ctx context.Context, userID string, id domain.AnalysisID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.owned(userID, id); err != nil {
		return err
	}
	delete(r.analyses, id)
	delete(r.blindSpots, id)
	return nil
}

// Count reports stored rows.
func (r *Repository) Count() (analyses, blindSpots int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, spots := range r.blindSpots {
		blindSpots += len(spots)
	}
	return len(r.analyses), blindSpots
}
