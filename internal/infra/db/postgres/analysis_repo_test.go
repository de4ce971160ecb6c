package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/migrations"
)

// openTestRepo needs a live database: set POSTGRES_URL to run.
func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		t.Skip("POSTGRES_URL not set, skipping postgres integration tests")
	}
	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(ctx, db, "postgres"))
	return NewRepository(db)
}

func newAnalysis(user string, at time.Time) (*domain.Analysis, []*domain.BlindSpot) {
	a := &domain.Analysis{
		ID:             domain.AnalysisID(uuid.NewString()),
		UserID:         user,
		Industry:       "Software Development",
		Input:          "payments api",
		ComplianceMode: true,
		SecurityMode:   true,
		CreatedAt:      at.UTC().Truncate(time.Millisecond),
	}
	spots := domain.SelectTemplates("software-dev", true, true, a.Industry)
	for _, b := range spots {
		b.ID = domain.BlindSpotID(uuid.NewString())
		b.AnalysisID = a.ID
	}
	return a, spots
}

func TestRepositoryRoundTrip(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	user := "it-" + uuid.NewString()

	older, olderSpots := newAnalysis(user, time.Now().Add(-time.Minute))
	newer, newerSpots := newAnalysis(user, time.Now())
	require.NoError(t, r.Create(ctx, older, olderSpots))
	require.NoError(t, r.Create(ctx, newer, newerSpots))

	list, err := r.List(ctx, user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.True(t, list[0].ComplianceMode)
	assert.Nil(t, list[0].Market)

	spots, err := r.BlindSpots(ctx, user, newer.ID)
	require.NoError(t, err)
	require.Len(t, spots, len(newerSpots))
	for i := range spots {
		assert.Equal(t, newerSpots[i].ID, spots[i].ID)
		assert.Equal(t, newerSpots[i].Coordinates, spots[i].Coordinates)
		assert.Equal(t, newerSpots[i].IndustrySpecific, spots[i].IndustrySpecific)
	}
}

func TestRepositoryOwnershipAndDelete(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	user := "it-" + uuid.NewString()

	a, spots := newAnalysis(user, time.Now())
	require.NoError(t, r.Create(ctx, a, spots))

	_, err := r.Get(ctx, "someone-else", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, "someone-else", a.ID), domain.ErrNotFound)

	require.NoError(t, r.Delete(ctx, user, a.ID))
	_, err = r.BlindSpots(ctx, user, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Delete(ctx, user, a.ID), domain.ErrNotFound)
}

func TestRepositoryCreateIsAtomic(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	user := "it-" + uuid.NewString()

	a, spots := newAnalysis(user, time.Now())
	// duplicate primary key fails the second insert
	spots[1].ID = spots[0].ID
	require.Error(t, r.Create(ctx, a, spots))

	_, err := r.Get(ctx, user, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
