package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the analysis and its blind spots in one transaction
func (r *Repository) Create(ctx context.Context, a *domain.Analysis, spots []*domain.BlindSpot) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qa = `
INSERT INTO analyses
  (id, user_id, industry, market, input, compliance_mode, security_mode, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8);`
	if _, err = tx.ExecContext(ctx, qa,
		a.ID, a.UserID, a.Industry, a.Market, a.Input,
		boolToInt(a.ComplianceMode), boolToInt(a.SecurityMode), a.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}

	const qb = `
INSERT INTO blindspots
  (id, analysis_id, position, category, title, severity, risk_score,
   description, impact, recommendation, timeline, effort, coordinates, industry_specific)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14);`
	for i, b := range spots {
		if _, err = tx.ExecContext(ctx, qb,
			b.ID, a.ID, i, b.Category, b.Title, b.Severity, b.RiskScore,
			b.Description, b.Impact, b.Recommendation, b.Timeline, b.Effort,
			b.Coordinates.String(), boolToInt(b.IndustrySpecific),
		); err != nil {
			return fmt.Errorf("insert blind spot: %w", err)
		}
	}
	return tx.Commit()
}

// Get by ID + owner
func (r *Repository) Get(ctx context.Context, userID string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, user_id, industry, market, input, compliance_mode, security_mode, created_at
FROM analyses
WHERE user_id=$1 AND id=$2
LIMIT 1;`
	a, err := scanAnalysis(r.db.QueryRowContext(ctx, q, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// List analyses per user, newest first
func (r *Repository) List(ctx context.Context, userID string) ([]*domain.Analysis, error) {
	const q = `
SELECT id, user_id, industry, market, input, compliance_mode, security_mode, created_at
FROM analyses
WHERE user_id=$1
ORDER BY created_at DESC, id DESC;`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// BlindSpots of an analysis in creation order. The join enforces ownership.
func (r *Repository) BlindSpots(ctx context.Context, userID string, id domain.AnalysisID) ([]*domain.BlindSpot, error) {
	if _, err := r.Get(ctx, userID, id); err != nil {
		return nil, err
	}
	const q = `
SELECT b.id, b.analysis_id, b.category, b.title, b.severity, b.risk_score,
       b.description, b.impact, b.recommendation, b.timeline, b.effort,
       b.coordinates, b.industry_specific
FROM blindspots b
JOIN analyses a ON a.id = b.analysis_id
WHERE a.user_id=$1 AND b.analysis_id=$2
ORDER BY b.position ASC;`
	rows, err := r.db.QueryContext(ctx, q, userID, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.BlindSpot{}
	for rows.Next() {
		b, err := scanBlindSpot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes the analysis; blind spots go with it
func (r *Repository) Delete(ctx context.Context, userID string, id domain.AnalysisID) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const qb = `
DELETE FROM blindspots
WHERE analysis_id IN (SELECT id FROM analyses WHERE user_id=$1 AND id=$2);`
	if _, err = tx.ExecContext(ctx, qb, userID, id); err != nil {
		return fmt.Errorf("delete blind spots: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM analyses WHERE user_id=$1 AND id=$2;`, userID, id)
	if err != nil {
		return fmt.Errorf("delete analysis: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = domain.ErrNotFound
		return err
	}
	return tx.Commit()
}

// Ping for health checks
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
