package postgres

import (
	"fmt"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var compliance, security int
	if err := row.Scan(&a.ID, &a.UserID, &a.Industry, &a.Market, &a.Input, &compliance, &security, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.ComplianceMode = compliance > 0
	a.SecurityMode = security > 0
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func scanBlindSpot(row rowScanner) (*domain.BlindSpot, error) {
	var b domain.BlindSpot
	var coords string
	var industrySpecific int
	if err := row.Scan(
		&b.ID, &b.AnalysisID, &b.Category, &b.Title, &b.Severity, &b.RiskScore,
		&b.Description, &b.Impact, &b.Recommendation, &b.Timeline, &b.Effort,
		&coords, &industrySpecific,
	); err != nil {
		return nil, err
	}
	c, err := domain.ParseCoordinates(coords)
	if err != nil {
		return nil, fmt.Errorf("blind spot %s: %w", b.ID, err)
	}
	b.Coordinates = c
	b.IndustrySpecific = industrySpecific > 0
	return &b, nil
}
