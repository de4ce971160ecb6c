package blindspots

import "context"

// Repository port (interface untuk persistence)
type Repository interface {
	// Create stores the analysis and its blind spots as one unit.
	Create(ctx context.Context, a *Analysis, spots []*BlindSpot) error
	Get(ctx context.Context, userID string, id AnalysisID) (*Analysis, error)
	// List returns the user's analyses, newest first.
	List(ctx context.Context, userID string) ([]*Analysis, error)
	BlindSpots(ctx context.Context, userID string, id AnalysisID) ([]*BlindSpot, error)
	// Delete removes the analysis and every blind spot referencing it.
	Delete(ctx context.Context, userID string, id AnalysisID) error
}

// ReportStore port (interface untuk penyimpanan report)
type ReportStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}
