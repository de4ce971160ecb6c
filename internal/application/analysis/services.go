package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/blindspot-radar/internal/application"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
	"github.com/bryanwahyu/blindspot-radar/internal/metrics"
)

// DefaultDelay stands in for the analysis engine's processing time.
const DefaultDelay = 2 * time.Second

// Service implements the analysis use cases. Safe for concurrent use.
type Service struct {
	Repo    domain.Repository
	Reports domain.ReportStore // optional; nil disables Export
	Clock   application.Clock
	Delay   time.Duration
	Logger  *zap.Logger
}

// RunCommand carries the setup form of a run.
type RunCommand struct {
	IndustryID     string `json:"industry_id"`
	Input          string `json:"input"`
	ComplianceMode bool   `json:"compliance_mode"`
	SecurityMode   bool   `json:"security_mode"`
}

// Report is an analysis together with its blind spots.
type Report struct {
	Analysis   *domain.Analysis    `json:"analysis"`
	BlindSpots []*domain.BlindSpot `json:"blind_spots"`
}

// ExportResult holds the URLs of an exported report.
type ExportResult struct {
	RadarURL  string `json:"radar_url"`
	ReportURL string `json:"report_url"`
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

// Validate checks the setup form before any work is done.
func (cmd RunCommand) Validate() error {
	if strings.TrimSpace(cmd.IndustryID) == "" {
		return &domain.ValidationError{Field: "industry_id", Message: "please select an industry"}
	}
	if strings.TrimSpace(cmd.Input) == "" {
		return &domain.ValidationError{Field: "input", Message: "please enter context for the analysis"}
	}
	return nil
}

// Run selects the blind spot templates for the industry and persists the run.
// Nothing is stored when an error is returned.
func (s *Service) Run(ctx context.Context, user *identity.User, cmd RunCommand) (*Report, error) {
	if user == nil {
		return nil, identity.ErrUnauthenticated
	}
	if err := cmd.Validate(); err != nil {
		metrics.AnalysesTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := application.Wait(ctx, s.Delay); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	name, ok := domain.IndustryName(cmd.IndustryID)
	industry := name
	if !ok {
		industry = "Unknown"
	}
	drafts := domain.SelectTemplates(cmd.IndustryID, cmd.ComplianceMode, cmd.SecurityMode, name)

	a := &domain.Analysis{
		ID:             domain.AnalysisID(uuid.NewString()),
		UserID:         user.ID,
		Industry:       industry,
		Input:          domain.SanitizeInput(cmd.Input),
		ComplianceMode: cmd.ComplianceMode,
		SecurityMode:   cmd.SecurityMode,
		CreatedAt:      s.now(),
	}
	for _, d := range drafts {
		d.ID = domain.BlindSpotID(uuid.NewString())
		d.AnalysisID = a.ID
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("template %q: %w", d.Title, err)
		}
	}

	if err := s.Repo.Create(ctx, a, drafts); err != nil {
		metrics.AnalysesTotal.WithLabelValues("failed").Inc()
		s.log().Error("persist analysis failed",
			zap.String("user_id", user.ID), zap.String("industry_id", cmd.IndustryID), zap.Error(err))
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	metrics.AnalysesTotal.WithLabelValues("success").Inc()
	metrics.BlindSpotsCreated.Add(float64(len(drafts)))
	s.log().Info("analysis complete",
		zap.String("user_id", user.ID), zap.String("analysis_id", string(a.ID)), zap.Int("blind_spots", len(drafts)))

	return &Report{Analysis: a, BlindSpots: drafts}, nil
}

// History returns the user's analyses, newest first.
func (s *Service) History(ctx context.Context, user *identity.User) ([]*domain.Analysis, error) {
	if user == nil {
		return nil, identity.ErrUnauthenticated
	}
	list, err := s.Repo.List(ctx, user.ID)
	if err != nil {
		s.log().Error("list analyses failed", zap.String("user_id", user.ID), zap.Error(err))
		return nil, fmt.Errorf("listing analyses: %w", err)
	}
	return list, nil
}

// Load returns an analysis with its blind spots.
func (s *Service) Load(ctx context.Context, user *identity.User, id domain.AnalysisID) (*Report, error) {
	if user == nil {
		return nil, identity.ErrUnauthenticated
	}
	a, err := s.Repo.Get(ctx, user.ID, id)
	if err != nil {
		return nil, s.wrap("loading analysis", user, id, err)
	}
	spots, err := s.Repo.BlindSpots(ctx, user.ID, id)
	if err != nil {
		return nil, s.wrap("loading blind spots", user, id, err)
	}
	return &Report{Analysis: a, BlindSpots: spots}, nil
}

// Delete removes an analysis and, with it, all of its blind spots.
func (s *Service) Delete(ctx context.Context, user *identity.User, id domain.AnalysisID) error {
	if user == nil {
		return identity.ErrUnauthenticated
	}
	if err := s.Repo.Delete(ctx, user.ID, id); err != nil {
		return s.wrap("deleting analysis", user, id, err)
	}
	s.log().Info("analysis deleted", zap.String("user_id", user.ID), zap.String("analysis_id", string(id)))
	return nil
}

// Radar renders the draw commands of an analysis.
func (s *Service) Radar(ctx context.Context, user *identity.User, id domain.AnalysisID, filter string, d radar.Dimensions) (radar.Frame, error) {
	r, err := s.Load(ctx, user, id)
	if err != nil {
		return radar.Frame{}, err
	}
	return radar.Render(r.BlindSpots, filter, d), nil
}

// Hit resolves a click on the radar of an analysis.
func (s *Service) Hit(ctx context.Context, user *identity.User, id domain.AnalysisID, filter string, d radar.Dimensions, click radar.Point) (*domain.BlindSpot, bool, error) {
	r, err := s.Load(ctx, user, id)
	if err != nil {
		return nil, false, err
	}
	b, ok := radar.HitTest(r.BlindSpots, filter, d, click)
	return b, ok, nil
}

// Export uploads the radar SVG and a JSON snapshot of the report.
func (s *Service) Export(ctx context.Context, user *identity.User, id domain.AnalysisID, filter string) (ExportResult, error) {
	if s.Reports == nil {
		return ExportResult{}, domain.ErrExportDisabled
	}
	r, err := s.Load(ctx, user, id)
	if err != nil {
		return ExportResult{}, err
	}

	var svgBuf bytes.Buffer
	if err := radar.WriteSVG(&svgBuf, radar.Render(r.BlindSpots, filter, radar.DefaultDimensions)); err != nil {
		return ExportResult{}, fmt.Errorf("rendering radar: %w", err)
	}
	report, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("encoding report: %w", err)
	}

	prefix := fmt.Sprintf("%s/%s", user.ID, id)
	radarURL, err := s.Reports.Put(ctx, prefix+"/radar.svg", "image/svg+xml", svgBuf.Bytes())
	if err != nil {
		return ExportResult{}, s.wrap("uploading radar", user, id, err)
	}
	reportURL, err := s.Reports.Put(ctx, prefix+"/report.json", "application/json", report)
	if err != nil {
		return ExportResult{}, s.wrap("uploading report", user, id, err)
	}
	return ExportResult{RadarURL: radarURL, ReportURL: reportURL}, nil
}

// Summary aggregates all of the user's blind spots.
func (s *Service) Summary(ctx context.Context, user *identity.User) (domain.Summary, error) {
	list, err := s.History(ctx, user)
	if err != nil {
		return domain.Summary{}, err
	}
	sum := domain.Summary{Analyses: len(list), BySeverity: map[domain.Severity]int{}}
	for _, a := range list {
		spots, err := s.Repo.BlindSpots(ctx, user.ID, a.ID)
		if err != nil {
			return domain.Summary{}, s.wrap("loading blind spots", user, a.ID, err)
		}
		for _, b := range spots {
			sum.BlindSpots++
			sum.BySeverity[b.Severity]++
			if b.IndustrySpecific {
				sum.IndustrySpecific++
			}
		}
	}
	return sum, nil
}

func (s *Service) wrap(op string, user *identity.User, id domain.AnalysisID, err error) error {
	if !errors.Is(err, domain.ErrNotFound) {
		s.log().Error(op+" failed", zap.String("user_id", user.ID), zap.String("analysis_id", string(id)), zap.Error(err))
	}
	return fmt.Errorf("%s: %w", op, err)
}
