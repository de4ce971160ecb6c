// Package workspace keeps the per-user view state of the radar workspace:
// the active view, the setup form, the category filter, the loaded analysis
// and the selected blind spot.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bryanwahyu/blindspot-radar/internal/application/analysis"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
)

// ErrBusy is returned while an analysis of the same workspace is running.
var ErrBusy = errors.New("analysis already running")

type View string

const (
	ViewSetup    View = "setup"
	ViewRadar    View = "radar"
	ViewHistory  View = "history"
	ViewServices View = "services"
	ViewSettings View = "settings"
)

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewSetup, ViewRadar, ViewHistory, ViewServices, ViewSettings:
		return v, nil
	}
	return "", &domain.ValidationError{Field: "view", Message: fmt.Sprintf("unknown view %q", s)}
}

// Analyzer is the subset of analysis.Service the workspace drives.
type Analyzer interface {
	Run(ctx context.Context, user *identity.User, cmd analysis.RunCommand) (*analysis.Report, error)
	History(ctx context.Context, user *identity.User) ([]*domain.Analysis, error)
	Load(ctx context.Context, user *identity.User, id domain.AnalysisID) (*analysis.Report, error)
	Delete(ctx context.Context, user *identity.User, id domain.AnalysisID) error
}

// Setup is the analysis setup form.
type Setup struct {
	IndustryID     string `json:"industry_id"`
	Input          string `json:"input"`
	ComplianceMode bool   `json:"compliance_mode"`
	SecurityMode   bool   `json:"security_mode"`
}

// State is an immutable snapshot of a workspace.
type State struct {
	View       View                `json:"view"`
	Setup      Setup               `json:"setup"`
	Filter     string              `json:"filter"`
	Analyzing  bool                `json:"analyzing"`
	Analysis   *domain.Analysis    `json:"analysis"`
	BlindSpots []*domain.BlindSpot `json:"blind_spots"`
	Selected   *domain.BlindSpot   `json:"selected"`
	History    []*domain.Analysis  `json:"history"`
}

func initialState() State {
	return State{
		View:       ViewSetup,
		Setup:      Setup{SecurityMode: true},
		Filter:     radar.FilterAll,
		BlindSpots: []*domain.BlindSpot{},
		History:    []*domain.Analysis{},
	}
}

// Controller owns one user's workspace. Safe for concurrent use.
type Controller struct {
	svc  Analyzer
	user *identity.User
	dims radar.Dimensions

	mu    sync.Mutex
	state State
}

func NewController(svc Analyzer, user *identity.User, dims radar.Dimensions) *Controller {
	if dims.Width <= 0 || dims.Height <= 0 {
		dims = radar.DefaultDimensions
	}
	return &Controller{svc: svc, user: user, dims: dims, state: initialState()}
}

func (c *Controller) User() *identity.User { return c.user }

// Snapshot copies the state; slices are fresh so callers may not mutate the workspace.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.state
	s.BlindSpots = append([]*domain.BlindSpot{}, c.state.BlindSpots...)
	s.History = append([]*domain.Analysis{}, c.state.History...)
	return s
}

func (c *Controller) SetView(v View) (State, error) {
	pv, err := ParseView(string(v))
	if err != nil {
		return c.Snapshot(), err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.View = pv
	return c.snapshotLocked(), nil
}

// Configure replaces the setup form.
func (c *Controller) Configure(s Setup) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Setup = s
	return c.snapshotLocked()
}

// Run analyses the configured setup. The lock is released while the
// analysis runs so snapshots report Analyzing.
func (c *Controller) Run(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Analyzing {
		s := c.snapshotLocked()
		c.mu.Unlock()
		return s, ErrBusy
	}
	setup := c.state.Setup
	c.state.Analyzing = true
	c.mu.Unlock()

	report, err := c.svc.Run(ctx, c.user, analysis.RunCommand(setup))

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Analyzing = false
	if err != nil {
		return c.snapshotLocked(), err
	}
	c.state.Analysis = report.Analysis
	c.state.BlindSpots = report.BlindSpots
	c.state.Selected = nil
	c.state.View = ViewRadar
	c.state.History = append([]*domain.Analysis{report.Analysis}, c.state.History...)
	return c.snapshotLocked(), nil
}

// Load makes a stored analysis current and switches to the radar.
func (c *Controller) Load(ctx context.Context, id domain.AnalysisID) (State, error) {
	report, err := c.svc.Load(ctx, c.user, id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.snapshotLocked(), err
	}
	c.state.Analysis = report.Analysis
	c.state.BlindSpots = report.BlindSpots
	c.state.Selected = nil
	c.state.View = ViewRadar
	// setup follows the loaded run; custom industry names map to no id
	c.state.Setup.IndustryID, _ = domain.IndustryIDByName(report.Analysis.Industry)
	c.state.Setup.Input = report.Analysis.Input
	return c.snapshotLocked(), nil
}

// Delete removes the analysis; deleting the current one clears the radar.
func (c *Controller) Delete(ctx context.Context, id domain.AnalysisID) (State, error) {
	err := c.svc.Delete(ctx, c.user, id)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.snapshotLocked(), err
	}
	history := make([]*domain.Analysis, 0, len(c.state.History))
	for _, a := range c.state.History {
		if a.ID != id {
			history = append(history, a)
		}
	}
	c.state.History = history
	if c.state.Analysis != nil && c.state.Analysis.ID == id {
		c.state.Analysis = nil
		c.state.BlindSpots = []*domain.BlindSpot{}
		c.state.Selected = nil
	}
	return c.snapshotLocked(), nil
}

// SetFilter accepts "all" or a category key.
func (c *Controller) SetFilter(filter string) (State, error) {
	f := strings.ToLower(strings.TrimSpace(filter))
	if f == "" {
		f = radar.FilterAll
	}
	if f != radar.FilterAll {
		if _, ok := domain.LookupCategory(domain.Category(f)); !ok {
			return c.Snapshot(), &domain.ValidationError{Field: "filter", Message: fmt.Sprintf("unknown category %q", filter)}
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Filter = f
	return c.snapshotLocked(), nil
}

// Click hit-tests the current radar. A miss keeps the previous selection.
func (c *Controller) Click(p radar.Point) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := radar.HitTest(c.state.BlindSpots, c.state.Filter, c.dims, p)
	if ok {
		c.state.Selected = b
	}
	return c.snapshotLocked(), ok
}

// Refresh reloads the history.
func (c *Controller) Refresh(ctx context.Context) (State, error) {
	list, err := c.svc.History(ctx, c.user)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		return c.snapshotLocked(), err
	}
	c.state.History = list
	return c.snapshotLocked(), nil
}
