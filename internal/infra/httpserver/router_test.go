package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalysis "github.com/bryanwahyu/blindspot-radar/internal/application/analysis"
	"github.com/bryanwahyu/blindspot-radar/internal/application/workspace"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
	"github.com/bryanwahyu/blindspot-radar/internal/infra/db/memory"
	identityinfra "github.com/bryanwahyu/blindspot-radar/internal/infra/identity"
)

type memReports struct {
	mu   sync.Mutex
	keys []string
}

func (m *memReports) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, key)
	return "http://reports/" + key, nil
}

type testServer struct {
	h       http.Handler
	reports *memReports
}

func newTestServer(t *testing.T, withReports bool) *testServer {
	t.Helper()
	auth := identityinfra.NewTokenProvider(map[string]identity.User{
		"tok-alice": {ID: "u-alice", Email: "alice@example.com", DisplayName: "Alice"},
		"tok-bob":   {ID: "u-bob", Email: "bob@example.com"},
	})
	svc := &appanalysis.Service{Repo: memory.NewRepository()}
	ts := &testServer{}
	if withReports {
		ts.reports = &memReports{}
		svc.Reports = ts.reports
	}
	reg := workspace.NewRegistry(svc, auth, radar.DefaultDimensions, nil)
	t.Cleanup(reg.Close)
	ts.h = NewRouter(Deps{Analyses: svc, Workspaces: reg, Auth: auth})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (ts *testServer) run(t *testing.T, token string) appanalysis.Report {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/v1/analyses", token, map[string]any{
		"industry_id": "casino-operations", "input": "<b>launch</b> in EU", "compliance_mode": true, "security_mode": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[appanalysis.Report](t, rec)
}

func TestPublicEndpoints(t *testing.T) {
	ts := newTestServer(t, false)
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/health", "", nil).Code)
	assert.Equal(t, "ok", ts.do(t, http.MethodGet, "/livez", "", nil).Body.String())
	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/readyz", "", nil).Code)

	rec := ts.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "blindspot_http_requests_total")
}

func TestAPIRequiresToken(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodGet, "/v1/analyses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["error"])

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/v1/me", "bogus", nil).Code)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := newTestServer(t, false)

	industries := decodeBody[[]domain.Industry](t, ts.do(t, http.MethodGet, "/v1/catalog/industries", "tok-alice", nil))
	assert.Len(t, industries, len(domain.Industries()))

	cats := decodeBody[[]domain.CategoryInfo](t, ts.do(t, http.MethodGet, "/v1/catalog/categories", "tok-alice", nil))
	require.Len(t, cats, 9)
	assert.Equal(t, domain.CategorySecurity, cats[0].Key)

	services := decodeBody[[]map[string]any](t, ts.do(t, http.MethodGet, "/v1/services", "tok-alice", nil))
	assert.Len(t, services, 6)

	rec := ts.do(t, http.MethodPost, "/v1/services/fraud-detection-suite/subscribe", "tok-alice", nil)
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "Subscription request sent for Fraud Detection Suite", decodeBody[map[string]string](t, rec)["message"])
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodPost, "/v1/services/nope/subscribe", "tok-alice", nil).Code)

	me := decodeBody[map[string]string](t, ts.do(t, http.MethodGet, "/v1/me", "tok-bob", nil))
	assert.Equal(t, "General Enterprise", me["business_type"])
	assert.Equal(t, "bob@example.com", me["name"])
}

func TestAnalysisLifecycle(t *testing.T) {
	ts := newTestServer(t, false)
	report := ts.run(t, "tok-alice")
	require.Len(t, report.BlindSpots, 2)
	assert.Equal(t, "blaunch/b in EU", report.Analysis.Input)
	assert.Equal(t, domain.CategoryCompliance, report.BlindSpots[0].Category)
	id := string(report.Analysis.ID)

	list := decodeBody[[]domain.Analysis](t, ts.do(t, http.MethodGet, "/v1/analyses", "tok-alice", nil))
	require.Len(t, list, 1)
	assert.Empty(t, decodeBody[[]domain.Analysis](t, ts.do(t, http.MethodGet, "/v1/analyses", "tok-bob", nil)))

	got := decodeBody[appanalysis.Report](t, ts.do(t, http.MethodGet, "/v1/analyses/"+id, "tok-alice", nil))
	assert.Equal(t, report.BlindSpots[0].ID, got.BlindSpots[0].ID)

	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/v1/analyses/"+id, "tok-bob", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/v1/analyses/not-a-uuid", "tok-alice", nil).Code)

	sum := decodeBody[domain.Summary](t, ts.do(t, http.MethodGet, "/v1/analyses/summary", "tok-alice", nil))
	assert.Equal(t, 1, sum.Analyses)
	assert.Equal(t, 2, sum.BlindSpots)

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodDelete, "/v1/analyses/"+id, "tok-alice", nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodDelete, "/v1/analyses/"+id, "tok-alice", nil).Code)
}

func TestRunValidation(t *testing.T) {
	ts := newTestServer(t, false)
	rec := ts.do(t, http.MethodPost, "/v1/analyses", "tok-alice", map[string]any{"industry_id": "retail", "input": "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], "input")

	rec = ts.do(t, http.MethodPost, "/v1/analyses", "tok-alice", map[string]any{"industry": "retail"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRadarEndpoints(t *testing.T) {
	ts := newTestServer(t, false)
	report := ts.run(t, "tok-alice")
	base := "/v1/analyses/" + string(report.Analysis.ID)

	frame := decodeBody[radar.Frame](t, ts.do(t, http.MethodGet, base+"/radar?width=500&height=400", "tok-alice", nil))
	assert.Equal(t, radar.Dimensions{Width: 500, Height: 400}, frame.Dimensions)
	assert.False(t, frame.Empty)

	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"/radar?filter=weather", "tok-alice", nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, base+"/radar?width=abc", "tok-alice", nil).Code)

	rec := ts.do(t, http.MethodGet, base+"/radar.svg", "tok-alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Body.String(), "<svg"))

	target := report.BlindSpots[0]
	p := radar.NewGeometry(radar.DefaultDimensions).Project(target.Coordinates)
	hit := decodeBody[hitResponse](t, ts.do(t, http.MethodPost, base+"/radar/hit", "tok-alice", map[string]any{"x": p.X, "y": p.Y}))
	require.True(t, hit.Hit)
	assert.Equal(t, target.ID, hit.BlindSpot.ID)

	miss := decodeBody[hitResponse](t, ts.do(t, http.MethodPost, base+"/radar/hit", "tok-alice", map[string]any{"x": 1, "y": 1}))
	assert.False(t, miss.Hit)
	assert.Nil(t, miss.BlindSpot)
}

func TestExport(t *testing.T) {
	ts := newTestServer(t, false)
	report := ts.run(t, "tok-alice")
	path := "/v1/analyses/" + string(report.Analysis.ID) + "/export"
	assert.Equal(t, http.StatusServiceUnavailable, ts.do(t, http.MethodPost, path, "tok-alice", nil).Code)

	ts = newTestServer(t, true)
	report = ts.run(t, "tok-alice")
	path = "/v1/analyses/" + string(report.Analysis.ID) + "/export"
	rec := ts.do(t, http.MethodPost, path, "tok-alice", map[string]string{"filter": "compliance"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	res := decodeBody[appanalysis.ExportResult](t, rec)
	assert.True(t, strings.HasSuffix(res.RadarURL, "/radar.svg"))
	assert.True(t, strings.HasSuffix(res.ReportURL, "/report.json"))
	assert.Len(t, ts.reports.keys, 2)
}

func TestWorkspaceFlow(t *testing.T) {
	ts := newTestServer(t, false)
	tok := "tok-alice"

	s := decodeBody[workspace.State](t, ts.do(t, http.MethodGet, "/v1/workspace", tok, nil))
	assert.Equal(t, workspace.ViewSetup, s.View)
	assert.True(t, s.Setup.SecurityMode)

	s = decodeBody[workspace.State](t, ts.do(t, http.MethodPut, "/v1/workspace/setup", tok, map[string]any{
		"industry_id": "b2b-aiaas", "input": "LLM platform",
	}))
	assert.Equal(t, "b2b-aiaas", s.Setup.IndustryID)
	assert.True(t, s.Setup.SecurityMode)

	rec := ts.do(t, http.MethodPost, "/v1/workspace/run", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s = decodeBody[workspace.State](t, rec)
	assert.Equal(t, workspace.ViewRadar, s.View)
	require.Len(t, s.BlindSpots, 2)
	require.Len(t, s.History, 1)
	id := string(s.Analysis.ID)

	target := s.BlindSpots[1]
	p := radar.NewGeometry(radar.DefaultDimensions).Project(target.Coordinates)
	click := decodeBody[clickResponse](t, ts.do(t, http.MethodPost, "/v1/workspace/click", tok, p))
	require.True(t, click.Hit)
	assert.Equal(t, target.ID, click.State.Selected.ID)

	s = decodeBody[workspace.State](t, ts.do(t, http.MethodPut, "/v1/workspace/filter", tok, map[string]string{"filter": "technical"}))
	assert.Equal(t, "technical", s.Filter)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodPut, "/v1/workspace/filter", tok, map[string]string{"filter": "x"}).Code)

	s = decodeBody[workspace.State](t, ts.do(t, http.MethodPut, "/v1/workspace/view", tok, map[string]string{"view": "history"}))
	assert.Equal(t, workspace.ViewHistory, s.View)
	s = decodeBody[workspace.State](t, ts.do(t, http.MethodPost, "/v1/workspace/load/"+id, tok, nil))
	assert.Equal(t, workspace.ViewRadar, s.View)

	s = decodeBody[workspace.State](t, ts.do(t, http.MethodDelete, "/v1/workspace/analyses/"+id, tok, nil))
	assert.Nil(t, s.Analysis)
	assert.Empty(t, s.History)
}

func TestLogoutDropsWorkspaceAndToken(t *testing.T) {
	ts := newTestServer(t, false)
	tok := "tok-alice"
	ts.do(t, http.MethodPut, "/v1/workspace/view", tok, map[string]string{"view": "settings"})

	assert.Equal(t, http.StatusNoContent, ts.do(t, http.MethodPost, "/v1/auth/logout", tok, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/v1/workspace", tok, nil).Code)
}
