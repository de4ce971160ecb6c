package httpserver

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/blindspot-radar/internal/application/analysis"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
	"github.com/bryanwahyu/blindspot-radar/internal/middleware"
)

func analysisID(req *http.Request) (domain.AnalysisID, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return "", err
	}
	return domain.AnalysisID(id), nil
}

func queryFloat(req *http.Request, key string) (float64, error) {
	raw := req.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &domain.ValidationError{Field: key, Message: "must be a number"}
	}
	return v, nil
}

func (r *Router) dimensions(req *http.Request) (radar.Dimensions, error) {
	width, err := queryFloat(req, "width")
	if err != nil {
		return radar.Dimensions{}, err
	}
	height, err := queryFloat(req, "height")
	if err != nil {
		return radar.Dimensions{}, err
	}
	return middleware.ValidateDimensions(width, height, r.radar)
}

// POST /v1/analyses
// Body: {"industry_id": "...", "input": "...", "compliance_mode": false, "security_mode": true}
func (r *Router) handleRun(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	var cmd appanalysis.RunCommand
	if err := decode(req, &cmd); err != nil {
		return err
	}
	report, err := r.analyses.Run(req.Context(), u, cmd)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, report)
}

// GET /v1/analyses?limit=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	list, err := r.analyses.History(req.Context(), u)
	if err != nil {
		return err
	}
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, _ := strconv.Atoi(raw)
		if n = middleware.ValidateLimit(n); n < len(list) {
			list = list[:n]
		}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/analyses/summary
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	sum, err := r.analyses.Summary(req.Context(), u)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, sum)
}

// GET /v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	report, err := r.analyses.Load(req.Context(), u, id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, report)
}

// DELETE /v1/analyses/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	if err := r.analyses.Delete(req.Context(), u, id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/analyses/{id}/radar?filter=&width=&height=
func (r *Router) handleRadar(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	filter, err := middleware.ValidateFilter(req.URL.Query().Get("filter"))
	if err != nil {
		return err
	}
	d, err := r.dimensions(req)
	if err != nil {
		return err
	}
	frame, err := r.analyses.Radar(req.Context(), u, id, filter, d)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, frame)
}

// GET /v1/analyses/{id}/radar.svg?filter=&width=&height=
func (r *Router) handleRadarSVG(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	filter, err := middleware.ValidateFilter(req.URL.Query().Get("filter"))
	if err != nil {
		return err
	}
	d, err := r.dimensions(req)
	if err != nil {
		return err
	}
	frame, err := r.analyses.Radar(req.Context(), u, id, filter, d)
	if err != nil {
		return err
	}

	// render fully before writing so errors still map to a JSON response
	var buf bytes.Buffer
	if err := radar.WriteSVG(&buf, frame); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(buf.Bytes())
	return err
}

type hitRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Filter string  `json:"filter"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type hitResponse struct {
	Hit       bool              `json:"hit"`
	BlindSpot *domain.BlindSpot `json:"blind_spot"`
}

// POST /v1/analyses/{id}/radar/hit
// Body: {"x": 350, "y": 120, "filter": "all"}
func (r *Router) handleHit(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	var body hitRequest
	if err := decode(req, &body); err != nil {
		return err
	}
	filter, err := middleware.ValidateFilter(body.Filter)
	if err != nil {
		return err
	}
	d, err := middleware.ValidateDimensions(body.Width, body.Height, r.radar)
	if err != nil {
		return err
	}
	b, ok, err := r.analyses.Hit(req.Context(), u, id, filter, d, radar.Point{X: body.X, Y: body.Y})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, hitResponse{Hit: ok, BlindSpot: b})
}

// POST /v1/analyses/{id}/export
// Body (optional): {"filter": "security"}
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	var body struct {
		Filter string `json:"filter"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	filter, err := middleware.ValidateFilter(body.Filter)
	if err != nil {
		return err
	}
	res, err := r.analyses.Export(req.Context(), u, id, filter)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, res)
}
