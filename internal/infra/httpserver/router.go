package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/blindspot-radar/internal/application/analysis"
	appcatalog "github.com/bryanwahyu/blindspot-radar/internal/application/catalog"
	"github.com/bryanwahyu/blindspot-radar/internal/application/workspace"
	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
	"github.com/bryanwahyu/blindspot-radar/internal/logging"
	"github.com/bryanwahyu/blindspot-radar/internal/middleware"
)

const maxBodyBytes = 1 << 20

// Deps are the services the router serves. Limiter and Checkers are optional.
type Deps struct {
	Analyses       *appanalysis.Service
	Catalog        *appcatalog.Service
	Workspaces     *workspace.Registry
	Auth           identity.AuthProvider
	Logger         *zap.Logger
	Limiter        *middleware.RateLimiter
	Checkers       map[string]middleware.HealthChecker
	AllowedOrigins []string
	Radar          radar.Dimensions
}

type Router struct {
	analyses   *appanalysis.Service
	catalog    *appcatalog.Service
	workspaces *workspace.Registry
	auth       identity.AuthProvider
	radar      radar.Dimensions
}

func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Radar.Width <= 0 || d.Radar.Height <= 0 {
		d.Radar = radar.DefaultDimensions
	}
	if d.Catalog == nil {
		d.Catalog = &appcatalog.Service{Logger: d.Logger}
	}
	r := &Router{
		analyses:   d.Analyses,
		catalog:    d.Catalog,
		workspaces: d.Workspaces,
		auth:       d.Auth,
		radar:      d.Radar,
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(d.Logger))
	mux.Use(chimw.Recoverer)
	mux.Use(middleware.Metrics)
	if len(d.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	mux.Get("/health", middleware.HealthHandler(d.Checkers))
	mux.Get("/livez", middleware.LivenessHandler)
	mux.Get("/readyz", middleware.ReadinessHandler(d.Checkers))
	mux.Handle("/metrics", middleware.MetricsHandler())

	mux.Route("/v1", func(rt chi.Router) {
		rt.Use(middleware.Authenticate(d.Auth))
		if d.Limiter != nil {
			rt.Use(middleware.RateLimit(d.Limiter))
		}

		rt.Post("/auth/logout", r.wrap(r.handleLogout))
		rt.Get("/me", r.wrap(r.handleMe))

		rt.Get("/catalog/industries", r.wrap(r.handleIndustries))
		rt.Get("/catalog/categories", r.wrap(r.handleCategories))
		rt.Get("/services", r.wrap(r.handleServices))
		rt.Post("/services/{id}/subscribe", r.wrap(r.handleSubscribe))

		rt.Post("/analyses", r.wrap(r.handleRun))
		rt.Get("/analyses", r.wrap(r.handleHistory))
		rt.Get("/analyses/summary", r.wrap(r.handleSummary))
		rt.Route("/analyses/{id}", func(ra chi.Router) {
			ra.Get("/", r.wrap(r.handleGet))
			ra.Delete("/", r.wrap(r.handleDelete))
			ra.Get("/radar", r.wrap(r.handleRadar))
			ra.Get("/radar.svg", r.wrap(r.handleRadarSVG))
			ra.Post("/radar/hit", r.wrap(r.handleHit))
			ra.Post("/export", r.wrap(r.handleExport))
		})

		rt.Route("/workspace", func(rw chi.Router) {
			rw.Get("/", r.wrap(r.handleWorkspace))
			rw.Put("/view", r.wrap(r.handleWorkspaceView))
			rw.Put("/setup", r.wrap(r.handleWorkspaceSetup))
			rw.Post("/run", r.wrap(r.handleWorkspaceRun))
			rw.Post("/load/{id}", r.wrap(r.handleWorkspaceLoad))
			rw.Delete("/analyses/{id}", r.wrap(r.handleWorkspaceDelete))
			rw.Put("/filter", r.wrap(r.handleWorkspaceFilter))
			rw.Post("/click", r.wrap(r.handleWorkspaceClick))
		})
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap maps errors returned by handlers to JSON error responses
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		code, msg := statusFor(err)
		if code >= http.StatusInternalServerError {
			logging.FromContext(req.Context()).Error("request failed", zap.Error(err))
		}
		writeError(w, code, msg)
	}
}

func statusFor(err error) (int, string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.Is(err, identity.ErrUnauthenticated):
		return http.StatusUnauthorized, identity.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, workspace.ErrBusy):
		return http.StatusConflict, workspace.ErrBusy.Error()
	case errors.Is(err, domain.ErrExportDisabled):
		return http.StatusServiceUnavailable, domain.ErrExportDisabled.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	_ = writeJSON(w, code, map[string]string{"error": msg})
}

// decode reads a JSON body; an empty body leaves v untouched
func decode(req *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, req.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return &domain.ValidationError{Field: "body", Message: err.Error()}
	}
	return nil
}
