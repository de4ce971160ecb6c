package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domain "github.com/bryanwahyu/blindspot-radar/internal/domain/blindspots"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/middleware"
)

// POST /v1/auth/logout
func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) error {
	if err := r.auth.Logout(req.Context(), middleware.TokenFromContext(req.Context())); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	p, err := r.catalog.Profile(u)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, p)
}

// GET /v1/catalog/industries
func (r *Router) handleIndustries(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, domain.Industries())
}

// GET /v1/catalog/categories
func (r *Router) handleCategories(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, domain.Categories())
}

// GET /v1/services
func (r *Router) handleServices(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.catalog.List())
}

// POST /v1/services/{id}/subscribe
func (r *Router) handleSubscribe(w http.ResponseWriter, req *http.Request) error {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return err
	}
	res, err := r.catalog.Subscribe(req.Context(), u, chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusAccepted, res)
}
