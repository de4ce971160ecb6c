package httpserver

import (
	"net/http"

	"github.com/bryanwahyu/blindspot-radar/internal/application/workspace"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/identity"
	"github.com/bryanwahyu/blindspot-radar/internal/domain/radar"
)

func (r *Router) controller(req *http.Request) (*workspace.Controller, error) {
	u, err := identity.UserFromContext(req.Context())
	if err != nil {
		return nil, err
	}
	return r.workspaces.For(req.Context(), u)
}

// GET /v1/workspace
func (r *Router) handleWorkspace(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, c.Snapshot())
}

// PUT /v1/workspace/view
// Body: {"view": "history"}
func (r *Router) handleWorkspaceView(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	var body struct {
		View string `json:"view"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	s, err := c.SetView(workspace.View(body.View))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// PUT /v1/workspace/setup
func (r *Router) handleWorkspaceSetup(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	body := c.Snapshot().Setup
	if err := decode(req, &body); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, c.Configure(body))
}

// POST /v1/workspace/run
func (r *Router) handleWorkspaceRun(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	s, err := c.Run(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// POST /v1/workspace/load/{id}
func (r *Router) handleWorkspaceLoad(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	s, err := c.Load(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// DELETE /v1/workspace/analyses/{id}
func (r *Router) handleWorkspaceDelete(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	s, err := c.Delete(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// PUT /v1/workspace/filter
// Body: {"filter": "compliance"}
func (r *Router) handleWorkspaceFilter(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	var body struct {
		Filter string `json:"filter"`
	}
	if err := decode(req, &body); err != nil {
		return err
	}
	s, err := c.SetFilter(body.Filter)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

type clickResponse struct {
	Hit   bool            `json:"hit"`
	State workspace.State `json:"state"`
}

// POST /v1/workspace/click
// Body: {"x": 350, "y": 120}
func (r *Router) handleWorkspaceClick(w http.ResponseWriter, req *http.Request) error {
	c, err := r.controller(req)
	if err != nil {
		return err
	}
	var p radar.Point
	if err := decode(req, &p); err != nil {
		return err
	}
	s, hit := c.Click(p)
	return writeJSON(w, http.StatusOK, clickResponse{Hit: hit, State: s})
}
