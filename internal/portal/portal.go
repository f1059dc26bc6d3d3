// ABOUTME: Portal API service wiring store, registry, auth, and sessions
// ABOUTME: Registers all JSON API routes on a ServeMux

package portal

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"

	"github.com/2389/horizon-portal/internal/auth"
	"github.com/2389/horizon-portal/internal/config"
	"github.com/2389/horizon-portal/internal/menu"
	"github.com/2389/horizon-portal/internal/module"
	"github.com/2389/horizon-portal/internal/nav"
	"github.com/2389/horizon-portal/internal/store"
)

// Portal handles the JSON API for the navigation dashboard.
type Portal struct {
	store    store.Store
	registry *module.Registry
	verifier *auth.JWTVerifier
	cfg      *config.Config
	sessions *sessionManager
	metrics  *apiMetrics
	prom      *prometheus.Registry
	logger   *slog.Logger
}

// New creates a portal service. The prometheus registry is private to the
// instance so tests can run in parallel.
func New(st store.Store, reg *module.Registry, verifier *auth.JWTVerifier, cfg *config.Config) *Portal {
	promReg := prometheus.NewRegistry()
	return &Portal{
		store:     st,
		registry:  reg,
		verifier:  verifier,
		cfg:       cfg,
		sessions:  newSessionManager(reg.Known, time.Hour),
		metrics:   newAPIMetrics(promReg),
		prom:      promReg,
		logger:    slog.Default().With("component", "portal"),
	}
}

// Close releases background resources.
func (p *Portal) Close() {
	p.sessions.Close()
}

// RegisterRoutes registers all portal routes on the given mux.
func (p *Portal) RegisterRoutes(mux *http.ServeMux) {
	authed := auth.HTTPAuthMiddleware(p.store, p.verifier)

	// Public routes
	mux.HandleFunc("POST /api/login", p.handleLogin)
	mux.HandleFunc("GET /health", p.handleHealth)
	if p.cfg.Metrics.Enabled {
		path := p.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, promhttp.HandlerFor(p.prom, promhttp.HandlerOpts{}))
	}

	// Authenticated routes
	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}
	admin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(auth.RequireAdmin(h)))
	}
	superAdmin := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(auth.RequireSuperAdmin(h)))
	}

	handle("GET /api/me", p.handleMe)
	handle("POST /api/logout", p.handleLogout)

	handle("GET /api/modules", p.handleModulesList)
	handle("GET /api/modules/{id}/menu", p.handleModuleMenu)

	handle("GET /api/session", p.handleSessionGet)
	handle("POST /api/session/module", p.handleSessionModule)
	handle("POST /api/session/navigate", p.handleSessionNavigate)
	handle("POST /api/session/location", p.handleSessionLocation)
	handle("GET /api/session/history", p.handleSessionHistory)

	handle("GET /api/requests", p.handleRequestsList)
	handle("GET /api/requests/{id}", p.handleRequestGet)
	handle("POST /api/requests", p.handleRequestCreate)
	admin("POST /api/requests/{id}/decision", p.handleRequestDecision)

	admin("GET /api/users", p.handleUsersList)
	admin("POST /api/users", p.handleUserCreate)
	admin("PUT /api/users/{id}", p.handleUserUpdate)
	superAdmin("POST /api/users/{id}/role", p.handleUserRole)
	superAdmin("DELETE /api/users/{id}", p.handleUserDelete)

	admin("GET /api/modules/{id}/menu/full", p.handleMenuFull)
	admin("POST /api/modules/{id}/menu/items", p.handleMenuInsert)
	admin("PATCH /api/modules/{id}/menu/items/{item}", p.handleMenuUpdate)
	admin("DELETE /api/modules/{id}/menu/items/{item}", p.handleMenuRemove)

	superAdmin("GET /api/workflows", p.handleWorkflowsList)
	superAdmin("POST /api/workflows/{id}", p.handleWorkflowToggle)

	admin("GET /api/audit", p.handleAuditList)
}

// writeJSON writes a JSON response with the given status code.
func (p *Portal) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		p.logger.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (p *Portal) writeError(w http.ResponseWriter, status int, msg string) {
	p.writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain errors to HTTP status codes.
func (p *Portal) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, menu.ErrNodeNotFound),
		errors.Is(err, menu.ErrParentNotFound),
		errors.Is(err, module.ErrModuleNotFound):
		p.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, menu.ErrDuplicateID),
		errors.Is(err, store.ErrDuplicateUser):
		p.writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, menu.ErrEmptyID),
		errors.Is(err, menu.ErrUnknownRole):
		p.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, nav.ErrNoActiveModule):
		p.writeError(w, http.StatusConflict, err.Error())
	default:
		p.logger.Error("internal error", "error", err)
		p.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// renderMarkdown converts a markdown summary to HTML. On failure the raw
// text is returned so the caller always has something to display.
func (p *Portal) renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		p.logger.Error("failed to convert markdown", "error", err)
		return md
	}
	return buf.String()
}

func (p *Portal) handleHealth(w http.ResponseWriter, r *http.Request) {
	p.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
