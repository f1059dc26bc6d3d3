// ABOUTME: API handlers for login, module listing, and navigation sessions
// ABOUTME: Session handlers drive the per-user nav state machine

package portal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/2389/horizon-portal/internal/auth"
	"github.com/2389/horizon-portal/internal/menu"
	"github.com/2389/horizon-portal/internal/module"
	"github.com/2389/horizon-portal/internal/nav"
	"github.com/2389/horizon-portal/internal/routes"
	"github.com/2389/horizon-portal/internal/store"
)

// userResponse is the public shape of a user account.
type userResponse struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email,omitempty"`
	Role             menu.Role `json:"role"`
	Unit             string    `json:"unit,omitempty"`
	Rank             string    `json:"rank,omitempty"`
	Designation      string    `json:"designation,omitempty"`
	ServiceNumber    string    `json:"service_number,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	ClearanceLevel   string    `json:"clearance_level,omitempty"`
	Status           string    `json:"status"`
	ServiceYears     int       `json:"service_years,omitempty"`
	DateOfJoining    string    `json:"date_of_joining,omitempty"`
	DateOfSeniority  string    `json:"date_of_seniority,omitempty"`
	DateOfRetirement string    `json:"date_of_retirement,omitempty"`
}

func toUserResponse(u *store.User) userResponse {
	return userResponse{
		ID:               u.ID,
		Username:         u.Username,
		Email:            u.Email,
		Role:             u.Role,
		Unit:             u.Unit,
		Rank:             u.Rank,
		Designation:      u.Designation,
		ServiceNumber:    u.ServiceNumber,
		Phone:            u.Phone,
		ClearanceLevel:   u.ClearanceLevel,
		Status:           u.Status,
		ServiceYears:     u.ServiceYears,
		DateOfJoining:    u.DateOfJoining,
		DateOfSeniority:  u.DateOfSeniority,
		DateOfRetirement: u.DateOfRetirement,
	}
}

// handleLogin authenticates a user and issues a session token. In demo mode
// unknown usernames get a fresh account with a role inferred from the name,
// and accounts without a password hash log in without one.
func (p *Portal) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		p.writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	user, err := p.store.GetUserByUsername(r.Context(), req.Username)
	switch {
	case err == nil:
		if !p.checkCredentials(user, req.Password) {
			p.metrics.logins.WithLabelValues("denied").Inc()
			p.writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
	case errors.Is(err, store.ErrNotFound) && p.cfg.Auth.DemoMode:
		user = &store.User{
			ID:       uuid.New().String(),
			Username: req.Username,
			Role:     auth.InferDemoRole(req.Username),
			Status:   store.UserStatusActive,
		}
		if err := p.store.CreateUser(r.Context(), user); err != nil {
			p.writeDomainError(w, err)
			return
		}
		p.logger.Info("demo account created", "username", user.Username, "role", user.Role)
	case errors.Is(err, store.ErrNotFound):
		p.metrics.logins.WithLabelValues("denied").Inc()
		p.writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	default:
		p.writeDomainError(w, err)
		return
	}

	if user.Status != store.UserStatusActive {
		p.metrics.logins.WithLabelValues("denied").Inc()
		p.writeError(w, http.StatusForbidden, "account is not active")
		return
	}

	token, err := p.verifier.Generate(user.ID, p.cfg.Auth.TokenTTL)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.metrics.logins.WithLabelValues("ok").Inc()
	p.audit(r, user.Username, "Login", user.Username, store.AuditStatusSuccess)

	p.writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  toUserResponse(user),
	})
}

// checkCredentials reports whether the supplied password is acceptable for
// the account. Accounts without a stored hash are passwordless demo
// accounts and only usable in demo mode.
func (p *Portal) checkCredentials(user *store.User, password string) bool {
	if user.PasswordHash == "" {
		return p.cfg.Auth.DemoMode
	}
	return auth.VerifyPassword(user.PasswordHash, password)
}

func (p *Portal) handleLogout(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())
	p.sessions.drop(authCtx.UserID)
	p.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (p *Portal) handleMe(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())
	user, err := p.store.GetUser(r.Context(), authCtx.UserID)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (p *Portal) handleModulesList(w http.ResponseWriter, r *http.Request) {
	mods := p.registry.List()
	configs := make([]module.Config, 0, len(mods))
	for _, m := range mods {
		configs = append(configs, m.Config)
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"modules": configs})
}

// handleModuleMenu returns the menu tree for a module filtered down to what
// the requesting user may see, honoring workflow kill-switches.
func (p *Portal) handleModuleMenu(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	tree, err := p.registry.Menu(r.PathValue("id"))
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	flags, err := p.store.ListWorkflowFlags(r.Context())
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	visible := menu.Filter(tree, authCtx.Viewer(), flags)
	p.writeJSON(w, http.StatusOK, map[string]any{"menu": visible})
}

// sessionResponse describes the current navigation state of a session.
type sessionResponse struct {
	Context   nav.Context `json:"context"`
	Location  string      `json:"location"`
	View      routes.View `json:"view"`
	Mode      string      `json:"mode,omitempty"`
	Filter    string      `json:"filter,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func toSessionResponse(s *nav.Session) sessionResponse {
	res := routes.Resolve(s.Current())
	return sessionResponse{
		Context:   s.Current(),
		Location:  s.Location(),
		View:      res.View,
		Mode:      res.Mode,
		Filter:    res.Filter,
		RequestID: res.RequestID,
	}
}

func (p *Portal) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())
	entry := p.sessions.get(authCtx.UserID)
	entry.mu.Lock()
	resp := toSessionResponse(entry.session)
	entry.mu.Unlock()
	p.writeJSON(w, http.StatusOK, resp)
}

// handleSessionModule activates a module, optionally landing on a given
// workflow. An empty module id exits to the module-selection screen.
func (p *Portal) handleSessionModule(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var req struct {
		ModuleID string `json:"module_id"`
		Workflow string `json:"workflow"`
		SubMenu  string `json:"sub_menu"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ModuleID != "" && !p.registry.Known(req.ModuleID) {
		p.writeError(w, http.StatusNotFound, "unknown module")
		return
	}

	var target *nav.Context
	if req.Workflow != "" || req.SubMenu != "" {
		target = &nav.Context{Workflow: req.Workflow, SubMenu: req.SubMenu}
	}

	entry := p.sessions.get(authCtx.UserID)
	entry.mu.Lock()
	entry.session.SelectModule(req.ModuleID, target)
	resp := toSessionResponse(entry.session)
	entry.mu.Unlock()

	p.metrics.navigations.WithLabelValues("select_module").Inc()
	p.writeJSON(w, http.StatusOK, resp)
}

func (p *Portal) handleSessionNavigate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var req struct {
		Workflow string `json:"workflow"`
		SubMenu  string `json:"sub_menu"`
		ChildID  string `json:"child_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := p.sessions.get(authCtx.UserID)
	entry.mu.Lock()
	err := entry.session.Navigate(req.Workflow, req.SubMenu, req.ChildID)
	resp := toSessionResponse(entry.session)
	entry.mu.Unlock()

	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	p.metrics.navigations.WithLabelValues("navigate").Inc()
	p.writeJSON(w, http.StatusOK, resp)
}

// handleSessionLocation adopts a browser-observed location, as after a
// back/forward event or on a deep link.
func (p *Portal) handleSessionLocation(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry := p.sessions.get(authCtx.UserID)
	entry.mu.Lock()
	entry.session.ApplyLocation(req.Path)
	resp := toSessionResponse(entry.session)
	entry.mu.Unlock()

	p.metrics.navigations.WithLabelValues("apply_location").Inc()
	p.writeJSON(w, http.StatusOK, resp)
}

func (p *Portal) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())
	entry := p.sessions.get(authCtx.UserID)
	entry.mu.Lock()
	entries := entry.history.Entries()
	entry.mu.Unlock()
	p.writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

// audit records an administrative action. Failures are logged, not surfaced:
// the action itself already succeeded.
func (p *Portal) audit(r *http.Request, actor, action, target, status string) {
	entry := &store.AuditEntry{
		Action:    action,
		Target:    target,
		Actor:     actor,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.AppendAudit(r.Context(), entry); err != nil {
		p.logger.Error("failed to append audit entry", "action", action, "error", err)
	}
}
