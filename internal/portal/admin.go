// ABOUTME: Admin API handlers for users, requests, menu editing, and audit
// ABOUTME: Menu edits persist the updated tree and leave an audit trail

package portal

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/horizon-portal/internal/auth"
	"github.com/2389/horizon-portal/internal/menu"
	"github.com/2389/horizon-portal/internal/store"
)

// requestResponse is the public shape of a workflow request. The markdown
// summary is rendered to HTML server side.
type requestResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	RequesterName   string    `json:"requester_name"`
	RequesterRank   string    `json:"requester_rank,omitempty"`
	RequesterUnit   string    `json:"requester_unit,omitempty"`
	RequesterAvatar string    `json:"requester_avatar,omitempty"`
	Title           string    `json:"title"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Status          string    `json:"status"`
	Summary         string    `json:"summary"`
	SummaryHTML     string    `json:"summary_html"`
	DocumentURL     string    `json:"document_url,omitempty"`
	NextApprover    string    `json:"next_approver,omitempty"`
}

func (p *Portal) toRequestResponse(req *store.Request) requestResponse {
	return requestResponse{
		ID:              req.ID,
		Type:            req.Type,
		RequesterName:   req.RequesterName,
		RequesterRank:   req.RequesterRank,
		RequesterUnit:   req.RequesterUnit,
		RequesterAvatar: req.RequesterAvatar,
		Title:           req.Title,
		SubmittedAt:     req.SubmittedAt,
		Status:          req.Status,
		Summary:         req.Summary,
		SummaryHTML:     p.renderMarkdown(req.Summary),
		DocumentURL:     req.DocumentURL,
		NextApprover:    req.NextApprover,
	}
}

func (p *Portal) handleRequestsList(w http.ResponseWriter, r *http.Request) {
	filter := store.RequestFilter{
		Type:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			p.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	reqs, err := p.store.ListRequests(r.Context(), filter)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	out := make([]requestResponse, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, p.toRequestResponse(req))
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"requests": out})
}

func (p *Portal) handleRequestGet(w http.ResponseWriter, r *http.Request) {
	req, err := p.store.GetRequest(r.Context(), r.PathValue("id"))
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, p.toRequestResponse(req))
}

// handleRequestCreate submits a new workflow request on behalf of the
// authenticated user.
func (p *Portal) handleRequestCreate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body struct {
		Type        string `json:"type"`
		Title       string `json:"title"`
		Summary     string `json:"summary"`
		DocumentURL string `json:"document_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch body.Type {
	case store.RequestTypeLaptop, store.RequestTypeDispensation, store.RequestTypePolicy:
	default:
		p.writeError(w, http.StatusBadRequest, "unknown request type")
		return
	}
	if body.Title == "" {
		p.writeError(w, http.StatusBadRequest, "title is required")
		return
	}

	user, err := p.store.GetUser(r.Context(), authCtx.UserID)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	req := &store.Request{
		ID:            "REQ-" + strings.ToUpper(uuid.New().String()[:8]),
		Type:          body.Type,
		RequesterName: user.Username,
		RequesterRank: user.Rank,
		RequesterUnit: user.Unit,
		Title:         body.Title,
		SubmittedAt:   time.Now().UTC(),
		Status:        store.RequestStatusPending,
		Summary:       body.Summary,
		DocumentURL:   body.DocumentURL,
	}
	if user.Username != "" {
		req.RequesterAvatar = strings.ToUpper(user.Username[:1])
	}

	if err := p.store.SaveRequest(r.Context(), req); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.audit(r, authCtx.Username, "Submit Request", req.ID, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusCreated, p.toRequestResponse(req))
}

// handleRequestDecision approves or rejects a pending request.
func (p *Portal) handleRequestDecision(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body struct {
		Status       string `json:"status"`
		NextApprover string `json:"next_approver"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Status != store.RequestStatusApproved && body.Status != store.RequestStatusRejected {
		p.writeError(w, http.StatusBadRequest, "status must be Approved or Rejected")
		return
	}

	id := r.PathValue("id")
	if err := p.store.UpdateRequestStatus(r.Context(), id, body.Status, body.NextApprover); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.metrics.decisions.WithLabelValues(body.Status).Inc()
	p.audit(r, authCtx.Username, "Request "+body.Status, id, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (p *Portal) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := p.store.ListUsers(r.Context())
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

// userPayload carries user fields for create and update operations.
type userPayload struct {
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             menu.Role `json:"role"`
	Unit             string    `json:"unit"`
	Rank             string    `json:"rank"`
	Designation      string    `json:"designation"`
	ServiceNumber    string    `json:"service_number"`
	Phone            string    `json:"phone"`
	ClearanceLevel   string    `json:"clearance_level"`
	Status           string    `json:"status"`
	ServiceYears     int       `json:"service_years"`
	DateOfJoining    string    `json:"date_of_joining"`
	DateOfSeniority  string    `json:"date_of_seniority"`
	DateOfRetirement string    `json:"date_of_retirement"`
	Password         string    `json:"password"`
}

func (p *Portal) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body userPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" {
		p.writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	role := body.Role
	if role == "" {
		role = menu.RoleNormalUser
	}
	if !role.IsValid() {
		p.writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	status := body.Status
	if status == "" {
		status = store.UserStatusActive
	}

	user := &store.User{
		ID:               uuid.New().String(),
		Username:         body.Username,
		Email:            body.Email,
		Role:             role,
		Unit:             body.Unit,
		Rank:             body.Rank,
		Designation:      body.Designation,
		ServiceNumber:    body.ServiceNumber,
		Phone:            body.Phone,
		ClearanceLevel:   body.ClearanceLevel,
		Status:           status,
		ServiceYears:     body.ServiceYears,
		DateOfJoining:    body.DateOfJoining,
		DateOfSeniority:  body.DateOfSeniority,
		DateOfRetirement: body.DateOfRetirement,
	}
	if body.Password != "" {
		hash, err := auth.HashPassword(body.Password)
		if err != nil {
			p.writeDomainError(w, err)
			return
		}
		user.PasswordHash = hash
	}

	if err := p.store.CreateUser(r.Context(), user); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.audit(r, authCtx.Username, "Add User", user.Username, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleUserUpdate changes a user's service record details. Role changes go
// through the dedicated role endpoint and passwords are never touched here.
func (p *Portal) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body userPayload
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := p.store.GetUser(r.Context(), r.PathValue("id"))
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	if body.Username != "" {
		user.Username = body.Username
	}
	if body.Email != "" {
		user.Email = body.Email
	}
	if body.Unit != "" {
		user.Unit = body.Unit
	}
	if body.Rank != "" {
		user.Rank = body.Rank
	}
	if body.Designation != "" {
		user.Designation = body.Designation
	}
	if body.ServiceNumber != "" {
		user.ServiceNumber = body.ServiceNumber
	}
	if body.Phone != "" {
		user.Phone = body.Phone
	}
	if body.ClearanceLevel != "" {
		user.ClearanceLevel = body.ClearanceLevel
	}
	if body.Status != "" {
		user.Status = body.Status
	}
	if body.ServiceYears != 0 {
		user.ServiceYears = body.ServiceYears
	}
	if body.DateOfJoining != "" {
		user.DateOfJoining = body.DateOfJoining
	}
	if body.DateOfSeniority != "" {
		user.DateOfSeniority = body.DateOfSeniority
	}
	if body.DateOfRetirement != "" {
		user.DateOfRetirement = body.DateOfRetirement
	}

	if err := p.store.UpdateUser(r.Context(), user); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.audit(r, authCtx.Username, "Update User", user.Username, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (p *Portal) handleUserRole(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body struct {
		Role menu.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.Role.IsValid() {
		p.writeError(w, http.StatusBadRequest, "unknown role")
		return
	}

	id := r.PathValue("id")
	if err := p.store.UpdateUserRole(r.Context(), id, body.Role); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.audit(r, authCtx.Username, "Update Role", id, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (p *Portal) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	id := r.PathValue("id")
	if id == authCtx.UserID {
		p.writeError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	if err := p.store.DeleteUser(r.Context(), id); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.sessions.drop(id)
	p.audit(r, authCtx.Username, "Delete User", id, store.AuditStatusWarning)
	p.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMenuFull returns a module's complete unfiltered menu tree for the
// page management screen.
func (p *Portal) handleMenuFull(w http.ResponseWriter, r *http.Request) {
	tree, err := p.registry.Menu(r.PathValue("id"))
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"menu": tree})
}

func (p *Portal) handleMenuInsert(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body struct {
		ParentID string     `json:"parent_id"`
		Node     *menu.Node `json:"node"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Node == nil {
		p.writeError(w, http.StatusBadRequest, "node is required")
		return
	}

	moduleID := r.PathValue("id")
	tree, err := p.registry.InsertMenuItem(moduleID, body.ParentID, body.Node)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	if err := p.store.SaveMenu(r.Context(), moduleID, tree); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.metrics.menuEdits.WithLabelValues("insert").Inc()
	p.audit(r, authCtx.Username, "Menu Add", body.Node.ID, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusCreated, map[string]any{"menu": tree})
}

// menuPatch mirrors menu.Patch with JSON tags. Absent fields stay nil so
// "unchanged" and "clear" remain distinguishable.
type menuPatch struct {
	Label        *string     `json:"label"`
	Icon         *string     `json:"icon"`
	Active       *bool       `json:"active"`
	RoleAccess   []menu.Role `json:"role_access"`
	AllowedUsers []string    `json:"allowed_users"`
}

func (p *Portal) handleMenuUpdate(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body menuPatch
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	moduleID := r.PathValue("id")
	itemID := r.PathValue("item")
	tree, err := p.registry.UpdateMenuItem(moduleID, itemID, menu.Patch{
		Label:        body.Label,
		Icon:         body.Icon,
		Active:       body.Active,
		RoleAccess:   body.RoleAccess,
		AllowedUsers: body.AllowedUsers,
	})
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	if err := p.store.SaveMenu(r.Context(), moduleID, tree); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.metrics.menuEdits.WithLabelValues("update").Inc()
	p.audit(r, authCtx.Username, "Menu Update", itemID, store.AuditStatusSuccess)
	p.writeJSON(w, http.StatusOK, map[string]any{"menu": tree})
}

func (p *Portal) handleMenuRemove(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	moduleID := r.PathValue("id")
	itemID := r.PathValue("item")
	tree, err := p.registry.RemoveMenuItem(moduleID, itemID)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	if err := p.store.SaveMenu(r.Context(), moduleID, tree); err != nil {
		p.writeDomainError(w, err)
		return
	}

	p.metrics.menuEdits.WithLabelValues("remove").Inc()
	p.audit(r, authCtx.Username, "Menu Remove", itemID, store.AuditStatusWarning)
	p.writeJSON(w, http.StatusOK, map[string]any{"menu": tree})
}

func (p *Portal) handleWorkflowsList(w http.ResponseWriter, r *http.Request) {
	flags, err := p.store.ListWorkflowFlags(r.Context())
	if err != nil {
		p.writeDomainError(w, err)
		return
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"workflows": flags})
}

// handleWorkflowToggle flips a workflow kill-switch. Disabled workflows
// disappear from every user's menu on the next fetch.
func (p *Portal) handleWorkflowToggle(w http.ResponseWriter, r *http.Request) {
	authCtx := auth.MustFromContext(r.Context())

	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		p.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	if err := p.store.SetWorkflowEnabled(r.Context(), id, body.Enabled); err != nil {
		p.writeDomainError(w, err)
		return
	}

	status := store.AuditStatusWarning
	action := "Disable Workflow"
	if body.Enabled {
		status = store.AuditStatusSuccess
		action = "Enable Workflow"
	}
	p.audit(r, authCtx.Username, action, id, status)
	p.writeJSON(w, http.StatusOK, map[string]any{"workflow": id, "enabled": body.Enabled})
}

func (p *Portal) handleAuditList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			p.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := p.store.ListAudit(r.Context(), limit)
	if err != nil {
		p.writeDomainError(w, err)
		return
	}

	type auditResponse struct {
		ID        string    `json:"id"`
		Action    string    `json:"action"`
		Target    string    `json:"target,omitempty"`
		Actor     string    `json:"actor"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]auditResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, auditResponse{
			ID:        e.ID,
			Action:    e.Action,
			Target:    e.Target,
			Actor:     e.Actor,
			Status:    e.Status,
			CreatedAt: e.CreatedAt,
		})
	}
	p.writeJSON(w, http.StatusOK, map[string]any{"audit": out})
}
