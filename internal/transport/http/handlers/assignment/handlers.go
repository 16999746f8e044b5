package assignmenthandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/assignment"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/platform/metrics"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *assignment.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *assignment.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermAssignmentsRead, h.Perms)
	build := middleware.RequirePermission(auth.PermAssignmentsBuild, h.Perms)

	r.Route("/assignments", func(r chi.Router) {
		r.With(read).Get("/", h.handleList)
		r.With(read).Get("/{assignmentID}", h.handleGet)
		r.With(read).Get("/counts", h.handleCounts)
		r.With(build).Post("/preview", h.handlePreview)
		r.With(build).Post("/build", h.handleBuild)
		r.With(build).Put("/{assignmentID}/status", h.handleUpdateStatus)
	})
	r.Route("/links", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLinksWrite, h.Perms)).Post("/", h.handleCreateLink)
		// token resolution is the entry point for emailed links, no auth
		r.Get("/resolve/{token}", h.handleResolveLink)
	})
}

type previewPayload struct {
	PeriodID string             `json:"reviewPeriodId"`
	Toggles  assignment.Toggles `json:"toggles"`
}

func (h *Handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	var payload previewPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("reviewPeriodId", payload.PeriodID, "review period id is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	preview, err := h.Service.Preview(r.Context(), payload.PeriodID, payload.Toggles)
	if err != nil {
		failAssignmentError(w, r, err, "preview_failed", "failed to build preview")
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordPreview()
	}
	api.Success(w, preview, middleware.GetRequestID(r.Context()))
}

type buildPayload struct {
	PeriodID  string                     `json:"reviewPeriodId"`
	Toggles   assignment.Toggles         `json:"toggles"`
	Templates assignment.TemplateMapping `json:"templates"`
	DueDate   string                     `json:"dueDate"`
}

func (h *Handler) handleBuild(w http.ResponseWriter, r *http.Request) {
	var payload buildPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("reviewPeriodId", payload.PeriodID, "review period id is required")
	var dueDate *time.Time
	if payload.DueDate != "" {
		if parsed, ok := v.Date("dueDate", payload.DueDate); ok {
			dueDate = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	preview, err := h.Service.Preview(r.Context(), payload.PeriodID, payload.Toggles)
	if err != nil {
		failAssignmentError(w, r, err, "build_failed", "failed to build assignments")
		return
	}
	assignments, err := h.Service.Build(r.Context(), preview, payload.Templates, dueDate)
	if err != nil {
		failAssignmentError(w, r, err, "build_failed", "failed to build assignments")
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordBuild()
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "assignments.build", "period", payload.PeriodID, nil, map[string]any{
		"created":  len(assignments),
		"toggles":  payload.Toggles,
		"warnings": preview.Warnings,
	}); err != nil {
		slog.Warn("audit assignments.build failed", "err", err)
	}
	for _, a := range assignments {
		if err := h.Notify.Notify(r.Context(), a.AppraiserID, notifications.TypeAppraisalAssigned,
			"New appraisal assigned",
			"You have been assigned to appraise "+a.EmployeeName+" for "+a.PeriodName+"."); err != nil {
			slog.Warn("assignment notification failed", "assignment", a.ID, "err", err)
		}
	}

	api.Created(w, map[string]any{
		"assignments": assignments,
		"warnings":    preview.Warnings,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := assignment.ListFilter{
		PeriodID:    query.Get("reviewPeriodId"),
		AppraiserID: query.Get("appraiserId"),
		EmployeeID:  query.Get("employeeId"),
		Status:      query.Get("status"),
	}
	list, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.Get(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		failAssignmentError(w, r, err, "assignment_get_failed", "failed to load assignment")
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCounts(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("periodId")
	if periodID == "" {
		api.Fail(w, http.StatusBadRequest, "missing_period", "periodId query parameter is required", middleware.GetRequestID(r.Context()))
		return
	}
	counts, err := h.Service.CountsByPeriod(r.Context(), periodID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "counts_failed", "failed to count assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, counts, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	assignmentID := chi.URLParam(r, "assignmentID")
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateStatus(r.Context(), assignmentID, payload.Status); err != nil {
		failAssignmentError(w, r, err, "status_update_failed", "failed to update status")
		return
	}
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "assignments.status", "assignment", assignmentID, nil, payload); err != nil {
		slog.Warn("audit assignments.status failed", "err", err)
	}
	api.Success(w, map[string]string{"id": assignmentID, "status": payload.Status}, middleware.GetRequestID(r.Context()))
}

type linkPayload struct {
	AppraiserID  string `json:"appraiserId"`
	EmployeeID   string `json:"employeeId"`
	TemplateID   string `json:"templateId"`
	PeriodID     string `json:"reviewPeriodId"`
	Relationship string `json:"relationship"`
	DueDate      string `json:"dueDate"`
	ExpiresAt    string `json:"expiresAt"`
}

func (h *Handler) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	var payload linkPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("appraiserId", payload.AppraiserID, "appraiser id is required")
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Required("templateId", payload.TemplateID, "template id is required")
	v.Required("reviewPeriodId", payload.PeriodID, "review period id is required")
	req := assignment.LinkRequest{
		AppraiserID:  payload.AppraiserID,
		EmployeeID:   payload.EmployeeID,
		TemplateID:   payload.TemplateID,
		PeriodID:     payload.PeriodID,
		Relationship: payload.Relationship,
	}
	if payload.DueDate != "" {
		if parsed, ok := v.Date("dueDate", payload.DueDate); ok {
			req.DueDate = &parsed
		}
	}
	if payload.ExpiresAt != "" {
		if parsed, ok := v.Date("expiresAt", payload.ExpiresAt); ok {
			req.ExpiresAt = &parsed
		}
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	link, a, err := h.Service.CreateLink(r.Context(), req)
	if err != nil {
		failAssignmentError(w, r, err, "link_create_failed", "failed to create link")
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "links.create", "assignment", a.ID, nil, payload); err != nil {
		slog.Warn("audit links.create failed", "err", err)
	}
	if err := h.Notify.Notify(r.Context(), a.AppraiserID, notifications.TypeLinkIssued,
		"Appraisal link issued",
		"An appraisal link was issued for your review of "+a.EmployeeName+"."); err != nil {
		slog.Warn("link notification failed", "assignment", a.ID, "err", err)
	}

	api.Created(w, map[string]any{
		"link":       link,
		"assignment": a,
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleResolveLink(w http.ResponseWriter, r *http.Request) {
	a, err := h.Service.ResolveLink(r.Context(), chi.URLParam(r, "token"), time.Now())
	if err != nil {
		failAssignmentError(w, r, err, "link_resolve_failed", "failed to resolve link")
		return
	}
	api.Success(w, a, middleware.GetRequestID(r.Context()))
}

func failAssignmentError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, assignment.ErrNotFound), errors.Is(err, assignment.ErrLinkNotFound), errors.Is(err, directory.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", reqID)
	case errors.Is(err, assignment.ErrLinkUsed):
		api.Fail(w, http.StatusGone, "link_used", "link has already been used", reqID)
	case errors.Is(err, assignment.ErrLinkExpired):
		api.Fail(w, http.StatusGone, "link_expired", "link has expired", reqID)
	case errors.Is(err, assignment.ErrMissingTemplate), errors.Is(err, assignment.ErrInvalidStatus):
		api.Fail(w, http.StatusBadRequest, "invalid_payload", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, code, message, reqID)
	}
}
