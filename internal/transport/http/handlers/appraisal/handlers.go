package appraisalhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/assignment"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/platform/metrics"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *appraisal.Service
	Perms   middleware.PermissionStore
	Notify  *notifications.Service
	Audit   *audit.Service
	Metrics *metrics.Collector
}

func NewHandler(service *appraisal.Service, perms middleware.PermissionStore, notify *notifications.Service, auditSvc *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Perms: perms, Notify: notify, Audit: auditSvc, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisals", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAppraisalsWrite, h.Perms)).Post("/", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAppraisalsRead, h.Perms)).Get("/{appraisalID}", h.handleGet)
	})
}

type submitPayload struct {
	AssignmentID string            `json:"assignmentId"`
	Responses    map[string]string `json:"responses"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var payload submitPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("assignmentId", payload.AssignmentID, "assignment id is required")
	if len(payload.Responses) == 0 {
		v.Add("responses", "at least one response is required")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	result, err := h.Service.Submit(r.Context(), payload.AssignmentID, payload.Responses)
	if err != nil {
		failAppraisalError(w, r, err)
		return
	}
	if h.Metrics != nil {
		h.Metrics.RecordSubmission()
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, "appraisals.submit", "appraisal", result.ID, nil, map[string]any{
		"assignmentId": payload.AssignmentID,
		"score":        result.Score,
		"maxScore":     result.MaxScore,
	}); err != nil {
		slog.Warn("audit appraisals.submit failed", "err", err)
	}
	if err := h.Notify.Notify(r.Context(), result.EmployeeID, notifications.TypeAppraisalSubmitted,
		"Appraisal completed",
		"An appraisal about you has been submitted."); err != nil {
		slog.Warn("appraisal notification failed", "appraisal", result.ID, "err", err)
	}

	api.Created(w, result, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := appraisal.ListFilter{
		PeriodID:    query.Get("reviewPeriodId"),
		EmployeeID:  query.Get("employeeId"),
		AppraiserID: query.Get("appraiserId"),
	}
	list, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "appraisal_list_failed", "failed to list appraisals", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Get(r.Context(), chi.URLParam(r, "appraisalID"))
	if err != nil {
		failAppraisalError(w, r, err)
		return
	}
	api.Success(w, result, middleware.GetRequestID(r.Context()))
}

func failAppraisalError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, appraisal.ErrNotFound), errors.Is(err, assignment.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", reqID)
	case errors.Is(err, appraisal.ErrAlreadySubmitted):
		api.Fail(w, http.StatusConflict, "already_submitted", "assignment has already been completed", reqID)
	case errors.Is(err, appraisal.ErrMissingResponses):
		api.Fail(w, http.StatusBadRequest, "missing_responses", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "appraisal_failed", "appraisal operation failed", reqID)
	}
}
