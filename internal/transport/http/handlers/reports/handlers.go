package reportshandler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/reports"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermReportsRead, h.Perms)
	r.Route("/reports", func(r chi.Router) {
		r.With(read).Get("/dashboard", h.handleDashboard)
		r.With(read).Get("/rankings", h.handleRankings)
		r.With(read).Get("/summary/{employeeID}", h.handleSummary)
		r.With(read).Get("/summary/{employeeID}/pdf", h.handleSummaryPDF)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("periodId")
	if periodID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "periodId is required", middleware.GetRequestID(r.Context()))
		return
	}
	dashboard, err := h.Service.Dashboard(r.Context(), periodID)
	if err != nil {
		failReportError(w, r, err)
		return
	}
	api.Success(w, dashboard, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleRankings(w http.ResponseWriter, r *http.Request) {
	periodID := r.URL.Query().Get("periodId")
	if periodID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "periodId is required", middleware.GetRequestID(r.Context()))
		return
	}
	minAppraisals := 0
	if raw := r.URL.Query().Get("minAppraisals"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			minAppraisals = v
		}
	}
	rankings, err := h.Service.Rankings(r.Context(), periodID, minAppraisals)
	if err != nil {
		failReportError(w, r, err)
		return
	}
	api.Success(w, rankings, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.loadSummary(w, r)
	if err != nil {
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSummaryPDF(w http.ResponseWriter, r *http.Request) {
	summary, err := h.loadSummary(w, r)
	if err != nil {
		return
	}
	pdf, err := reports.SummaryPDF(summary)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pdf_failed", "failed to render pdf", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="appraisal-summary.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// loadSummary writes the error response itself; a non-nil error just tells
// the caller to stop.
func (h *Handler) loadSummary(w http.ResponseWriter, r *http.Request) (reports.Summary, error) {
	periodID := r.URL.Query().Get("periodId")
	if periodID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "periodId is required", middleware.GetRequestID(r.Context()))
		return reports.Summary{}, errors.New("missing period")
	}
	summary, err := h.Service.Summary(r.Context(), periodID, chi.URLParam(r, "employeeID"))
	if err != nil {
		failReportError(w, r, err)
		return reports.Summary{}, err
	}
	return summary, nil
}

func failReportError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "resource not found", reqID)
		return
	}
	api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", reqID)
}
