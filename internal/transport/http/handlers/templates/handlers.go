package templateshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/templates"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *templates.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *templates.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/templates", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTemplatesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermTemplatesRead, h.Perms)).Get("/{templateID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite, h.Perms)).Put("/{templateID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.Get(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		failTemplateError(w, r, err)
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

type templatePayload struct {
	Name       string               `json:"name"`
	Type       string               `json:"type"`
	Categories []templates.Category `json:"categories"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.Create(r.Context(), templates.Template{
		Name:       payload.Name,
		Type:       payload.Type,
		Categories: payload.Categories,
	})
	if err != nil {
		failTemplateError(w, r, err)
		return
	}
	h.record(r, "templates.create", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")
	before, err := h.Service.Get(r.Context(), templateID)
	if err != nil {
		failTemplateError(w, r, err)
		return
	}

	var payload templatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.Update(r.Context(), templates.Template{
		ID:         templateID,
		Name:       payload.Name,
		Type:       payload.Type,
		Categories: payload.Categories,
	}); err != nil {
		failTemplateError(w, r, err)
		return
	}
	h.record(r, "templates.update", templateID, before, payload)
	api.Success(w, map[string]string{"id": templateID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, action, entityID string, before, after any) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, "template", entityID, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func failTemplateError(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, templates.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "template not found", reqID)
	case errors.Is(err, templates.ErrWeightSum),
		errors.Is(err, templates.ErrInvalidItemType),
		errors.Is(err, templates.ErrInvalidType):
		api.Fail(w, http.StatusBadRequest, "invalid_template", err.Error(), reqID)
	default:
		api.Fail(w, http.StatusInternalServerError, "template_failed", "template operation failed", reqID)
	}
}
