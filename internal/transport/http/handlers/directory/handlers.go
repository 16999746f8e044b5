package directoryhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service *directory.Service
	Perms   middleware.PermissionStore
	Audit   *audit.Service
}

func NewHandler(service *directory.Service, perms middleware.PermissionStore, auditSvc *audit.Service) *Handler {
	return &Handler{Service: service, Perms: perms, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	read := middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)
	write := middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)
	periodRead := middleware.RequirePermission(auth.PermPeriodsRead, h.Perms)
	periodWrite := middleware.RequirePermission(auth.PermPeriodsWrite, h.Perms)

	r.Route("/employees", func(r chi.Router) {
		r.With(read).Get("/", h.handleListEmployees)
		r.With(read).Get("/{employeeID}", h.handleGetEmployee)
		r.With(write).Post("/", h.handleCreateEmployee)
		r.With(write).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(read).Get("/{employeeID}/profile", h.handleGetProfile)
		r.With(write).Put("/{employeeID}/profile", h.handleUpsertProfile)
	})
	r.Route("/teams", func(r chi.Router) {
		r.With(read).Get("/", h.handleListTeams)
		r.With(read).Get("/{teamID}", h.handleGetTeam)
		r.With(write).Post("/", h.handleCreateTeam)
		r.With(write).Put("/{teamID}", h.handleUpdateTeam)
	})
	r.Route("/periods", func(r chi.Router) {
		r.With(periodRead).Get("/", h.handleListPeriods)
		r.With(periodRead).Get("/{periodID}", h.handleGetPeriod)
		r.With(periodWrite).Post("/", h.handleCreatePeriod)
		r.With(periodWrite).Put("/{periodID}", h.handleUpdatePeriod)
	})
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"
	employees, err := h.Service.ListEmployees(r.Context(), activeOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failDirectoryError(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}
	api.Success(w, employee, middleware.GetRequestID(r.Context()))
}

type employeePayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	RoleTitle string `json:"roleTitle"`
	Level     string `json:"level"`
	ManagerID string `json:"managerId"`
	TeamID    string `json:"teamId"`
	Status    string `json:"status"`
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.Required("email", payload.Email, "email is required")
	v.Required("level", payload.Level, "level is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), directory.Employee{
		Name:      payload.Name,
		Email:     payload.Email,
		RoleTitle: payload.RoleTitle,
		Level:     payload.Level,
		ManagerID: payload.ManagerID,
		TeamID:    payload.TeamID,
		Status:    payload.Status,
	})
	if err != nil {
		failDirectoryError(w, r, err, "employee_create_failed", "failed to create employee")
		return
	}
	h.record(r, "directory.employee.create", "employee", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	before, err := h.Service.GetEmployee(r.Context(), employeeID)
	if err != nil {
		failDirectoryError(w, r, err, "employee_get_failed", "failed to load employee")
		return
	}

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	updated := directory.Employee{
		ID:        employeeID,
		Name:      payload.Name,
		Email:     payload.Email,
		RoleTitle: payload.RoleTitle,
		Level:     payload.Level,
		ManagerID: payload.ManagerID,
		TeamID:    payload.TeamID,
		Status:    payload.Status,
	}
	if err := h.Service.UpdateEmployee(r.Context(), updated); err != nil {
		failDirectoryError(w, r, err, "employee_update_failed", "failed to update employee")
		return
	}
	h.record(r, "directory.employee.update", "employee", employeeID, before, payload)
	api.Success(w, map[string]string{"id": employeeID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		failDirectoryError(w, r, err, "profile_get_failed", "failed to load profile")
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	var payload struct {
		PhotoURL string   `json:"photoUrl"`
		Bio      string   `json:"bio"`
		Skills   []string `json:"skills"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	profile := directory.Profile{
		EmployeeID: employeeID,
		PhotoURL:   payload.PhotoURL,
		Bio:        payload.Bio,
		Skills:     payload.Skills,
	}
	if err := h.Service.UpsertProfile(r.Context(), profile); err != nil {
		failDirectoryError(w, r, err, "profile_update_failed", "failed to update profile")
		return
	}
	h.record(r, "directory.profile.upsert", "profile", employeeID, nil, payload)
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_list_failed", "failed to list teams", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, teams, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	team, err := h.Service.GetTeam(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		failDirectoryError(w, r, err, "team_get_failed", "failed to load team")
		return
	}
	api.Success(w, team, middleware.GetRequestID(r.Context()))
}

type teamPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	LeaderIDs   []string `json:"leaderIds"`
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var payload teamPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreateTeam(r.Context(), directory.Team{
		Name:        payload.Name,
		Description: payload.Description,
		LeaderIDs:   payload.LeaderIDs,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_create_failed", "failed to create team", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "directory.team.create", "team", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	var payload teamPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateTeam(r.Context(), directory.Team{
		ID:          teamID,
		Name:        payload.Name,
		Description: payload.Description,
		LeaderIDs:   payload.LeaderIDs,
	}); err != nil {
		failDirectoryError(w, r, err, "team_update_failed", "failed to update team")
		return
	}
	h.record(r, "directory.team.update", "team", teamID, nil, payload)
	api.Success(w, map[string]string{"id": teamID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.ListPeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_list_failed", "failed to list periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Service.GetPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		failDirectoryError(w, r, err, "period_get_failed", "failed to load period")
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

type periodPayload struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Status    string `json:"status"`
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("name", payload.Name, "name is required")
	v.PositiveInt("year", payload.Year, "year is required")
	v.Enum("type", payload.Type, directory.PeriodTypes, "must be one of quarter, half, annual, custom")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	id, err := h.Service.CreatePeriod(r.Context(), directory.ReviewPeriod{
		Name:      payload.Name,
		Year:      payload.Year,
		Type:      payload.Type,
		StartDate: start,
		EndDate:   end,
		Status:    payload.Status,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_create_failed", "failed to create period", middleware.GetRequestID(r.Context()))
		return
	}
	h.record(r, "directory.period.create", "period", id, nil, payload)
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePeriod(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")
	before, err := h.Service.GetPeriod(r.Context(), periodID)
	if err != nil {
		failDirectoryError(w, r, err, "period_get_failed", "failed to load period")
		return
	}

	var payload periodPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	v.Enum("status", payload.Status, directory.PeriodStatuses, "must be one of planning, active, completed, archived")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	if err := h.Service.UpdatePeriod(r.Context(), directory.ReviewPeriod{
		ID:        periodID,
		Name:      payload.Name,
		Year:      payload.Year,
		Type:      payload.Type,
		StartDate: start,
		EndDate:   end,
		Status:    payload.Status,
	}); err != nil {
		failDirectoryError(w, r, err, "period_update_failed", "failed to update period")
		return
	}
	h.record(r, "directory.period.update", "period", periodID, before, payload)
	api.Success(w, map[string]string{"id": periodID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) record(r *http.Request, action, entityType, entityID string, before, after any) {
	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.UserID, action, entityType, entityID, before, after); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func failDirectoryError(w http.ResponseWriter, r *http.Request, err error, code, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, directory.ErrNotFound):
		status = http.StatusNotFound
		code = "not_found"
		message = "resource not found"
	case errors.Is(err, directory.ErrInvalidLevel), errors.Is(err, directory.ErrInvalidStatus):
		status = http.StatusBadRequest
		code = "invalid_payload"
		message = err.Error()
	}
	api.Fail(w, status, code, message, middleware.GetRequestID(r.Context()))
}
