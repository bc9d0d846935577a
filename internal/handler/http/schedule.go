package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shifttracker/shifttracker-backend-go/internal/domain/schedule"
	"github.com/shifttracker/shifttracker-backend-go/internal/handler/http/response"
)

type ScheduleHandler interface {
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	DeleteTemplate(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	ListAssignments(w http.ResponseWriter, r *http.Request)
	DeleteAssignment(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// CreateTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var createReq schedule.CreateShiftTemplateRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateTemplate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tmpl, err := h.scheduleService.CreateTemplate(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift template created successfully", tmpl)
}

// ListTemplates implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.scheduleService.ListTemplates(r.Context())
	if err != nil {
		slog.Error("ListTemplates service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, templates)
}

// DeleteTemplate implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteTemplate(r.Context(), id); err != nil {
		slog.Error("DeleteTemplate service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift template deleted successfully", nil)
}

// Assign implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	var assignReq schedule.AssignShiftRequest

	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		slog.Error("Assign decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	assignment, err := h.scheduleService.Assign(r.Context(), assignReq)
	if err != nil {
		slog.Error("Assign service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift assigned successfully", assignment)
}

// ListAssignments implements ScheduleHandler.
func (h *ScheduleHandlerImpl) ListAssignments(w http.ResponseWriter, r *http.Request) {
	filter := schedule.AssignmentFilter{
		EmployeeID: queryStringPtr(r, "employee_id"),
		StartDate:  queryStringPtr(r, "start_date"),
		EndDate:    queryStringPtr(r, "end_date"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	list, err := h.scheduleService.ListAssignments(r.Context(), filter)
	if err != nil {
		slog.Error("ListAssignments service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Assignments, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
	})
}

// DeleteAssignment implements ScheduleHandler.
func (h *ScheduleHandlerImpl) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.scheduleService.DeleteAssignment(r.Context(), id); err != nil {
		slog.Error("DeleteAssignment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift assignment deleted successfully", nil)
}
