package http

import (
	"log/slog"
	"net/http"

	"github.com/shifttracker/shifttracker-backend-go/internal/domain/timesheet"
	"github.com/shifttracker/shifttracker-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetTimesheet(w http.ResponseWriter, r *http.Request)
	GetMyTimesheet(w http.ResponseWriter, r *http.Request)
	GetSummary(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// GetTimesheet implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	filter := timesheetFilterFromQuery(r)

	result, err := h.timesheetService.GetTimesheet(r.Context(), filter)
	if err != nil {
		slog.Error("GetTimesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyTimesheet implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GetMyTimesheet(w http.ResponseWriter, r *http.Request) {
	filter := timesheetFilterFromQuery(r)

	result, err := h.timesheetService.GetMyTimesheet(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyTimesheet service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSummary implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.SummaryFilter{
		TimesheetFilter: timesheetFilterFromQuery(r),
		GroupBy:         r.URL.Query().Get("group_by"),
	}

	result, err := h.timesheetService.GetSummary(r.Context(), filter)
	if err != nil {
		slog.Error("GetTimesheetSummary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func timesheetFilterFromQuery(r *http.Request) timesheet.TimesheetFilter {
	return timesheet.TimesheetFilter{
		EmployeeID: queryStringPtr(r, "employee_id"),
		Department: queryStringPtr(r, "department"),
		StartDate:  queryStringPtr(r, "start_date"),
		EndDate:    queryStringPtr(r, "end_date"),
	}
}
