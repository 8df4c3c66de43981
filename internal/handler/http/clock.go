package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ClockHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
	ClockIn(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)
	ChangeShiftRole(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	LinkProvisionalShift(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	ListCorrections(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	EditTimes(w http.ResponseWriter, r *http.Request)
}

type clockHandlerImpl struct {
	clockService clock.ClockService
}

func NewClockHandler(clockService clock.ClockService) ClockHandler {
	return &clockHandlerImpl{
		clockService: clockService,
	}
}

// Status implements ClockHandler.
func (h *clockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	result, err := h.clockService.GetClockStatus(r.Context(), c.Actor())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ClockIn implements ClockHandler.
func (h *clockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Debug("Failed to decode clock in request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()

	result, err := h.clockService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// StartBreak implements ClockHandler.
func (h *clockHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	h.breakTransition(w, r, h.clockService.StartBreak, "Break started")
}

// EndBreak implements ClockHandler.
func (h *clockHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	h.breakTransition(w, r, h.clockService.EndBreak, "Break ended")
}

func (h *clockHandlerImpl) breakTransition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, req clock.BreakRequest) (clock.ClockSessionResponse, error),
	message string,
) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.BreakRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()
	req.SessionID = chi.URLParam(r, "id")

	result, err := fn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, result)
}

// ChangeShiftRole implements ClockHandler.
func (h *clockHandlerImpl) ChangeShiftRole(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.ChangeShiftRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()
	req.SessionID = chi.URLParam(r, "id")

	result, err := h.clockService.ChangeShiftRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift role changed", result)
}

// ClockOut implements ClockHandler.
func (h *clockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.ClockOutRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()
	req.SessionID = chi.URLParam(r, "id")

	result, err := h.clockService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// LinkProvisionalShift implements ClockHandler.
func (h *clockHandlerImpl) LinkProvisionalShift(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.LinkProvisionalShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()

	result, err := h.clockService.LinkProvisionalShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Provisional shift linked", result)
}

// GetSession implements ClockHandler.
func (h *clockHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	result, err := h.clockService.GetSession(r.Context(), c.Actor(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListCorrections implements ClockHandler.
func (h *clockHandlerImpl) ListCorrections(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	result, err := h.clockService.ListCorrections(r.Context(), c.Actor(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListActive implements ClockHandler.
func (h *clockHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	filter := clock.ActiveSessionFilter{
		LocationID:   optionalQuery(r, "location_id"),
		DepartmentID: optionalQuery(r, "department_id"),
	}

	result, err := h.clockService.ListActiveSessions(r.Context(), c.CompanyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EditTimes implements ClockHandler.
func (h *clockHandlerImpl) EditTimes(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req clock.EditSessionTimesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Actor = c.Actor()
	req.SessionID = chi.URLParam(r, "id")

	result, err := h.clockService.EditSessionTimes(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock times corrected", result)
}
