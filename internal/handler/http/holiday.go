package http

import (
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type HolidayYearHandler interface {
	GetActive(w http.ResponseWriter, r *http.Request)
	ListEntitlements(w http.ResponseWriter, r *http.Request)
	Rollover(w http.ResponseWriter, r *http.Request)
}

type holidayYearHandlerImpl struct {
	holidayYearService holiday.HolidayYearService
}

func NewHolidayYearHandler(holidayYearService holiday.HolidayYearService) HolidayYearHandler {
	return &holidayYearHandlerImpl{
		holidayYearService: holidayYearService,
	}
}

// GetActive implements HolidayYearHandler.
func (h *holidayYearHandlerImpl) GetActive(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	result, err := h.holidayYearService.GetActiveYear(r.Context(), c.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEntitlements implements HolidayYearHandler.
func (h *holidayYearHandlerImpl) ListEntitlements(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	result, err := h.holidayYearService.ListEntitlements(r.Context(), c.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Rollover implements HolidayYearHandler.
func (h *holidayYearHandlerImpl) Rollover(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req holiday.RolloverRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = c.CompanyID

	result, err := h.holidayYearService.Rollover(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday year rolled over", result)
}
