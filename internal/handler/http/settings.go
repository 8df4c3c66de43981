package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/settings"
	"github.com/cmlabs-hris/clock-backend-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settingsService settings.SettingsService
}

func NewSettingsHandler(settingsService settings.SettingsService) SettingsHandler {
	return &settingsHandlerImpl{
		settingsService: settingsService,
	}
}

// Get implements SettingsHandler.
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	cfg, err := h.settingsService.GetSettings(r.Context(), c.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings.ToResponse(cfg))
}

// Update implements SettingsHandler. Omitted fields keep their stored value.
func (h *settingsHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	c, ok := callerFromRequest(r)
	if !ok {
		response.Unauthorized(w, "user_id or company_id claim is missing or invalid")
		return
	}

	var req settings.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = c.CompanyID

	result, err := h.settingsService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance settings updated", result)
}
