package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/holiday"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/organization"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Organization / access errors
	case errors.Is(err, organization.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, organization.ErrCompanyIDRequired):
		Forbidden(w, "Company membership required")
	case errors.Is(err, organization.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, organization.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, organization.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, organization.ErrJobRoleNotFound):
		NotFound(w, "Job role not found")
	case errors.Is(err, organization.ErrShiftRoleNotFound):
		NotFound(w, "Shift role not found")

	// Clock domain errors
	case errors.Is(err, clock.ErrAlreadyClockedIn):
		Conflict(w, "You are already clocked in elsewhere")
	case errors.Is(err, clock.ErrAlreadyLinked):
		Conflict(w, "Clock session is already linked to a provisional shift")
	case errors.Is(err, clock.ErrSessionClosed),
		errors.Is(err, clock.ErrNotActive),
		errors.Is(err, clock.ErrNotOnBreak),
		errors.Is(err, clock.ErrSessionStillOpen):
		InvalidState(w, err.Error())
	case errors.Is(err, clock.ErrShiftRoleMismatch):
		InvalidRole(w, "Shift role does not belong to the job role")
	case errors.Is(err, clock.ErrSessionNotFound):
		NotFound(w, "Clock session not found")
	case errors.Is(err, shift.ErrProvisionalShiftNotFound):
		NotFound(w, "Provisional shift not found")

	// Holiday year errors
	case errors.Is(err, holiday.ErrHolidayYearNotFound):
		NotFound(w, "Holiday year not found")
	case errors.Is(err, holiday.ErrNoActiveHolidayYear):
		NotFound(w, "No active holiday year")
	case errors.Is(err, holiday.ErrHolidayYearNotActive),
		errors.Is(err, holiday.ErrSuccessorYearExists),
		errors.Is(err, holiday.ErrRolloverInProgress):
		Conflict(w, err.Error())
	case errors.Is(err, holiday.ErrNegativeBalance):
		writeJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error: &ErrorDetail{
				Code:    "VALIDATION_ERROR",
				Message: err.Error(),
				Details: map[string]string{"allow_negative_holiday_balance": "must be true to carry a negative balance"},
			},
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
