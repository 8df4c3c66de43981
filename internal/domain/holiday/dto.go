package holiday

const dateLayout = "2006-01-02"

// ========================================
// HOLIDAY YEAR DTOs
// ========================================

// RolloverRequest closes HolidayYearID, or the active year when it is nil.
type RolloverRequest struct {
	CompanyID                 string  `json:"-"`
	HolidayYearID             *string `json:"holiday_year_id,omitempty"`
	AllowNegativeCarryForward bool    `json:"allow_negative_carry_forward"`
}

type HolidayYearResponse struct {
	ID        string `json:"id"`
	YearName  string `json:"year_name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsActive  bool   `json:"is_active"`
}

func ToYearResponse(y HolidayYear) HolidayYearResponse {
	return HolidayYearResponse{
		ID:        y.ID,
		YearName:  y.YearName,
		StartDate: y.StartDate.Format(dateLayout),
		EndDate:   y.EndDate.Format(dateLayout),
		IsActive:  y.IsActive,
	}
}

type EntitlementResponse struct {
	ID                   string  `json:"id"`
	HolidayYearID        string  `json:"holiday_year_id"`
	UserID               string  `json:"user_id"`
	UserDisplayName      *string `json:"user_display_name,omitempty"`
	AnnualAllowanceHours float64 `json:"annual_allowance_hours"`
	UsedHours            float64 `json:"used_hours"`
	PendingHours         float64 `json:"pending_hours"`
	CarriedForwardHours  float64 `json:"carried_forward_hours"`
	RemainingHours       float64 `json:"remaining_hours"`
}

func ToEntitlementResponse(e HolidayEntitlement) EntitlementResponse {
	return EntitlementResponse{
		ID:                   e.ID,
		HolidayYearID:        e.HolidayYearID,
		UserID:               e.UserID,
		UserDisplayName:      e.UserDisplayName,
		AnnualAllowanceHours: e.AnnualAllowanceHours,
		UsedHours:            e.UsedHours,
		PendingHours:         e.PendingHours,
		CarriedForwardHours:  e.CarriedForwardHours,
		RemainingHours:       e.RemainingHours(),
	}
}

type RolloverResponse struct {
	PreviousYear HolidayYearResponse   `json:"previous_year"`
	NewYear      HolidayYearResponse   `json:"new_year"`
	Entitlements []EntitlementResponse `json:"entitlements"`
}
