package holiday

import "context"

type HolidayYearService interface {
	// Rollover opens the successor year and carries balances forward in one transaction
	Rollover(ctx context.Context, req RolloverRequest) (RolloverResponse, error)

	GetActiveYear(ctx context.Context, companyID string) (HolidayYearResponse, error)
	ListEntitlements(ctx context.Context, companyID string, yearID string) ([]EntitlementResponse, error)
}
