package shift

import (
	"context"
	"time"
)

// ShiftFilter narrows a date query.
type ShiftFilter struct {
	UserID       *string
	DepartmentID *string
}

// ProvisionalShiftRepository is read-only: rota data is owned by the scheduling collaborator.
type ProvisionalShiftRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (ProvisionalShift, error)

	// ListByDate returns the shifts on date (a calendar day) with display fields joined.
	ListByDate(ctx context.Context, companyID string, date time.Time, filter ShiftFilter) ([]ProvisionalShift, error)
}
