package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/pkg/database"
)

type clockCorrectionRepository struct {
	db *database.DB
}

// Create implements clock.CorrectionRepository.
func (r *clockCorrectionRepository) Create(ctx context.Context, c clock.Correction) (clock.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clock_session_corrections (
			id, session_id, company_id, field, old_value, new_value, notes, corrected_by, corrected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := q.Exec(ctx, query,
		c.ID,
		c.SessionID,
		c.CompanyID,
		c.Field,
		c.OldValue,
		c.NewValue,
		c.Notes,
		c.CorrectedBy,
		c.CorrectedAt,
	)
	if err != nil {
		return clock.Correction{}, fmt.Errorf("failed to create clock correction: %w", err)
	}

	return c, nil
}

// ListBySession implements clock.CorrectionRepository.
func (r *clockCorrectionRepository) ListBySession(ctx context.Context, sessionID string, companyID string) ([]clock.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, session_id, company_id, field, old_value, new_value, notes, corrected_by, corrected_at
		FROM clock_session_corrections
		WHERE session_id = $1 AND company_id = $2
		ORDER BY corrected_at, id
	`

	rows, err := q.Query(ctx, query, sessionID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock corrections: %w", err)
	}
	defer rows.Close()

	var corrections []clock.Correction
	for rows.Next() {
		var c clock.Correction
		if err := rows.Scan(
			&c.ID, &c.SessionID, &c.CompanyID, &c.Field, &c.OldValue, &c.NewValue, &c.Notes, &c.CorrectedBy, &c.CorrectedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clock correction: %w", err)
		}
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clock corrections: %w", err)
	}

	return corrections, nil
}

func NewClockCorrectionRepository(db *database.DB) clock.CorrectionRepository {
	return &clockCorrectionRepository{db: db}
}
