package nowboard

import "context"

// NowBoardService is a pure read path over provisional shifts and clock sessions.
type NowBoardService interface {
	GetNowBoard(ctx context.Context, req NowBoardRequest) (NowBoardResponse, error)

	// GetWeeklySummary returns per-day totals only, no role breakdown
	GetWeeklySummary(ctx context.Context, req WeeklySummaryRequest) (WeeklySummaryResponse, error)
}
