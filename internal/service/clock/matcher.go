package clock

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/clock-backend-go/internal/domain/clock"
	"github.com/cmlabs-hris/clock-backend-go/internal/domain/shift"
)

// FindCandidates returns every shift whose start lies within window of clockIn, bounds included,
// nearest first. It never picks one: linking is an operator decision.
func FindCandidates(clockIn time.Time, shifts []shift.ProvisionalShift, window time.Duration, loc *time.Location) []clock.ProvisionalShiftCandidate {
	type match struct {
		shift    shift.ProvisionalShift
		startsAt time.Time
		offset   time.Duration
	}

	var matches []match
	for _, s := range shifts {
		startsAt := s.StartsAt(loc)
		offset := startsAt.Sub(clockIn)
		if absDuration(offset) > window {
			continue
		}
		matches = append(matches, match{shift: s, startsAt: startsAt, offset: offset})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		ai, aj := absDuration(matches[i].offset), absDuration(matches[j].offset)
		if ai != aj {
			return ai < aj
		}
		return matches[i].startsAt.Before(matches[j].startsAt)
	})

	candidates := make([]clock.ProvisionalShiftCandidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, clock.ProvisionalShiftCandidate{
			ID:               m.shift.ID,
			ShiftDate:        m.shift.ShiftDate.Format("2006-01-02"),
			StartTime:        m.shift.StartTime.Format("15:04"),
			StartsAt:         m.startsAt.Format(time.RFC3339),
			Hours:            m.shift.Hours,
			ShiftLeaveTypeID: m.shift.ShiftLeaveTypeID,
			OffsetMinutes:    int(m.offset.Round(time.Minute) / time.Minute),
		})
	}

	return candidates
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
