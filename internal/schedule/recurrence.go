package schedule

import (
	"fmt"
	"time"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

// NextOccurrence computes the due date following anchor for the given
// recurrence. Month and year arithmetic preserves the day of month; when the
// target month is shorter the date clamps to its last day, so Jan 31 + 1
// month lands on Feb 29 in a leap year and Feb 28 otherwise.
func NextOccurrence(anchor time.Time, kind domain.FrequencyKind, interval int) (time.Time, error) {
	if interval < 1 {
		return time.Time{}, fmt.Errorf("interval must be >= 1, got %d", interval)
	}
	switch kind {
	case domain.FrequencyDaily:
		return anchor.AddDate(0, 0, interval), nil
	case domain.FrequencyWeekly:
		return anchor.AddDate(0, 0, 7*interval), nil
	case domain.FrequencyMonthly:
		return addMonthsClamped(anchor, interval), nil
	case domain.FrequencyYearly:
		return addMonthsClamped(anchor, 12*interval), nil
	default:
		return time.Time{}, fmt.Errorf("unknown frequency kind %q", kind)
	}
}

// addMonthsClamped shifts t by months without the day-overflow behavior of
// time.AddDate (which turns Jan 31 + 1 month into Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	m := int(month) + months
	year += (m - 1) / 12
	month = time.Month((m-1)%12 + 1)

	if last := daysIn(year, month); day > last {
		day = last
	}
	hour, min, sec := t.Clock()
	return time.Date(year, month, day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
