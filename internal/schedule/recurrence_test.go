package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/maintenance-service/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name     string
		anchor   time.Time
		kind     domain.FrequencyKind
		interval int
		want     time.Time
	}{
		{"daily", date(2024, time.March, 10), domain.FrequencyDaily, 1, date(2024, time.March, 11)},
		{"daily multi", date(2024, time.March, 10), domain.FrequencyDaily, 14, date(2024, time.March, 24)},
		{"weekly", date(2024, time.March, 10), domain.FrequencyWeekly, 1, date(2024, time.March, 17)},
		{"weekly multi", date(2024, time.March, 10), domain.FrequencyWeekly, 3, date(2024, time.March, 31)},
		{"monthly plain", date(2024, time.March, 15), domain.FrequencyMonthly, 1, date(2024, time.April, 15)},
		{"monthly clamp leap", date(2024, time.January, 31), domain.FrequencyMonthly, 1, date(2024, time.February, 29)},
		{"monthly clamp non-leap", date(2023, time.January, 31), domain.FrequencyMonthly, 1, date(2023, time.February, 28)},
		{"monthly clamp 30-day", date(2024, time.May, 31), domain.FrequencyMonthly, 1, date(2024, time.June, 30)},
		{"monthly across year", date(2024, time.November, 30), domain.FrequencyMonthly, 3, date(2025, time.February, 28)},
		{"yearly plain", date(2024, time.June, 10), domain.FrequencyYearly, 2, date(2026, time.June, 10)},
		{"yearly clamp feb29", date(2024, time.February, 29), domain.FrequencyYearly, 1, date(2025, time.February, 28)},
		{"yearly feb29 to leap", date(2024, time.February, 29), domain.FrequencyYearly, 4, date(2028, time.February, 29)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextOccurrence(tc.anchor, tc.kind, tc.interval)
			require.NoError(t, err)
			assert.True(t, got.Equal(tc.want), "got %s want %s", got, tc.want)
		})
	}
}

func TestNextOccurrenceStrictlyAfterAnchor(t *testing.T) {
	anchors := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 31),
		date(2024, time.February, 29),
		date(2023, time.December, 31),
	}
	kinds := []domain.FrequencyKind{
		domain.FrequencyDaily,
		domain.FrequencyWeekly,
		domain.FrequencyMonthly,
		domain.FrequencyYearly,
	}
	for _, anchor := range anchors {
		for _, kind := range kinds {
			for _, interval := range []int{1, 2, 5, 12, 37} {
				got, err := NextOccurrence(anchor, kind, interval)
				require.NoError(t, err)
				assert.True(t, got.After(anchor),
					"%s + %d %s = %s is not after anchor", anchor, interval, kind, got)
			}
		}
	}
}

func TestNextOccurrencePreservesTimeOfDay(t *testing.T) {
	anchor := time.Date(2024, time.January, 31, 14, 30, 45, 0, time.UTC)
	got, err := NextOccurrence(anchor, domain.FrequencyMonthly, 1)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 14, 30, 45, 0, time.UTC), got)
}

func TestNextOccurrenceRejectsBadInput(t *testing.T) {
	_, err := NextOccurrence(date(2024, time.March, 1), domain.FrequencyDaily, 0)
	assert.Error(t, err)

	_, err = NextOccurrence(date(2024, time.March, 1), domain.FrequencyKind("HOURLY"), 1)
	assert.Error(t, err)
}
