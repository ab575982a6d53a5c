package recurrence

import (
	"testing"
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	tests := []struct {
		name      string
		from      time.Time
		frequency entity.Frequency
		want      time.Time
	}{
		{"daily", date(2024, 3, 15), entity.FrequencyDaily, date(2024, 3, 16)},
		{"weekly", date(2024, 3, 15), entity.FrequencyWeekly, date(2024, 3, 22)},
		{"biweekly", date(2024, 3, 15), entity.FrequencyBiweekly, date(2024, 3, 29)},
		{"monthly mid-month", date(2024, 3, 15), entity.FrequencyMonthly, date(2024, 4, 15)},
		{"monthly Jan 31 clamps to Feb 29 in leap year", date(2024, 1, 31), entity.FrequencyMonthly, date(2024, 2, 29)},
		{"monthly Jan 31 clamps to Feb 28 otherwise", date(2023, 1, 31), entity.FrequencyMonthly, date(2023, 2, 28)},
		{"monthly May 31 clamps to Jun 30", date(2024, 5, 31), entity.FrequencyMonthly, date(2024, 6, 30)},
		{"monthly crosses year boundary", date(2024, 12, 31), entity.FrequencyMonthly, date(2025, 1, 31)},
		{"quarterly", date(2024, 1, 15), entity.FrequencyQuarterly, date(2024, 4, 15)},
		{"quarterly Nov 30 to Feb 28", date(2023, 11, 30), entity.FrequencyQuarterly, date(2024, 2, 29)},
		{"annually", date(2024, 6, 1), entity.FrequencyAnnually, date(2025, 6, 1)},
		{"annually Feb 29 clamps to Feb 28", date(2024, 2, 29), entity.FrequencyAnnually, date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextOccurrence(tt.from, tt.frequency)
			if !got.Equal(tt.want) {
				t.Errorf("NextOccurrence(%s, %s) = %s, want %s",
					tt.from.Format("2006-01-02"), tt.frequency,
					got.Format("2006-01-02"), tt.want.Format("2006-01-02"))
			}
		})
	}
}

func TestNextOccurrence_MonthlySequenceFromJan31(t *testing.T) {
	// Once clamped to the 29th, the schedule stays on the 29th.
	current := date(2024, 1, 31)
	want := []time.Time{
		date(2024, 2, 29),
		date(2024, 3, 29),
		date(2024, 4, 29),
		date(2024, 5, 29),
	}

	for i, expected := range want {
		current = NextOccurrence(current, entity.FrequencyMonthly)
		if !current.Equal(expected) {
			t.Fatalf("step %d: got %s, want %s", i+1,
				current.Format("2006-01-02"), expected.Format("2006-01-02"))
		}
	}
}

func TestInitialNextProcessDate(t *testing.T) {
	now := date(2024, 3, 15)

	t.Run("future start date is the first occurrence", func(t *testing.T) {
		start := date(2024, 4, 1)
		got := initialNextProcessDate(start, entity.FrequencyMonthly, now)
		if !got.Equal(start) {
			t.Errorf("got %s, want %s", got.Format("2006-01-02"), start.Format("2006-01-02"))
		}
	})

	t.Run("past start date anchors one step ahead", func(t *testing.T) {
		start := date(2024, 1, 31)
		got := initialNextProcessDate(start, entity.FrequencyMonthly, now)
		want := date(2024, 2, 29)
		if !got.Equal(want) {
			t.Errorf("got %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	})

	t.Run("start date equal to now anchors one step ahead", func(t *testing.T) {
		got := initialNextProcessDate(now, entity.FrequencyWeekly, now)
		want := date(2024, 3, 22)
		if !got.Equal(want) {
			t.Errorf("got %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
		}
	})
}
