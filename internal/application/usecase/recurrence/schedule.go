// Package recurrence contains the use cases that manage recurring
// transactions and materialize their due occurrences into the ledger.
package recurrence

import (
	"time"

	"github.com/finance-ledger/backend/internal/domain/entity"
)

// NextOccurrence returns the next materialization date after date for the
// given frequency.
//
// Calendar-based steps preserve the day of month where possible and clamp to
// the last valid day of the target month otherwise: Jan 31 plus one month is
// Feb 29 in a leap year, and the schedule continues on the 29th from there.
func NextOccurrence(date time.Time, frequency entity.Frequency) time.Time {
	switch frequency {
	case entity.FrequencyDaily:
		return date.AddDate(0, 0, 1)
	case entity.FrequencyWeekly:
		return date.AddDate(0, 0, 7)
	case entity.FrequencyBiweekly:
		return date.AddDate(0, 0, 14)
	case entity.FrequencyMonthly:
		return addMonthsClamped(date, 1)
	case entity.FrequencyQuarterly:
		return addMonthsClamped(date, 3)
	case entity.FrequencyAnnually:
		return addMonthsClamped(date, 12)
	}
	return date
}

// addMonthsClamped advances date by months whole calendar months, clamping
// the day of month to the last valid day of the target month. time.AddDate
// normalizes instead (Jan 31 + 1 month rolls into Mar 2), which is exactly
// the drift this avoids.
func addMonthsClamped(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	// First of the target month, then clamp the day.
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, date.Location())
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}

	return time.Date(first.Year(), first.Month(), day,
		date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// initialNextProcessDate computes the schedule position of a newly created or
// rescheduled recurring transaction. A future start date is itself the first
// occurrence; a start date that already passed anchors the schedule one
// frequency step ahead of it.
func initialNextProcessDate(startDate time.Time, frequency entity.Frequency, now time.Time) time.Time {
	if startDate.After(now) {
		return startDate
	}
	return NextOccurrence(startDate, frequency)
}

// isValidFrequency validates the frequency value.
func isValidFrequency(frequency entity.Frequency) bool {
	switch frequency {
	case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyBiweekly,
		entity.FrequencyMonthly, entity.FrequencyQuarterly, entity.FrequencyAnnually:
		return true
	}
	return false
}
