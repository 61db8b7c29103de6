// Package analytics implements the trade-performance computation layer:
// period filtering, summary statistics, performance metrics and calendar
// aggregation. Every function is a pure, deterministic transformation over
// an in-memory trade slice; inputs are never mutated and no function here
// performs I/O or returns an error — degenerate inputs degrade to zeroed
// results instead. All date bucketing uses UTC.
package analytics

import (
	"time"

	"futuresjournal/internal/domain"
)

// FilterTrades selects the subset of trades belonging to the view period
// anchored at selected. A zero selected time returns the full set unfiltered;
// this is a documented fallback, not an error.
func FilterTrades(trades []*domain.Trade, view domain.ViewMode, selected time.Time) []*domain.Trade {
	if selected.IsZero() || view == domain.ViewAll {
		return trades
	}

	var start, end time.Time
	var inclusiveEnd bool
	switch view {
	case domain.ViewDaily:
		start = StartOfDay(selected)
		end = start.AddDate(0, 0, 1)
		inclusiveEnd = true
	case domain.ViewWeekly:
		start = StartOfWeek(selected)
		end = start.AddDate(0, 0, 7)
	case domain.ViewMonthly:
		start = StartOfMonth(selected)
		end = start.AddDate(0, 1, 0)
	default:
		return trades
	}

	filtered := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		d := t.Date.UTC()
		if d.Before(start) {
			continue
		}
		if d.After(end) || (!inclusiveEnd && d.Equal(end)) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// StartOfDay returns UTC midnight of the given instant's calendar day.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns UTC midnight of the Monday on or before the given
// instant (weeks start on Monday for period filtering).
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns UTC midnight of the first day of the instant's month.
func StartOfMonth(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
