package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"futuresjournal/internal/domain"
)

func tradeOn(date time.Time) *domain.Trade {
	return &domain.Trade{Date: date, Symbol: "ES", Status: domain.StatusClosed, PNL: 1}
}

func TestFilterTrades(t *testing.T) {
	trades := []*domain.Trade{
		tradeOn(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)),  // Sunday, prior week
		tradeOn(time.Date(2025, 6, 16, 9, 30, 0, 0, time.UTC)), // Monday
		tradeOn(time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)), // Wednesday
		tradeOn(time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)),  // Thursday midnight
		tradeOn(time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)),  // next Monday midnight
		tradeOn(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),   // July
	}
	anchor := time.Date(2025, 6, 18, 11, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		view     domain.ViewMode
		selected time.Time
		want     int
	}{
		{
			name:     "zero selected returns everything",
			view:     domain.ViewDaily,
			selected: time.Time{},
			want:     6,
		},
		{
			name:     "all view returns everything",
			view:     domain.ViewAll,
			selected: anchor,
			want:     6,
		},
		{
			// The daily window's end boundary is inclusive, so the trade at
			// the following midnight is kept.
			name:     "daily includes next midnight",
			view:     domain.ViewDaily,
			selected: anchor,
			want:     2,
		},
		{
			// Weeks run Monday through Sunday; the next Monday's midnight
			// trade is excluded.
			name:     "weekly starts on Monday",
			view:     domain.ViewWeekly,
			selected: anchor,
			want:     3,
		},
		{
			name:     "monthly keeps the calendar month",
			view:     domain.ViewMonthly,
			selected: anchor,
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTrades(trades, tt.view, tt.selected)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, monday, StartOfWeek(time.Date(2025, 6, 18, 14, 0, 0, 0, time.UTC)), "Wednesday")
	assert.Equal(t, monday, StartOfWeek(monday), "Monday maps to itself")
	assert.Equal(t, monday, StartOfWeek(time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC)), "Sunday belongs to the preceding Monday")
}

func TestStartOfDayAndMonth(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	instant := time.Date(2025, 6, 30, 22, 0, 0, 0, loc) // 2025-07-01 03:00 UTC

	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), StartOfDay(instant))
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), StartOfMonth(instant))
}
