package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"futuresjournal/internal/domain"
)

func closedTrade(date time.Time, symbol string, pnl, commission float64) *domain.Trade {
	return &domain.Trade{
		Date:       date,
		Symbol:     symbol,
		Side:       domain.SideLong,
		Status:     domain.StatusClosed,
		Quantity:   1,
		EntryPrice: 100,
		ExitPrice:  110,
		PNL:        pnl,
		Commission: commission,
	}
}

func TestSummarize(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		closedTrade(day, "ES", 1000, 4),
		closedTrade(day, "ES", -400, 4),
		closedTrade(day, "NQ", 500, 2),
		closedTrade(day, "NQ", 0, 2), // break-even: neither win nor loss
		{Date: day, Symbol: "ES", Side: domain.SideLong, Status: domain.StatusOpen, Quantity: 1, EntryPrice: 100, PNL: 999}, // open, ignored
	}

	s := Summarize(trades, "June 2025")

	assert.Equal(t, "June 2025", s.Period)
	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 2, s.WinningTrades)
	assert.Equal(t, 1, s.LosingTrades)
	assert.InDelta(t, 50.0, s.WinRate, 1e-9)
	assert.InDelta(t, 1100.0, s.TotalPnL, 1e-9)
	assert.InDelta(t, 1500.0, s.GrossProfit, 1e-9)
	assert.InDelta(t, 400.0, s.GrossLoss, 1e-9, "gross loss is a positive magnitude")
	assert.InDelta(t, 750.0, s.AverageWin, 1e-9)
	assert.InDelta(t, -400.0, s.AverageLoss, 1e-9, "average loss is negative")
	assert.InDelta(t, 3.75, s.ProfitFactor, 1e-9)
	assert.InDelta(t, 1000.0, s.LargestWin, 1e-9)
	assert.InDelta(t, -400.0, s.LargestLoss, 1e-9)
	assert.InDelta(t, 12.0, s.TotalCommission, 1e-9)
	assert.InDelta(t, 1088.0, s.NetPnL, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "All time")
	assert.Equal(t, "All time", s.Period)
	assert.Zero(t, s.TotalTrades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor)
	assert.Zero(t, s.NetPnL)
}

func TestSummarizeAllLosses(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	s := Summarize([]*domain.Trade{
		closedTrade(day, "ES", -100, 0),
		closedTrade(day, "ES", -300, 0),
	}, "test")

	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.ProfitFactor, "no gross profit means a zero profit factor, never Inf")
	assert.InDelta(t, -200.0, s.AverageLoss, 1e-9)
	assert.InDelta(t, -300.0, s.LargestLoss, 1e-9)
}
