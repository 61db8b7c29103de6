// Package app contains the journal service orchestrating trade persistence,
// PnL calculation and the analytics engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"futuresjournal/internal/analytics"
	"futuresjournal/internal/domain"
	"futuresjournal/internal/ports"
)

// JournalService implements the trade-journal use cases on top of the
// repository and the pure analytics functions.
type JournalService struct {
	trades         ports.TradeRepository
	log            ports.Logger
	accountBalance float64 // equity-curve baseline for performance reports
}

// NewJournalService creates the service. accountBalance seeds the equity
// curve in performance reports and may be zero.
func NewJournalService(trades ports.TradeRepository, log ports.Logger, accountBalance float64) (*JournalService, error) {
	if trades == nil {
		return nil, errors.New("trade repository is required")
	}
	if log == nil {
		return nil, errors.New("logger is required")
	}
	return &JournalService{trades: trades, log: log, accountBalance: accountBalance}, nil
}

// CreateTrade normalizes, validates and persists a new trade. The dollar PnL
// of a closed trade is always derived from its prices via the contract
// table; a caller-supplied PNL value is ignored.
func (s *JournalService) CreateTrade(ctx context.Context, trade *domain.Trade) (*domain.Trade, error) {
	trade.Normalize()
	if err := trade.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidRequest, err)
	}

	now := time.Now().UTC()
	trade.ID = uuid.NewString()
	trade.CreatedAt = now
	trade.UpdatedAt = now
	s.applyPnL(trade)

	if err := s.trades.CreateTrade(ctx, trade); err != nil {
		s.log.Error(ctx, err, "Failed to persist trade", map[string]interface{}{"userID": trade.UserID, "symbol": trade.Symbol})
		return nil, err
	}
	s.log.Info(ctx, "Trade created", map[string]interface{}{
		"tradeID": trade.ID,
		"symbol":  trade.Symbol,
		"status":  string(trade.Status),
		"pnl":     trade.PNL,
	})
	return trade, nil
}

// UpdateTrade replaces the mutable fields of an existing trade and
// recomputes its PnL.
func (s *JournalService) UpdateTrade(ctx context.Context, userID, tradeID string, updated *domain.Trade) (*domain.Trade, error) {
	existing, err := s.trades.FindTradeByID(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ports.ErrNotFound
	}

	updated.ID = existing.ID
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	updated.Normalize()
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidRequest, err)
	}
	s.applyPnL(updated)

	if err := s.trades.UpdateTrade(ctx, updated); err != nil {
		s.log.Error(ctx, err, "Failed to update trade", map[string]interface{}{"tradeID": tradeID})
		return nil, err
	}
	s.log.Info(ctx, "Trade updated", map[string]interface{}{"tradeID": tradeID, "pnl": updated.PNL})
	return updated, nil
}

// DeleteTrade removes a trade owned by the user.
func (s *JournalService) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	if err := s.trades.DeleteTrade(ctx, userID, tradeID); err != nil {
		s.log.Error(ctx, err, "Failed to delete trade", map[string]interface{}{"tradeID": tradeID})
		return err
	}
	s.log.Info(ctx, "Trade deleted", map[string]interface{}{"tradeID": tradeID})
	return nil
}

// GetTrade retrieves a single trade owned by the user.
func (s *JournalService) GetTrade(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	trade, err := s.trades.FindTradeByID(ctx, userID, tradeID)
	if err != nil {
		return nil, err
	}
	if trade == nil {
		return nil, ports.ErrNotFound
	}
	return trade, nil
}

// ListTrades returns the user's trades ordered by date ascending, optionally
// restricted to the view period anchored at selected.
func (s *JournalService) ListTrades(ctx context.Context, userID string, view domain.ViewMode, selected time.Time) ([]*domain.Trade, error) {
	trades, err := s.trades.FindTradesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.FilterTrades(trades, view, selected), nil
}

// Summary computes the TradeSummary for the user's trades in the given
// period. The period label is emitted even when the filtered set is empty.
func (s *JournalService) Summary(ctx context.Context, userID string, view domain.ViewMode, selected time.Time) (*analytics.TradeSummary, error) {
	filtered, err := s.ListTrades(ctx, userID, view, selected)
	if err != nil {
		return nil, err
	}
	return analytics.Summarize(filtered, periodLabel(view, selected)), nil
}

// Calendar computes the month-grid aggregation for the month containing the
// anchor date.
func (s *JournalService) Calendar(ctx context.Context, userID string, month time.Time) (*analytics.CalendarResult, error) {
	trades, err := s.trades.FindTradesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return analytics.GenerateCalendar(trades, month), nil
}

// Report bundles the full performance metrics and the symbol correlation
// matrix for the user's trades in the given period.
type Report struct {
	Metrics     *analytics.PerformanceMetrics   `json:"metrics"`
	Correlation [][]analytics.SymbolCorrelation `json:"correlationMatrix"`
}

// Report computes the performance report for the user's trades in the given
// period.
func (s *JournalService) Report(ctx context.Context, userID string, view domain.ViewMode, selected time.Time) (*Report, error) {
	filtered, err := s.ListTrades(ctx, userID, view, selected)
	if err != nil {
		return nil, err
	}
	return &Report{
		Metrics:     analytics.AnalyzePerformance(filtered, s.accountBalance),
		Correlation: analytics.CorrelationMatrix(filtered),
	}, nil
}

// applyPnL derives the trade's dollar PnL from its prices. Open trades carry
// no PnL and no exit price.
func (s *JournalService) applyPnL(trade *domain.Trade) {
	if trade.IsClosed() {
		trade.PNL = domain.CalculatePnL(trade.Symbol, trade.Side, trade.Quantity, trade.EntryPrice, trade.ExitPrice)
		return
	}
	trade.ExitPrice = 0
	trade.PNL = 0
}

func periodLabel(view domain.ViewMode, selected time.Time) string {
	if selected.IsZero() {
		return "All time"
	}
	switch view {
	case domain.ViewDaily:
		return selected.UTC().Format("January 2, 2006")
	case domain.ViewWeekly:
		return "Week of " + analytics.StartOfWeek(selected).Format("January 2, 2006")
	case domain.ViewMonthly:
		return selected.UTC().Format("January 2006")
	default:
		return "All time"
	}
}
