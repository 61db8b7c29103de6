package domain

import (
	"errors"
	"strings"
	"time"
)

// Trade represents a single journaled futures trade owned by a user.
type Trade struct {
	ID         string      // Unique identifier (UUID)
	UserID     string      // Owner of the trade
	Date       time.Time   // When the trade was taken (normalized to UTC)
	Symbol     string      // Instrument ticker (normalized to upper case, e.g. "ES")
	Side       TradeSide   // long or short
	Status     TradeStatus // open or closed
	Quantity   int         // Number of contracts (positive)
	EntryPrice float64     // Price at which the position was entered
	ExitPrice  float64     // Price at which the position was exited (0 while open)
	PNL        float64     // Dollar profit/loss, derived from prices (0 while open)
	Commission float64     // Commission paid, defaults to 0
	Fees       float64     // Exchange/clearing fees, defaults to 0
	Swap       float64     // Overnight financing, defaults to 0
	StopLoss   float64     // Informational only, not used in PnL computation
	TakeProfit float64     // Informational only, not used in PnL computation
	Strategy   string      // Optional strategy label
	Timeframe  string      // Optional chart timeframe label
	Notes      string      // Free-form notes
	Tags       []string    // Optional tags
	CreatedAt  time.Time   // Set on create
	UpdatedAt  time.Time   // Set on create and every update
}

// Validation errors returned by Trade.Validate.
var (
	ErrInvalidSide     = errors.New("trade side must be long or short")
	ErrInvalidStatus   = errors.New("trade status must be open or closed")
	ErrInvalidQuantity = errors.New("trade quantity must be a positive integer")
	ErrInvalidPrice    = errors.New("trade entry price must be positive")
	ErrMissingExit     = errors.New("closed trade requires an exit price")
	ErrMissingDate     = errors.New("trade date is required")
	ErrNegativeCost    = errors.New("commission, fees and swap cannot be negative")
)

// Normalize canonicalizes the mutable fields of a trade: the symbol is
// upper-cased and the date converted to UTC. Numeric costs are already
// value types and default to zero, so no per-callsite guards are needed
// downstream.
func (t *Trade) Normalize() {
	t.Symbol = strings.ToUpper(strings.TrimSpace(t.Symbol))
	if !t.Date.IsZero() {
		t.Date = t.Date.UTC()
	}
}

// Validate checks the structural invariants of a trade. It does not verify
// that PNL matches the prices; that is enforced by the service computing PNL
// rather than accepting it from the caller.
func (t *Trade) Validate() error {
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if !t.Side.IsValid() {
		return ErrInvalidSide
	}
	if !t.Status.IsValid() {
		return ErrInvalidStatus
	}
	if t.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if t.EntryPrice <= 0 {
		return ErrInvalidPrice
	}
	if t.Status == StatusClosed && t.ExitPrice <= 0 {
		return ErrMissingExit
	}
	if t.Commission < 0 || t.Fees < 0 || t.Swap < 0 {
		return ErrNegativeCost
	}
	return nil
}

// IsClosed checks if the trade status is closed.
func (t *Trade) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsWin reports whether the trade finished with a positive PnL.
// Open trades always report false.
func (t *Trade) IsWin() bool {
	return t.IsClosed() && t.PNL > 0
}
