package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTrade() *Trade {
	return &Trade{
		Date:       time.Date(2025, 6, 3, 14, 30, 0, 0, time.UTC),
		Symbol:     "ES",
		Side:       SideLong,
		Status:     StatusClosed,
		Quantity:   1,
		EntryPrice: 4500,
		ExitPrice:  4510,
	}
}

func TestTradeValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trade)
		wantErr error
	}{
		{
			name:    "valid closed trade",
			mutate:  func(tr *Trade) {},
			wantErr: nil,
		},
		{
			name: "valid open trade without exit",
			mutate: func(tr *Trade) {
				tr.Status = StatusOpen
				tr.ExitPrice = 0
			},
			wantErr: nil,
		},
		{
			name:    "missing date",
			mutate:  func(tr *Trade) { tr.Date = time.Time{} },
			wantErr: ErrMissingDate,
		},
		{
			name:    "bad side",
			mutate:  func(tr *Trade) { tr.Side = "sideways" },
			wantErr: ErrInvalidSide,
		},
		{
			name:    "bad status",
			mutate:  func(tr *Trade) { tr.Status = "pending" },
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "zero quantity",
			mutate:  func(tr *Trade) { tr.Quantity = 0 },
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			mutate:  func(tr *Trade) { tr.Quantity = -2 },
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "zero entry price",
			mutate:  func(tr *Trade) { tr.EntryPrice = 0 },
			wantErr: ErrInvalidPrice,
		},
		{
			name:    "closed trade without exit price",
			mutate:  func(tr *Trade) { tr.ExitPrice = 0 },
			wantErr: ErrMissingExit,
		},
		{
			name:    "negative commission",
			mutate:  func(tr *Trade) { tr.Commission = -1 },
			wantErr: ErrNegativeCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrade()
			tt.mutate(tr)
			err := tr.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestTradeNormalize(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	tr := &Trade{
		Symbol: "  es ",
		Date:   time.Date(2025, 6, 3, 20, 0, 0, 0, loc),
	}
	tr.Normalize()
	assert.Equal(t, "ES", tr.Symbol)
	assert.Equal(t, time.UTC, tr.Date.Location())
	assert.Equal(t, time.Date(2025, 6, 4, 1, 0, 0, 0, time.UTC), tr.Date)
}

func TestTradeIsWin(t *testing.T) {
	tr := validTrade()
	tr.PNL = 500
	assert.True(t, tr.IsWin())

	tr.PNL = -500
	assert.False(t, tr.IsWin())

	tr.Status = StatusOpen
	tr.PNL = 500
	assert.False(t, tr.IsWin(), "open trades never count as wins")
}
