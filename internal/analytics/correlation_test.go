package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"futuresjournal/internal/domain"
)

func TestCorrelationMatrix(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		closedTrade(day, "ES", 100, 0),
		closedTrade(day, "NQ", 10, 0),
		closedTrade(day, "ES", 200, 0),
		closedTrade(day, "NQ", 20, 0),
		closedTrade(day, "ES", 300, 0),
		closedTrade(day, "NQ", 30, 0),
	}

	matrix := CorrelationMatrix(trades)
	require.Len(t, matrix, 2)

	// Symbols appear in order of first occurrence.
	assert.Equal(t, "ES", matrix[0][0].Symbol1)
	assert.Equal(t, "NQ", matrix[0][1].Symbol2)

	assert.InDelta(t, 1.0, matrix[0][0].Correlation, 1e-9, "self correlation")
	assert.InDelta(t, 1.0, matrix[0][1].Correlation, 1e-9, "proportional series")
	assert.InDelta(t, matrix[0][1].Correlation, matrix[1][0].Correlation, 1e-9, "matrix is symmetric")
}

func TestCorrelationMatrixInverseSeries(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		closedTrade(day, "ES", 100, 0),
		closedTrade(day, "GC", -100, 0),
		closedTrade(day, "ES", 300, 0),
		closedTrade(day, "GC", -300, 0),
	}

	matrix := CorrelationMatrix(trades)
	require.Len(t, matrix, 2)
	assert.InDelta(t, -1.0, matrix[0][1].Correlation, 1e-9)
}

func TestCorrelationMatrixDegenerateSeries(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	trades := []*domain.Trade{
		closedTrade(day, "ES", 100, 0),
		closedTrade(day, "ES", 200, 0),
		closedTrade(day, "NQ", 50, 0), // single point: no pair has 2 overlaps
	}

	matrix := CorrelationMatrix(trades)
	require.Len(t, matrix, 2)
	assert.Zero(t, matrix[0][1].Correlation, "fewer than two overlapping points")
	assert.Zero(t, matrix[1][1].Correlation, "single-point self correlation")

	// Zero variance must not leak NaN into the result.
	flat := []*domain.Trade{
		closedTrade(day, "ES", 100, 0),
		closedTrade(day, "ES", 100, 0),
		closedTrade(day, "NQ", 10, 0),
		closedTrade(day, "NQ", 20, 0),
	}
	matrix = CorrelationMatrix(flat)
	assert.Zero(t, matrix[0][1].Correlation)
}

func TestCorrelationMatrixSkipsOpenTrades(t *testing.T) {
	day := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	open := closedTrade(day, "CL", 100, 0)
	open.Status = domain.StatusOpen

	matrix := CorrelationMatrix([]*domain.Trade{open})
	assert.Empty(t, matrix)
}
