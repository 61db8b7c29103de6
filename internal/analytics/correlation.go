package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"futuresjournal/internal/domain"
)

// SymbolCorrelation is one cell of the symbol-pair correlation matrix.
type SymbolCorrelation struct {
	Symbol1     string  `json:"symbol1"`
	Symbol2     string  `json:"symbol2"`
	Correlation float64 `json:"correlation"`
}

// CorrelationMatrix computes the Pearson correlation of per-trade PnL
// sequences for every pair of symbols in the trade set. Symbols appear in
// order of first occurrence; only closed trades contribute.
//
// The sequences are raw per-trade PnL series, not aligned by date, and may
// differ in length across symbols; pairs are correlated over their common
// prefix. Correlating unaligned series of different lengths is statistically
// unsound, but it is the documented behavior of this engine. Pairs with
// fewer than two overlapping points or with zero variance yield 0.
func CorrelationMatrix(trades []*domain.Trade) [][]SymbolCorrelation {
	symbols := make([]string, 0)
	series := make(map[string][]float64)
	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		if _, seen := series[t.Symbol]; !seen {
			symbols = append(symbols, t.Symbol)
		}
		series[t.Symbol] = append(series[t.Symbol], t.PNL)
	}

	matrix := make([][]SymbolCorrelation, len(symbols))
	for i, s1 := range symbols {
		matrix[i] = make([]SymbolCorrelation, len(symbols))
		for j, s2 := range symbols {
			matrix[i][j] = SymbolCorrelation{
				Symbol1:     s1,
				Symbol2:     s2,
				Correlation: pairCorrelation(series[s1], series[s2]),
			}
		}
	}
	return matrix
}

func pairCorrelation(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return 0
	}
	r := stat.Correlation(a[:n], b[:n], nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}
