package analytics

import (
	"futuresjournal/internal/domain"
)

// TradeSummary holds the headline statistics for a filtered trade set.
// Only closed trades participate. Sign convention: GrossLoss is a positive
// magnitude while AverageLoss and LargestLoss are negative dollar values;
// this single convention is applied across the whole engine.
type TradeSummary struct {
	Period          string  `json:"period"`
	TotalTrades     int     `json:"totalTrades"`
	WinningTrades   int     `json:"winningTrades"`
	LosingTrades    int     `json:"losingTrades"`
	WinRate         float64 `json:"winRate"` // percent, 0-100
	TotalPnL        float64 `json:"totalPnL"`
	GrossProfit     float64 `json:"grossProfit"`
	GrossLoss       float64 `json:"grossLoss"`
	AverageWin      float64 `json:"averageWin"`
	AverageLoss     float64 `json:"averageLoss"` // negative
	ProfitFactor    float64 `json:"profitFactor"`
	LargestWin      float64 `json:"largestWin"`
	LargestLoss     float64 `json:"largestLoss"` // negative
	TotalCommission float64 `json:"totalCommission"`
	NetPnL          float64 `json:"netPnL"`
}

// Summarize computes a TradeSummary over the given trades. An empty or
// all-open trade set yields zeroed metrics with the period label still set;
// every ratio is guarded so the result never contains NaN or Inf.
func Summarize(trades []*domain.Trade, period string) *TradeSummary {
	s := &TradeSummary{Period: period}

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		s.TotalTrades++
		s.TotalPnL += t.PNL
		s.TotalCommission += t.Commission
		switch {
		case t.PNL > 0:
			s.WinningTrades++
			s.GrossProfit += t.PNL
			if t.PNL > s.LargestWin {
				s.LargestWin = t.PNL
			}
		case t.PNL < 0:
			s.LosingTrades++
			s.GrossLoss += -t.PNL
			if t.PNL < s.LargestLoss {
				s.LargestLoss = t.PNL
			}
		}
	}

	if s.TotalTrades > 0 {
		s.WinRate = float64(s.WinningTrades) / float64(s.TotalTrades) * 100
	}
	if s.WinningTrades > 0 {
		s.AverageWin = s.GrossProfit / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = -s.GrossLoss / float64(s.LosingTrades)
	}
	if s.GrossLoss > 0 {
		s.ProfitFactor = s.GrossProfit / s.GrossLoss
	}
	s.NetPnL = s.TotalPnL - s.TotalCommission

	return s
}
