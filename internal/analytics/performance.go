package analytics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"futuresjournal/internal/domain"
)

// PerformanceMetrics holds the full performance report computed over a trade
// set. MaxDrawdown is a peak-relative ratio and is zero or negative;
// AverageLoss, LargestLoss and losing-day figures are negative dollar values.
type PerformanceMetrics struct {
	// Trade-level counts and totals
	TotalTrades     int     `json:"totalTrades"`
	WinningTrades   int     `json:"winningTrades"`
	LosingTrades    int     `json:"losingTrades"`
	BreakEvenTrades int     `json:"breakEvenTrades"`
	WinRate         float64 `json:"winRate"` // percent, 0-100
	TotalPnL        float64 `json:"totalPnL"`
	NetPnL          float64 `json:"netPnL"`
	TotalCommission float64 `json:"totalCommission"`
	TotalFees       float64 `json:"totalFees"`
	TotalSwap       float64 `json:"totalSwap"`
	GrossProfit     float64 `json:"grossProfit"`
	GrossLoss       float64 `json:"grossLoss"`
	AverageWin      float64 `json:"averageWin"`
	AverageLoss     float64 `json:"averageLoss"` // negative
	AverageTradePnL float64 `json:"averageTradePnL"`
	LargestWin      float64 `json:"largestWin"`
	LargestLoss     float64 `json:"largestLoss"` // negative
	ProfitFactor    float64 `json:"profitFactor"`
	Expectancy      float64 `json:"expectancy"`
	RiskRewardRatio float64 `json:"riskRewardRatio"`
	TradeFrequency  float64 `json:"tradeFrequency"` // trades per calendar day over the traded span

	// Streaks
	MaxConsecutiveWins   int    `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int    `json:"maxConsecutiveLosses"`
	CurrentTradeStreak   Streak `json:"currentTradeStreak"`
	CurrentDayStreak     Streak `json:"currentDayStreak"`

	// Daily aggregates
	TradingDays               int     `json:"tradingDays"`
	WinningDays               int     `json:"winningDays"`
	LosingDays                int     `json:"losingDays"`
	BreakEvenDays             int     `json:"breakEvenDays"`
	AverageDailyPnL           float64 `json:"averageDailyPnL"`
	AverageWinningDayPnL      float64 `json:"averageWinningDayPnL"`
	AverageLosingDayPnL       float64 `json:"averageLosingDayPnL"` // negative
	LargestProfitableDay      float64 `json:"largestProfitableDay"`
	LargestLosingDay          float64 `json:"largestLosingDay"` // negative
	MaxConsecutiveWinningDays int     `json:"maxConsecutiveWinningDays"`
	MaxConsecutiveLosingDays  int     `json:"maxConsecutiveLosingDays"`

	// Risk metrics
	SharpeRatio  float64 `json:"sharpeRatio"`
	SortinoRatio float64 `json:"sortinoRatio"`
	MaxDrawdown  float64 `json:"maxDrawdown"` // peak-relative ratio, <= 0

	// Curves and breakdowns
	EquityCurve       []EquityPoint      `json:"equityCurve"`
	DrawdownPeriods   []DrawdownPeriod   `json:"drawdownPeriods"`
	HourlyPerformance []BucketStats      `json:"hourlyPerformance"` // 24 buckets, UTC hour of day
	DailyPerformance  []BucketStats      `json:"dailyPerformance"`  // 7 buckets, UTC day of week
	MonthlyPnL        map[string]float64 `json:"monthlyPnL"`        // keyed "2006-01"
	BestMonth         float64            `json:"bestMonth"`
	WorstMonth        float64            `json:"worstMonth"`
	AverageMonthlyPnL float64            `json:"averageMonthlyPnL"`

	// Composite 0-100 journal score (presentation blend, not a statistic)
	CompositeScore float64 `json:"compositeScore"`
}

// Streak is a run of consecutive same-outcome results ending at the most
// recent trade or day. Non-positive results count as losses.
type Streak struct {
	Count   int  `json:"count"`
	Winning bool `json:"winning"`
}

// EquityPoint is a point on the equity curve, recorded after each closed
// trade in chronological order.
type EquityPoint struct {
	Time     time.Time `json:"time"`
	Equity   float64   `json:"equity"`
	Drawdown float64   `json:"drawdown"` // peak-relative ratio at this point, <= 0
}

// DrawdownPeriod is a contiguous stretch spent below a prior equity peak.
type DrawdownPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Depth float64   `json:"depth"` // deepest peak-relative ratio reached, <= 0
}

// BucketStats aggregates trades sharing an hour-of-day or day-of-week bucket.
type BucketStats struct {
	Label   string  `json:"label"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"` // percent, 0-100
	AvgPnL  float64 `json:"avgPnL"`
}

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// AnalyzePerformance computes the full metrics report over a trade set.
// Only closed trades participate. The equity curve is seeded at
// accountBalance and trades are processed in chronological order; the input
// slice is not reordered. An empty trade set yields a zeroed report.
func AnalyzePerformance(trades []*domain.Trade, accountBalance float64) *PerformanceMetrics {
	m := &PerformanceMetrics{
		EquityCurve:     make([]EquityPoint, 0, len(trades)),
		DrawdownPeriods: make([]DrawdownPeriod, 0),
		MonthlyPnL:      make(map[string]float64),
	}
	m.HourlyPerformance = make([]BucketStats, 24)
	for h := range m.HourlyPerformance {
		m.HourlyPerformance[h].Label = time.Date(2000, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
	}
	m.DailyPerformance = make([]BucketStats, 7)
	for d := range m.DailyPerformance {
		m.DailyPerformance[d].Label = weekdayLabels[d]
	}

	closed := make([]*domain.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	if len(closed) == 0 {
		return m
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].Date.Before(closed[j].Date)
	})

	equity := accountBalance
	peak := accountBalance
	returns := make([]float64, 0, len(closed))
	var consecutiveWins, consecutiveLosses int
	var openDrawdown *DrawdownPeriod

	hourWins := make([]int, 24)
	hourPnL := make([]float64, 24)
	dayWins := make([]int, 7)
	dayPnL := make([]float64, 7)

	for _, trade := range closed {
		pnl := trade.PNL
		m.TotalTrades++
		m.TotalPnL += pnl
		m.TotalCommission += trade.Commission
		m.TotalFees += trade.Fees
		m.TotalSwap += trade.Swap
		returns = append(returns, pnl)

		switch {
		case pnl > 0:
			m.WinningTrades++
			m.GrossProfit += pnl
			if pnl > m.LargestWin {
				m.LargestWin = pnl
			}
			consecutiveWins++
			consecutiveLosses = 0
		case pnl < 0:
			m.LosingTrades++
			m.GrossLoss += -pnl
			if pnl < m.LargestLoss {
				m.LargestLoss = pnl
			}
			consecutiveLosses++
			consecutiveWins = 0
		default:
			m.BreakEvenTrades++
			consecutiveWins = 0
			consecutiveLosses = 0
		}
		if consecutiveWins > m.MaxConsecutiveWins {
			m.MaxConsecutiveWins = consecutiveWins
		}
		if consecutiveLosses > m.MaxConsecutiveLosses {
			m.MaxConsecutiveLosses = consecutiveLosses
		}

		// Hour-of-day and day-of-week buckets use the trade's UTC timestamp,
		// matching the calendar aggregation.
		d := trade.Date.UTC()
		hour, weekday := d.Hour(), int(d.Weekday())
		m.HourlyPerformance[hour].Trades++
		hourPnL[hour] += pnl
		m.DailyPerformance[weekday].Trades++
		dayPnL[weekday] += pnl
		if pnl > 0 {
			hourWins[hour]++
			dayWins[weekday]++
		}

		m.MonthlyPnL[d.Format("2006-01")] += pnl

		// Equity curve and peak-relative drawdown. A zero peak would divide
		// by zero, so drawdown is defined as 0 until the first positive peak.
		equity += pnl
		if equity > peak {
			peak = equity
			if openDrawdown != nil {
				openDrawdown.End = trade.Date
				m.DrawdownPeriods = append(m.DrawdownPeriods, *openDrawdown)
				openDrawdown = nil
			}
		}
		var drawdown float64
		if peak > 0 {
			drawdown = (equity - peak) / peak
		}
		if drawdown < 0 {
			if openDrawdown == nil {
				openDrawdown = &DrawdownPeriod{Start: trade.Date, Depth: drawdown}
			} else if drawdown < openDrawdown.Depth {
				openDrawdown.Depth = drawdown
			}
			if drawdown < m.MaxDrawdown {
				m.MaxDrawdown = drawdown
			}
		}
		m.EquityCurve = append(m.EquityCurve, EquityPoint{
			Time:     trade.Date,
			Equity:   equity,
			Drawdown: drawdown,
		})
	}
	if openDrawdown != nil {
		openDrawdown.End = closed[len(closed)-1].Date
		m.DrawdownPeriods = append(m.DrawdownPeriods, *openDrawdown)
	}

	m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
	if m.WinningTrades > 0 {
		m.AverageWin = m.GrossProfit / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AverageLoss = -m.GrossLoss / float64(m.LosingTrades)
	}
	if m.GrossLoss > 0 {
		m.ProfitFactor = m.GrossProfit / m.GrossLoss
	}
	if m.AverageLoss < 0 {
		m.RiskRewardRatio = m.AverageWin / -m.AverageLoss
	}
	m.AverageTradePnL = m.TotalPnL / float64(m.TotalTrades)
	m.NetPnL = m.TotalPnL - m.TotalCommission

	winFrac := float64(m.WinningTrades) / float64(m.TotalTrades)
	lossFrac := float64(m.LosingTrades) / float64(m.TotalTrades)
	m.Expectancy = winFrac*m.AverageWin + lossFrac*m.AverageLoss

	// Trade frequency over the traded span in calendar days, floored at one
	// day so a single session still yields a finite rate.
	span := closed[len(closed)-1].Date.Sub(closed[0].Date).Hours() / 24
	if span < 1 {
		span = 1
	}
	m.TradeFrequency = float64(m.TotalTrades) / span

	m.SharpeRatio, m.SortinoRatio = riskRatios(returns)
	m.CurrentTradeStreak = currentStreak(returns)
	finishBuckets(m.HourlyPerformance, hourWins, hourPnL)
	finishBuckets(m.DailyPerformance, dayWins, dayPnL)
	m.analyzeDays(closed)
	m.analyzeMonths()
	m.CompositeScore = compositeScore(m)

	return m
}

// riskRatios computes the Sharpe and Sortino ratios over raw per-trade
// returns (not annualized). Sharpe divides the mean return by the population
// standard deviation; Sortino divides it by the downside deviation, computed
// over negative returns relative to the overall mean. Zero-variance or
// all-positive sets return 0 rather than NaN or Inf.
func riskRatios(returns []float64) (sharpe, sortino float64) {
	if len(returns) == 0 {
		return 0, 0
	}
	mean := stat.Mean(returns, nil)
	sd := stat.PopStdDev(returns, nil)
	if sd > 0 {
		sharpe = mean / sd
	}

	var downSum float64
	var downCount int
	for _, r := range returns {
		if r < 0 {
			diff := r - mean
			downSum += diff * diff
			downCount++
		}
	}
	if downCount > 0 {
		dd := math.Sqrt(downSum / float64(downCount))
		if dd > 0 {
			sortino = mean / dd
		}
	}
	return sharpe, sortino
}

// currentStreak walks results backwards from the most recent entry and
// counts the run of consecutive same-outcome values. Non-positive values
// count as losses.
func currentStreak(results []float64) Streak {
	if len(results) == 0 {
		return Streak{}
	}
	winning := results[len(results)-1] > 0
	count := 0
	for i := len(results) - 1; i >= 0; i-- {
		if (results[i] > 0) != winning {
			break
		}
		count++
	}
	return Streak{Count: count, Winning: winning}
}

func finishBuckets(buckets []BucketStats, wins []int, pnl []float64) {
	for i := range buckets {
		if buckets[i].Trades == 0 {
			continue
		}
		n := float64(buckets[i].Trades)
		buckets[i].WinRate = float64(wins[i]) / n * 100
		buckets[i].AvgPnL = pnl[i] / n
	}
}

// analyzeDays aggregates closed trades into calendar days (UTC) and derives
// the day-level statistics and streaks. The trades are already sorted.
func (m *PerformanceMetrics) analyzeDays(closed []*domain.Trade) {
	dailyPnL := make(map[string]float64)
	days := make([]string, 0)
	for _, t := range closed {
		key := t.Date.UTC().Format("2006-01-02")
		if _, seen := dailyPnL[key]; !seen {
			days = append(days, key)
		}
		dailyPnL[key] += t.PNL
	}
	sort.Strings(days)

	m.TradingDays = len(days)
	var winStreak, lossStreak int
	var totalDaily float64
	ordered := make([]float64, 0, len(days))
	for _, day := range days {
		pnl := dailyPnL[day]
		ordered = append(ordered, pnl)
		totalDaily += pnl
		switch {
		case pnl > 0:
			m.WinningDays++
			m.AverageWinningDayPnL += pnl
			if pnl > m.LargestProfitableDay {
				m.LargestProfitableDay = pnl
			}
			winStreak++
			lossStreak = 0
		case pnl < 0:
			m.LosingDays++
			m.AverageLosingDayPnL += pnl
			if pnl < m.LargestLosingDay {
				m.LargestLosingDay = pnl
			}
			lossStreak++
			winStreak = 0
		default:
			m.BreakEvenDays++
			winStreak = 0
			lossStreak = 0
		}
		if winStreak > m.MaxConsecutiveWinningDays {
			m.MaxConsecutiveWinningDays = winStreak
		}
		if lossStreak > m.MaxConsecutiveLosingDays {
			m.MaxConsecutiveLosingDays = lossStreak
		}
	}
	if m.WinningDays > 0 {
		m.AverageWinningDayPnL /= float64(m.WinningDays)
	}
	if m.LosingDays > 0 {
		m.AverageLosingDayPnL /= float64(m.LosingDays)
	}
	if m.TradingDays > 0 {
		m.AverageDailyPnL = totalDaily / float64(m.TradingDays)
	}
	m.CurrentDayStreak = currentStreak(ordered)
}

func (m *PerformanceMetrics) analyzeMonths() {
	if len(m.MonthlyPnL) == 0 {
		return
	}
	first := true
	var total float64
	for _, pnl := range m.MonthlyPnL {
		if first {
			m.BestMonth = pnl
			m.WorstMonth = pnl
			first = false
		}
		if pnl > m.BestMonth {
			m.BestMonth = pnl
		}
		if pnl < m.WorstMonth {
			m.WorstMonth = pnl
		}
		total += pnl
	}
	m.AverageMonthlyPnL = total / float64(len(m.MonthlyPnL))
}

// MonthlyReturn is a month keyed PnL total.
type MonthlyReturn struct {
	Month  time.Time `json:"month"`
	Return float64   `json:"return"`
}

// GetMonthlyReturns returns the monthly PnL map as a slice sorted by month.
func (m *PerformanceMetrics) GetMonthlyReturns() []MonthlyReturn {
	returns := make([]MonthlyReturn, 0, len(m.MonthlyPnL))
	for month, profit := range m.MonthlyPnL {
		date, err := time.Parse("2006-01", month)
		if err != nil {
			continue
		}
		returns = append(returns, MonthlyReturn{Month: date, Return: profit})
	}
	sort.Slice(returns, func(i, j int) bool {
		return returns[i].Month.Before(returns[j].Month)
	})
	return returns
}

// compositeScore blends win rate, risk/reward, profit factor, drawdown and
// trade frequency into a single 0-100 display value. It is a presentation
// metric, not a rigorous statistic.
func compositeScore(m *PerformanceMetrics) float64 {
	score := m.WinRate*0.3 +
		math.Min(m.RiskRewardRatio, 5)/5*100*0.2 +
		math.Min(m.ProfitFactor, 5)/5*100*0.2 +
		(1-math.Min(math.Abs(m.MaxDrawdown), 1))*100*0.2 +
		m.TradeFrequency*100*0.1
	return math.Min(100, math.Max(0, score))
}
