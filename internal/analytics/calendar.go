package analytics

import (
	"time"

	"futuresjournal/internal/domain"
)

// Session types for calendar days.
const (
	SessionRegular = "regular"
	SessionHoliday = "holiday"
)

// CalendarDay is one cell of the month grid. Filler cells padding the grid
// to full weeks carry no trades and are excluded from all monthly statistics.
type CalendarDay struct {
	Date            time.Time       `json:"date"`
	NetPnL          float64         `json:"netPnL"`
	TradeCount      int             `json:"tradeCount"`
	Trades          []*domain.Trade `json:"trades"`
	CumulativePnL   float64         `json:"cumulativePnL"`
	DayOfWeek       int             `json:"dayOfWeek"` // 0 = Sunday
	IsWeekend       bool            `json:"isWeekend"`
	IsMarketHoliday bool            `json:"isMarketHoliday"`
	IsMarketOpen    bool            `json:"isMarketOpen"`
	IsFiller        bool            `json:"isFiller"`
	SessionType     string          `json:"sessionType"`
}

// WeeklySummary aggregates the days of one calendar week within the month.
// A week closes on Saturday or on the final day of the month, whichever
// comes first; the figures are captured at closure time.
type WeeklySummary struct {
	Week          int     `json:"week"`
	PnL           float64 `json:"pnl"`           // net PnL of the week's days
	CumulativePnL float64 `json:"cumulativePnL"` // month running total at closure
	MaxDrawdown   float64 `json:"maxDrawdown"`   // worst single day in the week, <= 0
	MaxProfit     float64 `json:"maxProfit"`     // best single day in the week, >= 0
	WinRate       float64 `json:"winRate"`       // percent over the week's trades
	Trades        int     `json:"trades"`
	WinningTrades int     `json:"winningTrades"`
}

// MonthlySummary aggregates all real days of the month. MaxDrawdown here is
// the most negative single-day net PnL, a deliberate simplification distinct
// from the peak-relative drawdown in PerformanceMetrics.
type MonthlySummary struct {
	PnL           float64 `json:"pnl"`
	Trades        int     `json:"trades"`
	CumulativePnL float64 `json:"cumulativePnL"`
	MaxDrawdown   float64 `json:"maxDrawdown"`
	MaxProfit     float64 `json:"maxProfit"`
	WinRate       float64 `json:"winRate"`
	AvgDailyPnL   float64 `json:"avgDailyPnL"` // over calendar days, not trading days
	AvgTradePnL   float64 `json:"avgTradePnL"`
}

// CalendarResult is the full month view: a 7-aligned grid plus weekly and
// monthly rollups.
type CalendarResult struct {
	Days            []CalendarDay   `json:"days"`
	WeeklySummaries []WeeklySummary `json:"weeklySummaries"`
	MonthlySummary  MonthlySummary  `json:"monthlySummary"`
}

// GenerateCalendar buckets trades into the calendar month containing month
// (UTC day boundaries throughout) and computes per-day aggregates with a
// month-long running total, weekly summaries and the monthly summary. The
// grid is padded with leading and trailing filler days so its length is
// always a multiple of 7. A zero month anchor yields an empty result.
func GenerateCalendar(trades []*domain.Trade, month time.Time) *CalendarResult {
	result := &CalendarResult{
		Days:            make([]CalendarDay, 0, 42),
		WeeklySummaries: make([]WeeklySummary, 0, 6),
	}
	if month.IsZero() {
		return result
	}

	first := StartOfMonth(month)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	firstWeekday := int(first.Weekday())

	// Leading fillers from the previous month pad the first row.
	for i := 0; i < firstWeekday; i++ {
		date := first.AddDate(0, 0, -(firstWeekday - i))
		result.Days = append(result.Days, fillerDay(date, 0))
	}

	tradesByDate := make(map[string][]*domain.Trade)
	for _, t := range trades {
		if t.Date.IsZero() {
			continue
		}
		key := t.Date.UTC().Format("2006-01-02")
		tradesByDate[key] = append(tradesByDate[key], t)
	}

	var cumulativePnL, totalPnL, maxDrawdown, maxProfit float64
	var totalTrades, winningTrades int
	var week WeeklySummary

	for day := 1; day <= daysInMonth; day++ {
		date := first.AddDate(0, 0, day-1)
		dayTrades := tradesByDate[date.Format("2006-01-02")]

		var netPnL float64
		var dayWinning int
		for _, t := range dayTrades {
			netPnL += t.PNL
			if t.PNL > 0 {
				dayWinning++
			}
		}

		totalPnL += netPnL
		totalTrades += len(dayTrades)
		winningTrades += dayWinning
		cumulativePnL += netPnL
		if netPnL < maxDrawdown {
			maxDrawdown = netPnL
		}
		if netPnL > maxProfit {
			maxProfit = netPnL
		}

		week.PnL += netPnL
		week.Trades += len(dayTrades)
		week.WinningTrades += dayWinning
		if netPnL < week.MaxDrawdown {
			week.MaxDrawdown = netPnL
		}
		if netPnL > week.MaxProfit {
			week.MaxProfit = netPnL
		}

		weekday := int(date.Weekday())
		isWeekend := weekday == 0 || weekday == 6
		sessionType := SessionRegular
		if isWeekend {
			sessionType = SessionHoliday
		}
		dayTradesCopy := dayTrades
		if dayTradesCopy == nil {
			dayTradesCopy = []*domain.Trade{}
		}
		result.Days = append(result.Days, CalendarDay{
			Date:            date,
			NetPnL:          netPnL,
			TradeCount:      len(dayTrades),
			Trades:          dayTradesCopy,
			CumulativePnL:   cumulativePnL,
			DayOfWeek:       weekday,
			IsWeekend:       isWeekend,
			IsMarketHoliday: false,
			IsMarketOpen:    !isWeekend,
			SessionType:     sessionType,
		})

		// A week closes on Saturday or on the month's final day. When the
		// month ends on a Saturday both conditions coincide; only one
		// summary is emitted for that week.
		if weekday == 6 || day == daysInMonth {
			week.Week = len(result.WeeklySummaries) + 1
			week.CumulativePnL = cumulativePnL
			if week.Trades > 0 {
				week.WinRate = float64(week.WinningTrades) / float64(week.Trades) * 100
			}
			result.WeeklySummaries = append(result.WeeklySummaries, week)
			week = WeeklySummary{}
		}
	}

	// Trailing fillers pad the last row to a full week.
	last := first.AddDate(0, 0, daysInMonth-1)
	trailing := (7 - (firstWeekday+daysInMonth)%7) % 7
	for i := 1; i <= trailing; i++ {
		result.Days = append(result.Days, fillerDay(last.AddDate(0, 0, i), cumulativePnL))
	}

	result.MonthlySummary = MonthlySummary{
		PnL:           totalPnL,
		Trades:        totalTrades,
		CumulativePnL: cumulativePnL,
		MaxDrawdown:   maxDrawdown,
		MaxProfit:     maxProfit,
		// Divides by calendar days in the month, not trading days.
		AvgDailyPnL: totalPnL / float64(daysInMonth),
	}
	if totalTrades > 0 {
		result.MonthlySummary.WinRate = float64(winningTrades) / float64(totalTrades) * 100
		result.MonthlySummary.AvgTradePnL = totalPnL / float64(totalTrades)
	}

	return result
}

func fillerDay(date time.Time, cumulativePnL float64) CalendarDay {
	weekday := int(date.Weekday())
	return CalendarDay{
		Date:            date,
		Trades:          []*domain.Trade{},
		CumulativePnL:   cumulativePnL,
		DayOfWeek:       weekday,
		IsWeekend:       weekday == 0 || weekday == 6,
		IsMarketHoliday: true,
		IsMarketOpen:    false,
		IsFiller:        true,
		SessionType:     SessionHoliday,
	}
}
