package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"futuresjournal/config"
	"futuresjournal/internal/adapters/logger"
	"futuresjournal/internal/adapters/sqlite"
	"futuresjournal/internal/analytics"
	"futuresjournal/internal/app"
	"futuresjournal/internal/domain"
)

func main() {
	email := flag.String("user", "", "email of the account to report on")
	monthStr := flag.String("month", time.Now().UTC().Format("2006-01"), "month to report on (YYYY-MM)")
	flag.Parse()

	if *email == "" {
		log.Fatal("FATAL: -user is required")
	}
	month, err := time.Parse("2006-01", *monthStr)
	if err != nil {
		log.Fatalf("FATAL: invalid -month %q, expected YYYY-MM", *monthStr)
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger (warnings and up; this tool prints to stdout)
	appLogger := logger.New(logger.ParseLevel("WARN"))

	// 3. Initialize Repository
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	service, err := app.NewJournalService(repo, appLogger, cfg.AccountBalance)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize journal service: %v", err)
	}

	ctx := context.Background()
	user, err := repo.FindUserByEmail(ctx, *email)
	if err != nil {
		log.Fatalf("FATAL: Failed to look up user: %v", err)
	}
	if user == nil {
		log.Fatalf("FATAL: No user found for %s", *email)
	}

	summary, err := service.Summary(ctx, user.ID, domain.ViewMonthly, month.UTC())
	if err != nil {
		log.Fatalf("FATAL: Failed to compute summary: %v", err)
	}
	report, err := service.Report(ctx, user.ID, domain.ViewMonthly, month.UTC())
	if err != nil {
		log.Fatalf("FATAL: Failed to compute report: %v", err)
	}
	calendar, err := service.Calendar(ctx, user.ID, month.UTC())
	if err != nil {
		log.Fatalf("FATAL: Failed to compute calendar: %v", err)
	}

	printReport(summary, report.Metrics, calendar)
}

func printReport(s *analytics.TradeSummary, m *analytics.PerformanceMetrics, c *analytics.CalendarResult) {
	fmt.Printf("## %s\n\n", s.Period)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Trades\tWinRate\tTotalPnL\tNetPnL\tProfitFactor\tExpectancy\tSharpe\tSortino\tMaxDD\t")
	fmt.Fprintf(w, "%d\t%.1f%%\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.1f%%\t\n",
		s.TotalTrades,
		s.WinRate,
		s.TotalPnL,
		s.NetPnL,
		s.ProfitFactor,
		m.Expectancy,
		m.SharpeRatio,
		m.SortinoRatio,
		m.MaxDrawdown*100,
	)
	w.Flush()

	fmt.Println("\n## Weekly breakdown")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Week\tTrades\tWinRate\tPnL\tCumulative\tBestDay\tWorstDay\t")
	for _, week := range c.WeeklySummaries {
		fmt.Fprintf(w, "%d\t%d\t%.1f%%\t%.2f\t%.2f\t%.2f\t%.2f\t\n",
			week.Week, week.Trades, week.WinRate, week.PnL, week.CumulativePnL, week.MaxProfit, week.MaxDrawdown)
	}
	w.Flush()

	fmt.Printf("\nMonthly: pnl=%.2f trades=%d winRate=%.1f%% avgDaily=%.2f bestDay=%.2f worstDay=%.2f\n",
		c.MonthlySummary.PnL,
		c.MonthlySummary.Trades,
		c.MonthlySummary.WinRate,
		c.MonthlySummary.AvgDailyPnL,
		c.MonthlySummary.MaxProfit,
		c.MonthlySummary.MaxDrawdown,
	)
	fmt.Printf("Journal score: %.1f/100\n", m.CompositeScore)
}
