package main

import (
	"context"
	"flag"
	"log"

	"futuresjournal/config"
	"futuresjournal/internal/adapters/logger"
	"futuresjournal/internal/adapters/sqlite"
	"futuresjournal/internal/app"
	"futuresjournal/internal/utils"
)

func main() {
	csvPath := flag.String("csv", "", "path to the CSV file to import")
	email := flag.String("user", "", "email of the account to import into")
	flag.Parse()

	if *csvPath == "" || *email == "" {
		log.Fatal("FATAL: both -csv and -user are required")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	// 2. Initialize Logger
	appLogger := logger.New(logger.ParseLevel(cfg.LogLevel))

	// 3. Initialize Repository
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer repo.Close()

	// 4. Initialize Journal Service
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

	trades, err := utils.ReadTradesFromCSV(*csvPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to read CSV: %v", err)
	}
	appLogger.Info(ctx, "Parsed CSV file", map[string]interface{}{
		"file":   *csvPath,
		"trades": len(trades),
	})

	imported := 0
	for _, trade := range trades {
		trade.UserID = user.ID
		if _, err := service.CreateTrade(ctx, trade); err != nil {
			log.Fatalf("FATAL: Failed to import trade (%s %s): %v", trade.Symbol, trade.Date.Format("2006-01-02"), err)
		}
		imported++
	}

	appLogger.Info(ctx, "Import complete", map[string]interface{}{
		"user":     user.Email,
		"imported": imported,
	})
}
