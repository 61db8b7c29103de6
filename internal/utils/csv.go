package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"futuresjournal/internal/domain"
)

var tradeCSVHeader = []string{
	"date", "symbol", "side", "status", "quantity", "entry_price", "exit_price",
	"commission", "fees", "swap", "stop_loss", "take_profit", "strategy", "timeframe", "notes", "tags",
}

// WriteTradesToCSV exports trades to a CSV file.
func WriteTradesToCSV(trades []*domain.Trade, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	writer.Write(tradeCSVHeader)

	for _, t := range trades {
		writer.Write([]string{
			t.Date.UTC().Format(time.RFC3339),
			t.Symbol,
			string(t.Side),
			string(t.Status),
			strconv.Itoa(t.Quantity),
			strconv.FormatFloat(t.EntryPrice, 'f', -1, 64),
			strconv.FormatFloat(t.ExitPrice, 'f', -1, 64),
			strconv.FormatFloat(t.Commission, 'f', -1, 64),
			strconv.FormatFloat(t.Fees, 'f', -1, 64),
			strconv.FormatFloat(t.Swap, 'f', -1, 64),
			strconv.FormatFloat(t.StopLoss, 'f', -1, 64),
			strconv.FormatFloat(t.TakeProfit, 'f', -1, 64),
			t.Strategy,
			t.Timeframe,
			t.Notes,
			strings.Join(t.Tags, "|"),
		})
	}
	return writer.Error()
}

// ReadTradesFromCSV parses trades from a CSV file written in the export
// format above. Rows are validated structurally only; PnL is not read and
// must be recomputed by the service on import.
func ReadTradesFromCSV(filename string) ([]*domain.Trade, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = len(tradeCSVHeader)

	// Skip header
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var trades []*domain.Trade
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		trade, err := parseTradeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid trade on CSV line %d: %w", line, err)
		}
		trades = append(trades, trade)
	}
	return trades, nil
}

func parseTradeRecord(record []string) (*domain.Trade, error) {
	date, err := time.Parse(time.RFC3339, record[0])
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", record[0], err)
	}
	quantity, err := strconv.Atoi(record[4])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: %w", record[4], err)
	}

	floats := make([]float64, 7)
	for i, idx := range []int{5, 6, 7, 8, 9, 10, 11} {
		v, err := strconv.ParseFloat(record[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric field %q: %w", record[idx], err)
		}
		floats[i] = v
	}

	var tags []string
	if record[15] != "" {
		tags = strings.Split(record[15], "|")
	}

	return &domain.Trade{
		Date:       date,
		Symbol:     record[1],
		Side:       domain.TradeSide(record[2]),
		Status:     domain.TradeStatus(record[3]),
		Quantity:   quantity,
		EntryPrice: floats[0],
		ExitPrice:  floats[1],
		Commission: floats[2],
		Fees:       floats[3],
		Swap:       floats[4],
		StopLoss:   floats[5],
		TakeProfit: floats[6],
		Strategy:   record[12],
		Timeframe:  record[13],
		Notes:      record[14],
		Tags:       tags,
	}, nil
}
