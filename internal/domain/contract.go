package domain

import (
	"sort"
	"strconv"
	"strings"
)

// ContractSpec holds the static exchange specification for a futures
// contract. The table below is loaded once and never mutated.
type ContractSpec struct {
	Symbol     string  // Root symbol (e.g. "ES")
	TickSize   float64 // Minimum price increment
	TickValue  float64 // Dollar value of one tick
	PointValue float64 // Dollar value of a one-point move
	Currency   string  // Settlement currency
}

// contractSpecs maps root symbols to their exchange specifications.
var contractSpecs = map[string]ContractSpec{
	// E-mini S&P 500
	"ES": {Symbol: "ES", TickSize: 0.25, TickValue: 12.50, PointValue: 50, Currency: "USD"},
	// E-mini NASDAQ-100
	"NQ": {Symbol: "NQ", TickSize: 0.25, TickValue: 5.00, PointValue: 20, Currency: "USD"},
	// E-mini Dow Jones
	"YM": {Symbol: "YM", TickSize: 1.0, TickValue: 5.00, PointValue: 5, Currency: "USD"},
	// E-mini Russell 2000
	"RTY": {Symbol: "RTY", TickSize: 0.10, TickValue: 5.00, PointValue: 50, Currency: "USD"},
	// Crude Oil
	"CL": {Symbol: "CL", TickSize: 0.01, TickValue: 10.00, PointValue: 1000, Currency: "USD"},
	// Natural Gas
	"NG": {Symbol: "NG", TickSize: 0.001, TickValue: 10.00, PointValue: 10000, Currency: "USD"},
	// Gold
	"GC": {Symbol: "GC", TickSize: 0.10, TickValue: 10.00, PointValue: 100, Currency: "USD"},
	// Silver
	"SI": {Symbol: "SI", TickSize: 0.005, TickValue: 25.00, PointValue: 5000, Currency: "USD"},
	// Euro FX
	"EUR": {Symbol: "EUR", TickSize: 0.00005, TickValue: 6.25, PointValue: 125000, Currency: "USD"},
	// British Pound
	"GBP": {Symbol: "GBP", TickSize: 0.0001, TickValue: 6.25, PointValue: 62500, Currency: "USD"},
	// Japanese Yen
	"JPY": {Symbol: "JPY", TickSize: 0.0000005, TickValue: 6.25, PointValue: 12500000, Currency: "USD"},
	// 10-Year Treasury Note
	"ZN": {Symbol: "ZN", TickSize: 0.015625, TickValue: 15.625, PointValue: 1000, Currency: "USD"},
	// 30-Year Treasury Bond
	"ZB": {Symbol: "ZB", TickSize: 0.03125, TickValue: 31.25, PointValue: 1000, Currency: "USD"},
}

// ContractInfo returns the contract specification for a symbol
// (case-insensitive), or nil if the symbol is not listed.
func ContractInfo(symbol string) *ContractSpec {
	if spec, ok := contractSpecs[strings.ToUpper(symbol)]; ok {
		return &spec
	}
	return nil
}

// ListContracts returns all known contract specifications sorted by symbol.
func ListContracts() []ContractSpec {
	specs := make([]ContractSpec, 0, len(contractSpecs))
	for _, spec := range contractSpecs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Symbol < specs[j].Symbol })
	return specs
}

// CalculatePnL converts entry/exit prices into a dollar profit or loss using
// the contract's point value. Unknown symbols silently fall back to a raw
// price-difference calculation with no point-value multiplier; callers must
// not assume accurate dollar PnL for unlisted instruments.
func CalculatePnL(symbol string, side TradeSide, quantity int, entryPrice, exitPrice float64) float64 {
	priceDiff := exitPrice - entryPrice
	if side == SideShort {
		priceDiff = entryPrice - exitPrice
	}

	spec := ContractInfo(symbol)
	if spec == nil {
		return priceDiff * float64(quantity)
	}
	return priceDiff * spec.PointValue * float64(quantity)
}

// FormatPrice renders a price with the decimal precision implied by the
// symbol's tick size. Unknown symbols render with two decimal places.
func FormatPrice(symbol string, price float64) string {
	spec := ContractInfo(symbol)
	if spec == nil {
		return strconv.FormatFloat(price, 'f', 2, 64)
	}
	decimals := 0
	tick := strconv.FormatFloat(spec.TickSize, 'f', -1, 64)
	if i := strings.IndexByte(tick, '.'); i >= 0 {
		decimals = len(tick) - i - 1
	}
	return strconv.FormatFloat(price, 'f', decimals, 64)
}
