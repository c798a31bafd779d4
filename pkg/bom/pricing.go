package bom

import (
	"sort"

	"github.com/shopspring/decimal"
)

// PriceBook maps BoM pricing keys to unit prices.
type PriceBook map[string]decimal.Decimal

// DefaultPriceBook returns list prices for the standard catalog. Keys
// match the pricing keys Build emits; projects with custom slot counts
// or profiles will surface the difference as unpriced lines.
func DefaultPriceBook() PriceBook {
	price := decimal.RequireFromString
	return PriceBook{
		"panel_1u_4slot":                         price("89.00"),
		"mpo12_pass_through_12port":              price("240.00"),
		"lc_breakout_2xmpo12_to_12xlcduplex.mmf": price("310.00"),
		"lc_breakout_2xmpo12_to_12xlcduplex.smf": price("365.00"),
		"utp_6xrj45":                             price("45.00"),
		"mpo12_trunk.B":                          price("118.00"),
		"mpo12_trunk.mmf.A":                      price("126.00"),
		"mpo12_trunk.smf.A":                      price("149.00"),
		"utp_cable":                              price("6.50"),
	}
}

// CostEstimate is the rolled-up material cost of a BoM. Unpriced lists
// the pricing keys the book did not cover; their quantity contributes
// nothing to Total.
type CostEstimate struct {
	Total    decimal.Decimal
	Unpriced []string
}

// EstimateCost rolls up quantity times unit price over the BoM lines.
func EstimateCost(lines []Line, book PriceBook) CostEstimate {
	total := decimal.Zero
	var unpriced []string
	for _, line := range lines {
		unit, ok := book[line.Key]
		if !ok {
			unpriced = append(unpriced, line.Key)
			continue
		}
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	sort.Strings(unpriced)
	return CostEstimate{Total: total, Unpriced: unpriced}
}
