package models

import "strings"

// Quote is a point-in-time market snapshot. Values are never mutated after
// construction; a new fetch yields a new Quote.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Volume        int64   `json:"volume"`
	LastUpdated   string  `json:"lastUpdated"` // provider trading day, e.g. 2024-01-01
}

// NormalizeSymbol returns the canonical uppercase form used as cache and
// rate-limit key.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
