// Package model defines domain types for cfoq fixtures and derived metrics.
package model

// FinancialRecord is one row of the actuals or budget table.
// Amount is in the record's native currency; AmountUSD is populated by the
// engine's FX conversion and is zero until then.
type FinancialRecord struct {
	Month           string // "YYYY-MM"
	Entity          string
	AccountCategory string
	Currency        string // ISO code
	Amount          float64
	AmountUSD       float64
}

// FxRate is one row of the fx table: the USD conversion rate for a
// (month, currency) pair. At most one rate per pair.
type FxRate struct {
	Month     string
	Currency  string
	RateToUSD float64
}

// CashRecord is one row of the cash table: end-of-month cash balance.
type CashRecord struct {
	Month       string
	CashBalance float64
}

// Dataset is the immutable snapshot of all four fixture tables, loaded once
// at startup. A missing source leaves its table empty, never nil-crashing.
// Callers must not mutate a Dataset after handing it to the engine.
type Dataset struct {
	Actuals []FinancialRecord
	Budget  []FinancialRecord
	Cash    []CashRecord
	Fx      []FxRate
}

// TableSummary describes one loaded table for the data summary view.
type TableSummary struct {
	Name    string
	Rows    int
	Columns []string
}

// DataSummary lists row counts and columns for every fixture table.
type DataSummary struct {
	Tables []TableSummary
}
