// Package engine computes currency-normalized financial metrics over the
// immutable fixture snapshot: revenue vs budget, OpEx breakdown, EBITDA,
// cash runway, and gross-margin trend.
package engine

import (
	"errors"
	"sort"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/model"
)

// Sentinel errors returned when a query has no data to work with. Their
// messages are user-facing: the planner surfaces them verbatim as answer text.
var (
	ErrNoRevenueData = errors.New("no revenue data found for the requested period")
	ErrNoOpexData    = errors.New("no operating expense data found for the requested period")
	ErrNoCashData    = errors.New("no cash balance data available")
)

// Account category keywords. Matching is case-insensitive substring, so
// "Revenue" also matches "Revenue Recognition Adjustment". That is the
// classification rule, not an exact-match lookup.
var (
	revenueKeywords = []string{"revenue"}
	cogsKeywords    = []string{"cogs", "cost of goods"}
	opexKeywords    = []string{"opex", "operating expense"}
)

// DefaultTrendWindow is the number of trailing month-over-month deltas used
// for the average burn rate.
const DefaultTrendWindow = 6

// Engine answers metric queries against a fixture Dataset. All operations
// are pure reads over the snapshot; an Engine is safe for concurrent use.
type Engine struct {
	ds          *model.Dataset
	fx          map[string]float64 // "month|currency" -> rate_to_usd
	trendWindow int
}

// Option configures an Engine.
type Option func(*Engine)

// WithTrendWindow overrides the trailing window for burn-rate averaging.
func WithTrendWindow(months int) Option {
	return func(e *Engine) {
		if months > 0 {
			e.trendWindow = months
		}
	}
}

// New builds an Engine over the dataset. The FX lookup is indexed once here;
// the dataset itself is shared by reference and never mutated.
func New(ds *model.Dataset, opts ...Option) *Engine {
	e := &Engine{
		ds:          ds,
		fx:          make(map[string]float64, len(ds.Fx)),
		trendWindow: DefaultTrendWindow,
	}
	for _, r := range ds.Fx {
		e.fx[fxKey(r.Month, r.Currency)] = r.RateToUSD
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func fxKey(month, currency string) string {
	return month + "|" + currency
}

// ConvertToUSD returns a new slice with AmountUSD populated from the FX
// table. A missing (month, currency) rate falls back to 1.0, so unknown
// currencies pass through as if already USD. The input is never mutated.
func (e *Engine) ConvertToUSD(records []model.FinancialRecord) []model.FinancialRecord {
	out := make([]model.FinancialRecord, len(records))
	for i, r := range records {
		rate, ok := e.fx[fxKey(r.Month, r.Currency)]
		if !ok {
			rate = 1.0
		}
		r.AmountUSD = r.Amount * rate
		out[i] = r
	}
	return out
}

// RevenueVsBudget compares actual and budgeted revenue by month, in USD.
// An empty month means all months. Months present on only one side are
// dropped (inner join) — a known gap inherited from the source data shape.
func (e *Engine) RevenueVsBudget(month string) ([]model.RevenueVsBudgetRow, error) {
	actuals := filterCategory(e.ds.Actuals, revenueKeywords)
	budget := filterCategory(e.ds.Budget, revenueKeywords)
	if len(actuals) == 0 || len(budget) == 0 {
		return nil, ErrNoRevenueData
	}

	actualByMonth := e.sumUSDByMonth(actuals, month)
	budgetByMonth := e.sumUSDByMonth(budget, month)

	var rows []model.RevenueVsBudgetRow
	for m, actual := range actualByMonth {
		budgeted, ok := budgetByMonth[m]
		if !ok {
			continue
		}
		row := model.RevenueVsBudgetRow{
			Month:     m,
			ActualUSD: actual,
			BudgetUSD: budgeted,
			Variance:  actual - budgeted,
		}
		// Zero budget leaves the percentage at 0 rather than dividing.
		if budgeted != 0 {
			row.VariancePct = row.Variance / budgeted * 100
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRevenueData
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows, nil
}

// OpexBreakdown groups operating expenses by account category with each
// category's share of the total, sorted largest first.
func (e *Engine) OpexBreakdown(month string) ([]model.OpexRow, error) {
	opex := filterCategory(e.ds.Actuals, opexKeywords)
	if month != "" {
		opex = filterMonth(opex, month)
	}
	if len(opex) == 0 {
		return nil, ErrNoOpexData
	}

	byCategory := make(map[string]float64)
	var total float64
	for _, r := range e.ConvertToUSD(opex) {
		byCategory[r.AccountCategory] += r.AmountUSD
		total += r.AmountUSD
	}

	rows := make([]model.OpexRow, 0, len(byCategory))
	for category, amount := range byCategory {
		row := model.OpexRow{Category: category, AmountUSD: amount}
		if total != 0 {
			row.PctOfTotal = amount / total * 100
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].AmountUSD > rows[j].AmountUSD })
	return rows, nil
}

// Ebitda computes revenue - COGS - OpEx for one month, or across all months
// when month is empty. It fails with ErrNoRevenueData when no revenue rows
// exist for the requested scope; callers must check the error before reading
// the numeric fields.
func (e *Engine) Ebitda(month string) (model.EbitdaResult, error) {
	revenueRows := filterCategory(e.ds.Actuals, revenueKeywords)
	if month != "" {
		revenueRows = filterMonth(revenueRows, month)
	}
	if len(revenueRows) == 0 {
		return model.EbitdaResult{}, ErrNoRevenueData
	}

	res := model.EbitdaResult{
		Month:   month,
		Revenue: sumUSD(e.ConvertToUSD(revenueRows)),
		COGS:    e.sumCategoryUSD(cogsKeywords, month),
		Opex:    e.sumCategoryUSD(opexKeywords, month),
	}
	res.Ebitda = res.Revenue - res.COGS - res.Opex
	return res, nil
}

// CashRunway reports current cash and months of runway at the trailing
// average burn rate. Burn is the average month-over-month balance decrease
// over the trailing window; when cash is not shrinking the result is marked
// infinite instead of dividing by zero.
func (e *Engine) CashRunway() (model.RunwayResult, error) {
	if len(e.ds.Cash) == 0 {
		return model.RunwayResult{}, ErrNoCashData
	}

	balances := make([]model.CashRecord, len(e.ds.Cash))
	copy(balances, e.ds.Cash)
	sort.Slice(balances, func(i, j int) bool { return balances[i].Month < balances[j].Month })

	res := model.RunwayResult{
		CurrentCash: balances[len(balances)-1].CashBalance,
	}

	// Trailing window: up to trendWindow deltas needs trendWindow+1 balances.
	start := len(balances) - (e.trendWindow + 1)
	if start < 0 {
		start = 0
	}
	window := balances[start:]

	var totalBurn float64
	deltas := 0
	for i := 1; i < len(window); i++ {
		totalBurn += window[i-1].CashBalance - window[i].CashBalance
		deltas++
	}

	if deltas > 0 {
		res.AvgMonthlyBurn = totalBurn / float64(deltas)
	}
	if res.AvgMonthlyBurn <= 0 {
		// Cash flat or growing: zero burn, infinite runway.
		res.AvgMonthlyBurn = 0
		res.Infinite = true
		return res, nil
	}

	res.RunwayMonths = res.CurrentCash / res.AvgMonthlyBurn
	return res, nil
}

// GrossMarginTrend aggregates revenue and COGS per month, left-joined on the
// revenue months with COGS defaulting to 0. A monthsBack of 0 keeps the full
// history; otherwise only the most recent N months survive, in chronological
// order. Rows with zero revenue carry PctValid=false instead of a NaN.
func (e *Engine) GrossMarginTrend(monthsBack int) ([]model.MarginRow, error) {
	revenue := filterCategory(e.ds.Actuals, revenueKeywords)
	if len(revenue) == 0 {
		return nil, ErrNoRevenueData
	}

	revenueByMonth := e.sumUSDByMonth(revenue, "")
	cogsByMonth := e.sumUSDByMonth(filterCategory(e.ds.Actuals, cogsKeywords), "")

	rows := make([]model.MarginRow, 0, len(revenueByMonth))
	for m, rev := range revenueByMonth {
		row := model.MarginRow{
			Month:       m,
			Revenue:     rev,
			COGS:        cogsByMonth[m], // missing month -> 0
			GrossMargin: rev - cogsByMonth[m],
		}
		if rev != 0 {
			row.GrossMarginPct = row.GrossMargin / rev * 100
			row.PctValid = true
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	if monthsBack > 0 && len(rows) > monthsBack {
		rows = rows[len(rows)-monthsBack:]
	}
	return rows, nil
}

// Summary lists row counts and columns for every fixture table.
func (e *Engine) Summary() model.DataSummary {
	financialCols := []string{"month", "entity", "account_category", "currency", "amount"}
	return model.DataSummary{
		Tables: []model.TableSummary{
			{Name: "actuals", Rows: len(e.ds.Actuals), Columns: financialCols},
			{Name: "budget", Rows: len(e.ds.Budget), Columns: financialCols},
			{Name: "cash", Rows: len(e.ds.Cash), Columns: []string{"month", "cash_balance"}},
			{Name: "fx", Rows: len(e.ds.Fx), Columns: []string{"month", "currency", "rate_to_usd"}},
		},
	}
}

// sumCategoryUSD sums converted amounts for records whose category matches
// any keyword, optionally restricted to one month.
func (e *Engine) sumCategoryUSD(keywords []string, month string) float64 {
	records := filterCategory(e.ds.Actuals, keywords)
	if month != "" {
		records = filterMonth(records, month)
	}
	return sumUSD(e.ConvertToUSD(records))
}

// sumUSDByMonth converts records and aggregates AmountUSD per month.
func (e *Engine) sumUSDByMonth(records []model.FinancialRecord, month string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range e.ConvertToUSD(records) {
		if month != "" && r.Month != month {
			continue
		}
		out[r.Month] += r.AmountUSD
	}
	return out
}

func sumUSD(records []model.FinancialRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.AmountUSD
	}
	return total
}

func filterCategory(records []model.FinancialRecord, keywords []string) []model.FinancialRecord {
	var out []model.FinancialRecord
	for _, r := range records {
		if matchesAny(r.AccountCategory, keywords) {
			out = append(out, r)
		}
	}
	return out
}

func filterMonth(records []model.FinancialRecord, month string) []model.FinancialRecord {
	var out []model.FinancialRecord
	for _, r := range records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

func matchesAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
