package model

// RevenueVsBudgetRow compares actual and budgeted revenue for one month,
// both in USD. Variance is actual minus budget.
type RevenueVsBudgetRow struct {
	Month       string
	ActualUSD   float64
	BudgetUSD   float64
	Variance    float64
	VariancePct float64
}

// OpexRow is one operating-expense category with its share of the total.
type OpexRow struct {
	Category   string
	AmountUSD  float64
	PctOfTotal float64
}

// EbitdaResult approximates EBITDA as revenue - COGS - OpEx, all in USD.
type EbitdaResult struct {
	Month   string // empty when computed across all months
	Revenue float64
	COGS    float64
	Opex    float64
	Ebitda  float64
}

// RunwayResult reports months of cash remaining at the current burn rate.
// Infinite is set when the trailing burn is non-positive (cash not
// shrinking); RunwayMonths is meaningless in that case.
type RunwayResult struct {
	CurrentCash    float64
	AvgMonthlyBurn float64
	RunwayMonths   float64
	Infinite       bool
}

// MarginRow is one month of the gross-margin trend, in USD.
// GrossMarginPct is zero when revenue is zero; PctValid distinguishes a
// genuine 0% margin from an undefined one.
type MarginRow struct {
	Month          string
	Revenue        float64
	COGS           float64
	GrossMargin    float64
	GrossMarginPct float64
	PctValid       bool
}
