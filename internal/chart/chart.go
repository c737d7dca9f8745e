// Package chart builds rendering-agnostic chart descriptions from derived
// metric rows. Consumers (TUI, report renderer) decide how to draw them;
// nothing here touches pixels.
package chart

import "github.com/cfoq-dev/cfoq/internal/model"

// Chart kinds understood by the rendering collaborators.
const (
	KindGroupedBar = "grouped_bar"
	KindPie        = "pie"
	KindLine       = "line"
)

// Point is one labeled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a named sequence of points.
type Series struct {
	Name string  `json:"name"`
	Data []Point `json:"data"`
}

// Spec describes a chart for an external renderer.
type Spec struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	XAxis  string   `json:"xAxis,omitempty"`
	YAxis  string   `json:"yAxis,omitempty"`
	Series []Series `json:"series"`
}

// RevenueVsBudget builds a grouped bar chart with Actual and Budget series
// over months.
func RevenueVsBudget(rows []model.RevenueVsBudgetRow) *Spec {
	if len(rows) == 0 {
		return nil
	}

	actual := make([]Point, 0, len(rows))
	budget := make([]Point, 0, len(rows))
	for _, r := range rows {
		actual = append(actual, Point{Label: r.Month, Value: r.ActualUSD})
		budget = append(budget, Point{Label: r.Month, Value: r.BudgetUSD})
	}

	return &Spec{
		Kind:  KindGroupedBar,
		Title: "Revenue: Actual vs Budget",
		XAxis: "Month",
		YAxis: "Amount (USD)",
		Series: []Series{
			{Name: "Actual", Data: actual},
			{Name: "Budget", Data: budget},
		},
	}
}

// OpexBreakdown builds a pie chart of spend per category.
func OpexBreakdown(rows []model.OpexRow) *Spec {
	if len(rows) == 0 {
		return nil
	}

	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, Point{Label: r.Category, Value: r.AmountUSD})
	}

	return &Spec{
		Kind:   KindPie,
		Title:  "OpEx Breakdown",
		Series: []Series{{Name: "OpEx", Data: points}},
	}
}

// GrossMarginTrend builds a line chart of gross margin percentage by month.
// Months with undefined margin (zero revenue) are plotted at zero.
func GrossMarginTrend(rows []model.MarginRow) *Spec {
	if len(rows) == 0 {
		return nil
	}

	points := make([]Point, 0, len(rows))
	for _, r := range rows {
		points = append(points, Point{Label: r.Month, Value: r.GrossMarginPct})
	}

	return &Spec{
		Kind:   KindLine,
		Title:  "Gross Margin Trend",
		XAxis:  "Month",
		YAxis:  "Gross Margin (%)",
		Series: []Series{{Name: "Gross Margin %", Data: points}},
	}
}

// Empty returns a well-formed zero chart for report sections with no data,
// so downstream renderers never see nil fields.
func Empty(kind, title string) *Spec {
	return &Spec{Kind: kind, Title: title, Series: []Series{}}
}
