package planner

import (
	"strings"
	"testing"

	"github.com/cfoq-dev/cfoq/internal/chart"
	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/model"
)

func fin(month, category string, amount float64) model.FinancialRecord {
	return model.FinancialRecord{
		Month:           month,
		Entity:          "ParentCo",
		AccountCategory: category,
		Currency:        "USD",
		Amount:          amount,
	}
}

func newTestPlanner() *Planner {
	ds := &model.Dataset{
		Actuals: []model.FinancialRecord{
			fin("2024-01", "Revenue", 95000),
			fin("2024-02", "Revenue", 100000),
			fin("2024-02", "COGS", 32000),
			fin("2024-02", "Opex:Marketing", 18000),
			fin("2024-02", "Opex:Sales", 12000),
		},
		Budget: []model.FinancialRecord{
			fin("2024-01", "Revenue", 90000),
			fin("2024-02", "Revenue", 90000),
		},
		Cash: []model.CashRecord{
			{Month: "2024-01", CashBalance: 500000},
			{Month: "2024-02", CashBalance: 480000},
		},
	}
	return New(engine.New(ds))
}

func emptyPlanner() *Planner {
	return New(engine.New(&model.Dataset{}))
}

func TestExtractMonth(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What was February 2024 revenue vs budget?", "2024-02"},
		{"show opex for march 2024", "2024-03"},
		{"Revenue for December 2023 please", "2023-12"},
		{"What is our EBITDA?", ""},
		{"revenue in Q1 2024", ""},
		{"show me Feb 2024", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractMonth(tt.question); got != tt.want {
			t.Errorf("ExtractMonth(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestExtractMonthsCount(t *testing.T) {
	tests := []struct {
		question string
		want     int
	}{
		{"gross margin for the last 3 months", 3},
		{"trend over the last 12 months", 12},
		{"last 1 month", 1},
		{"gross margin trend", 0},
	}
	for _, tt := range tests {
		if got := ExtractMonthsCount(tt.question); got != tt.want {
			t.Errorf("ExtractMonthsCount(%q) = %d, want %d", tt.question, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	p := newTestPlanner()
	tests := []struct {
		question string
		want     string
	}{
		{"What was February 2024 revenue vs budget?", "revenue"},
		{"Show the OpEx breakdown", "opex"},
		{"what is our ebitda", "ebitda"},
		{"How long is our cash runway?", "cash"},
		{"show gross margin trend", "margin"},
		{"what's the burn rate", "cash"},
		{"tell me a joke", "fallback"},
		// Margin outranks revenue when both keywords appear.
		{"revenue margin analysis", "margin"},
		// Breakdown alone routes to opex.
		{"give me a breakdown", "opex"},
	}
	for _, tt := range tests {
		if got := p.Classify(tt.question); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}

func TestAnswerRevenue_SingleMonth(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("What was February 2024 revenue vs budget?")

	for _, want := range []string{
		"Revenue vs Budget for 2024-02:",
		"Actual: $100,000",
		"Budget: $90,000",
		"Variance: $10,000 (11.1%)",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
	if a.Chart == nil {
		t.Fatal("expected a chart")
	}
	if a.Chart.Kind != chart.KindGroupedBar {
		t.Errorf("chart kind = %q, want %q", a.Chart.Kind, chart.KindGroupedBar)
	}
}

func TestAnswerRevenue_AllMonths(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("revenue vs budget")

	for _, want := range []string{
		"Revenue vs Budget Summary:",
		"Total Actual: $195,000",
		"Total Budget: $180,000",
		"Total Variance: $15,000 (8.3%)",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
}

func TestAnswerOpex(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("Show the OpEx breakdown for February 2024")

	for _, want := range []string{
		"OpEx Breakdown for 2024-02:",
		"Opex:Marketing: $18,000 (60.0%)",
		"Opex:Sales: $12,000 (40.0%)",
		"Total OpEx: $30,000",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
	if a.Chart == nil || a.Chart.Kind != chart.KindPie {
		t.Error("expected a pie chart")
	}
}

func TestAnswerEbitda(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("What is our EBITDA for February 2024?")

	for _, want := range []string{
		"EBITDA for 2024-02:",
		"Revenue: $100,000",
		"COGS: $32,000",
		"OpEx: $30,000",
		"EBITDA: $38,000",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
	if a.Chart != nil {
		t.Error("ebitda answer should have no chart")
	}
}

func TestAnswerRunway(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("How long is our cash runway?")

	for _, want := range []string{
		"Cash Runway:",
		"Current Cash: $480,000",
		"Avg Monthly Burn: $20,000",
		"Runway: 24.0 months",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
}

func TestAnswerRunway_Infinite(t *testing.T) {
	ds := &model.Dataset{
		Cash: []model.CashRecord{
			{Month: "2024-01", CashBalance: 100},
			{Month: "2024-02", CashBalance: 200},
		},
	}
	p := New(engine.New(ds))
	a := p.Answer("cash runway?")
	if !strings.Contains(a.Text, "Runway: infinite (cash-positive)") {
		t.Errorf("answer missing infinite marker:\n%s", a.Text)
	}
}

func TestAnswerMargin(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("Show gross margin trend for the last 2 months")

	for _, want := range []string{
		"Gross Margin Trend (last 2 months):",
		"2024-01: $95,000 (100.0%)",
		"2024-02: $68,000 (68.0%)",
	} {
		if !strings.Contains(a.Text, want) {
			t.Errorf("answer missing %q:\n%s", want, a.Text)
		}
	}
	if a.Chart == nil || a.Chart.Kind != chart.KindLine {
		t.Error("expected a line chart")
	}
}

func TestAnswer_EmptyDataSurfacesEngineMessage(t *testing.T) {
	p := emptyPlanner()
	tests := []struct {
		question string
		want     string
	}{
		{"revenue vs budget", "no revenue data found for the requested period"},
		{"opex breakdown", "no operating expense data found for the requested period"},
		{"what is our ebitda", "no revenue data found for the requested period"},
		{"cash runway", "no cash balance data available"},
		{"gross margin trend", "no revenue data found for the requested period"},
	}
	for _, tt := range tests {
		a := p.Answer(tt.question)
		if a.Text != tt.want {
			t.Errorf("Answer(%q).Text = %q, want %q", tt.question, a.Text, tt.want)
		}
		if a.Chart != nil {
			t.Errorf("Answer(%q) should carry no chart on error", tt.question)
		}
	}
}

func TestAnswerFallback(t *testing.T) {
	p := newTestPlanner()
	a := p.Answer("tell me about the weather")

	if !strings.Contains(a.Text, "I can help you analyze your financial data") {
		t.Errorf("fallback missing capability intro:\n%s", a.Text)
	}
	if got := strings.Count(a.Text, "- '"); got != 5 {
		t.Errorf("fallback examples = %d, want 5", got)
	}
	if a.Chart != nil {
		t.Error("fallback should have no chart")
	}
}
