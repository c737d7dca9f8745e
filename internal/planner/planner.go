// Package planner classifies free-text questions into financial analyses,
// runs the matching engine query, and formats the answer.
package planner

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/chart"
	"github.com/cfoq-dev/cfoq/internal/cli"
	"github.com/cfoq-dev/cfoq/internal/engine"
)

// Answer is the planner's response to one question: formatted text and an
// optional chart description for the rendering collaborator.
type Answer struct {
	Text  string
	Chart *chart.Spec
}

var (
	monthYearRegex   = regexp.MustCompile(`(\w+)\s+(\d{4})`)
	monthsCountRegex = regexp.MustCompile(`last\s+(\d+)\s+months?`)
)

var monthNumbers = map[string]string{
	"january": "01", "february": "02", "march": "03", "april": "04",
	"may": "05", "june": "06", "july": "07", "august": "08",
	"september": "09", "october": "10", "november": "11", "december": "12",
}

// route binds an intent's trigger keywords to its handler. Routes are
// evaluated top to bottom; the first keyword hit wins.
type route struct {
	intent   string
	keywords []string
	handle   func(question string) Answer
}

// Planner maps questions to engine queries. It holds no state beyond the
// engine reference; every call is a single classify-compute-format pass.
type Planner struct {
	engine *engine.Engine
	routes []route
}

// New builds a planner over the given engine. The route order is the
// classification contract: opex, ebitda, cash, margin, revenue, in that
// order, each triggered by case-insensitive substring presence.
func New(e *engine.Engine) *Planner {
	p := &Planner{engine: e}
	p.routes = []route{
		{intent: "opex", keywords: []string{"opex", "operating expense", "breakdown"}, handle: p.answerOpex},
		{intent: "ebitda", keywords: []string{"ebitda"}, handle: p.answerEbitda},
		{intent: "cash", keywords: []string{"cash", "runway", "burn"}, handle: p.answerRunway},
		{intent: "margin", keywords: []string{"margin", "gross"}, handle: p.answerMargin},
		{intent: "revenue", keywords: []string{"revenue", "budget"}, handle: p.answerRevenue},
	}
	return p
}

// Classify returns the intent name for a question, or "fallback" when no
// route matches.
func (p *Planner) Classify(question string) string {
	lower := strings.ToLower(question)
	for _, r := range p.routes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return "fallback"
}

// Answer classifies the question and runs the matching analysis.
func (p *Planner) Answer(question string) Answer {
	lower := strings.ToLower(question)
	for _, r := range p.routes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.handle(question)
			}
		}
	}
	return p.answerFallback()
}

// ExtractMonth finds "<month name> <year>" in the question and returns
// "YYYY-MM", or "" when absent. Only full English month names count, and
// only the first word-year pair is considered.
func ExtractMonth(question string) string {
	match := monthYearRegex.FindStringSubmatch(strings.ToLower(question))
	if match == nil {
		return ""
	}
	num, ok := monthNumbers[match[1]]
	if !ok {
		return ""
	}
	return match[2] + "-" + num
}

// ExtractMonthsCount parses "last N months" and returns N, or 0 when absent.
func ExtractMonthsCount(question string) int {
	match := monthsCountRegex.FindStringSubmatch(strings.ToLower(question))
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

func (p *Planner) answerRevenue(question string) Answer {
	month := ExtractMonth(question)
	rows, err := p.engine.RevenueVsBudget(month)
	if err != nil {
		return Answer{Text: err.Error()}
	}

	var b strings.Builder
	if month != "" {
		row := rows[0]
		fmt.Fprintf(&b, "Revenue vs Budget for %s:\n", month)
		fmt.Fprintf(&b, "Actual: %s\n", cli.FormatUSD(row.ActualUSD))
		fmt.Fprintf(&b, "Budget: %s\n", cli.FormatUSD(row.BudgetUSD))
		fmt.Fprintf(&b, "Variance: %s (%s)", cli.FormatUSD(row.Variance), cli.FormatPercent(row.VariancePct))
	} else {
		var totalActual, totalBudget float64
		for _, row := range rows {
			totalActual += row.ActualUSD
			totalBudget += row.BudgetUSD
		}
		variance := totalActual - totalBudget
		var variancePct float64
		if totalBudget != 0 {
			variancePct = variance / totalBudget * 100
		}
		b.WriteString("Revenue vs Budget Summary:\n")
		fmt.Fprintf(&b, "Total Actual: %s\n", cli.FormatUSD(totalActual))
		fmt.Fprintf(&b, "Total Budget: %s\n", cli.FormatUSD(totalBudget))
		fmt.Fprintf(&b, "Total Variance: %s (%s)", cli.FormatUSD(variance), cli.FormatPercent(variancePct))
	}

	return Answer{Text: b.String(), Chart: chart.RevenueVsBudget(rows)}
}

func (p *Planner) answerOpex(question string) Answer {
	month := ExtractMonth(question)
	rows, err := p.engine.OpexBreakdown(month)
	if err != nil {
		return Answer{Text: err.Error()}
	}

	var b strings.Builder
	if month != "" {
		fmt.Fprintf(&b, "OpEx Breakdown for %s:\n", month)
	} else {
		b.WriteString("OpEx Breakdown (all months):\n")
	}

	var total float64
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %s (%s)\n", row.Category, cli.FormatUSD(row.AmountUSD), cli.FormatPercent(row.PctOfTotal))
		total += row.AmountUSD
	}
	fmt.Fprintf(&b, "Total OpEx: %s", cli.FormatUSD(total))

	return Answer{Text: b.String(), Chart: chart.OpexBreakdown(rows)}
}

func (p *Planner) answerEbitda(question string) Answer {
	month := ExtractMonth(question)
	res, err := p.engine.Ebitda(month)
	if err != nil {
		return Answer{Text: err.Error()}
	}

	var b strings.Builder
	if month != "" {
		fmt.Fprintf(&b, "EBITDA for %s:\n", month)
	} else {
		b.WriteString("EBITDA (all months):\n")
	}
	fmt.Fprintf(&b, "Revenue: %s\n", cli.FormatUSD(res.Revenue))
	fmt.Fprintf(&b, "COGS: %s\n", cli.FormatUSD(res.COGS))
	fmt.Fprintf(&b, "OpEx: %s\n", cli.FormatUSD(res.Opex))
	fmt.Fprintf(&b, "EBITDA: %s", cli.FormatUSD(res.Ebitda))

	// No chart for EBITDA: a single four-number snapshot reads better as text.
	return Answer{Text: b.String()}
}

func (p *Planner) answerRunway(string) Answer {
	res, err := p.engine.CashRunway()
	if err != nil {
		return Answer{Text: err.Error()}
	}

	var b strings.Builder
	b.WriteString("Cash Runway:\n")
	fmt.Fprintf(&b, "Current Cash: %s\n", cli.FormatUSD(res.CurrentCash))
	fmt.Fprintf(&b, "Avg Monthly Burn: %s\n", cli.FormatUSD(res.AvgMonthlyBurn))
	if res.Infinite {
		b.WriteString("Runway: infinite (cash-positive)")
	} else {
		fmt.Fprintf(&b, "Runway: %s", cli.FormatMonths(res.RunwayMonths))
	}

	return Answer{Text: b.String()}
}

func (p *Planner) answerMargin(question string) Answer {
	monthsBack := ExtractMonthsCount(question)
	rows, err := p.engine.GrossMarginTrend(monthsBack)
	if err != nil {
		return Answer{Text: err.Error()}
	}

	var b strings.Builder
	if monthsBack > 0 {
		fmt.Fprintf(&b, "Gross Margin Trend (last %d months):\n", monthsBack)
	} else {
		b.WriteString("Gross Margin Trend:\n")
	}
	for i, row := range rows {
		pct := "n/a"
		if row.PctValid {
			pct = cli.FormatPercent(row.GrossMarginPct)
		}
		fmt.Fprintf(&b, "%s: %s (%s)", row.Month, cli.FormatUSD(row.GrossMargin), pct)
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return Answer{Text: b.String(), Chart: chart.GrossMarginTrend(rows)}
}

func (p *Planner) answerFallback() Answer {
	text := strings.Join([]string{
		"I can help you analyze your financial data. Try asking:",
		"- 'What was February 2024 revenue vs budget?'",
		"- 'Show the OpEx breakdown for March 2024'",
		"- 'What is our EBITDA?'",
		"- 'How long is our cash runway?'",
		"- 'Show gross margin trend for the last 3 months'",
	}, "\n")
	return Answer{Text: text}
}
