// Package report assembles the board-pack payload consumed by the external
// document renderer. Every field is well-formed even when the underlying
// data is empty: slices are non-nil, charts are present, and sections carry
// an explicit note instead of failing, so rendering can always proceed.
package report

import (
	"time"

	"github.com/cfoq-dev/cfoq/internal/chart"
	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/model"
)

// RevenueSection holds the revenue-vs-budget page.
type RevenueSection struct {
	Rows  []model.RevenueVsBudgetRow `json:"rows"`
	Chart *chart.Spec                `json:"chart"`
	Note  string                     `json:"note,omitempty"`
}

// OpexSection holds the OpEx breakdown page.
type OpexSection struct {
	Rows  []model.OpexRow `json:"rows"`
	Chart *chart.Spec     `json:"chart"`
	Note  string          `json:"note,omitempty"`
}

// RunwaySection holds the cash runway page. Runway carries no chart.
type RunwaySection struct {
	Result model.RunwayResult `json:"result"`
	Note   string             `json:"note,omitempty"`
}

// BoardPack is the full export payload.
type BoardPack struct {
	GeneratedAt     time.Time      `json:"generatedAt"`
	RevenueVsBudget RevenueSection `json:"revenueVsBudget"`
	Opex            OpexSection    `json:"opex"`
	Runway          RunwaySection  `json:"runway"`
}

// Build assembles a board pack from the engine. Engine sentinels become
// section notes, never errors; the renderer decides how to present them.
func Build(e *engine.Engine) BoardPack {
	pack := BoardPack{GeneratedAt: time.Now().UTC()}

	revRows, err := e.RevenueVsBudget("")
	if err != nil {
		pack.RevenueVsBudget = RevenueSection{
			Rows:  []model.RevenueVsBudgetRow{},
			Chart: chart.Empty(chart.KindGroupedBar, "Revenue: Actual vs Budget"),
			Note:  err.Error(),
		}
	} else {
		pack.RevenueVsBudget = RevenueSection{
			Rows:  revRows,
			Chart: chart.RevenueVsBudget(revRows),
		}
	}

	opexRows, err := e.OpexBreakdown("")
	if err != nil {
		pack.Opex = OpexSection{
			Rows:  []model.OpexRow{},
			Chart: chart.Empty(chart.KindPie, "OpEx Breakdown"),
			Note:  err.Error(),
		}
	} else {
		pack.Opex = OpexSection{
			Rows:  opexRows,
			Chart: chart.OpexBreakdown(opexRows),
		}
	}

	runway, err := e.CashRunway()
	if err != nil {
		pack.Runway = RunwaySection{Note: err.Error()}
	} else {
		pack.Runway = RunwaySection{Result: runway}
	}

	return pack
}
