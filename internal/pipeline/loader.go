// Package pipeline orchestrates fixture loading and caching into the
// immutable dataset snapshot the engine queries.
package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/cfoq-dev/cfoq/internal/model"
	"github.com/cfoq-dev/cfoq/internal/source"
)

// LoadResult holds the dataset snapshot plus load diagnostics. A fixture
// file that is missing or unreadable leaves its table empty; queries against
// empty tables answer with their own sentinel, so loading never hard-fails
// on absent data.
type LoadResult struct {
	Dataset model.Dataset

	RowsParsed   int
	RowsSkipped  int
	MissingFiles []string
}

// Load parses all four fixture CSVs from dir into a Dataset.
func Load(dir string) (*LoadResult, error) {
	result := &LoadResult{}

	actuals, res, err := source.ParseFinancialFile(filepath.Join(dir, source.ActualsFile))
	if err != nil {
		return nil, fmt.Errorf("loading actuals: %w", err)
	}
	result.Dataset.Actuals = actuals
	result.track(source.ActualsFile, res, len(actuals))

	budget, res, err := source.ParseFinancialFile(filepath.Join(dir, source.BudgetFile))
	if err != nil {
		return nil, fmt.Errorf("loading budget: %w", err)
	}
	result.Dataset.Budget = budget
	result.track(source.BudgetFile, res, len(budget))

	cash, res, err := source.ParseCashFile(filepath.Join(dir, source.CashFile))
	if err != nil {
		return nil, fmt.Errorf("loading cash: %w", err)
	}
	result.Dataset.Cash = cash
	result.track(source.CashFile, res, len(cash))

	fx, res, err := source.ParseFxFile(filepath.Join(dir, source.FxFile))
	if err != nil {
		return nil, fmt.Errorf("loading fx: %w", err)
	}
	result.Dataset.Fx = fx
	result.track(source.FxFile, res, len(fx))

	sortCash(result.Dataset.Cash)
	return result, nil
}

func (r *LoadResult) track(file string, res source.ParseResult, rows int) {
	r.RowsParsed += res.RowsParsed
	r.RowsSkipped += res.RowsSkipped
	if rows == 0 && res.RowsSkipped == 0 {
		r.MissingFiles = append(r.MissingFiles, file)
	}
}

// sortCash orders balances by month ascending, the order runway math expects.
func sortCash(cash []model.CashRecord) {
	sort.Slice(cash, func(i, j int) bool { return cash[i].Month < cash[j].Month })
}
