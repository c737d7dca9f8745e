// Package source parses the CSV fixture files into typed fixture tables.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/model"
)

// Fixture file names expected under the fixtures directory.
const (
	ActualsFile = "actuals.csv"
	BudgetFile  = "budget.csv"
	CashFile    = "cash.csv"
	FxFile      = "fx.csv"
)

// Required columns per table.
var (
	FinancialColumns = []string{"month", "entity", "account_category", "currency", "amount"}
	CashColumns      = []string{"month", "cash_balance"}
	FxColumns        = []string{"month", "currency", "rate_to_usd"}
)

// MissingColumnError reports a required column absent from a fixture header.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.File, e.Column)
}

// ParseResult holds a parsed table plus row-level diagnostics.
type ParseResult struct {
	RowsParsed  int
	RowsSkipped int
}

// header maps column names to their index in the CSV header row.
type header map[string]int

func readHeader(r *csv.Reader, file string, required []string) (header, error) {
	row, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%s: reading header: %w", file, err)
	}

	h := make(header, len(row))
	for i, name := range row {
		h[normalizeColumn(name)] = i
	}

	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, &MissingColumnError{File: file, Column: col}
		}
	}
	return h, nil
}

func (h header) get(row []string, col string) string {
	idx, ok := h[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

// ParseFinancial decodes an actuals or budget CSV stream into records.
// Rows with an unparseable amount are skipped and counted, not fatal.
func ParseFinancial(r io.Reader, file string) ([]model.FinancialRecord, ParseResult, error) {
	cr := newReader(r)
	h, err := readHeader(cr, file, FinancialColumns)
	if err != nil {
		return nil, ParseResult{}, err
	}

	var records []model.FinancialRecord
	var res ParseResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.RowsSkipped++
			continue
		}

		amount, err := parseAmount(h.get(row, "amount"))
		if err != nil {
			res.RowsSkipped++
			continue
		}

		records = append(records, model.FinancialRecord{
			Month:           h.get(row, "month"),
			Entity:          h.get(row, "entity"),
			AccountCategory: h.get(row, "account_category"),
			Currency:        h.get(row, "currency"),
			Amount:          amount,
		})
		res.RowsParsed++
	}

	return records, res, nil
}

// ParseCash decodes a cash CSV stream. Rows stay in file order; the loader
// sorts them by month so runway math sees ascending balances.
func ParseCash(r io.Reader, file string) ([]model.CashRecord, ParseResult, error) {
	cr := newReader(r)
	h, err := readHeader(cr, file, CashColumns)
	if err != nil {
		return nil, ParseResult{}, err
	}

	var records []model.CashRecord
	var res ParseResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.RowsSkipped++
			continue
		}

		balance, err := parseAmount(h.get(row, "cash_balance"))
		if err != nil {
			res.RowsSkipped++
			continue
		}

		records = append(records, model.CashRecord{
			Month:       h.get(row, "month"),
			CashBalance: balance,
		})
		res.RowsParsed++
	}

	return records, res, nil
}

// ParseFx decodes an fx CSV stream.
func ParseFx(r io.Reader, file string) ([]model.FxRate, ParseResult, error) {
	cr := newReader(r)
	h, err := readHeader(cr, file, FxColumns)
	if err != nil {
		return nil, ParseResult{}, err
	}

	var rates []model.FxRate
	var res ParseResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.RowsSkipped++
			continue
		}

		rate, err := parseAmount(h.get(row, "rate_to_usd"))
		if err != nil {
			res.RowsSkipped++
			continue
		}

		rates = append(rates, model.FxRate{
			Month:     h.get(row, "month"),
			Currency:  h.get(row, "currency"),
			RateToUSD: rate,
		})
		res.RowsParsed++
	}

	return rates, res, nil
}

// ParseFinancialFile reads and decodes an actuals/budget fixture from disk.
// A missing file yields an empty table, not an error.
func ParseFinancialFile(path string) ([]model.FinancialRecord, ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ParseResult{}, nil
		}
		return nil, ParseResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseFinancial(f, path)
}

// ParseCashFile reads and decodes the cash fixture from disk.
func ParseCashFile(path string) ([]model.CashRecord, ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ParseResult{}, nil
		}
		return nil, ParseResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseCash(f, path)
}

// ParseFxFile reads and decodes the fx fixture from disk.
func ParseFxFile(path string) ([]model.FxRate, ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ParseResult{}, nil
		}
		return nil, ParseResult{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ParseFx(f, path)
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1 // ragged rows handled per field
	return cr
}

// parseAmount accepts "1234.5" and "1,234.50".
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}
