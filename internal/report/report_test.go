package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/model"
)

func fin(month, category string, amount float64) model.FinancialRecord {
	return model.FinancialRecord{
		Month:           month,
		AccountCategory: category,
		Currency:        "USD",
		Amount:          amount,
	}
}

func TestBuild(t *testing.T) {
	ds := &model.Dataset{
		Actuals: []model.FinancialRecord{
			fin("2024-01", "Revenue", 95000),
			fin("2024-01", "Opex:Marketing", 20000),
		},
		Budget: []model.FinancialRecord{
			fin("2024-01", "Revenue", 90000),
		},
		Cash: []model.CashRecord{
			{Month: "2024-01", CashBalance: 500000},
			{Month: "2024-02", CashBalance: 480000},
		},
	}

	pack := Build(engine.New(ds))

	if pack.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
	if len(pack.RevenueVsBudget.Rows) != 1 || pack.RevenueVsBudget.Note != "" {
		t.Errorf("revenue section = %+v", pack.RevenueVsBudget)
	}
	if pack.RevenueVsBudget.Chart == nil {
		t.Error("revenue chart missing")
	}
	if len(pack.Opex.Rows) != 1 {
		t.Errorf("opex rows = %d, want 1", len(pack.Opex.Rows))
	}
	if pack.Runway.Result.CurrentCash != 480000 {
		t.Errorf("CurrentCash = %f, want 480000", pack.Runway.Result.CurrentCash)
	}
}

func TestBuild_EmptyDataNeverErrors(t *testing.T) {
	pack := Build(engine.New(&model.Dataset{}))

	if pack.RevenueVsBudget.Note == "" || pack.Opex.Note == "" || pack.Runway.Note == "" {
		t.Error("empty data should surface notes on every section")
	}
	if pack.RevenueVsBudget.Rows == nil || pack.Opex.Rows == nil {
		t.Error("rows must be non-nil for JSON export")
	}
	if pack.RevenueVsBudget.Chart == nil || pack.Opex.Chart == nil {
		t.Error("empty sections still carry chart placeholders")
	}
}

func TestBuild_JSONShape(t *testing.T) {
	pack := Build(engine.New(&model.Dataset{}))

	data, err := json.Marshal(pack)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{`"generatedAt"`, `"revenueVsBudget"`, `"opex"`, `"runway"`} {
		if !strings.Contains(s, key) {
			t.Errorf("payload missing %s:\n%s", key, s)
		}
	}
	// Empty rows serialize as [], not null.
	if strings.Contains(s, `"rows":null`) {
		t.Error("rows serialized as null")
	}
}
