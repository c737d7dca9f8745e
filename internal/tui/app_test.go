package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/cfoq-dev/cfoq/internal/config"
)

// configured points config at a temp dir holding a saved config file, so
// NewApp skips the first-run form.
func configured(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := config.Save(config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"actuals.csv": "month,entity,account_category,currency,amount\n2024-01,ParentCo,Revenue,USD,95000\n",
		"budget.csv":  "month,entity,account_category,currency,amount\n2024-01,ParentCo,Revenue,USD,90000\n",
		"cash.csv":    "month,cash_balance\n2024-01,500000\n",
		"fx.csv":      "month,currency,rate_to_usd\n2024-01,EUR,1.08\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func loadedApp(t *testing.T) App {
	t.Helper()
	configured(t)
	app := NewApp(writeFixtures(t), 6)

	msg := loadDataCmd(app.fixturesDir, app.trendWindow)()
	loaded, ok := msg.(DataLoadedMsg)
	if !ok {
		t.Fatalf("load msg = %T, want DataLoadedMsg", msg)
	}

	m, _ := app.Update(loaded)
	return m.(App)
}

func TestLoadDataCmd(t *testing.T) {
	msg := loadDataCmd(writeFixtures(t), 6)()
	loaded, ok := msg.(DataLoadedMsg)
	if !ok {
		t.Fatalf("msg = %T, want DataLoadedMsg", msg)
	}
	if loaded.Planner == nil {
		t.Error("planner not built")
	}
	if loaded.Rows != 4 {
		t.Errorf("Rows = %d, want 4", loaded.Rows)
	}
	if len(loaded.Missing) != 0 {
		t.Errorf("Missing = %v, want none", loaded.Missing)
	}
}

func TestSubmitAppendsTranscript(t *testing.T) {
	app := loadedApp(t)
	app.input.SetValue("What was January 2024 revenue vs budget?")

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = m.(App)

	if len(app.messages) != 2 {
		t.Fatalf("messages = %d, want question + answer", len(app.messages))
	}
	if app.messages[0].role != "you" || app.messages[1].role != "cfoq" {
		t.Errorf("roles = %q, %q", app.messages[0].role, app.messages[1].role)
	}
	if !strings.Contains(app.messages[1].text, "Revenue vs Budget for 2024-01") {
		t.Errorf("answer text:\n%s", app.messages[1].text)
	}
	if app.input.Value() != "" {
		t.Error("input not cleared after submit")
	}
}

func TestSubmitIgnoresEmptyInput(t *testing.T) {
	app := loadedApp(t)
	app.input.SetValue("   ")

	m, _ := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = m.(App)

	if len(app.messages) != 0 {
		t.Errorf("messages = %d, want 0", len(app.messages))
	}
}

func TestViewStates(t *testing.T) {
	configured(t)
	app := NewApp("missing-dir", 6)
	if !strings.Contains(app.View(), "Loading fixtures") {
		t.Error("pre-load view should show the loading state")
	}

	loaded := loadedApp(t)
	view := loaded.View()
	if !strings.Contains(view, "rows loaded") {
		t.Errorf("loaded view missing status line:\n%s", view)
	}
	if !strings.Contains(view, "Enter to ask") {
		t.Error("loaded view missing key hints")
	}
}

func TestFirstRunShowsSetupForm(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := NewApp("fixtures", 6)
	if !app.needSetup || app.setupForm == nil {
		t.Fatal("no config file should trigger the setup form")
	}
	if !strings.Contains(app.View(), "First run") {
		t.Error("first-run view missing the setup prompt")
	}
	if app.Init() == nil {
		t.Error("Init should start the form, not data loading")
	}
}

func TestConfiguredRunSkipsSetupForm(t *testing.T) {
	configured(t)

	app := NewApp("fixtures", 6)
	if app.needSetup || app.setupForm != nil {
		t.Error("existing config should skip the setup form")
	}
}

func TestSetupFormCompletionStartsLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := writeFixtures(t)
	app := NewApp("fixtures", 6)
	app.setupDir = dir
	app.setupForm.State = huh.StateCompleted

	m, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	app = m.(App)

	if app.needSetup {
		t.Error("form completion should clear needSetup")
	}
	if app.fixturesDir != dir {
		t.Errorf("fixturesDir = %q, want %q", app.fixturesDir, dir)
	}
	if cmd == nil {
		t.Fatal("form completion should kick off data loading")
	}
	if !config.Exists() {
		t.Error("form completion should persist the config")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.FixturesDir != dir {
		t.Errorf("saved FixturesDir = %q, want %q", cfg.General.FixturesDir, dir)
	}
}

func TestSetupFormAbortQuits(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	app := NewApp("fixtures", 6)
	app.setupForm.State = huh.StateAborted

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd == nil {
		t.Fatal("aborting the form should quit")
	}
	if config.Exists() {
		t.Error("aborting the form should not write a config")
	}
}

func TestQuitKeys(t *testing.T) {
	app := loadedApp(t)
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		_, cmd := app.Update(tea.KeyMsg{Type: key})
		if cmd == nil {
			t.Errorf("key %v should quit", key)
		}
	}
}
