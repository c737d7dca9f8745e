// Package tui provides the interactive Bubble Tea chat session for cfoq.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/cfoq-dev/cfoq/internal/chart"
	"github.com/cfoq-dev/cfoq/internal/cli"
	"github.com/cfoq-dev/cfoq/internal/config"
	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/pipeline"
	"github.com/cfoq-dev/cfoq/internal/planner"
)

// DataLoadedMsg is sent when the fixture pipeline finishes.
type DataLoadedMsg struct {
	Planner  *planner.Planner
	Rows     int
	Missing  []string
	LoadTime time.Duration
}

// LoadFailedMsg is sent when the fixture pipeline errors out.
type LoadFailedMsg struct {
	Err error
}

type message struct {
	role string // "you" or "cfoq"
	text string
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	youStyle    = lipgloss.NewStyle().Foreground(cli.ColorBlue).Bold(true)
	botStyle    = lipgloss.NewStyle().Foreground(cli.ColorGreen).Bold(true)
	textStyle   = lipgloss.NewStyle().Foreground(cli.ColorText)
	faintStyle  = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	errStyle    = lipgloss.NewStyle().Foreground(cli.ColorRed)
)

// App is the root Bubble Tea model for the chat session.
type App struct {
	fixturesDir string
	trendWindow int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupDir  string
	needSetup bool

	planner  *planner.Planner
	loaded   bool
	loadErr  error
	dataLine string

	messages []message
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int
}

// NewApp creates the chat app. Fixtures are loaded asynchronously in Init.
func NewApp(fixturesDir string, trendWindow int) App {
	ti := textinput.New()
	ti.Placeholder = "Ask about revenue, opex, ebitda, margin, or runway..."
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(cli.ColorAccent)

	a := App{
		fixturesDir: fixturesDir,
		trendWindow: trendWindow,
		input:       ti,
		spinner:     sp,
	}

	if !config.Exists() {
		a.needSetup = true
		a.setupDir = fixturesDir
		a.setupForm = newSetupForm(&a.setupDir)
	}
	return a
}

// newSetupForm builds the first-run form asking for the fixtures directory.
func newSetupForm(dir *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fixtures directory").
				Description("Directory containing actuals.csv, budget.csv, cash.csv, fx.csv").
				Value(dir),
		),
	)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.needSetup {
		return tea.Batch(a.setupForm.Init(), a.spinner.Tick)
	}
	return tea.Batch(
		loadDataCmd(a.fixturesDir, a.trendWindow),
		a.spinner.Tick,
		textinput.Blink,
	)
}

// loadDataCmd runs the fixture pipeline off the UI loop.
func loadDataCmd(dir string, trendWindow int) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		result, err := pipeline.Load(dir)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		eng := engine.New(&result.Dataset, engine.WithTrendWindow(trendWindow))
		return DataLoadedMsg{
			Planner:  planner.New(eng),
			Rows:     result.RowsParsed,
			Missing:  result.MissingFiles,
			LoadTime: time.Since(start),
		}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.needSetup && a.setupForm != nil {
		if ws, ok := msg.(tea.WindowSizeMsg); ok {
			a.width = ws.Width
			a.height = ws.Height
		}
		return a.updateSetupForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if msg.Width > 20 {
			a.input.Width = msg.Width - 10
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.planner = msg.Planner
		a.dataLine = fmt.Sprintf("%d rows loaded in %s", msg.Rows, msg.LoadTime.Round(time.Millisecond))
		if len(msg.Missing) > 0 {
			a.dataLine += fmt.Sprintf("  (missing: %s)", strings.Join(msg.Missing, ", "))
		}
		return a, nil

	case LoadFailedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "enter":
			return a.submit()
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.fixturesDir = strings.TrimSpace(a.setupDir)
		a.needSetup = false
		a.setupForm = nil
		_ = a.saveSetupConfig()
		return a, tea.Batch(
			loadDataCmd(a.fixturesDir, a.trendWindow),
			textinput.Blink,
		)
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

// saveSetupConfig persists the first-run answers; a write failure only means
// the form shows again next session.
func (a App) saveSetupConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.General.FixturesDir = a.fixturesDir
	cfg.General.TrendWindowMonths = a.trendWindow
	return config.Save(cfg)
}

func (a App) submit() (tea.Model, tea.Cmd) {
	question := strings.TrimSpace(a.input.Value())
	if question == "" || !a.loaded || a.planner == nil {
		return a, nil
	}

	a.input.Reset()
	a.messages = append(a.messages, message{role: "you", text: question})

	answer := a.planner.Answer(question)
	text := answer.Text
	if preview := renderChartPreview(answer.Chart); preview != "" {
		text += "\n" + preview
	}
	a.messages = append(a.messages, message{role: "cfoq", text: text})

	return a, nil
}

func renderChartPreview(spec *chart.Spec) string {
	if spec == nil {
		return ""
	}
	return strings.TrimRight(cli.RenderChart(spec), "\n")
}

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(cli.RenderTitle("CFOQ CHAT"))
	b.WriteString("\n")

	switch {
	case a.needSetup && a.setupForm != nil:
		b.WriteString("\n  ")
		b.WriteString(faintStyle.Render("First run: tell cfoq where your fixtures live."))
		b.WriteString("\n\n")
		b.WriteString(a.setupForm.View())
		b.WriteString("\n")

	case !a.loaded:
		b.WriteString(fmt.Sprintf("\n  %s Loading fixtures from %s...\n", a.spinner.View(), a.fixturesDir))

	case a.loadErr != nil:
		b.WriteString("\n  ")
		b.WriteString(errStyle.Render(fmt.Sprintf("Could not load fixtures: %s", a.loadErr)))
		b.WriteString("\n\n  ")
		b.WriteString(faintStyle.Render("Fix the fixtures directory (cfoq setup) and try again. Esc to quit."))
		b.WriteString("\n")

	default:
		b.WriteString("  ")
		b.WriteString(faintStyle.Render(a.dataLine))
		b.WriteString("\n\n")

		for _, m := range a.tailMessages() {
			label := botStyle.Render("cfoq")
			if m.role == "you" {
				label = youStyle.Render("you")
			}
			b.WriteString(fmt.Sprintf("  %s\n", label))
			for _, line := range strings.Split(m.text, "\n") {
				b.WriteString("  ")
				b.WriteString(textStyle.Render(line))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}

		b.WriteString("  ")
		b.WriteString(promptStyle.Render("> "))
		b.WriteString(a.input.View())
		b.WriteString("\n\n  ")
		b.WriteString(faintStyle.Render("Enter to ask · Esc to quit"))
		b.WriteString("\n")
	}

	return b.String()
}

// tailMessages keeps the transcript within the terminal height.
func (a App) tailMessages() []message {
	if a.height <= 0 {
		return a.messages
	}

	budget := a.height - 10 // title, status, prompt, margins
	if budget < 4 {
		budget = 4
	}

	lines := 0
	start := len(a.messages)
	for start > 0 {
		next := strings.Count(a.messages[start-1].text, "\n") + 3
		if lines+next > budget {
			break
		}
		lines += next
		start--
	}
	return a.messages[start:]
}
