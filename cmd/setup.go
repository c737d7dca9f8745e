package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cfoq-dev/cfoq/internal/config"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive configuration wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup()
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fixturesDir := cfg.General.FixturesDir
	windowStr := strconv.Itoa(cfg.General.TrendWindowMonths)
	useCache := !cfg.General.NoCache
	theme := cfg.Appearance.Theme

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Fixtures directory").
				Description("Directory containing actuals.csv, budget.csv, cash.csv, fx.csv").
				Value(&fixturesDir),
			huh.NewInput().
				Title("Burn-rate window (months)").
				Description("Trailing months averaged for cash runway").
				Value(&windowStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 {
						return errors.New("enter a positive whole number")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Cache parsed fixtures?").
				Description("Stores parsed rows in SQLite so repeat runs skip the CSV parse").
				Value(&useCache),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Flexoki Light", "flexoki-light"),
				).
				Value(&theme),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return err
	}

	window, _ := strconv.Atoi(windowStr)
	cfg.General.FixturesDir = fixturesDir
	cfg.General.TrendWindowMonths = window
	cfg.General.NoCache = !useCache
	cfg.Appearance.Theme = theme

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("  Config saved to %s\n", config.ConfigPath())
	return nil
}
