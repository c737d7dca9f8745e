// Package cmd implements the cfoq CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/cfoq-dev/cfoq/internal/config"
	"github.com/cfoq-dev/cfoq/internal/engine"
	"github.com/cfoq-dev/cfoq/internal/pipeline"
	"github.com/cfoq-dev/cfoq/internal/planner"
	"github.com/cfoq-dev/cfoq/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagFixtures string
	flagWindow   int
	flagNoCache  bool
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "cfoq [question]",
	Short: "Conversational financial analysis over your fixtures",
	Long: "Ask free-text questions about actuals, budget, cash, and FX fixtures:\n" +
		"revenue vs budget, OpEx breakdown, EBITDA, cash runway, gross margin trend.",
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runAskQuestion(strings.Join(args, " "))
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFixtures, "fixtures", "f", "", "Fixtures directory (default from config)")
	rootCmd.PersistentFlags().IntVarP(&flagWindow, "window", "w", 0, "Trailing months for burn-rate averaging (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip SQLite cache, reparse fixtures")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// resolveSettings merges flags over config.
func resolveSettings() (fixturesDir string, trendWindow int) {
	cfg, _ := config.Load()

	fixturesDir = flagFixtures
	if fixturesDir == "" {
		fixturesDir = config.FixturesDir(cfg)
	}

	trendWindow = flagWindow
	if trendWindow <= 0 {
		trendWindow = cfg.General.TrendWindowMonths
	}

	if flagNoCache || cfg.General.NoCache {
		flagNoCache = true
	}
	return fixturesDir, trendWindow
}

// loadData is the shared fixture loading path used by all commands.
// Uses the SQLite cache when available for fast subsequent runs.
func loadData(fixturesDir string) (*pipeline.LoadResult, error) {
	if !flagNoCache {
		cache, err := store.Open(pipeline.CachePath())
		if err != nil {
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache unavailable, doing full parse\n")
			}
		} else {
			defer func() { _ = cache.Close() }()

			cr, err := pipeline.LoadWithCache(fixturesDir, cache)
			if err == nil {
				if !flagQuiet {
					fmt.Fprintf(os.Stderr, "  Loaded fixtures (%d cached, %d parsed)\n", cr.CacheHits, cr.Reparsed)
				}
				reportMissing(&cr.LoadResult)
				return &cr.LoadResult, nil
			}
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Cache error, falling back to full parse\n")
			}
		}
	}

	result, err := pipeline.Load(fixturesDir)
	if err != nil {
		return nil, err
	}
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Parsed %d fixture rows\n", result.RowsParsed)
	}
	reportMissing(result)
	return result, nil
}

func reportMissing(result *pipeline.LoadResult) {
	if flagQuiet {
		return
	}
	for _, f := range result.MissingFiles {
		fmt.Fprintf(os.Stderr, "  %s not found, table is empty\n", f)
	}
	if result.RowsSkipped > 0 {
		fmt.Fprintf(os.Stderr, "  %d malformed rows skipped\n", result.RowsSkipped)
	}
}

// buildPlanner wires pipeline -> engine -> planner for one-shot commands.
func buildPlanner() (*planner.Planner, error) {
	fixturesDir, trendWindow := resolveSettings()
	result, err := loadData(fixturesDir)
	if err != nil {
		return nil, err
	}
	eng := engine.New(&result.Dataset, engine.WithTrendWindow(trendWindow))
	return planner.New(eng), nil
}
