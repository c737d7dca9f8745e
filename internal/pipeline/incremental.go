package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cfoq-dev/cfoq/internal/model"
	"github.com/cfoq-dev/cfoq/internal/source"
	"github.com/cfoq-dev/cfoq/internal/store"
)

// CachedLoadResult extends LoadResult with cache metadata.
type CachedLoadResult struct {
	LoadResult
	CacheHits int
	Reparsed  int
}

// LoadWithCache diffs each fixture file against the cache tracker, parses
// only changed files, and serves the rest from SQLite. Cache write failures
// are ignored; the parse result is still returned.
func LoadWithCache(dir string, cache *store.Cache) (*CachedLoadResult, error) {
	tracked, err := cache.GetTrackedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading cache: %w", err)
	}

	result := &CachedLoadResult{}

	unchanged := func(path string) (int64, int64, bool) {
		info, err := os.Stat(path)
		if err != nil {
			return 0, 0, false
		}
		fi, ok := tracked[path]
		hit := ok && fi.MtimeNs == info.ModTime().UnixNano() && fi.SizeBytes == info.Size()
		return info.ModTime().UnixNano(), info.Size(), hit
	}

	// actuals + budget
	for _, t := range []struct {
		file  string
		table string
		dest  *[]model.FinancialRecord
	}{
		{source.ActualsFile, store.TableActuals, &result.Dataset.Actuals},
		{source.BudgetFile, store.TableBudget, &result.Dataset.Budget},
	} {
		path := filepath.Join(dir, t.file)
		mtime, size, hit := unchanged(path)
		if hit {
			records, err := cache.LoadFinancial(t.table)
			if err != nil {
				return nil, fmt.Errorf("loading cached %s: %w", t.table, err)
			}
			*t.dest = records
			result.CacheHits++
			continue
		}

		records, res, err := source.ParseFinancialFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", t.table, err)
		}
		*t.dest = records
		result.track(t.file, res, len(records))
		result.Reparsed++
		_ = cache.SaveFinancial(t.table, records, path, mtime, size)
	}

	// cash
	cashPath := filepath.Join(dir, source.CashFile)
	if mtime, size, hit := unchanged(cashPath); hit {
		cash, err := cache.LoadCash()
		if err != nil {
			return nil, fmt.Errorf("loading cached cash: %w", err)
		}
		result.Dataset.Cash = cash
		result.CacheHits++
	} else {
		cash, res, err := source.ParseCashFile(cashPath)
		if err != nil {
			return nil, fmt.Errorf("loading cash: %w", err)
		}
		result.Dataset.Cash = cash
		result.track(source.CashFile, res, len(cash))
		result.Reparsed++
		_ = cache.SaveCash(cash, cashPath, mtime, size)
	}

	// fx
	fxPath := filepath.Join(dir, source.FxFile)
	if mtime, size, hit := unchanged(fxPath); hit {
		fx, err := cache.LoadFx()
		if err != nil {
			return nil, fmt.Errorf("loading cached fx: %w", err)
		}
		result.Dataset.Fx = fx
		result.CacheHits++
	} else {
		fx, res, err := source.ParseFxFile(fxPath)
		if err != nil {
			return nil, fmt.Errorf("loading fx: %w", err)
		}
		result.Dataset.Fx = fx
		result.track(source.FxFile, res, len(fx))
		result.Reparsed++
		_ = cache.SaveFx(fx, fxPath, mtime, size)
	}

	sortCash(result.Dataset.Cash)
	return result, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "cfoq")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "cfoq")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "fixtures.db")
}
