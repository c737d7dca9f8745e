// Package store provides a SQLite-backed cache for parsed fixture tables.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cfoq-dev/cfoq/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Table names for the two financial_records partitions.
const (
	TableActuals = "actuals"
	TableBudget  = "budget"
)

// Cache provides SQLite-backed fixture caching so unchanged CSV files skip
// the parse on subsequent runs.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a fixture file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// SaveFinancial replaces one financial_records partition (actuals or budget)
// and records the source file's tracking info in the same transaction.
func (c *Cache) SaveFinancial(table string, records []model.FinancialRecord, filePath string, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM financial_records WHERE tbl = ?", table); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO financial_records
		(tbl, month, entity, account_category, currency, amount)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.Exec(table, r.Month, r.Entity, r.AccountCategory, r.Currency, r.Amount); err != nil {
			return err
		}
	}

	if err := trackFile(tx, filePath, mtimeNs, sizeBytes); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveCash replaces the cached cash table.
func (c *Cache) SaveCash(records []model.CashRecord, filePath string, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM cash_records"); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := tx.Exec("INSERT INTO cash_records (month, cash_balance) VALUES (?, ?)",
			r.Month, r.CashBalance); err != nil {
			return err
		}
	}

	if err := trackFile(tx, filePath, mtimeNs, sizeBytes); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveFx replaces the cached fx table.
func (c *Cache) SaveFx(rates []model.FxRate, filePath string, mtimeNs, sizeBytes int64) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM fx_rates"); err != nil {
		return err
	}
	for _, r := range rates {
		if _, err := tx.Exec("INSERT OR REPLACE INTO fx_rates (month, currency, rate_to_usd) VALUES (?, ?, ?)",
			r.Month, r.Currency, r.RateToUSD); err != nil {
			return err
		}
	}

	if err := trackFile(tx, filePath, mtimeNs, sizeBytes); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadFinancial reads one cached financial partition.
func (c *Cache) LoadFinancial(table string) ([]model.FinancialRecord, error) {
	rows, err := c.db.Query(`SELECT month, entity, account_category, currency, amount
		FROM financial_records WHERE tbl = ?`, table)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.FinancialRecord
	for rows.Next() {
		var r model.FinancialRecord
		var entity sql.NullString
		if err := rows.Scan(&r.Month, &entity, &r.AccountCategory, &r.Currency, &r.Amount); err != nil {
			return nil, err
		}
		r.Entity = entity.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadCash reads the cached cash table.
func (c *Cache) LoadCash() ([]model.CashRecord, error) {
	rows, err := c.db.Query("SELECT month, cash_balance FROM cash_records")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.CashRecord
	for rows.Next() {
		var r model.CashRecord
		if err := rows.Scan(&r.Month, &r.CashBalance); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// LoadFx reads the cached fx table.
func (c *Cache) LoadFx() ([]model.FxRate, error) {
	rows, err := c.db.Query("SELECT month, currency, rate_to_usd FROM fx_rates")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rates []model.FxRate
	for rows.Next() {
		var r model.FxRate
		if err := rows.Scan(&r.Month, &r.Currency, &r.RateToUSD); err != nil {
			return nil, err
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// DeleteFileTracker removes a file tracking entry, forcing a reparse of that
// fixture on the next load.
func (c *Cache) DeleteFileTracker(filePath string) error {
	_, err := c.db.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath)
	return err
}

func trackFile(tx *sql.Tx, filePath string, mtimeNs, sizeBytes int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes, parsed_at)
		VALUES (?, ?, ?, ?)`, filePath, mtimeNs, sizeBytes, now)
	return err
}
