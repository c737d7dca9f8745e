package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS financial_records (
    tbl                  TEXT NOT NULL,
    month                TEXT NOT NULL,
    entity               TEXT,
    account_category     TEXT NOT NULL,
    currency             TEXT NOT NULL,
    amount               REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS cash_records (
    month                TEXT NOT NULL,
    cash_balance         REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS fx_rates (
    month                TEXT NOT NULL,
    currency             TEXT NOT NULL,
    rate_to_usd          REAL NOT NULL,
    PRIMARY KEY (month, currency)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_financial_tbl ON financial_records(tbl);
CREATE INDEX IF NOT EXISTS idx_financial_month ON financial_records(month);
`
