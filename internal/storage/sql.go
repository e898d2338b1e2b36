package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
	CREATE TABLE IF NOT EXISTS ledger_records (
		slot INTEGER NOT NULL,
		record_key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (slot, record_key)
	)`

const upsertRecord = `
	INSERT INTO ledger_records (slot, record_key, value)
	VALUES (?, ?, ?)
	ON CONFLICT (slot, record_key) DO UPDATE SET value = excluded.value`

// SQLBackend stores every slot in a single ledger_records table. It runs on
// PostgreSQL (lib/pq) or SQLite (go-sqlite3).
type SQLBackend struct {
	db *sqlx.DB
}

// OpenSQL connects with driver "postgres" or "sqlite" and creates the schema.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQLBackend, error) {
	driverName := driver
	if driver == "sqlite" {
		driverName = "sqlite3"
	}

	db, err := sqlx.ConnectContext(ctx, driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driverName == "sqlite3" {
		// SQLite allows one writer; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLBackend{db: db}, nil
}

func (b *SQLBackend) Get(ctx context.Context, slot Slot, key string) ([]byte, bool, error) {
	var value string
	query := b.db.Rebind(`SELECT value FROM ledger_records WHERE slot = ? AND record_key = ?`)
	err := b.db.GetContext(ctx, &value, query, int(slot), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s/%s: %w", slot, key, err)
	}
	return []byte(value), true, nil
}

func (b *SQLBackend) Values(ctx context.Context, slot Slot) ([][]byte, error) {
	var rows []string
	query := b.db.Rebind(`SELECT value FROM ledger_records WHERE slot = ? ORDER BY record_key`)
	if err := b.db.SelectContext(ctx, &rows, query, int(slot)); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", slot, err)
	}
	values := make([][]byte, len(rows))
	for i, r := range rows {
		values[i] = []byte(r)
	}
	return values, nil
}

func (b *SQLBackend) Commit(ctx context.Context, entries ...Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}

	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin commit: %w", err)
	}
	defer tx.Rollback()

	query := tx.Rebind(upsertRecord)
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, int(e.Slot), e.Key, string(e.Value)); err != nil {
			return fmt.Errorf("failed to write %s/%s: %w", e.Slot, e.Key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}
