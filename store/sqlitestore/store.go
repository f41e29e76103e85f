// Package sqlitestore persists the ledger in a local SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/hisaab-app/hisaab"
	"github.com/hisaab-app/hisaab/logger"
)

// Store is the SQLite-backed ledger store. A single writer is assumed
// (single-user app); WAL mode lets readers run concurrently with it.
type Store struct {
	db     *sql.DB
	dbPath string
	queries
}

// Open opens (or creates) the database file and initializes the schema.
// It enables WAL mode for better concurrency and foreign key constraints.
func Open(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, queries: queries{q: db}}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string { return s.dbPath }

// InTx executes fn within one SQL transaction. If fn returns an error, the
// transaction is rolled back and nothing is persisted.
func (s *Store) InTx(ctx context.Context, fn func(hisaab.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&txStore{queries{q: tx}}); err != nil {
		log := logger.FromContext(ctx)
		log.Debug().Err(err).Msg("rolling back transaction")
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// txStore is the view handed to InTx callbacks, backed by an open sql.Tx.
type txStore struct {
	queries
}

// InTx on a transaction view runs fn directly: SQLite transactions do not
// nest, the outer one already owns atomicity.
func (t *txStore) InTx(ctx context.Context, fn func(hisaab.Store) error) error {
	return fn(t)
}
