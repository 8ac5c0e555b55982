package strikes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"strikearr/internal/config"
)

// Store persists a Ledger in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the strike database at cfg.Ledger.Path.
func Open(cfg *config.Config) (*Store, error) {
	if cfg == nil || strings.TrimSpace(cfg.Ledger.Path) == "" {
		return nil, errors.New("open strike store: ledger path is empty")
	}
	return OpenPath(cfg.Ledger.Path)
}

// OpenPath opens the strike database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads every persisted row into a fresh Ledger.
func (s *Store) Load(ctx context.Context) (*Ledger, error) {
	ledger := NewLedger()
	err := retryOnBusy(ctx, func() error {
		ledger.Reset()
		rows, err := s.db.QueryContext(ctx, "SELECT item_id, count, updated_at FROM strikes ORDER BY item_id")
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				entry   Entry
				updated string
			)
			if err := rows.Scan(&entry.ItemID, &entry.Strikes, &updated); err != nil {
				return err
			}
			entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
			ledger.restore(entry)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("load strikes: %w", err)
	}
	return ledger, nil
}

// Save replaces the persisted rows with the ledger contents in one transaction.
func (s *Store) Save(ctx context.Context, ledger *Ledger) error {
	entries := ledger.Entries()
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, "DELETE FROM strikes"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO strikes (item_id, count, updated_at) VALUES (?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, entry := range entries {
			updated := entry.UpdatedAt
			if updated.IsZero() {
				updated = time.Now()
			}
			if _, err := stmt.ExecContext(ctx, entry.ItemID, entry.Strikes, updated.UTC().Format(time.RFC3339Nano)); err != nil {
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("save strikes: %w", err)
	}
	return nil
}

// Clear deletes every persisted row and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	var removed int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM strikes")
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("clear strikes: %w", err)
	}
	return removed, nil
}

// Remove deletes a single item and reports whether a row existed.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := retryOnBusy(ctx, func() error {
		res, err := s.db.ExecContext(ctx, "DELETE FROM strikes WHERE item_id = ?", id)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return false, fmt.Errorf("remove strike %d: %w", id, err)
	}
	return affected > 0, nil
}
