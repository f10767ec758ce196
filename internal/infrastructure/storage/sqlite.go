// Package storage persists the session snapshot to a local SQLite file,
// the desktop analog of the browser's keyed local-storage blob. Only the
// allow-listed fields ever touch disk.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/VipinKumar1310/autotrade/internal/domain"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			authenticated BOOLEAN NOT NULL DEFAULT 0,
			user_doc TEXT,
			theme TEXT NOT NULL DEFAULT 'dark'
		);`,
		`CREATE TABLE IF NOT EXISTS automations (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			doc TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notifications (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			doc TEXT NOT NULL
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the persisted snapshot. A missing session row means nothing
// has ever been persisted and the caller should fall back to fixtures.
func (s *SQLiteStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	row := s.db.QueryRowContext(ctx, `SELECT authenticated, user_doc, theme FROM session WHERE id = 1`)

	var snap domain.Snapshot
	var userDoc sql.NullString
	var theme string
	err := row.Scan(&snap.Authenticated, &userDoc, &theme)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	snap.Theme = domain.Theme(theme)

	if userDoc.Valid {
		var u domain.User
		if err := json.Unmarshal([]byte(userDoc.String), &u); err != nil {
			return nil, fmt.Errorf("decode persisted user: %w", err)
		}
		snap.User = &u
	}

	snap.Automations, err = loadRows(ctx, s.db, "automations", func(doc []byte) (domain.Automation, error) {
		var a domain.Automation
		err := json.Unmarshal(doc, &a)
		return a, err
	})
	if err != nil {
		return nil, err
	}

	snap.Notifications, err = loadRows(ctx, s.db, "notifications", func(doc []byte) (domain.Notification, error) {
		var n domain.Notification
		err := json.Unmarshal(doc, &n)
		return n, err
	})
	if err != nil {
		return nil, err
	}

	return &snap, nil
}

func loadRows[T any](ctx context.Context, db *sql.DB, table string, decode func([]byte) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT doc FROM %s ORDER BY seq`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		v, err := decode([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("decode %s doc: %w", table, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Save replaces the whole snapshot in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var userDoc interface{}
	if snap.User != nil {
		raw, err := json.Marshal(snap.User)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		userDoc = string(raw)
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO session (id, authenticated, user_doc, theme)
			  VALUES (1, ?, ?, ?)
			  ON CONFLICT(id) DO UPDATE SET
			  authenticated=excluded.authenticated,
			  user_doc=excluded.user_doc,
			  theme=excluded.theme`,
		snap.Authenticated, userDoc, string(snap.Theme))
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM automations`); err != nil {
		return err
	}
	for _, a := range snap.Automations {
		raw, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encode automation %s: %w", a.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO automations (id, doc) VALUES (?, ?)`, a.ID, string(raw)); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM notifications`); err != nil {
		return err
	}
	for _, n := range snap.Notifications {
		raw, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encode notification %s: %w", n.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO notifications (id, doc) VALUES (?, ?)`, n.ID, string(raw)); err != nil {
			return err
		}
	}

	return tx.Commit()
}
