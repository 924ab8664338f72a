package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	learnerout "learnhub/internal/modules/learner/port/out"
	apperrors "learnhub/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const learnerIDKey = "learnerId"

// SQLiteIdentityStore keeps the learner id in a small key-value table.
type SQLiteIdentityStore struct {
	db *sql.DB
}

func NewSQLiteIdentityStore(dbPath string) (learnerout.IdentityStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteIdentityStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteIdentityStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteIdentityStore) SaveLearnerID(ctx context.Context, learnerID string) error {
	const stmt = `
INSERT INTO kv (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value;
`
	if _, err := s.db.ExecContext(ctx, stmt, learnerIDKey, learnerID); err != nil {
		return fmt.Errorf("save learner id: %w", err)
	}
	return nil
}

func (s *SQLiteIdentityStore) LoadLearnerID(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, learnerIDKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && value == "") {
		return "", apperrors.ErrNoLearner
	}
	if err != nil {
		return "", fmt.Errorf("load learner id: %w", err)
	}
	return value, nil
}

func (s *SQLiteIdentityStore) ClearLearnerID(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, learnerIDKey); err != nil {
		return fmt.Errorf("clear learner id: %w", err)
	}
	return nil
}
