package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"wearlog/internal/modules/tracking/domain"
	apperrors "wearlog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// Fixed-width timestamps: trailing nanosecond zeros are kept so the TEXT
// column compares lexicographically in time order for range scans.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(dbPath string) (*SQLiteSessionStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteSessionStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

// DB exposes the handle so sibling stores and the transaction manager can
// share a single database file.
func (s *SQLiteSessionStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteSessionStore) Close() error {
	return s.db.Close()
}

// migrations run once each, tracked through PRAGMA user_version.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_at TEXT NOT NULL,
  end_at TEXT
);`,
	`ALTER TABLE sessions ADD COLUMN unprotected_sex INTEGER NOT NULL DEFAULT 0;`,
	`CREATE INDEX IF NOT EXISTS sessions_start_at ON sessions (start_at);`,
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	for ; version < len(migrations); version++ {
		if _, err := s.db.ExecContext(ctx, migrations[version]); err != nil {
			return fmt.Errorf("apply migration %d: %w", version+1, err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version+1)); err != nil {
			return fmt.Errorf("bump schema version: %w", err)
		}
	}
	return nil
}

func (s *SQLiteSessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := querier(ctx, s.db).QueryContext(ctx,
		`SELECT id, start_at, end_at, unprotected_sex FROM sessions ORDER BY start_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) ListBetween(ctx context.Context, start, end time.Time) ([]domain.Session, error) {
	rows, err := querier(ctx, s.db).QueryContext(ctx,
		`SELECT id, start_at, end_at, unprotected_sex FROM sessions WHERE start_at >= ? AND start_at < ? ORDER BY start_at, id`,
		start.Format(timeLayout), end.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("list sessions between: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions between: %w", err)
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) FirstOpen(ctx context.Context) (domain.Session, error) {
	row := querier(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, start_at, end_at, unprotected_sex FROM sessions WHERE end_at IS NULL ORDER BY start_at, id LIMIT 1`)
	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, apperrors.ErrNoOpenSession
	}
	if err != nil {
		return domain.Session{}, err
	}
	return session, nil
}

func (s *SQLiteSessionStore) Create(ctx context.Context, session domain.Session) (int64, error) {
	result, err := querier(ctx, s.db).ExecContext(ctx,
		`INSERT INTO sessions (start_at, end_at, unprotected_sex) VALUES (?, ?, ?)`,
		session.Start.Format(timeLayout),
		endColumn(session.End),
		boolColumn(session.UnprotectedSex),
	)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return id, nil
}

func (s *SQLiteSessionStore) Update(ctx context.Context, session domain.Session) error {
	result, err := querier(ctx, s.db).ExecContext(ctx,
		`UPDATE sessions SET start_at = ?, end_at = ?, unprotected_sex = ? WHERE id = ?`,
		session.Start.Format(timeLayout),
		endColumn(session.End),
		boolColumn(session.UnprotectedSex),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("update session %d: %w", session.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %d: %w", session.ID, err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", session.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, id int64) error {
	result, err := querier(ctx, s.db).ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("session %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		session domain.Session
		startAt string
		endAt   sql.NullString
		flag    int
	)
	if err := row.Scan(&session.ID, &startAt, &endAt, &flag); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Session{}, err
		}
		return domain.Session{}, fmt.Errorf("scan session: %w", err)
	}
	start, err := time.Parse(timeLayout, startAt)
	if err != nil {
		return domain.Session{}, fmt.Errorf("parse start_at %q: %w", startAt, err)
	}
	session.Start = start
	if endAt.Valid {
		end, err := time.Parse(timeLayout, endAt.String)
		if err != nil {
			return domain.Session{}, fmt.Errorf("parse end_at %q: %w", endAt.String, err)
		}
		session.End = end
	}
	session.UnprotectedSex = flag != 0
	return session, nil
}

func endColumn(end time.Time) any {
	if end.IsZero() {
		return nil
	}
	return end.Format(timeLayout)
}

func boolColumn(b bool) int {
	if b {
		return 1
	}
	return 0
}
