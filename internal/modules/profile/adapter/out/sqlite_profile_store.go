package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wearlog/internal/modules/profile/domain"
	profileout "wearlog/internal/modules/profile/port/out"
	apperrors "wearlog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

const dayLayout = "2006-01-02"

// SQLiteProfileStore keeps the single user profile in a one-row table on
// the shared database handle.
type SQLiteProfileStore struct {
	db *sql.DB
}

func NewSQLiteProfileStore(db *sql.DB) (profileout.ProfileStore, error) {
	store := &SQLiteProfileStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteProfileStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS profile (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  method_id TEXT NOT NULL,
  started_on TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create profile table: %w", err)
	}
	return s.ensurePrefColumns(ctx)
}

// ensurePrefColumns backfills preference columns added after the first
// release, so a database created by an older build keeps working. New
// columns default to enabled, matching DefaultPrefs.
func (s *SQLiteProfileStore) ensurePrefColumns(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(profile)`)
	if err != nil {
		return fmt.Errorf("inspect profile table: %w", err)
	}
	defer rows.Close()

	present := map[string]bool{}
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return fmt.Errorf("inspect profile table: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("inspect profile table: %w", err)
	}

	for _, column := range []string{
		"want_imminent_miss",
		"want_two_hours_left",
		"want_min_reached",
		"want_max_reached",
		"want_max_extra_exceeded",
	} {
		if present[column] {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE profile ADD COLUMN %s INTEGER NOT NULL DEFAULT 1`, column)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("add column %s: %w", column, err)
		}
	}
	return nil
}

func (s *SQLiteProfileStore) Load(ctx context.Context) (domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT method_id, started_on,
       want_imminent_miss, want_two_hours_left, want_min_reached,
       want_max_reached, want_max_extra_exceeded
FROM profile WHERE id = 1`)

	var (
		profile   domain.Profile
		startedOn string
		flags     [5]int
	)
	err := row.Scan(&profile.MethodID, &startedOn,
		&flags[0], &flags[1], &flags[2], &flags[3], &flags[4])
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Profile{}, apperrors.ErrNoProfile
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("load profile: %w", err)
	}
	started, err := time.ParseInLocation(dayLayout, startedOn, time.Local)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("parse started_on %q: %w", startedOn, err)
	}
	profile.StartedOn = started
	profile.Prefs = domain.Prefs{
		ImminentMiss:     flags[0] != 0,
		TwoHoursLeft:     flags[1] != 0,
		MinReached:       flags[2] != 0,
		MaxReached:       flags[3] != 0,
		MaxExtraExceeded: flags[4] != 0,
	}
	return profile, nil
}

func (s *SQLiteProfileStore) Save(ctx context.Context, profile domain.Profile) error {
	const stmt = `
INSERT INTO profile (id, method_id, started_on,
  want_imminent_miss, want_two_hours_left, want_min_reached,
  want_max_reached, want_max_extra_exceeded)
VALUES (1, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  method_id=excluded.method_id,
  started_on=excluded.started_on,
  want_imminent_miss=excluded.want_imminent_miss,
  want_two_hours_left=excluded.want_two_hours_left,
  want_min_reached=excluded.want_min_reached,
  want_max_reached=excluded.want_max_reached,
  want_max_extra_exceeded=excluded.want_max_extra_exceeded;
`
	_, err := s.db.ExecContext(ctx, stmt,
		profile.MethodID,
		profile.StartedOn.Format(dayLayout),
		flagColumn(profile.Prefs.ImminentMiss),
		flagColumn(profile.Prefs.TwoHoursLeft),
		flagColumn(profile.Prefs.MinReached),
		flagColumn(profile.Prefs.MaxReached),
		flagColumn(profile.Prefs.MaxExtraExceeded),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func flagColumn(b bool) int {
	if b {
		return 1
	}
	return 0
}
