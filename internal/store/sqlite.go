package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/ticketboard/internal/model"
)

// ErrNoSnapshot is returned by LoadSnapshot when nothing has been saved.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SQLiteStore implements SnapshotStore using a local SQLite database.
type SQLiteStore struct {
	db   *sqlx.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// An in-memory database exists per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database path the store was opened with.
func (s *SQLiteStore) Path() string {
	return s.path
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	// Check if schema_version table exists.
	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ticketRow is the tickets table layout.
type ticketRow struct {
	Position int    `db:"position"`
	ID       string `db:"id"`
	Title    string `db:"title"`
	Status   string `db:"status"`
	Priority int    `db:"priority"`
	UserID   string `db:"user_id"`
	Tags     string `db:"tags"`
}

// userRow is the users table layout.
type userRow struct {
	Position  int    `db:"position"`
	ID        string `db:"id"`
	Name      string `db:"name"`
	Available bool   `db:"available"`
}

// SaveSnapshot replaces the stored snapshot with snap in one transaction.
// origin records where the snapshot came from (usually the endpoint URL).
func (s *SQLiteStore) SaveSnapshot(
	ctx context.Context,
	snap *model.Snapshot,
	origin string,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tickets", "users", "snapshot_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	fetchedAt := snap.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO snapshot_meta (id, source, fetched_at) VALUES (1, ?, ?)",
		origin, fetchedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("writing snapshot metadata: %w", err)
	}

	for i, t := range snap.Tickets {
		tags, err := json.Marshal(t.Tags)
		if err != nil {
			return fmt.Errorf("marshaling tags for ticket %s: %w", t.ID, err)
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO tickets (position, id, title, status, priority, user_id, tags)
			VALUES (:position, :id, :title, :status, :priority, :user_id, :tags)`,
			ticketRow{
				Position: i,
				ID:       t.ID,
				Title:    t.Title,
				Status:   string(t.Status),
				Priority: int(t.Priority),
				UserID:   t.UserID,
				Tags:     string(tags),
			},
		)
		if err != nil {
			return fmt.Errorf("saving ticket %s: %w", t.ID, err)
		}
	}

	for i, u := range snap.Users {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO users (position, id, name, available)
			VALUES (:position, :id, :name, :available)`,
			userRow{Position: i, ID: u.ID, Name: u.Name, Available: u.Available},
		)
		if err != nil {
			return fmt.Errorf("saving user %s: %w", u.ID, err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot back in saved order.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var fetchedAt time.Time
	err := s.db.GetContext(ctx, &fetchedAt, "SELECT fetched_at FROM snapshot_meta WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot metadata: %w", err)
	}

	var tickets []ticketRow
	if err := s.db.SelectContext(ctx, &tickets,
		"SELECT position, id, title, status, priority, user_id, tags FROM tickets ORDER BY position",
	); err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}

	var users []userRow
	if err := s.db.SelectContext(ctx, &users,
		"SELECT position, id, name, available FROM users ORDER BY position",
	); err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	snap := model.EmptySnapshot()
	snap.FetchedAt = fetchedAt

	for _, r := range tickets {
		t := model.Ticket{
			ID:       r.ID,
			Title:    r.Title,
			Status:   model.Status(r.Status),
			Priority: model.Priority(r.Priority),
			UserID:   r.UserID,
		}
		if r.Tags != "" {
			if err := json.Unmarshal([]byte(r.Tags), &t.Tags); err != nil {
				return nil, fmt.Errorf("unmarshaling tags for ticket %s: %w", r.ID, err)
			}
		}
		snap.Tickets = append(snap.Tickets, t)
	}

	for _, r := range users {
		snap.Users = append(snap.Users, model.User{
			ID:        r.ID,
			Name:      r.Name,
			Available: r.Available,
		})
	}

	return snap, nil
}
