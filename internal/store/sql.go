package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Bananenschreck/telegram-countdown-bot/internal/domain"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

const dbErrUniqueViolation = "23505"

// SQLRepo implements Repo over SQLite (default) or PostgreSQL.
type SQLRepo struct {
	db     *sqlx.DB
	driver string
}

// Open connects to the database described by dsn, applies engine settings,
// runs migrations and returns a repository. A postgres:// (or keyword) DSN
// selects PostgreSQL; anything else is treated as a SQLite file path.
func Open(ctx context.Context, dsn string) (*SQLRepo, error) {
	driver := driverSQLite
	if isPostgresDSN(dsn) {
		driver = driverPostgres
	}

	if driver == driverSQLite {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if driver == driverSQLite {
		// Reasonable pooling for SQLite; it's a single-writer engine.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
		if err := applyPragmas(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	if err := RunMigrations(ctx, db.DB, driver); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLRepo{db: db, driver: driver}, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLRepo) Close() error {
	return r.db.Close()
}

// eventRow is the DB image of domain.Event. Times are unix seconds and the
// reminder flag is 0/1 so both drivers scan identically.
type eventRow struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	TargetDate    int64  `db:"target_date"`
	ChatID        int64  `db:"chat_id"`
	CreatedBy     int64  `db:"created_by"`
	DailyReminder int    `db:"daily_reminder"`
	CreatedAt     int64  `db:"created_at"`
	Timezone      string `db:"timezone"`
}

func (r eventRow) toDomain() domain.Event {
	return domain.Event{
		ID:            r.ID,
		Name:          r.Name,
		TargetDate:    time.Unix(r.TargetDate, 0).UTC(),
		ChatID:        r.ChatID,
		CreatedBy:     r.CreatedBy,
		DailyReminder: r.DailyReminder != 0,
		CreatedAt:     time.Unix(r.CreatedAt, 0).UTC(),
		Timezone:      r.Timezone,
	}
}

const eventColumns = "id, name, target_date, chat_id, created_by, daily_reminder, created_at, timezone"

// CreateEvent inserts a new event and fills in its assigned ID.
// A name collision surfaces as ErrDuplicateName.
func (r *SQLRepo) CreateEvent(ctx context.Context, e *domain.Event) error {
	if e == nil {
		return errors.New("nil event")
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	args := []any{
		e.Name, e.TargetDate.UTC().Unix(), e.ChatID, e.CreatedBy,
		boolToInt(e.DailyReminder), e.CreatedAt.UTC().Unix(), e.Timezone,
	}

	var err error
	if r.driver == driverPostgres {
		q := r.db.Rebind(`
			INSERT INTO countdown_events (name, target_date, chat_id, created_by, daily_reminder, created_at, timezone)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			RETURNING id`)
		err = r.db.GetContext(ctx, &e.ID, q, args...)
	} else {
		var res sql.Result
		res, err = r.db.ExecContext(ctx, `
			INSERT INTO countdown_events (name, target_date, chat_id, created_by, daily_reminder, created_at, timezone)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			args...,
		)
		if err == nil {
			e.ID, err = res.LastInsertId()
		}
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("name %q: %w", e.Name, ErrDuplicateName)
	}
	return err
}

// GetEvent returns the event with the given name, regardless of chat.
func (r *SQLRepo) GetEvent(ctx context.Context, name string) (*domain.Event, error) {
	var row eventRow
	q := r.db.Rebind(`SELECT ` + eventColumns + ` FROM countdown_events WHERE name = ?`)
	if err := r.db.GetContext(ctx, &row, q, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("name %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	e := row.toDomain()
	return &e, nil
}

// ListChatEvents returns the chat's events in insertion order.
func (r *SQLRepo) ListChatEvents(ctx context.Context, chatID int64) ([]domain.Event, error) {
	var rows []eventRow
	q := r.db.Rebind(`SELECT ` + eventColumns + ` FROM countdown_events WHERE chat_id = ? ORDER BY id`)
	if err := r.db.SelectContext(ctx, &rows, q, chatID); err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// ListReminderEvents returns every event with the daily reminder enabled,
// across all chats, in insertion order.
func (r *SQLRepo) ListReminderEvents(ctx context.Context) ([]domain.Event, error) {
	var rows []eventRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM countdown_events WHERE daily_reminder = 1 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	return toDomainList(rows), nil
}

// SetTimezone updates the countdown timezone of the named event.
func (r *SQLRepo) SetTimezone(ctx context.Context, name, tz string) error {
	q := r.db.Rebind(`UPDATE countdown_events SET timezone = ? WHERE name = ?`)
	return r.execByName(ctx, name, q, tz, name)
}

// SetReminder toggles the daily reminder flag of the named event.
func (r *SQLRepo) SetReminder(ctx context.Context, name string, enabled bool) error {
	q := r.db.Rebind(`UPDATE countdown_events SET daily_reminder = ? WHERE name = ?`)
	return r.execByName(ctx, name, q, boolToInt(enabled), name)
}

// DeleteEvent removes the named event.
func (r *SQLRepo) DeleteEvent(ctx context.Context, name string) error {
	q := r.db.Rebind(`DELETE FROM countdown_events WHERE name = ?`)
	return r.execByName(ctx, name, q, name)
}

// execByName runs a single-row statement targeting an event by name and maps
// zero affected rows to ErrNotFound.
func (r *SQLRepo) execByName(ctx context.Context, name, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("name %q: %w", name, ErrNotFound)
	}
	return nil
}

func toDomainList(rows []eventRow) []domain.Event {
	res := make([]domain.Event, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res
}

// boolToInt converts a boolean to the 0/1 the schema stores.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation reports whether err is a unique-constraint violation from
// either driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == dbErrUniqueViolation
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		code := sqErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
