package account

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"brightline/internal/adapters/storage"
	domain "brightline/internal/domain/account"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByEmail retrieves an account by email.
// PRE: email is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, failed_logins, locked_until
		 FROM accounts WHERE email = ?`, email)

	var a domain.Account
	var createdAt string
	var lockedUntil sql.NullString
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &createdAt, &a.FailedLogins, &lockedUntil)
	if err == sql.ErrNoRows {
		return domain.Account{}, ErrNotFound
	}
	if err != nil {
		return domain.Account{}, err
	}

	a.CreatedAt = parseTime(createdAt, a.Email)
	if lockedUntil.Valid {
		a.LockedUntil = parseTime(lockedUntil.String, a.Email)
	}
	return a, nil
}

// Save inserts or updates an account, keyed by email.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, a domain.Account) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO accounts (email, password_hash, created_at, failed_logins, locked_until)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(email) DO UPDATE SET
		   password_hash=excluded.password_hash,
		   failed_logins=excluded.failed_logins,
		   locked_until=excluded.locked_until`,
		a.Email, a.PasswordHash, a.CreatedAt.UTC().Format(timeLayout),
		a.FailedLogins, nullableTime(a.LockedUntil))
	return err
}

// Count returns the number of stored accounts. Used by the seed step to
// decide whether a default admin is needed.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`)
	var n int
	err := row.Scan(&n)
	return n, err
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw, email string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("account: failed to parse time", "email", email, "raw", raw, "error", err)
	}
	return t
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(timeLayout)
}
