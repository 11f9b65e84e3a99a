package lead

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"brightline/internal/adapters/storage"
	"brightline/internal/domain/crm"
	domain "brightline/internal/domain/lead"
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

const leadColumns = `id, name, email, phone, created_at, status`

// GetByID retrieves a lead by ID.
// PRE: id > 0
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return domain.Lead{}, ErrNotFound
	}
	return l, err
}

// Create inserts a new lead and returns its assigned id.
// PRE: entity has been validated
// POST: Row inserted; returned id > 0
func (s *SQLiteStore) Create(ctx context.Context, l domain.Lead) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (name, email, phone, created_at, status)
		 VALUES (?, ?, ?, ?, ?)`,
		l.Name, l.Email, l.Phone,
		l.CreatedAt.UTC().Format(timeLayout), l.EffectiveStatus())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List returns all leads, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanLeads(rows)
}

// Delete removes a lead by ID.
// PRE: id > 0
// POST: Row removed, or ErrNotFound if no row matched
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateStatuses applies the batch inside one transaction; all-or-nothing.
// PRE: every update carries an id
// POST: Either every row updated and committed, or nothing changed
func (s *SQLiteStore) UpdateStatuses(ctx context.Context, updates []crm.StatusUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, u := range updates {
		result, err := tx.ExecContext(ctx,
			`UPDATE leads SET status = ? WHERE id = ?`,
			crm.CoerceStatus(u.Status), u.ID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("lead %d: %w", u.ID, ErrNotFound)
		}
	}
	return tx.Commit()
}

// scanLead scans a single row into a Lead.
func scanLead(row *sql.Row) (domain.Lead, error) {
	var l domain.Lead
	var createdAt string
	err := row.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &createdAt, &l.Status)
	if err != nil {
		return domain.Lead{}, err
	}
	l.CreatedAt = parseTime(createdAt, l.ID)
	l.Status = crm.CoerceStatus(l.Status)
	return l, nil
}

// scanLeads scans multiple rows into a slice of Leads.
func scanLeads(rows *sql.Rows) ([]domain.Lead, error) {
	var leads []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var createdAt string
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &createdAt, &l.Status); err != nil {
			return nil, err
		}
		l.CreatedAt = parseTime(createdAt, l.ID)
		l.Status = crm.CoerceStatus(l.Status)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, id int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("lead: failed to parse created_at", "lead_id", id, "raw", raw, "error", err)
	}
	return t
}
