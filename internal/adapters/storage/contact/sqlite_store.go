package contact

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"brightline/internal/adapters/storage"
	"brightline/internal/domain/crm"
	domain "brightline/internal/domain/contact"
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

const contactColumns = `id, name, email, phone, message, created_at, status`

// GetByID retrieves a contact by ID.
// PRE: id > 0
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return domain.Contact{}, ErrNotFound
	}
	return c, err
}

// Create inserts a new contact and returns its assigned id.
// PRE: entity has been validated
// POST: Row inserted; returned id > 0
func (s *SQLiteStore) Create(ctx context.Context, c domain.Contact) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, phone, message, created_at, status)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.Message,
		c.CreatedAt.UTC().Format(timeLayout), c.EffectiveStatus())
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// List returns all contacts, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contactColumns+` FROM contacts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

// Delete removes a contact by ID.
// PRE: id > 0
// POST: Row removed, or ErrNotFound if no row matched
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id)
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
// There is no row-level locking or version check — concurrent batches are
// last-writer-wins.
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
			`UPDATE contacts SET status = ? WHERE id = ?`,
			crm.CoerceStatus(u.Status), u.ID)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("contact %d: %w", u.ID, ErrNotFound)
		}
	}
	return tx.Commit()
}

// scanContact scans a single row into a Contact.
func scanContact(row *sql.Row) (domain.Contact, error) {
	var c domain.Contact
	var createdAt string
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &createdAt, &c.Status)
	if err != nil {
		return domain.Contact{}, err
	}
	c.CreatedAt = parseTime(createdAt, c.ID)
	c.Status = crm.CoerceStatus(c.Status)
	return c, nil
}

// scanContacts scans multiple rows into a slice of Contacts.
func scanContacts(rows *sql.Rows) ([]domain.Contact, error) {
	var contacts []domain.Contact
	for rows.Next() {
		var c domain.Contact
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Message, &createdAt, &c.Status); err != nil {
			return nil, err
		}
		c.CreatedAt = parseTime(createdAt, c.ID)
		c.Status = crm.CoerceStatus(c.Status)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, id int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("contact: failed to parse created_at", "contact_id", id, "raw", raw, "error", err)
	}
	return t
}
