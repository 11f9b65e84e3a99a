package contact

import (
	"errors"
	"strings"
	"time"

	"brightline/internal/domain/crm"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 120
	MaxEmailLength   = 254
	MaxMessageLength = 4000
)

// Domain errors
var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrInvalidStatus  = errors.New("status is not a recognised pipeline status")
	ErrNameTooLong    = errors.New("name cannot exceed 120 characters")
	ErrMessageTooLong = errors.New("message cannot exceed 4000 characters")
)

// Contact is a prospective-customer record captured from the general
// inquiry form. Unlike a Lead it carries a free-text message.
type Contact struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// Validate checks if the Contact has valid data.
// PRE: Contact struct is populated
// POST: Returns nil if valid, error otherwise
func (c *Contact) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(c.Email) == "" {
		return ErrEmptyEmail
	}
	if len(c.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if strings.TrimSpace(c.Message) == "" {
		return ErrEmptyMessage
	}
	if len(c.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if c.Status != "" && !crm.IsValidStatus(c.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// EffectiveStatus returns the pipeline status, defaulting to New.
// INVARIANT: Contact fields are not mutated
func (c *Contact) EffectiveStatus() string {
	return crm.CoerceStatus(c.Status)
}
