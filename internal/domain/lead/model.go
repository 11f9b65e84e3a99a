package lead

import (
	"errors"
	"strings"
	"time"

	"brightline/internal/domain/crm"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 120
	MaxEmailLength = 254
)

// Domain errors
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyEmail    = errors.New("email cannot be empty")
	ErrInvalidStatus = errors.New("status is not a recognised pipeline status")
)

// Lead is a prospective-customer record captured from the
// performance-report opt-in form. Same lifecycle as a Contact,
// minus the message field.
type Lead struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
}

// Validate checks if the Lead has valid data.
// PRE: Lead struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return ErrEmptyName
	}
	if len(l.Name) > MaxNameLength {
		return errors.New("name cannot exceed 120 characters")
	}
	if strings.TrimSpace(l.Email) == "" {
		return ErrEmptyEmail
	}
	if len(l.Email) > MaxEmailLength {
		return errors.New("email cannot exceed 254 characters")
	}
	if l.Status != "" && !crm.IsValidStatus(l.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// EffectiveStatus returns the pipeline status, defaulting to New.
// INVARIANT: Lead fields are not mutated
func (l *Lead) EffectiveStatus() string {
	return crm.CoerceStatus(l.Status)
}
