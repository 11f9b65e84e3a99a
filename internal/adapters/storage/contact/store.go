package contact

import (
	"context"
	"errors"

	"brightline/internal/domain/crm"
	domain "brightline/internal/domain/contact"
)

// ErrNotFound is returned when no contact exists for a given id.
var ErrNotFound = errors.New("contact not found")

// Store persists Contact state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Contact, error)
	Create(ctx context.Context, value domain.Contact) (int64, error)
	List(ctx context.Context) ([]domain.Contact, error)
	Delete(ctx context.Context, id int64) error
	// UpdateStatuses applies a batch of status changes inside a single
	// transaction. Any unknown id aborts the whole batch.
	UpdateStatuses(ctx context.Context, updates []crm.StatusUpdate) error
}
