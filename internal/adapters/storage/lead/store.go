package lead

import (
	"context"
	"errors"

	"brightline/internal/domain/crm"
	domain "brightline/internal/domain/lead"
)

// ErrNotFound is returned when no lead exists for a given id.
var ErrNotFound = errors.New("lead not found")

// Store persists Lead state.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Lead, error)
	Create(ctx context.Context, value domain.Lead) (int64, error)
	List(ctx context.Context) ([]domain.Lead, error)
	Delete(ctx context.Context, id int64) error
	// UpdateStatuses applies a batch of status changes inside a single
	// transaction. Any unknown id aborts the whole batch.
	UpdateStatuses(ctx context.Context, updates []crm.StatusUpdate) error
}
