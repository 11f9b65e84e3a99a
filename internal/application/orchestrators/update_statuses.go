package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"brightline/internal/domain/crm"
)

// ErrInvalidStatus signals that a batch contained a status outside the
// pipeline enum.
var ErrInvalidStatus = errors.New("invalid lead status")

// StatusUpdater defines the store interface needed by UpdateStatuses. Both
// the contact and lead stores satisfy it.
type StatusUpdater interface {
	UpdateStatuses(ctx context.Context, updates []crm.StatusUpdate) error
}

// UpdateStatusesInput carries a batch of status changes.
type UpdateStatusesInput struct {
	Updates []crm.StatusUpdate
}

// UpdateStatusesDeps holds dependencies for UpdateStatuses.
type UpdateStatusesDeps struct {
	Store StatusUpdater
}

// ExecuteUpdateStatuses applies a batch of status changes in a single
// transaction.
// PRE: deps.Store is non-nil
// POST: All updates applied, or none
// INVARIANT: A batch containing an unknown id or status changes nothing
func ExecuteUpdateStatuses(ctx context.Context, input UpdateStatusesInput, deps UpdateStatusesDeps) error {
	if len(input.Updates) == 0 {
		return nil
	}

	for _, u := range input.Updates {
		if !crm.IsValidStatus(u.Status) {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, u.Status)
		}
	}

	if err := deps.Store.UpdateStatuses(ctx, input.Updates); err != nil {
		slog.Error("status_update_failed", "count", len(input.Updates), "error", err)
		return err
	}

	slog.Info("statuses_updated", "count", len(input.Updates))
	return nil
}
