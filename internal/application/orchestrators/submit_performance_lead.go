package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"brightline/internal/adapters/email"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/lead"
	"brightline/internal/domain/submission"
)

// LeadStoreForSubmit defines the store interface needed by SubmitPerformanceLead.
type LeadStoreForSubmit interface {
	Create(ctx context.Context, l lead.Lead) (int64, error)
}

// SubmitPerformanceLeadInput carries a raw performance-review form submission.
type SubmitPerformanceLeadInput struct {
	Form submission.PerformanceForm
}

// SubmitPerformanceLeadResult carries the outcome of a lead submission.
type SubmitPerformanceLeadResult struct {
	ID         int64
	FieldError *submission.FieldError
}

// SubmitPerformanceLeadDeps holds dependencies for SubmitPerformanceLead.
type SubmitPerformanceLeadDeps struct {
	LeadStore LeadStoreForSubmit
	Sender    email.Sender
	NotifyTo  string
}

// ExecuteSubmitPerformanceLead validates a performance-review form, persists
// the lead, and notifies the site owner.
// POST: On success the lead is stored with status New and its id returned
// INVARIANT: Nothing is persisted when validation fails
func ExecuteSubmitPerformanceLead(ctx context.Context, input SubmitPerformanceLeadInput, deps SubmitPerformanceLeadDeps) (SubmitPerformanceLeadResult, error) {
	if fieldErr := submission.ValidatePerformanceForm(input.Form); fieldErr != nil {
		return SubmitPerformanceLeadResult{FieldError: fieldErr}, ErrValidation
	}

	l := lead.Lead{
		Name:      input.Form.Name,
		Email:     input.Form.Email,
		Phone:     input.Form.Phone,
		CreatedAt: time.Now(),
		Status:    crm.StatusNew,
	}

	id, err := deps.LeadStore.Create(ctx, l)
	if err != nil {
		slog.Error("lead_create_failed", "error", err)
		return SubmitPerformanceLeadResult{}, err
	}

	if deps.Sender != nil && deps.NotifyTo != "" {
		req := email.PerformanceLeadNotification(deps.NotifyTo, l.Name, l.Email, l.Phone)
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Warn("lead_notification_failed", "lead_id", id, "error", err)
		}
	}

	slog.Info("performance_lead_submitted", "lead_id", id)
	return SubmitPerformanceLeadResult{ID: id}, nil
}
