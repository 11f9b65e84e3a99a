package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"brightline/internal/adapters/email"
	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/submission"
)

// ErrValidation signals that the submitted form failed validation. The
// accompanying result carries the per-field messages.
var ErrValidation = errors.New("submission failed validation")

// ContactStoreForSubmit defines the store interface needed by SubmitContact.
type ContactStoreForSubmit interface {
	Create(ctx context.Context, c contact.Contact) (int64, error)
}

// SubmitContactInput carries a raw contact form submission.
type SubmitContactInput struct {
	Form submission.ContactForm
}

// SubmitContactResult carries the outcome of a contact submission.
type SubmitContactResult struct {
	ID         int64
	FieldError *submission.FieldError
}

// SubmitContactDeps holds dependencies for SubmitContact.
type SubmitContactDeps struct {
	ContactStore ContactStoreForSubmit
	Sender       email.Sender
	NotifyTo     string // owner address for new-enquiry notifications
	MXLookup     submission.MXLookup
}

// ExecuteSubmitContact validates a contact form, persists it, and notifies
// the site owner.
// PRE: deps.ContactStore is non-nil
// POST: On success the contact is stored with status New and its id returned
// INVARIANT: Nothing is persisted when validation fails
func ExecuteSubmitContact(ctx context.Context, input SubmitContactInput, deps SubmitContactDeps) (SubmitContactResult, error) {
	if fieldErr := submission.ValidateContactForm(input.Form, deps.MXLookup); fieldErr != nil {
		return SubmitContactResult{FieldError: fieldErr}, ErrValidation
	}

	c := contact.Contact{
		Name:      input.Form.Name,
		Email:     input.Form.Email,
		Phone:     input.Form.Phone,
		Message:   input.Form.Message,
		CreatedAt: time.Now(),
		Status:    crm.StatusNew,
	}

	id, err := deps.ContactStore.Create(ctx, c)
	if err != nil {
		slog.Error("contact_create_failed", "error", err)
		return SubmitContactResult{}, err
	}

	// Notification is best-effort: the submission succeeded once stored.
	if deps.Sender != nil && deps.NotifyTo != "" {
		req := email.ContactNotification(deps.NotifyTo, c.Name, c.Email, c.Phone, c.Message)
		if _, err := deps.Sender.Send(ctx, req); err != nil {
			slog.Warn("contact_notification_failed", "contact_id", id, "error", err)
		}
	}

	slog.Info("contact_submitted", "contact_id", id)
	return SubmitContactResult{ID: id}, nil
}
