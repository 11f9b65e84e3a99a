package contact_test

import (
	"testing"

	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
)

// TestContact_Validate tests validation of Contact.
func TestContact_Validate(t *testing.T) {
	tests := []struct {
		name    string
		contact contact.Contact
		wantErr error
	}{
		{
			name: "valid contact",
			contact: contact.Contact{
				Name:    "Jo Smith",
				Email:   "jo@example.com",
				Phone:   "5551234567",
				Message: "I need help with my website.",
			},
			wantErr: nil,
		},
		{
			name: "valid contact with status",
			contact: contact.Contact{
				Name:    "Jo Smith",
				Email:   "jo@example.com",
				Message: "Hello",
				Status:  crm.StatusMeetingBooked,
			},
			wantErr: nil,
		},
		{
			name:    "empty name",
			contact: contact.Contact{Name: "   ", Email: "jo@example.com", Message: "Hello"},
			wantErr: contact.ErrEmptyName,
		},
		{
			name:    "empty email",
			contact: contact.Contact{Name: "Jo", Message: "Hello"},
			wantErr: contact.ErrEmptyEmail,
		},
		{
			name:    "empty message",
			contact: contact.Contact{Name: "Jo", Email: "jo@example.com", Message: " "},
			wantErr: contact.ErrEmptyMessage,
		},
		{
			name: "unknown status",
			contact: contact.Contact{
				Name: "Jo", Email: "jo@example.com", Message: "Hello", Status: "Ghosted",
			},
			wantErr: contact.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.contact.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestContact_EffectiveStatus(t *testing.T) {
	c := contact.Contact{}
	if got := c.EffectiveStatus(); got != crm.StatusNew {
		t.Errorf("EffectiveStatus() on blank status = %q, want %q", got, crm.StatusNew)
	}
	c.Status = crm.StatusBadLead
	if got := c.EffectiveStatus(); got != crm.StatusBadLead {
		t.Errorf("EffectiveStatus() = %q, want %q", got, crm.StatusBadLead)
	}
}
