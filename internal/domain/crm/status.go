package crm

// Pipeline status values shared by contacts and leads.
// This is a free-form classification, not a workflow: any value may follow
// any other, and nothing enforces an ordering.
const (
	StatusNew           = "New"
	StatusNoAnswer      = "Called - No answer"
	StatusMeetingBooked = "Called - Meeting Booked"
	StatusSaleClosed    = "Called - Sale Closed"
	StatusNoResponses   = "Multiple No responses"
	StatusBadLead       = "Called - Bad Lead"
)

// ValidStatuses contains all valid pipeline status values.
var ValidStatuses = []string{
	StatusNew,
	StatusNoAnswer,
	StatusMeetingBooked,
	StatusSaleClosed,
	StatusNoResponses,
	StatusBadLead,
}

// IsValidStatus reports whether s is a known pipeline status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// StatusUpdate is one element of a bulk-save batch. The dashboard submits
// full records, but only the id and status are contractually meaningful;
// everything else in the payload is ignored.
type StatusUpdate struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// CoerceStatus maps an absent status to StatusNew.
// Records created by the public forms carry no status until an admin
// classifies them, so every read path funnels through this.
func CoerceStatus(s string) string {
	if s == "" {
		return StatusNew
	}
	return s
}
