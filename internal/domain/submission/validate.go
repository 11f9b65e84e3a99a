package submission

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

// FieldError identifies the first form field that failed validation.
// Handlers translate it into a 400 response naming the field so the
// client can render an inline message.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MXLookup resolves mail-exchange records for a domain. Production code
// passes net.LookupMX; tests pass a stub.
type MXLookup func(domain string) ([]*net.MX, error)

// ContactForm carries the general inquiry form payload.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// PerformanceForm carries the performance-report opt-in payload.
// No message field, and the email domain is not MX-checked.
type PerformanceForm struct {
	Name  string
	Email string
	Phone string
}

// emailShape is a deliberately loose local@domain.tld check. Deliverability
// is what the MX lookup is for; this only rejects obviously malformed input.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

var phoneShape = regexp.MustCompile(`^\+?[0-9]{10,12}$`)

// ValidateContactForm runs every check for the general inquiry form and
// returns the first violated field. The MX lookup runs only after the
// cheap shape checks pass.
// PRE: lookup is non-nil
// POST: Returns nil if all fields pass, *FieldError naming the first failure otherwise
func ValidateContactForm(f ContactForm, lookup MXLookup) *FieldError {
	if err := validateName(f.Name); err != nil {
		return err
	}
	if err := validateEmailShape(f.Email); err != nil {
		return err
	}
	if err := validateEmailDeliverable(f.Email, lookup); err != nil {
		return err
	}
	if err := validatePhone(f.Phone); err != nil {
		return err
	}
	if err := validateMessage(f.Message); err != nil {
		return err
	}
	return nil
}

// ValidatePerformanceForm runs the checks for the performance-report form.
// The MX lookup is deliberately skipped here — this form sits behind a tool
// people abandon quickly, and a slow resolver would cost real leads.
// POST: Returns nil if all fields pass, *FieldError naming the first failure otherwise
func ValidatePerformanceForm(f PerformanceForm) *FieldError {
	if err := validateName(f.Name); err != nil {
		return err
	}
	if err := validateEmailShape(f.Email); err != nil {
		return err
	}
	if err := validatePhone(f.Phone); err != nil {
		return err
	}
	return nil
}

func validateName(name string) *FieldError {
	if strings.TrimSpace(name) == "" {
		return &FieldError{Field: "name", Message: "name is required"}
	}
	return nil
}

func validateEmailShape(email string) *FieldError {
	if !emailShape.MatchString(strings.TrimSpace(email)) {
		return &FieldError{Field: "email", Message: "enter a valid email address"}
	}
	return nil
}

func validateEmailDeliverable(email string, lookup MXLookup) *FieldError {
	domain := email[strings.LastIndex(email, "@")+1:]
	records, err := lookup(domain)
	if err != nil || len(records) == 0 {
		return &FieldError{Field: "email", Message: "email domain does not accept mail"}
	}
	return nil
}

func validatePhone(phone string) *FieldError {
	if !phoneShape.MatchString(strings.TrimSpace(phone)) {
		return &FieldError{Field: "phone", Message: "phone must be 10-12 digits, optionally starting with +"}
	}
	return nil
}

// validateMessage applies the English-language heuristic:
// every character must come from the restricted Latin set, and messages of
// more than three words must additionally draw at least 30% of their words
// from a fixed list of common English function words.
func validateMessage(message string) *FieldError {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return &FieldError{Field: "message", Message: "message is required"}
	}
	if !isLatinText(msg) {
		return &FieldError{Field: "message", Message: "message must be written in English"}
	}
	words := strings.Fields(msg)
	if len(words) <= 3 {
		return nil
	}
	matched := 0
	for _, w := range words {
		if englishFunctionWords[strings.ToLower(strings.Trim(w, trimPunct))] {
			matched++
		}
	}
	if float64(matched)/float64(len(words)) < 0.30 {
		return &FieldError{Field: "message", Message: "message must be written in English"}
	}
	return nil
}

// trimPunct is stripped from word boundaries before the function-word match.
const trimPunct = `.,!?'"():;-`

// latinAllowed holds the permitted non-alphanumeric characters.
const latinAllowed = " \t\n\r.,!?'\"()-:;@/&%$#+*_=£€"

// isLatinText reports whether every character is an ASCII letter, digit,
// or a member of the restricted punctuation set.
func isLatinText(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune(latinAllowed, r):
		default:
			return false
		}
	}
	return true
}

// englishFunctionWords is a fixed list of ~90 common English function words
// used by the language heuristic. Content words are deliberately absent —
// the heuristic keys on grammar glue, which any real English sentence has.
var englishFunctionWords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"am": true, "an": true, "and": true, "any": true, "are": true,
	"as": true, "at": true, "be": true, "because": true, "been": true,
	"before": true, "but": true, "by": true, "can": true, "could": true,
	"did": true, "do": true, "does": true, "down": true, "for": true,
	"from": true, "get": true, "got": true, "had": true, "has": true,
	"have": true, "he": true, "her": true, "here": true, "him": true,
	"his": true, "how": true, "i": true, "if": true, "in": true,
	"into": true, "is": true, "it": true, "its": true, "just": true,
	"like": true, "me": true, "more": true, "most": true, "my": true,
	"need": true, "no": true, "not": true, "now": true, "of": true,
	"on": true, "one": true, "only": true, "or": true, "our": true,
	"out": true, "over": true, "please": true, "she": true, "should": true,
	"so": true, "some": true, "than": true, "that": true, "the": true,
	"their": true, "them": true, "then": true, "there": true, "they": true,
	"this": true, "to": true, "up": true, "us": true, "very": true,
	"was": true, "we": true, "were": true, "what": true, "when": true,
	"which": true, "who": true, "will": true, "with": true, "would": true,
	"you": true, "your": true,
}
