package dashboard

import (
	"strconv"
	"time"

	"brightline/internal/domain/blog"
	"brightline/internal/domain/contact"
	"brightline/internal/domain/lead"
)

// Field accessor tables: a closed enum of sortable/filterable fields per tab,
// each mapped to a function producing the record's string form for that
// field. Sorting and filtering both read through these tables, so a field
// invisible here is invisible to both.

const createdAtLayout = time.RFC3339

var contactFields = map[string]func(contact.Contact) string{
	"id":         func(c contact.Contact) string { return strconv.FormatInt(c.ID, 10) },
	"name":       func(c contact.Contact) string { return c.Name },
	"email":      func(c contact.Contact) string { return c.Email },
	"phone":      func(c contact.Contact) string { return c.Phone },
	"message":    func(c contact.Contact) string { return c.Message },
	"created_at": func(c contact.Contact) string { return c.CreatedAt.Format(createdAtLayout) },
	"status":     func(c contact.Contact) string { return c.Status },
}

var leadFields = map[string]func(lead.Lead) string{
	"id":         func(l lead.Lead) string { return strconv.FormatInt(l.ID, 10) },
	"name":       func(l lead.Lead) string { return l.Name },
	"email":      func(l lead.Lead) string { return l.Email },
	"phone":      func(l lead.Lead) string { return l.Phone },
	"created_at": func(l lead.Lead) string { return l.CreatedAt.Format(createdAtLayout) },
	"status":     func(l lead.Lead) string { return l.Status },
}

var blogFields = map[string]func(blog.Post) string{
	"id":         func(p blog.Post) string { return strconv.FormatInt(p.ID, 10) },
	"title":      func(p blog.Post) string { return p.Title },
	"slug":       func(p blog.Post) string { return p.Slug },
	"excerpt":    func(p blog.Post) string { return p.Excerpt },
	"created_at": func(p blog.Post) string { return p.CreatedAt.Format(createdAtLayout) },
}

// compareValues orders two field values: numerically when both parse as
// numbers (ids), lexically otherwise. RFC3339 timestamps order correctly
// under the lexical branch.
func compareValues(a, b string) int {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
