package blog

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength   = 200
	MaxSlugLength    = 200
	MaxExcerptLength = 500
)

// Domain errors
var (
	ErrEmptyTitle   = errors.New("post title cannot be empty")
	ErrEmptySlug    = errors.New("post slug cannot be empty")
	ErrEmptyExcerpt = errors.New("post excerpt cannot be empty")
	ErrEmptyContent = errors.New("post content cannot be empty")
	ErrInvalidSlug  = errors.New("slug may only contain lowercase letters, digits and hyphens")
)

// Post represents a published blog article. Posts are created through the
// admin dashboard and are immutable thereafter except by deletion — there
// is no edit endpoint.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Content   string    `json:"content"` // Markdown content
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks if the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if len(p.Title) > MaxTitleLength {
		return errors.New("title cannot exceed 200 characters")
	}
	if strings.TrimSpace(p.Slug) == "" {
		return ErrEmptySlug
	}
	if len(p.Slug) > MaxSlugLength {
		return errors.New("slug cannot exceed 200 characters")
	}
	if !IsValidSlug(p.Slug) {
		return ErrInvalidSlug
	}
	if strings.TrimSpace(p.Excerpt) == "" {
		return ErrEmptyExcerpt
	}
	if len(p.Excerpt) > MaxExcerptLength {
		return errors.New("excerpt cannot exceed 500 characters")
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}

// IsValidSlug reports whether s is URL-safe: lowercase letters, digits and
// single hyphens, never leading or trailing.
func IsValidSlug(s string) bool {
	if s == "" || strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	prevHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevHyphen = false
		case r == '-':
			if prevHyphen {
				return false
			}
			prevHyphen = true
		default:
			return false
		}
	}
	return true
}

// Slugify derives a URL-safe slug from a title. Used as a convenience
// default when the admin leaves the slug field untouched client-side;
// the server never invents slugs on its own.
func Slugify(title string) string {
	var b strings.Builder
	prevHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
