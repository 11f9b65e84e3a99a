package blog_test

import (
	"testing"

	"brightline/internal/domain/blog"
)

// TestPost_Validate tests validation of Post.
func TestPost_Validate(t *testing.T) {
	valid := blog.Post{
		Title:   "Shipping faster with boring tech",
		Slug:    "shipping-faster-with-boring-tech",
		Excerpt: "Why we reach for proven tools first.",
		Content: "## Boring is good\n\nMost projects fail for non-technical reasons.",
	}

	tests := []struct {
		name    string
		mutate  func(p *blog.Post)
		wantErr error
	}{
		{name: "valid post", mutate: func(p *blog.Post) {}, wantErr: nil},
		{name: "empty title", mutate: func(p *blog.Post) { p.Title = "  " }, wantErr: blog.ErrEmptyTitle},
		{name: "empty slug", mutate: func(p *blog.Post) { p.Slug = "" }, wantErr: blog.ErrEmptySlug},
		{name: "uppercase slug", mutate: func(p *blog.Post) { p.Slug = "Shipping-Faster" }, wantErr: blog.ErrInvalidSlug},
		{name: "slug with spaces", mutate: func(p *blog.Post) { p.Slug = "shipping faster" }, wantErr: blog.ErrInvalidSlug},
		{name: "slug with trailing hyphen", mutate: func(p *blog.Post) { p.Slug = "shipping-" }, wantErr: blog.ErrInvalidSlug},
		{name: "empty excerpt", mutate: func(p *blog.Post) { p.Excerpt = "" }, wantErr: blog.ErrEmptyExcerpt},
		{name: "empty content", mutate: func(p *blog.Post) { p.Content = "" }, wantErr: blog.ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	good := []string{"a", "a-b", "post-42", "2024-review"}
	bad := []string{"", "-a", "a-", "a--b", "A-b", "a_b", "a b", "café"}

	for _, s := range good {
		if !blog.IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = false, want true", s)
		}
	}
	for _, s := range bad {
		if blog.IsValidSlug(s) {
			t.Errorf("IsValidSlug(%q) = true, want false", s)
		}
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Shipping Faster!", "shipping-faster"},
		{"  Hello,   World  ", "hello-world"},
		{"2024: Year in Review", "2024-year-in-review"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := blog.Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
