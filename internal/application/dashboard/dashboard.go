// Package dashboard holds the state container behind the admin back-office:
// three independently browsable collections (contacts, leads, blog posts)
// with search, sort, per-row status edits, bulk save, delete, CSV export and
// blog-post creation. Every transition is a plain method call so the whole
// thing is testable without a rendering layer.
package dashboard

import (
	"context"

	"brightline/internal/domain/blog"
	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/lead"
)

// Tab identifies one of the three dashboard collections.
type Tab string

const (
	TabContacts Tab = "contacts"
	TabLeads    Tab = "leads"
	TabBlog     Tab = "blog"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// BlogPostForm carries the four fields of the blog creation dialog.
type BlogPostForm struct {
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Excerpt string `json:"excerpt"`
	Content string `json:"content"`
}

// Client is the network surface the controller drives. The HTTP
// implementation lives in client.go; tests substitute a fake.
type Client interface {
	FetchContacts(ctx context.Context) ([]contact.Contact, error)
	FetchLeads(ctx context.Context) ([]lead.Lead, error)
	FetchBlogPosts(ctx context.Context) ([]blog.Post, error)
	UpdateContactStatuses(ctx context.Context, updates []crm.StatusUpdate) error
	UpdateLeadStatuses(ctx context.Context, updates []crm.StatusUpdate) error
	Delete(ctx context.Context, tab Tab, id int64) error
	CreateBlogPost(ctx context.Context, form BlogPostForm) (blog.Post, error)
	Logout(ctx context.Context) error
}
