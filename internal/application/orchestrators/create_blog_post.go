package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"brightline/internal/domain/blog"
)

// BlogStoreForCreate defines the store interface needed by CreateBlogPost.
type BlogStoreForCreate interface {
	Create(ctx context.Context, p blog.Post) (int64, error)
}

// CreateBlogPostInput carries input for the blog post orchestrator.
type CreateBlogPostInput struct {
	Title   string
	Slug    string // optional; derived from the title when empty
	Excerpt string
	Content string
}

// CreateBlogPostResult carries the result of a successful creation.
type CreateBlogPostResult struct {
	ID   int64
	Slug string
}

// CreateBlogPostDeps holds dependencies for CreateBlogPost.
type CreateBlogPostDeps struct {
	BlogStore BlogStoreForCreate
}

// ExecuteCreateBlogPost validates and persists a new blog post.
// POST: Post stored with a unique slug; returns the id and final slug
func ExecuteCreateBlogPost(ctx context.Context, input CreateBlogPostInput, deps CreateBlogPostDeps) (CreateBlogPostResult, error) {
	slug := input.Slug
	if slug == "" {
		slug = blog.Slugify(input.Title)
	}

	p := blog.Post{
		Title:     input.Title,
		Slug:      slug,
		Excerpt:   input.Excerpt,
		Content:   input.Content,
		CreatedAt: time.Now(),
	}
	if err := p.Validate(); err != nil {
		return CreateBlogPostResult{}, err
	}

	id, err := deps.BlogStore.Create(ctx, p)
	if err != nil {
		slog.Error("blog_post_create_failed", "slug", slug, "error", err)
		return CreateBlogPostResult{}, err
	}

	slog.Info("blog_post_created", "post_id", id, "slug", slug)
	return CreateBlogPostResult{ID: id, Slug: slug}, nil
}
