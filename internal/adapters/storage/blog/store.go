package blog

import (
	"context"
	"errors"

	domain "brightline/internal/domain/blog"
)

// Store errors.
var (
	ErrNotFound      = errors.New("blog post not found")
	ErrDuplicateSlug = errors.New("a post with this slug already exists")
)

// Store persists blog Post state. Posts have no update path — the admin
// dashboard only creates and deletes them.
type Store interface {
	GetByID(ctx context.Context, id int64) (domain.Post, error)
	GetBySlug(ctx context.Context, slug string) (domain.Post, error)
	Create(ctx context.Context, value domain.Post) (int64, error)
	List(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, id int64) error
}
