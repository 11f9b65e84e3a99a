package blog

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"brightline/internal/adapters/storage"
	domain "brightline/internal/domain/blog"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const postColumns = `id, title, slug, excerpt, content, created_at`

// GetByID retrieves a post by ID.
// PRE: id > 0
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetBySlug retrieves a post by its URL slug.
// PRE: slug is non-empty
// POST: Returns the entity or ErrNotFound
func (s *SQLiteStore) GetBySlug(ctx context.Context, slug string) (domain.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// Create inserts a new post and returns its assigned id.
// PRE: entity has been validated
// POST: Row inserted, or ErrDuplicateSlug on slug collision
func (s *SQLiteStore) Create(ctx context.Context, p domain.Post) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		// The slug column carries a UNIQUE constraint.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, ErrDuplicateSlug
		}
		return 0, err
	}
	return result.LastInsertId()
}

// List returns all posts, newest first.
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM blog_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &createdAt); err != nil {
			return nil, err
		}
		p.CreatedAt = parseTime(createdAt, p.ID)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Delete removes a post by ID.
// PRE: id > 0
// POST: Row removed, or ErrNotFound if no row matched
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// scanPost scans a single row into a Post.
func scanPost(row *sql.Row) (domain.Post, error) {
	var p domain.Post
	var createdAt string
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &createdAt)
	if err == sql.ErrNoRows {
		return domain.Post{}, ErrNotFound
	}
	if err != nil {
		return domain.Post{}, err
	}
	p.CreatedAt = parseTime(createdAt, p.ID)
	return p, nil
}

// parseTime parses a stored timestamp, logging a warning on failure.
func parseTime(raw string, id int64) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("blog: failed to parse created_at", "post_id", id, "raw", raw, "error", err)
	}
	return t
}
