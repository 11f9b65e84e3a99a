package web

import (
	"errors"
	"net/http"
	"strings"

	blogStore "brightline/internal/adapters/storage/blog"
	"brightline/internal/domain/blog"
)

// handleBlogIndex handles GET /blog
func handleBlogIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	posts, err := stores.BlogStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "blog_index.html", map[string]any{
		"Posts": posts,
	})
}

// handleBlogPage handles GET /blog/{slug}
func handleBlogPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/blog/")
	if !blog.IsValidSlug(slug) {
		http.NotFound(w, r)
		return
	}
	post, err := stores.BlogStore.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, blogStore.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "blog_post.html", map[string]any{
		"Post": post,
	})
}
