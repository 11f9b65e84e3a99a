package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"brightline/internal/domain/blog"
	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/lead"
)

// HTTPClient drives the admin API over HTTP. Fetches carry a cache-busting
// `_` query parameter so intermediary caches never serve a stale collection.
type HTTPClient struct {
	baseURL string
	client  *http.Client

	// timeNow is swappable for deterministic cache markers in tests.
	timeNow func() time.Time
}

// NewHTTPClient creates a client for the admin API at baseURL. The
// http.Client should carry the session cookie jar when used outside tests.
func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPClient{baseURL: baseURL, client: client, timeNow: time.Now}
}

// cacheBust appends the marker that defeats intermediary caching.
func (h *HTTPClient) cacheBust(path string) string {
	return h.baseURL + path + "?_=" + strconv.FormatInt(h.timeNow().UnixNano(), 10)
}

func (h *HTTPClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.cacheBust(path), nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h *HTTPClient) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("POST %s returned status %d", path, resp.StatusCode)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h *HTTPClient) FetchContacts(ctx context.Context) ([]contact.Contact, error) {
	var rows []contact.Contact
	if err := h.getJSON(ctx, "/api/contacts", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *HTTPClient) FetchLeads(ctx context.Context) ([]lead.Lead, error) {
	var rows []lead.Lead
	if err := h.getJSON(ctx, "/api/leads", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *HTTPClient) FetchBlogPosts(ctx context.Context) ([]blog.Post, error) {
	var rows []blog.Post
	if err := h.getJSON(ctx, "/api/blog-posts", &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h *HTTPClient) UpdateContactStatuses(ctx context.Context, updates []crm.StatusUpdate) error {
	return h.postJSON(ctx, "/api/contacts/updateLeadStatus", updates, nil)
}

func (h *HTTPClient) UpdateLeadStatuses(ctx context.Context, updates []crm.StatusUpdate) error {
	return h.postJSON(ctx, "/api/leads/updateLeadStatus", updates, nil)
}

// Delete issues a single-record delete against the tab's resource.
func (h *HTTPClient) Delete(ctx context.Context, tab Tab, id int64) error {
	resource := string(tab)
	if tab == TabBlog {
		resource = "blog-posts"
	}
	url := fmt.Sprintf("%s/api/%s/%d", h.baseURL, resource, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("DELETE %s returned status %d", url, resp.StatusCode)
	}
	return nil
}

func (h *HTTPClient) CreateBlogPost(ctx context.Context, form BlogPostForm) (blog.Post, error) {
	var created blog.Post
	if err := h.postJSON(ctx, "/api/blog-posts", form, &created); err != nil {
		return blog.Post{}, err
	}
	return created, nil
}

func (h *HTTPClient) Logout(ctx context.Context) error {
	return h.postJSON(ctx, "/api/logout", struct{}{}, nil)
}
