package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"brightline/internal/domain/blog"
	"brightline/internal/domain/contact"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/lead"
)

// Controller is the dashboard state container. The collections it holds are
// working copies: they diverge from the store the moment a status edit
// happens and reconcile only on a bulk save or a refresh. Network calls run
// outside the lock, so overlapping operations resolve as last-response-wins
// with no sequence numbering.
type Controller struct {
	mu     sync.Mutex
	client Client

	contacts  []contact.Contact
	leads     []lead.Lead
	blogPosts []blog.Post

	activeTab     Tab
	sortField     string
	sortDirection Direction
	searchTerm    string

	isSaving     bool
	isRefreshing bool

	lastError  string
	lastNotice string
}

// NewController creates a controller starting on the contacts tab.
func NewController(client Client) *Controller {
	return &Controller{
		client:        client,
		activeTab:     TabContacts,
		sortDirection: Asc,
	}
}

// SetActiveTab switches the visible tab. Sort and search state carry over;
// an in-flight fetch for the previous tab is not cancelled.
func (c *Controller) SetActiveTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeTab = tab
}

// ActiveTab returns the currently selected tab.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

// Fetch replaces the named tab's collection with the server's view. Records
// missing a status are tagged "New". On failure the previous collection is
// left untouched (stale-but-available) and the error is surfaced as a
// notification string.
// POST: On success the tab's collection mirrors the server and lastError is cleared
func (c *Controller) Fetch(ctx context.Context, tab Tab) error {
	c.mu.Lock()
	c.isRefreshing = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.isRefreshing = false
		c.mu.Unlock()
	}()

	switch tab {
	case TabContacts:
		rows, err := c.client.FetchContacts(ctx)
		if err != nil {
			return c.fetchFailed(tab, err)
		}
		for i := range rows {
			rows[i].Status = crm.CoerceStatus(rows[i].Status)
		}
		c.mu.Lock()
		c.contacts = rows
		c.lastError = ""
		c.mu.Unlock()
	case TabLeads:
		rows, err := c.client.FetchLeads(ctx)
		if err != nil {
			return c.fetchFailed(tab, err)
		}
		for i := range rows {
			rows[i].Status = crm.CoerceStatus(rows[i].Status)
		}
		c.mu.Lock()
		c.leads = rows
		c.lastError = ""
		c.mu.Unlock()
	case TabBlog:
		rows, err := c.client.FetchBlogPosts(ctx)
		if err != nil {
			return c.fetchFailed(tab, err)
		}
		c.mu.Lock()
		c.blogPosts = rows
		c.lastError = ""
		c.mu.Unlock()
	default:
		return fmt.Errorf("unknown tab %q", tab)
	}
	return nil
}

func (c *Controller) fetchFailed(tab Tab, err error) error {
	slog.Warn("dashboard_fetch_failed", "tab", tab, "error", err)
	c.mu.Lock()
	c.lastError = fmt.Sprintf("Failed to load %s", tab)
	c.mu.Unlock()
	return err
}

// FetchAll loads all three collections concurrently. Each fetch updates its
// own slice on completion with no coordination barrier, so callers may see
// partially populated state while the rest is still loading.
func (c *Controller) FetchAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, tab := range []Tab{TabContacts, TabLeads, TabBlog} {
		wg.Add(1)
		go func(tab Tab) {
			defer wg.Done()
			_ = c.Fetch(ctx, tab)
		}(tab)
	}
	wg.Wait()
}

// Sort adopts field ascending, or flips direction when field is already the
// sort key.
func (c *Controller) Sort(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sortField == field {
		if c.sortDirection == Asc {
			c.sortDirection = Desc
		} else {
			c.sortDirection = Asc
		}
		return
	}
	c.sortField = field
	c.sortDirection = Asc
}

// SortState returns the current sort field and direction.
func (c *Controller) SortState() (string, Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortField, c.sortDirection
}

// Filter sets the live search term. Filtering is recomputed on every render
// from this term; the underlying collections are never mutated.
func (c *Controller) Filter(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
}

// EditStatus updates the record matching id in the active tab's collection.
// No network call happens; this is the sole mutation path prior to save.
// Blog posts have no status and are never touched.
// POST: Returns true if a record was updated
func (c *Controller) EditStatus(id int64, newStatus string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.activeTab {
	case TabContacts:
		for i := range c.contacts {
			if c.contacts[i].ID == id {
				c.contacts[i].Status = newStatus
				return true
			}
		}
	case TabLeads:
		for i := range c.leads {
			if c.leads[i].ID == id {
				c.leads[i].Status = newStatus
				return true
			}
		}
	}
	return false
}

// SaveChanges submits the entire active collection as one batch to the bulk
// update endpoint. Valid only on the contacts and leads tabs. On success the
// tab is re-fetched, discarding the just-saved working copy in favor of the
// server's view; on failure the working copy is kept so edits are not lost.
// INVARIANT: isSaving is true exactly while the batch is in flight
func (c *Controller) SaveChanges(ctx context.Context) error {
	c.mu.Lock()
	tab := c.activeTab
	var updates []crm.StatusUpdate
	switch tab {
	case TabContacts:
		for _, row := range c.contacts {
			updates = append(updates, crm.StatusUpdate{ID: row.ID, Status: row.Status})
		}
	case TabLeads:
		for _, row := range c.leads {
			updates = append(updates, crm.StatusUpdate{ID: row.ID, Status: row.Status})
		}
	default:
		c.mu.Unlock()
		return fmt.Errorf("save is not available on the %s tab", tab)
	}
	c.isSaving = true
	c.mu.Unlock()

	var err error
	if tab == TabContacts {
		err = c.client.UpdateContactStatuses(ctx, updates)
	} else {
		err = c.client.UpdateLeadStatuses(ctx, updates)
	}

	c.mu.Lock()
	c.isSaving = false
	if err != nil {
		c.lastError = "Failed to save changes"
		c.mu.Unlock()
		slog.Warn("dashboard_save_failed", "tab", tab, "error", err)
		return err
	}
	c.lastNotice = "Changes saved"
	c.mu.Unlock()

	return c.Fetch(ctx, tab)
}

// Delete removes a single record from the active tab's resource. On success
// the tab is re-fetched; on failure nothing is removed locally so the list
// keeps showing server truth.
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	tab := c.activeTab
	c.mu.Unlock()

	if err := c.client.Delete(ctx, tab, id); err != nil {
		c.mu.Lock()
		c.lastError = "Failed to delete record"
		c.mu.Unlock()
		slog.Warn("dashboard_delete_failed", "tab", tab, "id", id, "error", err)
		return err
	}
	return c.Fetch(ctx, tab)
}

// CreateBlogPost submits the creation form. On success the blog collection
// is refreshed; on failure the caller keeps the dialog open with the entered
// values intact.
func (c *Controller) CreateBlogPost(ctx context.Context, form BlogPostForm) error {
	if _, err := c.client.CreateBlogPost(ctx, form); err != nil {
		c.mu.Lock()
		c.lastError = "Failed to create blog post"
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.lastNotice = "Blog post created"
	c.mu.Unlock()
	return c.Fetch(ctx, TabBlog)
}

// Logout terminates the session, best-effort. A failure surfaces a
// notification but must not block navigation away from protected content.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.client.Logout(ctx); err != nil {
		c.mu.Lock()
		c.lastError = "Logout failed"
		c.mu.Unlock()
		return err
	}
	return nil
}

// VisibleContacts returns the contacts tab's rows after sorting then
// filtering. The underlying collection is never mutated.
func (c *Controller) VisibleContacts() []contact.Contact {
	c.mu.Lock()
	rows := make([]contact.Contact, len(c.contacts))
	copy(rows, c.contacts)
	field, dir, term := c.sortField, c.sortDirection, c.searchTerm
	c.mu.Unlock()

	if accessor, ok := contactFields[field]; ok {
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := compareValues(accessor(rows[i]), accessor(rows[j]))
			if dir == Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if term == "" {
		return rows
	}
	filtered := rows[:0]
	for _, row := range rows {
		if matchesAny(term, contactFields, row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// VisibleLeads returns the leads tab's rows after sorting then filtering.
func (c *Controller) VisibleLeads() []lead.Lead {
	c.mu.Lock()
	rows := make([]lead.Lead, len(c.leads))
	copy(rows, c.leads)
	field, dir, term := c.sortField, c.sortDirection, c.searchTerm
	c.mu.Unlock()

	if accessor, ok := leadFields[field]; ok {
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := compareValues(accessor(rows[i]), accessor(rows[j]))
			if dir == Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if term == "" {
		return rows
	}
	filtered := rows[:0]
	for _, row := range rows {
		if matchesAny(term, leadFields, row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// VisibleBlogPosts returns the blog tab's rows after sorting then filtering.
func (c *Controller) VisibleBlogPosts() []blog.Post {
	c.mu.Lock()
	rows := make([]blog.Post, len(c.blogPosts))
	copy(rows, c.blogPosts)
	field, dir, term := c.sortField, c.sortDirection, c.searchTerm
	c.mu.Unlock()

	if accessor, ok := blogFields[field]; ok {
		sort.SliceStable(rows, func(i, j int) bool {
			cmp := compareValues(accessor(rows[i]), accessor(rows[j]))
			if dir == Desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	if term == "" {
		return rows
	}
	filtered := rows[:0]
	for _, row := range rows {
		if matchesAny(term, blogFields, row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// matchesAny reports whether any field's string form contains term,
// case-insensitively.
func matchesAny[T any](term string, fields map[string]func(T) string, row T) bool {
	needle := strings.ToLower(term)
	for _, accessor := range fields {
		if strings.Contains(strings.ToLower(accessor(row)), needle) {
			return true
		}
	}
	return false
}

// IsSaving reports whether a bulk save is in flight.
func (c *Controller) IsSaving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isSaving
}

// IsRefreshing reports whether a fetch is in flight.
func (c *Controller) IsRefreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRefreshing
}

// LastError returns the most recent failure notification, empty when the
// last operation succeeded.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// LastNotice returns the most recent success notification.
func (c *Controller) LastNotice() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastNotice
}
