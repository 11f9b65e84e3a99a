package web

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"brightline/internal/adapters/http/middleware"
	"brightline/internal/adapters/recommend"
	blogStore "brightline/internal/adapters/storage/blog"
	contactStore "brightline/internal/adapters/storage/contact"
	leadStore "brightline/internal/adapters/storage/lead"
	"brightline/internal/application/orchestrators"
	blogDomain "brightline/internal/domain/blog"
	"brightline/internal/domain/crm"
	"brightline/internal/domain/submission"
)

// mxLookup resolves MX records for submitted email domains. A variable so
// tests can stub DNS out.
var mxLookup submission.MXLookup = net.LookupMX

// SetMXLookup replaces the DNS lookup used for email deliverability checks.
// Browser tests run against domains with no MX records.
func SetMXLookup(lookup submission.MXLookup) {
	mxLookup = lookup
}

func sessionFromRequest(r *http.Request) (middleware.Session, bool) {
	return middleware.GetSessionFromContext(r.Context())
}

// isBlogValidationError reports whether err is one of the blog domain's
// field validation failures.
func isBlogValidationError(err error) bool {
	for _, domainErr := range []error{
		blogDomain.ErrEmptyTitle,
		blogDomain.ErrEmptySlug,
		blogDomain.ErrEmptyExcerpt,
		blogDomain.ErrEmptyContent,
		blogDomain.ErrInvalidSlug,
	} {
		if errors.Is(err, domainErr) {
			return true
		}
	}
	// Length-limit violations are plain errors carrying "cannot exceed".
	return strings.Contains(err.Error(), "cannot exceed")
}

// handleContacts handles GET /api/contacts
func handleContacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := stores.ContactStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleLeads handles GET /api/leads
func handleLeads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	rows, err := stores.LeadStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleBlogPosts handles GET (public list) and POST (admin create) for
// /api/blog-posts.
func handleBlogPosts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		rows, err := stores.BlogStore.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rows)

	case http.MethodPost:
		if _, ok := sessionFromRequest(r); !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		var form struct {
			Title   string `json:"title"`
			Slug    string `json:"slug"`
			Excerpt string `json:"excerpt"`
			Content string `json:"content"`
		}
		if err := strictDecode(r, &form); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		result, err := orchestrators.ExecuteCreateBlogPost(r.Context(), orchestrators.CreateBlogPostInput{
			Title:   form.Title,
			Slug:    form.Slug,
			Excerpt: form.Excerpt,
			Content: form.Content,
		}, orchestrators.CreateBlogPostDeps{BlogStore: stores.BlogStore})
		if err != nil {
			if errors.Is(err, blogStore.ErrDuplicateSlug) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			// Domain validation errors (empty fields, bad slug) are 400s.
			if isBlogValidationError(err) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
				return
			}
			internalError(w, err)
			return
		}

		created, err := stores.BlogStore.GetByID(r.Context(), result.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleContactStatusUpdate handles POST /api/contacts/updateLeadStatus.
// The payload may contain full contact objects; only id and status are read.
func handleContactStatusUpdate(w http.ResponseWriter, r *http.Request) {
	handleStatusUpdate(w, r, stores.ContactStore)
}

// handleLeadStatusUpdate handles POST /api/leads/updateLeadStatus.
func handleLeadStatusUpdate(w http.ResponseWriter, r *http.Request) {
	handleStatusUpdate(w, r, stores.LeadStore)
}

func handleStatusUpdate(w http.ResponseWriter, r *http.Request, store orchestrators.StatusUpdater) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var updates []crm.StatusUpdate
	if err := looseDecode(r, &updates); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	err := orchestrators.ExecuteUpdateStatuses(r.Context(), orchestrators.UpdateStatusesInput{Updates: updates},
		orchestrators.UpdateStatusesDeps{Store: store})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidStatus) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		// Unknown ids roll the whole batch back; nothing was applied.
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": len(updates)})
}

// handleContactDelete handles DELETE /api/contacts/{id}
func handleContactDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := deleteID(w, r, "/api/contacts/")
	if !ok {
		return
	}
	if err := stores.ContactStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, contactStore.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "contact not found"})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleLeadDelete handles DELETE /api/leads/{id}
func handleLeadDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := deleteID(w, r, "/api/leads/")
	if !ok {
		return
	}
	if err := stores.LeadStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, leadStore.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "lead not found"})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleBlogPostDelete handles DELETE /api/blog-posts/{id}
func handleBlogPostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := deleteID(w, r, "/api/blog-posts/")
	if !ok {
		return
	}
	if err := stores.BlogStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, blogStore.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "blog post not found"})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// deleteID enforces the DELETE method and parses the trailing id segment.
func deleteID(w http.ResponseWriter, r *http.Request, prefix string) (int64, bool) {
	if r.Method != http.MethodDelete {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return 0, false
	}
	raw := strings.TrimPrefix(r.URL.Path, prefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// handleSubmitLead handles POST /api/submit-lead (the general contact form).
func handleSubmitLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var form struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := strictDecode(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result, err := orchestrators.ExecuteSubmitContact(r.Context(), orchestrators.SubmitContactInput{
		Form: submission.ContactForm{Name: form.Name, Email: form.Email, Phone: form.Phone, Message: form.Message},
	}, orchestrators.SubmitContactDeps{
		ContactStore: stores.ContactStore,
		Sender:       emailSender,
		NotifyTo:     notifyToAddress,
		MXLookup:     mxLookup,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"field": result.FieldError.Field,
				"error": result.FieldError.Message,
			})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": result.ID})
}

// handleSubmitPerformanceLead handles POST /api/submit-performance-lead.
func handleSubmitPerformanceLead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var form struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	}
	if err := strictDecode(r, &form); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result, err := orchestrators.ExecuteSubmitPerformanceLead(r.Context(), orchestrators.SubmitPerformanceLeadInput{
		Form: submission.PerformanceForm{Name: form.Name, Email: form.Email, Phone: form.Phone},
	}, orchestrators.SubmitPerformanceLeadDeps{
		LeadStore: stores.LeadStore,
		Sender:    emailSender,
		NotifyTo:  notifyToAddress,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrValidation) {
			writeJSON(w, http.StatusBadRequest, map[string]string{
				"field": result.FieldError.Field,
				"error": result.FieldError.Message,
			})
			return
		}
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": result.ID})
}

// handleSpeedTest handles POST /api/speed-test
func handleSpeedTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := strictDecode(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	parsed, err := url.Parse(body.URL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url must be an absolute http(s) URL"})
		return
	}

	result, err := speedScorer.Score(r.Context(), body.URL)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "speed test is unavailable right now"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleCRMRecommendation handles POST /api/crm-recommendation
func handleCRMRecommendation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var in recommend.Input
	if err := strictDecode(r, &in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	for field, value := range map[string]string{
		"company_size": in.CompanySize,
		"industry":     in.Industry,
		"budget":       in.Budget,
		"must_have":    in.MustHave,
	} {
		if strings.TrimSpace(value) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"field": field, "error": field + " is required"})
			return
		}
	}

	recommendation, err := crmRecommender.Recommend(r.Context(), in)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "recommendation is unavailable right now"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recommendation": recommendation})
}

// handleAdminPerf handles GET /api/admin/perf
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	since := timeNow().Add(-time.Hour)
	if raw := r.URL.Query().Get("since_minutes"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			since = timeNow().Add(-time.Duration(n) * time.Minute)
		}
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}
