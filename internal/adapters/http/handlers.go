package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"brightline/internal/adapters/http/middleware"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// looseDecode decodes JSON without rejecting unknown fields. The bulk status
// endpoints accept full record objects but only read id and status, so
// unknown fields must pass through silently.
func looseDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}

const templatesDir = "internal/adapters/http/templates"

// renderTemplate renders a single template file with the shared func map.
func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"currentEmail": func() string { return sess.Email },
		"isLoggedIn":   func() bool { return loggedIn },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	tmpl, err := template.New(templateName).Funcs(funcMap).ParseFiles(filepath.Join(templatesDir, templateName))
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, templateName, data); err != nil {
		slog.Error("template_render_failed", "template", templateName, "error", err)
	}
}

// requireAdminAPI wraps a JSON handler with the 401 session gate.
func requireAdminAPI(h http.HandlerFunc) http.Handler {
	return middleware.RequireAdmin(h)
}

// registerRoutes attaches all application routes to the mux.
func registerRoutes(mux *http.ServeMux) {
	// Public read APIs
	mux.HandleFunc("/api/contacts", handleContacts)
	mux.HandleFunc("/api/leads", handleLeads)
	mux.HandleFunc("/api/blog-posts", handleBlogPosts)

	// Admin mutation APIs (401 JSON when unauthenticated)
	mux.Handle("/api/contacts/updateLeadStatus", requireAdminAPI(handleContactStatusUpdate))
	mux.Handle("/api/leads/updateLeadStatus", requireAdminAPI(handleLeadStatusUpdate))
	mux.Handle("/api/contacts/", requireAdminAPI(handleContactDelete))
	mux.Handle("/api/leads/", requireAdminAPI(handleLeadDelete))
	mux.Handle("/api/blog-posts/", requireAdminAPI(handleBlogPostDelete))
	mux.Handle("/api/admin/perf", requireAdminAPI(handleAdminPerf))

	// Public form submissions and tools
	mux.HandleFunc("/api/submit-lead", handleSubmitLead)
	mux.HandleFunc("/api/submit-performance-lead", handleSubmitPerformanceLead)
	mux.HandleFunc("/api/speed-test", handleSpeedTest)
	mux.HandleFunc("/api/crm-recommendation", handleCRMRecommendation)

	// Session
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.Handle("/admin", middleware.RequireAdminPage(http.HandlerFunc(handleAdminDashboard)))
	mux.Handle("/admin/", middleware.RequireAdminPage(http.HandlerFunc(handleAdminDashboard)))

	// Public blog pages
	mux.HandleFunc("/blog", handleBlogIndex)
	mux.HandleFunc("/blog/", handleBlogPage)
}
