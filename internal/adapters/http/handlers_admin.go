package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"brightline/internal/adapters/http/middleware"
	"brightline/internal/application/orchestrators"
	"brightline/internal/domain/crm"
)

// handleAdminLogin handles GET (form) and POST (authenticate) for /admin/login.
// An already-authenticated visitor is sent straight to the dashboard.
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/admin", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"From":      safeReturnPath(r.URL.Query().Get("from")),
		})
		return
	}

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("Email"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"From":      safeReturnPath(r.FormValue("From")),
				"Error":     err.Error(),
			})
			return
		}

		token, err := sessions.Issue(result.AccountID, result.Email)
		if err != nil {
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}
		middleware.SetSessionCookie(w, token)

		target := safeReturnPath(r.FormValue("From"))
		if target == "" {
			target = "/admin"
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// safeReturnPath only honours post-login redirects back into the admin area,
// preventing open redirects via the from parameter.
func safeReturnPath(from string) string {
	if strings.HasPrefix(from, "/admin") && !strings.Contains(from, "//") {
		return from
	}
	return ""
}

// handleLogout handles POST /api/logout. Session tokens are stateless, so
// logging out is clearing the cookie; the token itself ages out.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// handleAdminDashboard renders the back-office shell. The collections load
// through the JSON APIs after the page boots.
func handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "dashboard.html", map[string]any{
		"CSRFToken": csrf.Token(r),
		"Statuses":  crm.ValidStatuses,
	})
}
