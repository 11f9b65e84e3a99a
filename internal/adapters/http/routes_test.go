package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"brightline/internal/adapters/http/middleware"
	"brightline/internal/adapters/http/perf"
	"brightline/internal/domain/account"
)

// newTestMux builds the full handler stack against mock stores. The rate
// limit is raised so table-driven tests sharing one client IP don't trip it.
func newTestMux(t *testing.T) http.Handler {
	t.Helper()
	prev := RateLimitPerSecond
	RateLimitPerSecond = 1000
	t.Cleanup(func() { RateLimitPerSecond = prev })
	return NewMux(t.TempDir(), newTestStores(), perf.NewCollector(64), []byte("route-test-secret"))
}

func TestAdminPageRedirectsWhenLoggedOut(t *testing.T) {
	mux := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/admin", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login?from=%2Fadmin" {
		t.Errorf("Location = %q", loc)
	}
}

func TestMutationRoutesRequireSession(t *testing.T) {
	mux := newTestMux(t)

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{"POST", "/api/contacts/updateLeadStatus", `[]`},
		{"POST", "/api/leads/updateLeadStatus", `[]`},
		{"DELETE", "/api/contacts/1", ""},
		{"DELETE", "/api/leads/1", ""},
		{"DELETE", "/api/blog-posts/1", ""},
		{"GET", "/api/admin/perf", ""},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want %d", tc.method, tc.path, rec.Code, http.StatusUnauthorized)
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
			t.Errorf("%s %s: Content-Type = %q, want JSON", tc.method, tc.path, ct)
		}
	}
}

func TestSecurityHeadersApplied(t *testing.T) {
	mux := newTestMux(t)

	req := httptest.NewRequest("GET", "/api/contacts", nil)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	for _, h := range []string{"Content-Security-Policy", "X-Frame-Options", "X-Content-Type-Options"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("missing %s header", h)
		}
	}
}

// seedLoginAccount stores an account with a known password in the mock store.
func seedLoginAccount(t *testing.T, s *Stores, email, password string) {
	t.Helper()
	a := account.Account{ID: 1, Email: email}
	if err := a.SetPassword(password); err != nil {
		t.Fatal(err)
	}
	if err := s.AccountStore.Save(context.Background(), a); err != nil {
		t.Fatal(err)
	}
}

func loginForm(email, password, from string) *http.Request {
	form := url.Values{}
	form.Set("Email", email)
	form.Set("Password", password)
	form.Set("From", from)
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	stores = newTestStores()
	sessions = middleware.NewSessionManager([]byte("login-test-secret"))
	seedLoginAccount(t, stores, "admin@brightline.example", "a-long-password")

	rec := httptest.NewRecorder()
	handleAdminLogin(rec, loginForm("admin@brightline.example", "a-long-password", ""))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location = %q, want /admin", loc)
	}

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "brightline_session" {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("no session cookie set")
	}
	if _, ok := sessions.Verify(token); !ok {
		t.Error("issued cookie does not verify")
	}
}

func TestLoginHonoursSafeReturnPath(t *testing.T) {
	stores = newTestStores()
	sessions = middleware.NewSessionManager([]byte("login-test-secret"))
	seedLoginAccount(t, stores, "admin@brightline.example", "a-long-password")

	rec := httptest.NewRecorder()
	handleAdminLogin(rec, loginForm("admin@brightline.example", "a-long-password", "/admin/perf"))
	if loc := rec.Header().Get("Location"); loc != "/admin/perf" {
		t.Errorf("Location = %q, want /admin/perf", loc)
	}
}

func TestSafeReturnPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"/admin", "/admin"},
		{"/admin/perf", "/admin/perf"},
		{"https://evil.example", ""},
		{"//evil.example", ""},
		{"/admin//evil.example", ""},
		{"/elsewhere", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := safeReturnPath(tc.in); got != tc.want {
			t.Errorf("safeReturnPath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	stores = newTestStores()

	rec := httptest.NewRecorder()
	handleLogout(rec, httptest.NewRequest("POST", "/api/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want %d", rec.Code, http.StatusOK)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "brightline_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("session cookie was not cleared")
	}
}

func TestLogoutRejectsGet(t *testing.T) {
	rec := httptest.NewRecorder()
	handleLogout(rec, httptest.NewRequest("GET", "/api/logout", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("got %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
