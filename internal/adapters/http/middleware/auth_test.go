package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testSessionManager() *SessionManager {
	return NewSessionManager([]byte("test-secret-key-for-sessions-0001"))
}

func TestSessionManager_IssueAndVerify(t *testing.T) {
	sm := testSessionManager()

	token, err := sm.Issue(7, "admin@brightline.example")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sess, ok := sm.Verify(token)
	if !ok {
		t.Fatal("Verify rejected a freshly issued token")
	}
	if sess.AccountID != 7 || sess.Email != "admin@brightline.example" {
		t.Errorf("session = %+v, want account 7 / admin@brightline.example", sess)
	}
	if time.Since(sess.IssuedAt) > time.Minute {
		t.Errorf("IssuedAt = %v, want recent", sess.IssuedAt)
	}
}

func TestSessionManager_RejectsWrongKey(t *testing.T) {
	token, err := testSessionManager().Issue(1, "a@b.example")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	other := NewSessionManager([]byte("a-completely-different-secret-key"))
	if _, ok := other.Verify(token); ok {
		t.Error("token signed with one key verified with another")
	}
}

func TestSessionManager_RejectsGarbage(t *testing.T) {
	if _, ok := testSessionManager().Verify("not.a.token"); ok {
		t.Error("garbage token verified")
	}
}

func TestAuth_SetsSessionFromCookie(t *testing.T) {
	sm := testSessionManager()
	token, _ := sm.Issue(3, "x@y.example")

	var got Session
	var found bool
	h := Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = GetSessionFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "brightline_session", Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("session not found in context")
	}
	if got.AccountID != 3 {
		t.Errorf("AccountID = %d, want 3", got.AccountID)
	}
}

func TestRequireAdminPage_RedirectsWithFrom(t *testing.T) {
	h := RequireAdminPage(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login?from=%2Fadmin" {
		t.Errorf("Location = %q, want /admin/login?from=%%2Fadmin", loc)
	}
}

func TestRequireAdmin_Returns401JSON(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler reached without a session")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contacts/updateLeadStatus", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestRequireAdmin_PassesWithSession(t *testing.T) {
	called := false
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/contacts/updateLeadStatus", nil)
	req = req.WithContext(ContextWithSession(req.Context(), Session{AccountID: 1, Email: "a@b.example"}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler not reached with a valid session")
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)
	if !rl.Allow("1.2.3.4") {
		t.Error("first request denied")
	}
	if !rl.Allow("1.2.3.4") {
		t.Error("second request denied")
	}
	if rl.Allow("1.2.3.4") {
		t.Error("third request allowed past the limit")
	}
	// A different IP has its own bucket.
	if !rl.Allow("5.6.7.8") {
		t.Error("request from fresh IP denied")
	}
}
