package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"brightline/internal/adapters/email"
	"brightline/internal/adapters/http/middleware"
	"brightline/internal/adapters/http/perf"
	"brightline/internal/adapters/pagespeed"
	"brightline/internal/adapters/recommend"
	accountStore "brightline/internal/adapters/storage/account"
	blogStore "brightline/internal/adapters/storage/blog"
	contactStore "brightline/internal/adapters/storage/contact"
	leadStore "brightline/internal/adapters/storage/lead"
)

// Stores holds all storage dependencies.
type Stores struct {
	ContactStore contactStore.Store
	LeadStore    leadStore.Store
	BlogStore    blogStore.Store
	AccountStore accountStore.Store
}

// loadCSRFKey reads the CSRF secret from BRIGHTLINE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("BRIGHTLINE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("BRIGHTLINE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BRIGHTLINE_ENV") == "production" {
		log.Fatal("BRIGHTLINE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key. Set BRIGHTLINE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session manager instance (set by NewMux)
var sessions *middleware.SessionManager

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// notifyToAddress receives new-lead notifications.
var notifyToAddress string

// SetEmailSender sets the global email sender and notification recipient.
func SetEmailSender(sender email.Sender, notifyTo string) {
	emailSender = sender
	notifyToAddress = notifyTo
}

// Global speed-test scorer (set by SetScorer)
var speedScorer pagespeed.Scorer = &pagespeed.StubScorer{}

// SetScorer sets the speed-test backend.
func SetScorer(s pagespeed.Scorer) {
	speedScorer = s
}

// Global CRM recommender (set by SetRecommender)
var crmRecommender recommend.Recommender = &recommend.StubRecommender{}

// SetRecommender sets the CRM-recommendation backend.
func SetRecommender(r recommend.Recommender) {
	crmRecommender = r
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector, sessionSecret []byte) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionManager(sessionSecret)
	middleware.SecureCookies = os.Getenv("BRIGHTLINE_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
