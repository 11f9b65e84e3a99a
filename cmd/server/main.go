package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "brightline/internal/adapters/email"
	web "brightline/internal/adapters/http"
	"brightline/internal/adapters/http/perf"
	"brightline/internal/adapters/pagespeed"
	"brightline/internal/adapters/recommend"
	"brightline/internal/adapters/storage"
	accountStorePkg "brightline/internal/adapters/storage/account"
	blogStorePkg "brightline/internal/adapters/storage/blog"
	contactStorePkg "brightline/internal/adapters/storage/contact"
	leadStorePkg "brightline/internal/adapters/storage/lead"
	"brightline/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	// Initialize database with WAL mode and busy timeout
	dbPath := envOrDefault("BRIGHTLINE_DB_PATH", "brightline.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStorePkg.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		ContactStore: contactStorePkg.NewSQLiteStore(timedDB),
		LeadStore:    leadStorePkg.NewSQLiteStore(timedDB),
		BlogStore:    blogStorePkg.NewSQLiteStore(timedDB),
		AccountStore: acctStore,
	}

	// Seed the admin account if no accounts exist yet
	seedInput := orchestrators.SeedAdminInput{
		Email:    os.Getenv("BRIGHTLINE_ADMIN_EMAIL"),
		Password: os.Getenv("BRIGHTLINE_ADMIN_PASSWORD"),
	}
	seedDeps := orchestrators.SeedAdminDeps{AccountStore: acctStore}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedInput, seedDeps); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("BRIGHTLINE_RESEND_KEY")
	emailFrom := envOrDefault("BRIGHTLINE_EMAIL_FROM", "Brightline <noreply@brightline.example>")
	notifyTo := envOrDefault("BRIGHTLINE_NOTIFY_TO", "hello@brightline.example")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), notifyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), notifyTo)
		if os.Getenv("BRIGHTLINE_ENV") == "production" {
			log.Println("WARNING: BRIGHTLINE_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set BRIGHTLINE_RESEND_KEY for real delivery)")
		}
	}

	// Configure the public speed-test and CRM-recommendation backends.
	// Without keys both fall back to stub responses, which keeps local
	// development offline-friendly.
	if key := os.Getenv("BRIGHTLINE_PAGESPEED_KEY"); key != "" {
		web.SetScorer(pagespeed.NewHTTPScorer(key))
		log.Println("Speed test configured (PageSpeed Insights)")
	}
	if key := os.Getenv("BRIGHTLINE_COMPLETION_KEY"); key != "" {
		endpoint := envOrDefault("BRIGHTLINE_COMPLETION_ENDPOINT", "https://api.openai.com/v1/chat/completions")
		model := envOrDefault("BRIGHTLINE_COMPLETION_MODEL", "gpt-4o-mini")
		web.SetRecommender(recommend.NewHTTPRecommender(endpoint, key, model))
		log.Println("CRM recommendation configured")
	}

	mux := web.NewMux(envOrDefault("BRIGHTLINE_STATIC_DIR", "static"), stores, collector, sessionSecret())

	addr := envOrDefault("BRIGHTLINE_ADDR", ":8080")
	log.Printf("Brightline %s starting on %s (env=%s)", version, addr, envOrDefault("BRIGHTLINE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// sessionSecret loads the JWT signing key. Production requires an explicit
// key so sessions survive restarts; development generates one per startup.
func sessionSecret() []byte {
	if keyHex := os.Getenv("BRIGHTLINE_SESSION_SECRET"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) < 32 {
			log.Fatal("BRIGHTLINE_SESSION_SECRET must be at least 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("BRIGHTLINE_ENV") == "production" {
		log.Fatal("BRIGHTLINE_SESSION_SECRET is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate session secret: %v", err)
	}
	log.Println("WARNING: using random session secret. Set BRIGHTLINE_SESSION_SECRET for production.")
	return key
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
