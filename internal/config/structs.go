package config

import (
	"time"

	"github.com/growfastwithus/growfast/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration // lifetime of an admin session
	CookieName string        // name of the httpOnly session cookie
	Table      string        // table used when sessions are kept in the database
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
	Admin     Admin
	OIDC      OIDC
	Mail      Mail
	Media     Media
	RateLimit RateLimit
	Redis     Redis
	Sentry    Sentry
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover      bool     // disable recover middleware
	Port                int      // listening port for the webserver
	ShutDownTime        int      // wait time for shutdown
	URL                 string   // base url for the webserver
	AllowOrigins        []string // CORS origins allowed to call the JSON API
	CookieEncryptionKey string   // base64 key for the encryptcookie middleware, empty disables it
	Argon2Salt          string   // salt for deriving the secret box key
	Session             Session  // session settings
}

// Admin is the bootstrap administrator. It is seeded into an empty admin
// table and is the only accepted login when no database is configured.
type Admin struct {
	Username string
	Email    string
	Password string
}

// OIDC holds the optional identity-provider sign in.
type OIDC struct {
	Enabled      bool
	ProviderURL  string
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// Mail holds outbound mail settings not stored in the database.
type Mail struct {
	SecretKey string        // passphrase for encrypting smtp passwords at rest
	Timeout   time.Duration // upper bound for a single smtp delivery
}

// Media holds upload settings.
type Media struct {
	Dir          string
	URLPrefix    string
	MaxSize      int64
	AllowedTypes []string
}

// RateLimit holds the public form limits.
type RateLimit struct {
	Enabled    bool
	ContactMax int
	LoginMax   int
	Expiration time.Duration
}

// Redis configures the optional redis backend for sessions and rate limits.
type Redis struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
	Prefix   string
}

// Sentry configures error reporting.
type Sentry struct {
	DSN         string
	Environment string
	SampleRate  float64
}
