// Package session keeps admin sessions in a fiber.Storage behind an httpOnly cookie.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/growfastwithus/growfast/internal/config"
)

// identityKey is the fiber.Ctx.Locals key of the request identity.
const identityKey = "identity"

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no session")

// Identity is the authenticated admin of a request.
type Identity struct {
	UserID      uint64   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	Source      string   `json:"source"` // local, bootstrap or oidc
}

// Data represents the session data structure.
type Data struct {
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Manager issues, reads and destroys sessions.
type Manager struct {
	store      *session.Store
	cookieName string
	expiry     time.Duration
	secure     bool
}

// NewManager creates a session manager. A nil storage keeps sessions in memory.
// Cookies are Secure unless devMode is set.
func NewManager(storage fiber.Storage, cfg config.Session, devMode bool) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}

	if cfg.ExpiryTime == 0 {
		cfg.ExpiryTime = 24 * time.Hour //nolint:mnd
	}

	return &Manager{
		store: session.New(session.Config{
			Storage:        storage,
			Expiration:     cfg.ExpiryTime,
			KeyLookup:      "cookie:" + cfg.CookieName,
			CookieHTTPOnly: true,
			CookieSecure:   !devMode,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
		cookieName: cfg.CookieName,
		expiry:     cfg.ExpiryTime,
		secure:     !devMode,
	}
}

// Storage returns the backing storage, e.g. for short lived oidc state.
func (m *Manager) Storage() fiber.Storage {
	return m.store.Storage
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create stores identity under a fresh session id and sets the cookie.
func (m *Manager) Create(c *fiber.Ctx, identity Identity) (string, error) {
	sessionID, err := GenerateSessionID()
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(Data{Identity: identity, CreatedAt: time.Now().UTC()})
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	if err = m.store.Storage.Set(sessionID, out, m.expiry); err != nil {
		return "", err //nolint:wrapcheck
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    sessionID,
		Path:     "/",
		Expires:  time.Now().Add(m.expiry),
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return sessionID, nil
}

// Read returns the session of the request cookie.
func (m *Manager) Read(c *fiber.Ctx) (*Data, error) {
	sessionID := c.Cookies(m.cookieName)
	if sessionID == "" {
		return nil, ErrNoSession
	}

	raw, err := m.store.Storage.Get(sessionID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if len(raw) == 0 {
		return nil, ErrNoSession
	}

	var data Data
	if err = json.Unmarshal(raw, &data); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if data.Identity.Username == "" {
		return nil, ErrNoSession
	}

	return &data, nil
}

// Destroy deletes the session of the request and expires the cookie.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	var err error

	if sessionID := c.Cookies(m.cookieName); sessionID != "" {
		err = m.store.Storage.Delete(sessionID)
	}

	c.Cookie(&fiber.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   m.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return err //nolint:wrapcheck
}

// SetIdentity places identity into the request context.
func SetIdentity(c *fiber.Ctx, identity Identity) {
	c.Locals(identityKey, identity)
}

// IdentityFrom returns the request identity placed by the auth middleware.
func IdentityFrom(c *fiber.Ctx) (Identity, bool) {
	identity, ok := c.Locals(identityKey).(Identity)

	return identity, ok
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() (string, error) {
	// 32 bytes = 256 bits
	b := make([]byte, 32) //nolint:mnd
	if _, err := rand.Read(b); err != nil {
		return "", err //nolint:wrapcheck
	}

	return hex.EncodeToString(b), nil
}
