package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/web/session"
)

// Config for the admin session gate.
type Config struct {
	Service  *auth.Service
	Sessions *session.Manager
	// Public lists paths below the gate reachable without a session.
	Public []string
}

// DefaultPublic are the admin paths used to obtain or inspect a session.
func DefaultPublic() []string {
	return []string{"/api/admin/login", "/api/admin/logout", "/api/admin/session"}
}

// New returns middleware that requires an admin session for every request
// except the public paths. Mount it with app.Use on the admin prefix.
func New(cfg Config) fiber.Handler {
	if cfg.Public == nil {
		cfg.Public = DefaultPublic()
	}

	requireSession := auth.RequireSession(cfg.Service, cfg.Sessions)

	return func(c *fiber.Ctx) error {
		if IsPublic(c, cfg.Public) {
			return c.Next()
		}

		return requireSession(c)
	}
}

// IsPublic checks if the current request is for one of the public paths.
func IsPublic(c *fiber.Ctx, public []string) bool {
	p := strings.TrimSuffix(strings.ToLower(c.Path()), "/")

	for _, candidate := range public {
		if p == candidate {
			return true
		}
	}

	return false
}
