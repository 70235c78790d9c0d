package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/web/session"
)

// RequirePermission creates Fiber middleware that requires a specific permission.
// It must run after the session middleware placed the identity in the context.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := session.IdentityFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		if !HasPermission(identity, permission) {
			log.Warn().Uint64("user_id", identity.UserID).Str("permission", permission).
				Msg("User lacks required permission")

			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
		}

		// User has permission, proceed
		return c.Next()
	}
}

// RequireSession creates Fiber middleware that accepts only requests with a
// valid admin session and places the identity into fiber.Ctx.Locals.
func RequireSession(authService *Service, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := sessions.Read(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		identity, err := authService.Refresh(data.Identity)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) && !errors.Is(err, ErrUserAccountDisabled) &&
				!errors.Is(err, ErrBootstrapSession) {
				return err
			}

			log.Warn().Err(err).Str("username", data.Identity.Username).Msg("session rejected")

			_ = sessions.Destroy(c)

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}

		session.SetIdentity(c, identity)

		return c.Next()
	}
}
