package session_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/web/session"
	"github.com/growfastwithus/growfast/internal/web/webtest"
)

func newApp(m *session.Manager) *fiber.App {
	app := webtest.NewApp()

	app.Post("/login", func(c *fiber.Ctx) error {
		_, err := m.Create(c, session.Identity{UserID: 1, Username: "admin", Role: "admin"})
		if err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/me", func(c *fiber.Ctx) error {
		data, err := m.Read(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		return c.JSON(data.Identity)
	})

	app.Post("/logout", func(c *fiber.Ctx) error {
		if err := m.Destroy(c); err != nil {
			return err
		}

		return c.SendStatus(fiber.StatusNoContent)
	})

	return app
}

func TestLifecycle(t *testing.T) {
	store := webtest.NewStorage()
	m := session.NewManager(store, config.Session{ExpiryTime: time.Minute, CookieName: "session"}, false)
	app := newApp(m)

	resp := webtest.Do(t, app, fiber.MethodPost, "/login", nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	cookie := webtest.Cookie(resp, "session")
	require.NotNil(t, cookie)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 1, store.Len())

	resp = webtest.Do(t, app, fiber.MethodGet, "/me", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var identity session.Identity
	webtest.DecodeJSON(t, resp, &identity)
	assert.Equal(t, "admin", identity.Username)

	resp = webtest.Do(t, app, fiber.MethodPost, "/logout", nil, cookie)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, store.Len())

	resp = webtest.Do(t, app, fiber.MethodGet, "/me", nil, cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestDevModeCookie(t *testing.T) {
	m := session.NewManager(webtest.NewStorage(), config.Session{}, true)
	resp := webtest.Do(t, newApp(m), fiber.MethodPost, "/login", nil)

	setCookie := resp.Header.Get(fiber.HeaderSetCookie)
	assert.Contains(t, setCookie, "session=")
	assert.NotContains(t, strings.ToLower(setCookie), "secure")
}

func TestUnknownAndMissingCookie(t *testing.T) {
	m := session.NewManager(nil, config.Session{}, false)
	app := newApp(m)

	resp := webtest.Do(t, app, fiber.MethodGet, "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = webtest.Do(t, app, fiber.MethodGet, "/me", nil, &http.Cookie{Name: "session", Value: "forged"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGenerateSessionID(t *testing.T) {
	a, err := session.GenerateSessionID()
	require.NoError(t, err)

	b, err := session.GenerateSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
