package oidc

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/handler/handlertest"
	"github.com/growfastwithus/growfast/internal/web/webtest"
)

type fakeProvider struct {
	user   *models.AdminUser
	err    error
	logout string
}

func (f *fakeProvider) GetAuthURL(state string) string {
	return "https://idp.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) HandleCallback(_ context.Context, code string) (*models.AdminUser, error) {
	if code != "good-code" {
		return nil, auth.ErrNoIDToken
	}

	return f.user, f.err
}

func (f *fakeProvider) GetLogoutURL(string) string {
	return f.logout
}

func setup(t *testing.T, p *fakeProvider) *handlertest.Env {
	t.Helper()

	env := handlertest.New(t, true)

	user, err := env.Deps.Auth.Local().CreateUser("sso", "sso@x.com", "", models.RoleAdmin, nil)
	require.NoError(t, err)

	if p.user == nil {
		p.user = user
	}

	return env.Init(t, &Service{provider: p})
}

// startLogin follows the login redirect and returns the issued state and
// the cookie binding it to this browser.
func startLogin(t *testing.T, env *handlertest.Env) (string, *http.Cookie) {
	t.Helper()

	resp := webtest.Do(t, env.App, fiber.MethodGet, LoginPath, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get(fiber.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "idp.example.com", loc.Host)

	state := loc.Query().Get("state")
	require.Len(t, state, 43)

	cookie := webtest.Cookie(resp, StateCookie)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, CallbackPath, cookie.Path)
	assert.Equal(t, state, cookie.Value)

	return state, cookie
}

func TestDisabled(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodGet, LoginPath, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCallbackCreatesSession(t *testing.T) {
	env := setup(t, &fakeProvider{})
	state, stateCookie := startLogin(t, env)

	resp := webtest.Do(t, env.App, fiber.MethodGet, CallbackPath+"?code=good-code&state="+state, nil, stateCookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	cookie := webtest.Cookie(resp, env.Deps.Sessions.CookieName())
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	raw, err := env.Storage.Get(cookie.Value)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"source":"`+auth.SourceOIDC+`"`)
	assert.Contains(t, string(raw), `"username":"sso"`)

	cleared := webtest.Cookie(resp, StateCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// state is single use
	resp = webtest.Do(t, env.App, fiber.MethodGet, CallbackPath+"?code=good-code&state="+state, nil, stateCookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCallbackRequiresStateCookie(t *testing.T) {
	env := setup(t, &fakeProvider{})

	// a login started in another browser
	state, _ := startLogin(t, env)

	resp := webtest.Do(t, env.App, fiber.MethodGet, CallbackPath+"?code=good-code&state="+state, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, webtest.Cookie(resp, env.Deps.Sessions.CookieName()))

	_, otherCookie := startLogin(t, env)

	resp = webtest.Do(t, env.App, fiber.MethodGet, CallbackPath+"?code=good-code&state="+state, nil, otherCookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, webtest.Cookie(resp, env.Deps.Sessions.CookieName()))
}

func TestCallbackRejects(t *testing.T) {
	tests := []struct {
		name   string
		query  func(state string) string
		err    error
		status int
	}{
		{"missing code", func(s string) string { return "?state=" + s }, nil, fiber.StatusBadRequest},
		{"unknown state", func(string) string { return "?code=good-code&state=forged" }, nil, fiber.StatusBadRequest},
		{"exchange failure", func(s string) string { return "?code=bad&state=" + s }, nil, fiber.StatusUnauthorized},
		{"unknown subject", func(s string) string { return "?code=good-code&state=" + s }, auth.ErrUnknownSubject, fiber.StatusForbidden},
		{"disabled account", func(s string) string { return "?code=good-code&state=" + s }, auth.ErrUserAccountDisabled, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setup(t, &fakeProvider{err: tt.err})
			state, stateCookie := startLogin(t, env)

			resp := webtest.Do(t, env.App, fiber.MethodGet, CallbackPath+tt.query(state), nil, stateCookie)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Nil(t, webtest.Cookie(resp, env.Deps.Sessions.CookieName()))
		})
	}
}

func TestLogout(t *testing.T) {
	env := setup(t, &fakeProvider{logout: "https://idp.example.com/logout"})
	cookie := env.Admin(t)

	resp := webtest.Do(t, env.App, fiber.MethodGet, LogoutPath, nil, cookie)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://idp.example.com/logout", resp.Header.Get(fiber.HeaderLocation))

	raw, err := env.Storage.Get(cookie.Value)
	require.NoError(t, err)
	assert.Empty(t, raw)
}
