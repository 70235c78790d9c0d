// Package handlertest builds a wired fiber app for handler tests.
package handlertest

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/secret"
	"github.com/growfastwithus/growfast/internal/web/handler"
	webauth "github.com/growfastwithus/growfast/internal/web/middleware/auth"
	"github.com/growfastwithus/growfast/internal/web/session"
	"github.com/growfastwithus/growfast/internal/web/webtest"
)

// Env is a test app with its dependencies.
type Env struct {
	App     *fiber.App
	DB      *gorm.DB
	Cfg     *config.Config
	Deps    *handler.Deps
	Storage *webtest.Storage
}

// Config returns a configuration usable by every handler.
func Config() *config.Config {
	return &config.Config{
		DevMode: true,
		Title:   "GrowFastWithUs",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    3000,
			Session: config.Session{ExpiryTime: time.Hour, CookieName: "session"},
		},
		Admin: config.Admin{Username: "admin", Email: "admin@example.com", Password: "changeme"},
		Mail:  config.Mail{SecretKey: "test-secret", Timeout: time.Second},
		Media: config.Media{
			URLPrefix:    "/uploads",
			MaxSize:      1 << 20,
			AllowedTypes: []string{"image/png", "image/jpeg"},
		},
	}
}

// New creates an Env. withDB selects an in-memory database or fallback mode.
func New(t *testing.T, withDB bool) *Env {
	t.Helper()

	cfg := Config()

	var db *gorm.DB
	if withDB {
		db = testutil.OpenDB(t)
	}

	storage := webtest.NewStorage()
	deps := &handler.Deps{
		DB:       db,
		Auth:     auth.NewService(db, cfg.Admin),
		Sessions: session.NewManager(storage, cfg.Webserver.Session, cfg.DevMode),
		Secret:   secret.New(cfg.Mail.SecretKey, ""),
	}

	app := webtest.NewApp()
	app.Use(handler.AdminPrefix, webauth.New(webauth.Config{Service: deps.Auth, Sessions: deps.Sessions}))

	return &Env{App: app, DB: db, Cfg: cfg, Deps: deps, Storage: storage}
}

// Init registers s on the env app.
func (e *Env) Init(t *testing.T, services ...handler.Service) *Env {
	t.Helper()

	for _, s := range services {
		require.NoError(t, s.Init(e.App, e.Cfg, e.Deps))
	}

	return e
}

// Login stores a session for a new user with role and permissions and
// returns its cookie. Without a database the bootstrap admin is used.
func (e *Env) Login(t *testing.T, role string, permissions ...string) *http.Cookie {
	t.Helper()

	user := e.Deps.Auth.Local().BootstrapUser()
	source := auth.SourceBootstrap

	if e.DB != nil {
		var err error

		user, err = e.Deps.Auth.Local().CreateUser(role+time.Now().Format("150405.000000000"), "", "pw", role, permissions)
		require.NoError(t, err)

		source = auth.SourceLocal
	}

	id, err := session.GenerateSessionID()
	require.NoError(t, err)

	raw, err := json.Marshal(session.Data{Identity: e.Deps.Auth.IdentityFor(user, source), CreatedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, e.Storage.Set(id, raw, time.Hour))

	return &http.Cookie{Name: e.Deps.Sessions.CookieName(), Value: id}
}

// Admin is Login with role admin.
func (e *Env) Admin(t *testing.T) *http.Cookie {
	t.Helper()

	return e.Login(t, models.RoleAdmin)
}
