// Package web wires the fiber app: middleware, static files, templates and handlers.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/config"
	accesslog "github.com/growfastwithus/growfast/internal/logger/adapter/fiber"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/configuration"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/emailsettings"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/media"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/reviews"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/settings"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/stats"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/user"
	oidchandler "github.com/growfastwithus/growfast/internal/web/handler/auth/oidc"
	"github.com/growfastwithus/growfast/internal/web/handler/catalog"
	"github.com/growfastwithus/growfast/internal/web/handler/contact"
	"github.com/growfastwithus/growfast/internal/web/handler/health"
	"github.com/growfastwithus/growfast/internal/web/handler/login"
	"github.com/growfastwithus/growfast/internal/web/handler/logout"
	"github.com/growfastwithus/growfast/internal/web/handler/pages"
	"github.com/growfastwithus/growfast/internal/web/handler/pricing"
	webauth "github.com/growfastwithus/growfast/internal/web/middleware/auth"
)

const (
	// CheckAlivePath answers 503 while shutting down.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the prometheus metrics.
	MetricsPath = "/metrics"
)

// ErrNilConfig is returned by New without config or deps.
var ErrNilConfig = errors.New("config and deps cannot be nil")

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	deps         *handler.Deps
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown

	// pending contact notifications
	s.deps.Notifier.Wait()
	sentry.Flush(2 * time.Second) //nolint:mnd

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether /checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates the web service. limiterStorage keeps the rate limit counters,
// nil keeps them in memory.
func New(cfg *config.Config, deps *handler.Deps, limiterStorage fiber.Storage) (*Service, error) {
	if cfg == nil || deps == nil {
		return nil, ErrNilConfig
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          newEngine(cfg.DevMode),
			ErrorHandler:   ErrorHandler,
			BodyLimit:      bodyLimit(cfg.Media.MaxSize),
		},
	)

	service := &Service{
		App:  app,
		cfg:  cfg,
		deps: deps,
	}
	service.alive.Store(true)

	app.Use(requestid.New())
	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	if len(cfg.Webserver.AllowOrigins) > 0 {
		app.Use(handler.APIPrefix, cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.Webserver.AllowOrigins, ","),
			AllowCredentials: true,
		}))
	}

	if cfg.Webserver.CookieEncryptionKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{Key: cfg.Webserver.CookieEncryptionKey}))
	}

	if cfg.RateLimit.Enabled {
		deps.ContactLimiter = newLimiter("contact", cfg.RateLimit.ContactMax, cfg.RateLimit.Expiration, limiterStorage)
		deps.LoginLimiter = newLimiter("login", cfg.RateLimit.LoginMax, cfg.RateLimit.Expiration, limiterStorage)
	}

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
				MaxAge:     3600, //nolint:mnd
			},
		),
	)

	if cfg.Media.Dir != "" {
		app.Static(cfg.Media.URLPrefix, cfg.Media.Dir, fiber.Static{MaxAge: 86400}) //nolint:mnd
	}

	app.Get(CheckAlivePath, func(c *fiber.Ctx) error {
		if !service.alive.Load() {
			return c.SendStatus(fiber.StatusServiceUnavailable)
		}

		return c.SendString("OK")
	})

	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// every admin route below needs a session, handlers add their permission checks
	app.Use(handler.AdminPrefix, webauth.New(webauth.Config{Service: deps.Auth, Sessions: deps.Sessions}))

	for _, h := range []handler.Service{
		&health.Handler,
		&login.Handler,
		&logout.Handler,
		&oidchandler.Handler,
		&contact.Handler,
		&catalog.Handler,
		&pricing.Handler,
		&settings.Handler,
		&reviews.Handler,
		&emailsettings.Handler,
		&media.Handler,
		&stats.Handler,
		&user.Handler,
		&configuration.Handler,
		&pages.Handler,
	} {
		if err := h.Init(app, cfg, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

// newEngine loads the embedded templates, or the working copy in dev mode.
func newEngine(devMode bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templateEmbedFS{embeddedTemplates}), ".gohtml")

	// in debug mode, use local filesystem for templates
	if devMode {
		if _, err := os.Stat(devTemplateDir); err == nil {
			engine = html.New(devTemplateDir, ".gohtml")
			engine.ShouldReload = true

			log.Warn().Msg("debug mode enabled: using local filesystem for templates")
		}
	}

	engine.AddFunc("iterate", func(count int) []int {
		result := make([]int, max(count, 0))
		for i := range result {
			result[i] = i
		}

		return result
	})

	// links decodes the social_links setting
	engine.AddFunc("links", func(raw string) map[string]string {
		out := map[string]string{}
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return map[string]string{}
		}

		return out
	})

	return engine
}

func bodyLimit(maxUpload int64) int {
	const minLimit = 4 * 1024 * 1024

	// room for the multipart envelope
	limit := maxUpload + 64*1024 //nolint:mnd
	if limit < minLimit {
		return minLimit
	}

	return int(limit)
}

// newLimiter limits requests per client ip. max <= 0 disables it.
func newLimiter(name string, maxRequests int, expiration time.Duration, storage fiber.Storage) fiber.Handler {
	if maxRequests <= 0 {
		return nil
	}

	if expiration <= 0 {
		expiration = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: expiration,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return name + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn().Str("limiter", name).Str("ip", c.IP()).Msg("rate limit reached")

			return handler.JSONError(c, fiber.StatusTooManyRequests, "too many requests")
		},
	})
}
