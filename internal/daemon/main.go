// Package daemon opens the stores, seeds them and runs the web service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/dsn"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/logger"
	"github.com/growfastwithus/growfast/internal/logger/adapter/stdlogger"
	"github.com/growfastwithus/growfast/internal/mailer"
	"github.com/growfastwithus/growfast/internal/redisstore"
	"github.com/growfastwithus/growfast/internal/secret"
	"github.com/growfastwithus/growfast/internal/web"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/session"
)

const (
	slowQueryThreshold = 200 * time.Millisecond
	connectTimeout     = 10 * time.Second
)

// ErrNilConfig is returned by New without configuration.
var ErrNilConfig = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it was shut down.
func (d *Daemon) Start() error {
	done := make(chan error, 1)

	go func() {
		done <- d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
	}()

	d.webService.WaitShutdown()

	return <-done
}

// App returns the fiber app, e.g. for tests.
func (d *Daemon) App() *fiber.App {
	return d.webService.App
}

// New creates a new Daemon instance with the provided configuration.
// Without a configured database the site runs on built-in defaults.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	initSentry(cfg.Sentry)

	db, target, err := Open(cfg.DB)

	switch {
	case errors.Is(err, dsn.ErrNotConfigured):
		log.Warn().Msg("no database configured: serving built-in content, admin writes are disabled")
	case err != nil:
		return nil, err
	default:
		if err = Seed(cfg, db); err != nil {
			return nil, err
		}
	}

	sessionStorage, limiterStorage, err := newStorages(cfg, db, target)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(db, cfg.Admin)
	box := secret.New(cfg.Mail.SecretKey, cfg.Webserver.Argon2Salt)
	sender := mailer.NewSMTPSender(box)

	if !box.Enabled() {
		log.Warn().Msg("mail.secretkey is empty: smtp passwords are stored unencrypted")
	}

	deps := &handler.Deps{
		DB:       db,
		Auth:     authService,
		Sessions: session.NewManager(sessionStorage, cfg.Webserver.Session, cfg.DevMode),
		Secret:   box,
		Mailer:   sender,
		Notifier: mailer.NewNotifier(db, sender, cfg.Mail.Timeout, cfg.Title),
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	provider, err := auth.NewOIDCProvider(ctx, cfg.OIDC, authService.Local())

	switch {
	case errors.Is(err, auth.ErrOIDCDisabled):
	case err != nil:
		log.Error().Err(err).Msg("oidc provider unavailable, sign in with the identity provider is disabled")
	default:
		deps.OIDC = provider
	}

	webService, err := web.New(cfg, deps, limiterStorage)
	if err != nil {
		return nil, err
	}

	return &Daemon{cfg: cfg, webService: webService}, nil
}

// Open connects to the configured database.
func Open(cfg config.DB) (*gorm.DB, dsn.Target, error) {
	target, err := dsn.Parse(cfg)
	if err != nil {
		return nil, dsn.Target{}, err //nolint:wrapcheck
	}

	dialector, err := dsn.Dialector(target)
	if err != nil {
		return nil, dsn.Target{}, err //nolint:wrapcheck
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			stdlogger.NewWithComponent("gorm", zerolog.WarnLevel),
			gormlogger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  gormLogLevel(cfg.LogLevel),
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, dsn.Target{}, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, dsn.Target{}, fmt.Errorf("failed to get database handle: %w", err)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Info().Str("engine", target.Engine).Msg("database connected")

	return db, target, nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// storageURI is the connection string for the session storage drivers.
// pgx takes the url form, go-sql-driver only its own dsn.
func storageURI(target dsn.Target) string {
	if target.URI != "" {
		return target.URI
	}

	return target.DSN
}

// newStorages picks the session and rate limit storage: redis when enabled,
// else the session table of postgres or mysql. nil keeps them in memory.
func newStorages(cfg *config.Config, db *gorm.DB, target dsn.Target) (fiber.Storage, fiber.Storage, error) {
	if cfg.Redis.Enabled {
		rs := redisstore.New(cfg.Redis)

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		if err := rs.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
		}

		log.Info().Str("address", cfg.Redis.Address).Msg("sessions and rate limits are kept in redis")

		return rs.WithPrefix("session:"), rs.WithPrefix("limiter:"), nil
	}

	if db == nil {
		return nil, nil, nil
	}

	table := cfg.Webserver.Session.Table
	if table == "" {
		table = "sessions"
	}

	switch target.Engine {
	case dsn.EnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: storageURI(target),
			Table:         table,
		}), nil, nil
	case dsn.EngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: storageURI(target),
			Table:         table,
		}), nil, nil
	default:
		log.Warn().Str("engine", target.Engine).Msg("sessions are kept in memory and lost on restart")

		return nil, nil, nil
	}
}

func initSentry(cfg config.Sentry) {
	if cfg.DSN == "" {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		SampleRate:       cfg.SampleRate,
		AttachStacktrace: true,
	}); err != nil {
		log.Error().Err(err).Msg("failed to init sentry")
	}
}

// Migrate creates or updates the tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
