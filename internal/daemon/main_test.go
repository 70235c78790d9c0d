package daemon

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/dsn"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Title: "GrowFastWithUs",
		DB:    config.DB{AutoMigrate: true},
		Log: logger.Log{
			LogLevel:    "error",
			AppName:     "growfast",
			ServiceName: "test",
		},
		Webserver: config.Webserver{
			Port:         8080,
			URL:          "http://localhost:8080",
			ShutDownTime: 1,
			Session:      config.Session{ExpiryTime: time.Hour, CookieName: "session"},
		},
		Admin: config.Admin{Username: "admin", Email: "admin@example.com", Password: "changeme"},
		Mail:  config.Mail{SecretKey: "test-secret"},
	}
}

func TestSeed(t *testing.T) {
	db := testutil.OpenDB(t)
	cfg := testConfig()

	// twice, seeding must not duplicate anything
	require.NoError(t, Seed(cfg, db))
	require.NoError(t, Seed(cfg, db))

	var admins, templates, settings int64

	require.NoError(t, db.Model(&models.AdminUser{}).Count(&admins).Error)
	require.NoError(t, db.Model(&models.Template{}).Count(&templates).Error)
	require.NoError(t, db.Model(&models.SiteSetting{}).Count(&settings).Error)

	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(len(defaults.Templates())), templates)
	assert.Equal(t, int64(len(defaults.Settings())), settings)
}

func TestSeedKeepsEditedSettings(t *testing.T) {
	db := testutil.OpenDB(t)

	require.NoError(t, db.Create(&models.SiteSetting{Key: "site_name", Value: "Acme", Type: "text", Category: "general"}).Error)
	require.NoError(t, Seed(testConfig(), db))

	var row models.SiteSetting
	require.NoError(t, db.Where("setting_key = ?", "site_name").First(&row).Error)
	assert.Equal(t, "Acme", row.Value)
}

func TestOpen(t *testing.T) {
	_, _, err := Open(config.DB{})
	require.ErrorIs(t, err, dsn.ErrNotConfigured)

	db, target, err := Open(config.DB{URL: "file:daemon_open?mode=memory&cache=shared", LogLevel: "silent", MaxOpenConns: 1})
	require.NoError(t, err)
	assert.Equal(t, dsn.EngineSQLite, target.Engine)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]gormlogger.LogLevel{
		"silent": gormlogger.Silent,
		"ERROR":  gormlogger.Error,
		"info":   gormlogger.Info,
		"warn":   gormlogger.Warn,
		"":       gormlogger.Warn,
	}

	for in, want := range tests {
		assert.Equal(t, want, gormLogLevel(in), in)
	}
}

func TestStorageURI(t *testing.T) {
	pg, err := dsn.Parse(config.DB{
		GormEngine: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", Name: "growfast", Extras: "sslmode=disable",
	})
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/growfast?sslmode=disable", storageURI(pg))

	my, err := dsn.Parse(config.DB{URL: "mysql://u:p@db:3306/growfast"})
	require.NoError(t, err)
	assert.Equal(t, my.DSN, storageURI(my))
	assert.Contains(t, storageURI(my), "@tcp(db:3306)/growfast")
}

func TestNewWithoutDatabase(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilConfig)

	d, err := New(testConfig())
	require.NoError(t, err)

	for _, path := range []string{"/checkalive", "/api/health", "/api/templates", "/"} {
		resp, err := d.App().Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}
