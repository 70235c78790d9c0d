// Package config handles input from etc/main.toml, the environment and .env files.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides, e.g. GROWFAST_WEBSERVER_PORT.
	EnvPrefix = "GROWFAST"

	// EnvConfigJSON holds a JSON document merged over the file configuration.
	EnvConfigJSON = "GROWFAST_CONFIG_JSON"

	// EnvDatabaseURL is the connection string of the relational store.
	EnvDatabaseURL = "DATABASE_URL"

	redacted = "********"

	defaultSessionExpiry = 24 * time.Hour
)

// ReadConfig from config file.
// A missing main.toml is not an error, defaults and the environment still apply.
func ReadConfig(path string) (Config, error) {
	var c Config

	if path == "" {
		path = "./etc/"
	}

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("db.url", EnvDatabaseURL, EnvPrefix+"_DB_URL"); err != nil {
		return Config{}, errors.Wrap(err, "failed to bind database url")
	}

	if err := v.BindEnv("webserver.port", "PORT", EnvPrefix+"_WEBSERVER_PORT"); err != nil {
		return Config{}, errors.Wrap(err, "failed to bind webserver port")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	// override it from env
	if configAsJSON := os.Getenv(EnvConfigJSON); configAsJSON != "" {
		v.SetConfigType("json")

		if err := v.MergeConfig(strings.NewReader(configAsJSON)); err != nil {
			return Config{}, errors.Wrap(err, "failed to merge json config override")
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	return c, validate(&c)
}

// setDefaults registers every key. AutomaticEnv only resolves keys viper
// already knows, so a key missing here can not be set from the environment.
func setDefaults(v *viper.Viper) {
	v.SetDefault("devmode", false)
	v.SetDefault("title", "GrowFastWithUs")

	v.SetDefault("db.url", "")
	v.SetDefault("db.gormengine", "")
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", 0)
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.extras", "")
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.loglevel", "warn")
	v.SetDefault("db.maxidleconns", 5)
	v.SetDefault("db.maxopenconns", 20)
	v.SetDefault("db.connmaxlifetime", "30m")

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.logenv", "")
	v.SetDefault("log.appname", "growfast")
	v.SetDefault("log.servicename", "web")
	v.SetDefault("log.reportcaller", false)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", false)
	v.SetDefault("log.enableaccesslogtoconsole", true)
	v.SetDefault("log.disablecheckalive", true)
	v.SetDefault("log.file.enabled", false)
	v.SetDefault("log.file.path", "./log")
	v.SetDefault("log.file.access", "access.log")
	v.SetDefault("log.file.error", "error.log")
	v.SetDefault("log.file.info", "info.log")
	v.SetDefault("log.file.trace", "trace.log")
	v.SetDefault("log.file.warn", "warn.log")
	v.SetDefault("log.file.maxsize", 100)  //nolint:mnd
	v.SetDefault("log.file.maxbackups", 5) //nolint:mnd
	v.SetDefault("log.file.maxage", 14)    //nolint:mnd

	v.SetDefault("webserver.disablerecover", false)
	v.SetDefault("webserver.port", 8080) //nolint:mnd
	v.SetDefault("webserver.url", "http://localhost:8080")
	v.SetDefault("webserver.shutdowntime", 5) //nolint:mnd
	v.SetDefault("webserver.alloworigins", []string{})
	v.SetDefault("webserver.cookieencryptionkey", "")
	v.SetDefault("webserver.argon2salt", "")
	v.SetDefault("webserver.session.expirytime", "24h")
	v.SetDefault("webserver.session.cookiename", "session")
	v.SetDefault("webserver.session.table", "sessions")

	v.SetDefault("admin.username", "")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")

	v.SetDefault("oidc.enabled", false)
	v.SetDefault("oidc.providerurl", "")
	v.SetDefault("oidc.clientid", "")
	v.SetDefault("oidc.clientsecret", "")
	v.SetDefault("oidc.redirecturl", "")
	v.SetDefault("oidc.scopes", []string{"openid", "profile", "email"})

	v.SetDefault("mail.secretkey", "")
	v.SetDefault("mail.timeout", "15s")

	v.SetDefault("media.dir", "./data/media")
	v.SetDefault("media.urlprefix", "/uploads")
	v.SetDefault("media.maxsize", 10<<20) //nolint:mnd
	v.SetDefault("media.allowedtypes", []string{
		"image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml", "application/pdf",
	})

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.contactmax", 5) //nolint:mnd
	v.SetDefault("ratelimit.loginmax", 10)  //nolint:mnd
	v.SetDefault("ratelimit.expiration", "1m")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "growfast:")

	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")
	v.SetDefault("sentry.samplerate", 1.0)
}

// DumpConfigJSON config as JSON String with secrets redacted.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer

	out := *c
	redact(&out.DB.Password)
	redact(&out.DB.URL)
	redact(&out.Admin.Password)
	redact(&out.OIDC.ClientSecret)
	redact(&out.Mail.SecretKey)
	redact(&out.Redis.Password)
	redact(&out.Sentry.DSN)
	redact(&out.Webserver.CookieEncryptionKey)
	redact(&out.Webserver.Argon2Salt)

	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(out); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func redact(s *string) {
	if *s != "" {
		*s = redacted
	}
}

// validate minimal config settings.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.OIDC.Enabled && (c.OIDC.ProviderURL == "" || c.OIDC.ClientID == "") {
		return errors.Wrap(ErrOIDCIncomplete, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if c.Webserver.Session.ExpiryTime == 0 {
		c.Webserver.Session.ExpiryTime = defaultSessionExpiry
	}

	if c.Webserver.Session.CookieName == "" {
		c.Webserver.Session.CookieName = "session"
	}

	return nil
}
