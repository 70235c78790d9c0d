package config

import "time"

// DB holds the database configuration settings.
// URL wins over the discrete fields when both are set.
type DB struct {
	URL             string
	GormEngine      string // postgres, mysql or sqlite
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Extras          string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	LogLevel        string // silent, error, warn, info
}

// Configured reports whether enough is set to open a connection.
func (d DB) Configured() bool {
	if d.URL != "" {
		return true
	}

	if d.GormEngine == "sqlite" {
		return d.Name != ""
	}

	return d.GormEngine != "" && d.Host != ""
}
