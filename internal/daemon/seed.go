package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/setting"
	"github.com/growfastwithus/growfast/internal/db/controller/template"
	"github.com/growfastwithus/growfast/internal/defaults"
)

// Seed migrates the tables and fills an empty database: the bootstrap admin,
// the template catalog and every missing site setting.
func Seed(cfg *config.Config, db *gorm.DB) error {
	if cfg.DB.AutoMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
	}

	created, err := auth.NewService(db, cfg.Admin).Local().EnsureBootstrapAdmin()
	if err != nil {
		return err //nolint:wrapcheck
	}

	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("bootstrap admin created")
	}

	seeded, err := template.SeedIfEmpty(db, defaults.Templates())
	if err != nil {
		return err //nolint:wrapcheck
	}

	if seeded {
		log.Info().Int("count", len(defaults.Templates())).Msg("template catalog seeded")
	}

	n, err := setting.SeedMissing(db, defaults.Settings())
	if err != nil {
		return err //nolint:wrapcheck
	}

	if n > 0 {
		log.Info().Int64("count", n).Msg("site settings seeded")
	}

	return nil
}
