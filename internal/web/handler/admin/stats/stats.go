// Package stats serves the admin dashboard counters.
package stats

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	dbcontact "github.com/growfastwithus/growfast/internal/db/controller/contact"
	"github.com/growfastwithus/growfast/internal/db/controller/review"
	dbtemplate "github.com/growfastwithus/growfast/internal/db/controller/template"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/session"
)

const (
	// Path is the stats endpoint.
	Path = handler.AdminPrefix + "/stats"

	// ProtectedPath answers any valid session.
	ProtectedPath = handler.AdminPrefix + "/protected"
)

// Service is the stats handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the stats handler.
var Handler = Service{} //nolint:gochecknoglobals

// Response holds the dashboard counters.
type Response struct {
	Contacts  int64        `json:"contacts"`
	Templates int64        `json:"templates"`
	Reviews   review.Stats `json:"reviews"`
	Database  bool         `json:"database"`
}

// ProtectedResponse echoes the session identity.
type ProtectedResponse struct {
	Message string           `json:"message"`
	User    session.Identity `json:"user"`
}

// Init initializes the stats handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	app.Get(Path, auth.RequirePermission(auth.PermStatsView), s.Get)
	app.Get(ProtectedPath, s.Protected)

	return nil
}

// Get returns the counters. Without database the defaults are counted.
func (s *Service) Get(c *fiber.Ctx) error {
	if s.deps.DB == nil {
		return c.JSON(fallback())
	}

	var (
		out = Response{Database: true}
		err error
	)

	if out.Contacts, err = dbcontact.Count(s.deps.DB); err == nil {
		if out.Templates, err = dbtemplate.Count(s.deps.DB); err == nil {
			out.Reviews, err = review.GetStats(s.deps.DB)
		}
	}

	if err != nil {
		log.Warn().Err(err).Msg("failed to read stats, serving defaults")

		return c.JSON(fallback())
	}

	return c.JSON(out)
}

func fallback() Response {
	reviews := defaults.Reviews()

	var (
		active int64
		sum    int
	)

	for _, r := range reviews {
		if r.IsActive {
			active++
			sum += r.Rating
		}
	}

	st := review.Stats{Active: active, Total: int64(len(reviews))}
	if active > 0 {
		st.AverageRating = float64(sum) / float64(active)
	}

	return Response{Templates: int64(len(defaults.Templates())), Reviews: st}
}

// Protected confirms the session.
func (s *Service) Protected(c *fiber.Ctx) error {
	identity, ok := session.IdentityFrom(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusUnauthorized, "authentication required")
	}

	return c.JSON(ProtectedResponse{Message: "authenticated", User: identity})
}
