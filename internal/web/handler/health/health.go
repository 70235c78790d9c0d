// Package health answers the liveness check of the json api.
package health

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

// Path of the health endpoint.
const Path = handler.APIPrefix + "/health"

// Service is the health handler service.
type Service struct {
	handler.Service
	now func() time.Time
}

// Handler is the health handler.
var Handler = Service{now: time.Now} //nolint:gochecknoglobals

// Response of the health endpoint.
type Response struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Init initializes the health handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	if s.now == nil {
		s.now = time.Now
	}

	app.Get(Path, s.Get)

	return nil
}

// Get reports ok with the server time. It stays 200 during shutdown.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(Response{Status: "ok", Timestamp: s.now().UTC().Format(time.RFC3339)})
}
