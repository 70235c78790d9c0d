// Package pricing serves the savings calculator.
package pricing

import (
	"github.com/gofiber/fiber/v2"

	"github.com/growfastwithus/growfast/internal/config"
	calc "github.com/growfastwithus/growfast/internal/pricing"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

// Path is the estimate endpoint.
const Path = handler.APIPrefix + "/pricing/estimate"

// Service is the pricing handler service.
type Service struct {
	handler.Service
}

// Handler is the pricing handler.
var Handler = Service{} //nolint:gochecknoglobals

// Request is the calculator input. Rates left out take the defaults.
type Request struct {
	HoursPerWeek   *float64 `json:"hoursPerWeek"   validate:"required,gte=0,lte=168"`
	HourlyRate     float64  `json:"hourlyRate"     validate:"omitempty,gt=0,lte=10000"`
	AutomationRate float64  `json:"automationRate" validate:"omitempty,gt=0,lte=1"`
}

// Init initializes the pricing handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	app.Post(Path, s.Estimate)

	return nil
}

// Estimate returns the savings for the request.
func (s *Service) Estimate(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	return c.JSON(calc.Calculate(calc.Input{
		HoursPerWeek:   *req.HoursPerWeek,
		HourlyRate:     req.HourlyRate,
		AutomationRate: req.AutomationRate,
	}))
}
