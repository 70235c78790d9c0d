// Package contact stores lead-capture submissions and lists them for admins.
package contact

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller"
	dbcontact "github.com/growfastwithus/growfast/internal/db/controller/contact"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// Path is the public submission endpoint.
	Path = handler.APIPrefix + "/contacts"

	// AdminPath lists submissions.
	AdminPath = handler.AdminPrefix + "/contacts"
)

var (
	submitted     prometheus.Counter //nolint:gochecknoglobals
	submittedOnce sync.Once          //nolint:gochecknoglobals
)

func counter() prometheus.Counter {
	submittedOnce.Do(func() {
		submitted = promauto.NewCounter(prometheus.CounterOpts{
			Name: "contacts_submitted_total",
			Help: "Number of stored contact form submissions.",
		})
	})

	return submitted
}

// Service is the contact handler service.
type Service struct {
	handler.Service
	deps      *handler.Deps
	submitted prometheus.Counter
}

// Handler is the contact handler.
var Handler = Service{} //nolint:gochecknoglobals

// Request is the contact form body.
type Request struct {
	Name         string   `json:"name"         validate:"required,notblank,max=200"`
	Email        string   `json:"email"        validate:"required,email,max=255"`
	Company      string   `json:"company"      validate:"max=200"`
	Phone        string   `json:"phone"        validate:"max=50"`
	Industry     string   `json:"industry"     validate:"max=100"`
	BusinessSize string   `json:"businessSize" validate:"max=50"`
	PainPoints   []string `json:"painPoints"   validate:"max=20,dive,max=200"`
	TimeSpent    *float64 `json:"timeSpent"    validate:"omitempty,gte=0,lte=168"`
	Message      string   `json:"message"      validate:"max=5000"`
}

// Response is the answer to a stored submission.
type Response struct {
	Success bool           `json:"success"`
	Contact models.Contact `json:"contact"`
}

// ListResponse is the admin listing.
type ListResponse struct {
	Contacts []models.Contact `json:"contacts"`
	Total    int64            `json:"total"`
}

// Init initializes the contact handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps
	s.submitted = counter()

	app.Post(Path, handler.Limit(deps.ContactLimiter), s.Post)
	app.Get(AdminPath, auth.RequirePermission(auth.PermContactsRead), handler.RequireDB(deps), s.List)

	return nil
}

// Post validates and stores a submission, then notifies in the background.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	if s.deps.DB == nil {
		return handler.DatabaseUnavailable(c)
	}

	row := models.Contact{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.TrimSpace(req.Email),
		Company:      req.Company,
		Phone:        req.Phone,
		Industry:     req.Industry,
		BusinessSize: req.BusinessSize,
		PainPoints:   req.PainPoints,
		TimeSpent:    req.TimeSpent,
		Message:      req.Message,
	}

	if err := dbcontact.Create(s.deps.DB, &row); err != nil {
		log.Error().Err(err).Msg("failed to store contact")

		return handler.InternalError(c)
	}

	s.submitted.Inc()

	log.Info().Uint64("contact_id", row.ID).Msg("contact stored")

	s.deps.Notifier.ContactCreated(row)

	return c.JSON(Response{Success: true, Contact: row})
}

// List returns a page of submissions, newest first.
func (s *Service) List(c *fiber.Ctx) error {
	page := controller.Page{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}

	contacts, err := dbcontact.List(s.deps.DB, page)
	if err != nil {
		log.Error().Err(err).Msg("failed to list contacts")

		return handler.InternalError(c)
	}

	total, err := dbcontact.Count(s.deps.DB)
	if err != nil {
		log.Error().Err(err).Msg("failed to count contacts")

		return handler.InternalError(c)
	}

	return c.JSON(ListResponse{Contacts: contacts, Total: total})
}
