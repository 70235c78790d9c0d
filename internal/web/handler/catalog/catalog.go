// Package catalog serves the automation template catalog.
package catalog

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	dbtemplate "github.com/growfastwithus/growfast/internal/db/controller/template"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

// Path of the catalog api.
const Path = handler.APIPrefix + "/templates"

// Service is the catalog handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the catalog handler.
var Handler = Service{} //nolint:gochecknoglobals

// Request is the body of a new template.
type Request struct {
	Title       string   `json:"title"       validate:"required,notblank,max=200"`
	Description string   `json:"description" validate:"required,notblank,max=5000"`
	Price       string   `json:"price"       validate:"required,notblank,max=50"`
	Category    string   `json:"category"    validate:"required,notblank,max=100"`
	Icon        string   `json:"icon"        validate:"max=100"`
	Features    []string `json:"features"    validate:"max=50,dive,required,max=200"`
	Popular     bool     `json:"popular"`
}

// Init initializes the catalog handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Get("/:id", s.Get)
	})

	// the session gate only covers the admin prefix
	app.Post(Path, handler.RequireSession(deps), auth.RequirePermission(auth.PermTemplatesWrite),
		handler.RequireDB(deps), s.Create)

	return nil
}

// List returns the catalog, optionally filtered by ?category=.
func (s *Service) List(c *fiber.Ctx) error {
	return c.JSON(ListTemplates(s.deps, c.Query("category")))
}

// ListTemplates reads the catalog and falls back to the defaults.
func ListTemplates(deps *handler.Deps, category string) []models.Template {
	if deps.DB == nil {
		return defaults.TemplatesByCategory(category)
	}

	templates, err := dbtemplate.List(deps.DB, category)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list templates, serving defaults")

		return defaults.TemplatesByCategory(category)
	}

	return templates
}

// Get returns a single template.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	if s.deps.DB == nil {
		t, found := defaults.Template(id)
		if !found {
			return handler.JSONError(c, fiber.StatusNotFound, dbtemplate.ErrTemplateNotFound.Error())
		}

		return c.JSON(t)
	}

	t, err := dbtemplate.Get(s.deps.DB, id)
	if err != nil {
		if errors.Is(err, dbtemplate.ErrTemplateNotFound) {
			return handler.JSONError(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to read template")

		return handler.InternalError(c)
	}

	return c.JSON(t)
}

// Create adds a template to the catalog.
func (s *Service) Create(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	features := req.Features
	if features == nil {
		features = []string{}
	}

	t := models.Template{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Icon:        req.Icon,
		Features:    features,
		Popular:     req.Popular,
	}

	if err := dbtemplate.Create(s.deps.DB, &t); err != nil {
		log.Error().Err(err).Msg("failed to create template")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}
