// Package reviews manages the testimonials shown on the home page.
package reviews

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/review"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// AdminPath is the admin collection.
	AdminPath = handler.AdminPrefix + "/reviews"

	// PublicPath lists active reviews.
	PublicPath = handler.APIPrefix + "/reviews"
)

// Service is the reviews handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the reviews handler.
var Handler = Service{} //nolint:gochecknoglobals

// CreateRequest is the body of a new review.
type CreateRequest struct {
	Name     string `json:"name"     validate:"required,notblank,max=200"`
	Company  string `json:"company"  validate:"max=200"`
	Position string `json:"position" validate:"max=200"`
	Rating   int    `json:"rating"   validate:"required,gte=1,lte=5"`
	Content  string `json:"content"  validate:"required,notblank,max=5000"`
	IsActive *bool  `json:"isActive"`
}

// UpdateRequest is a partial update, absent fields keep their value.
type UpdateRequest struct {
	Name     *string `json:"name"     validate:"omitnil,notblank,max=200"`
	Company  *string `json:"company"  validate:"omitempty,max=200"`
	Position *string `json:"position" validate:"omitempty,max=200"`
	Rating   *int    `json:"rating"   validate:"omitempty,gte=1,lte=5"`
	Content  *string `json:"content"  validate:"omitnil,notblank,max=5000"`
	IsActive *bool   `json:"isActive"`
}

// Init initializes the reviews handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	app.Get(PublicPath, s.Public)

	// a Group with handlers would gate the GET as well
	perm := auth.RequirePermission(auth.PermReviewsWrite)
	needDB := handler.RequireDB(deps)

	app.Route(AdminPath, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, perm, needDB, s.Create)
		router.Put("/:id", perm, needDB, s.Update)
		router.Delete("/:id", perm, needDB, s.Delete)
	})

	return nil
}

// Public returns the active reviews.
func (s *Service) Public(c *fiber.Ctx) error {
	return c.JSON(List(s.deps, false))
}

// List returns reviews for the admin, inactive ones with ?includeInactive=true.
func (s *Service) List(c *fiber.Ctx) error {
	return c.JSON(List(s.deps, c.QueryBool("includeInactive")))
}

// List reads reviews and falls back to the defaults.
func List(deps *handler.Deps, includeInactive bool) []models.Review {
	if deps.DB == nil {
		return defaults.Reviews()
	}

	rows, err := review.List(deps.DB, includeInactive)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list reviews, serving defaults")

		return defaults.Reviews()
	}

	return rows
}

// Create stores a new review, active unless isActive is false.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	r := models.Review{
		Name:     strings.TrimSpace(req.Name),
		Company:  req.Company,
		Position: req.Position,
		Rating:   req.Rating,
		Content:  req.Content,
		IsActive: req.IsActive == nil || *req.IsActive,
	}

	if err := review.Create(s.deps.DB, &r); err != nil {
		log.Error().Err(err).Msg("failed to create review")

		return handler.InternalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(r)
}

// Update applies a partial update.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var req UpdateRequest
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	r, err := review.Update(s.deps.DB, id, review.Changes{
		Name:     req.Name,
		Company:  req.Company,
		Position: req.Position,
		Rating:   req.Rating,
		Content:  req.Content,
		IsActive: req.IsActive,
	})
	if err != nil {
		return s.fail(c, err, id)
	}

	return c.JSON(r)
}

// Delete hides a review.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	if err := review.Deactivate(s.deps.DB, id); err != nil {
		return s.fail(c, err, id)
	}

	return c.JSON(fiber.Map{"success": true})
}

func (s *Service) fail(c *fiber.Ctx, err error, id uint64) error {
	if errors.Is(err, review.ErrReviewNotFound) {
		return handler.JSONError(c, fiber.StatusNotFound, err.Error())
	}

	log.Error().Err(err).Uint64("id", id).Msg("failed to update review")

	return handler.InternalError(c)
}
