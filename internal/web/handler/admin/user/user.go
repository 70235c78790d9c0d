// Package user provides handlers for managing admin users in the admin api.
package user

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/session"
)

const (
	// Path is the base path for user management.
	Path = handler.AdminPrefix + "/users"

	// MsgSelf is returned when an admin tries to lock themselves out.
	MsgSelf = "you can not deactivate or demote your own account"
)

// Service provides CRUD operations for admin users.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// CreateRequest is the body of a new admin user.
type CreateRequest struct {
	Username    string   `json:"username"    validate:"required,notblank,min=3,max=100"`
	Email       string   `json:"email"       validate:"omitempty,email,max=255"`
	Password    string   `json:"password"    validate:"required,min=8,max=200"`
	Role        string   `json:"role"        validate:"required,oneof=admin editor"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required"`
}

// UpdateRequest is a partial update, absent fields keep their value.
type UpdateRequest struct {
	Email       *string   `json:"email"       validate:"omitempty,email,max=255"`
	Password    *string   `json:"password"    validate:"omitempty,min=8,max=200"`
	Role        *string   `json:"role"        validate:"omitempty,oneof=admin editor"`
	Permissions *[]string `json:"permissions" validate:"omitempty,dive,required"`
	IsActive    *bool     `json:"isActive"`
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	perm := auth.RequirePermission(auth.PermUsersManage)
	needDB := handler.RequireDB(deps)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, perm, s.List)
		router.Post(handler.RootPath, perm, needDB, s.Create)
		router.Put("/:id", perm, needDB, s.Update)
		router.Delete("/:id", perm, needDB, s.Delete)
	})

	return nil
}

// List returns every admin user. Without a database only the bootstrap
// admin exists.
func (s *Service) List(c *fiber.Ctx) error {
	local := s.deps.Auth.Local()

	if s.deps.DB == nil {
		users := []models.AdminUser{}
		if u := local.BootstrapUser(); u != nil {
			users = append(users, *u)
		}

		return c.JSON(users)
	}

	users, err := local.ListUsers()
	if err != nil {
		log.Error().Err(err).Msg("failed to list admin users")

		return handler.InternalError(c)
	}

	return c.JSON(users)
}

// Create adds an admin user.
func (s *Service) Create(c *fiber.Ctx) error {
	var req CreateRequest
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	user, err := s.deps.Auth.Local().CreateUser(
		strings.TrimSpace(req.Username), req.Email, req.Password, req.Role, req.Permissions)
	if err != nil {
		return s.fail(c, err, 0)
	}

	log.Info().Str("username", user.Username).Str("role", user.Role).Msg("admin user created")

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Update changes role, permissions, password, email or the active flag.
func (s *Service) Update(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	var req UpdateRequest
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	demote := req.Role != nil && *req.Role != models.RoleAdmin
	if isSelf(c, id) && ((req.IsActive != nil && !*req.IsActive) || demote) {
		return handler.JSONError(c, fiber.StatusBadRequest, MsgSelf)
	}

	user, err := s.deps.Auth.Local().UpdateUser(id, auth.UserChanges{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Permissions: req.Permissions,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return s.fail(c, err, id)
	}

	return c.JSON(user)
}

// Delete deactivates a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	if isSelf(c, id) {
		return handler.JSONError(c, fiber.StatusBadRequest, MsgSelf)
	}

	inactive := false
	if _, err := s.deps.Auth.Local().UpdateUser(id, auth.UserChanges{IsActive: &inactive}); err != nil {
		return s.fail(c, err, id)
	}

	return c.JSON(fiber.Map{"success": true})
}

func isSelf(c *fiber.Ctx, id uint64) bool {
	identity, ok := session.IdentityFrom(c)

	return ok && identity.UserID == id
}

func (s *Service) fail(c *fiber.Ctx, err error, id uint64) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return handler.JSONError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, auth.ErrUserNameExists):
		return handler.JSONError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrUnknownPermission):
		return handler.ValidationError(c, []handler.FieldError{{Field: "permissions", Message: err.Error()}})
	case errors.Is(err, auth.ErrInvalidRole):
		return handler.ValidationError(c, []handler.FieldError{{Field: "role", Message: err.Error()}})
	}

	log.Error().Err(err).Uint64("id", id).Msg("failed to save admin user")

	return handler.InternalError(c)
}
