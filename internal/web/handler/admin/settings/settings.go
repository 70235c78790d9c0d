// Package settings edits site copy, theme colors and generic key value settings.
package settings

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/controller/setting"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// SitePath is the typed site settings endpoint.
	SitePath = handler.AdminPrefix + "/site-settings"

	// GenericPath is the plain key value endpoint.
	GenericPath = handler.AdminPrefix + "/settings"
)

// Service is the settings handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the settings handler.
var Handler = Service{} //nolint:gochecknoglobals

// Request is one setting in a PUT body.
type Request struct {
	Key      string `json:"key"      validate:"required,notblank,max=191"`
	Value    string `json:"value"    validate:"max=65535"`
	Type     string `json:"type"     validate:"omitempty,oneof=text json url color boolean"`
	Category string `json:"category" validate:"max=100"`
}

// GenericRequest is one key value pair of the generic endpoint.
type GenericRequest struct {
	Key   string `json:"key"   validate:"required,notblank,max=191"`
	Value string `json:"value" validate:"max=65535"`
}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	write := []fiber.Handler{auth.RequirePermission(auth.PermSettingsWrite), handler.RequireDB(deps)}

	app.Get(SitePath, s.GetSite)
	app.Put(SitePath, append(write, s.PutSite)...)
	app.Get(GenericPath, s.GetGeneric)
	app.Put(GenericPath, append(write, s.PutGeneric)...)

	return nil
}

// GetSite lists settings, optionally by ?category=, falling back to the defaults.
func (s *Service) GetSite(c *fiber.Ctx) error {
	return c.JSON(List(s.deps, c.Query("category")))
}

// List reads the settings of category and falls back to the defaults.
func List(deps *handler.Deps, category string) []models.SiteSetting {
	if deps.DB == nil {
		return defaults.SettingsByCategory(category)
	}

	rows, err := setting.GetAll(deps.DB, category)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read site settings, serving defaults")

		return defaults.SettingsByCategory(category)
	}

	return rows
}

// Values returns the key value map with defaults for missing keys.
func Values(deps *handler.Deps) map[string]string {
	out := defaults.SettingValues()

	if deps.DB == nil {
		return out
	}

	stored, err := setting.Values(deps.DB)
	if err != nil {
		log.Warn().Err(err).Msg("failed to read site settings, serving defaults")

		return out
	}

	for k, v := range stored {
		out[k] = v
	}

	return out
}

// PutSite upserts one setting or an array of settings.
func (s *Service) PutSite(c *fiber.Ctx) error {
	var reqs []Request
	if ok, err := bindOneOrMany(c, &reqs); !ok {
		return err
	}

	var details []handler.FieldError

	rows := make([]models.SiteSetting, 0, len(reqs))

	for i := range reqs {
		req := reqs[i]

		details = append(details, prefixed(len(reqs), i, handler.Validate(&req))...)
		details = append(details, prefixed(len(reqs), i, validateValue(req.Type, req.Value))...)

		rows = append(rows, models.SiteSetting{Key: req.Key, Value: req.Value, Type: req.Type, Category: req.Category})
	}

	if len(details) > 0 {
		return handler.ValidationError(c, details)
	}

	return s.store(c, rows)
}

// GetGeneric returns all settings as a key value object.
func (s *Service) GetGeneric(c *fiber.Ctx) error {
	return c.JSON(Values(s.deps))
}

// PutGeneric upserts key value pairs keeping stored types and categories.
func (s *Service) PutGeneric(c *fiber.Ctx) error {
	var reqs []GenericRequest
	if ok, err := bindOneOrMany(c, &reqs); !ok {
		return err
	}

	var details []handler.FieldError

	rows := make([]models.SiteSetting, 0, len(reqs))

	for i := range reqs {
		details = append(details, prefixed(len(reqs), i, handler.Validate(&reqs[i]))...)
		rows = append(rows, models.SiteSetting{Key: reqs[i].Key, Value: reqs[i].Value})
	}

	if len(details) > 0 {
		return handler.ValidationError(c, details)
	}

	return s.store(c, rows)
}

func (s *Service) store(c *fiber.Ctx, rows []models.SiteSetting) error {
	stored, err := setting.UpsertMany(s.deps.DB, rows)
	if err != nil {
		log.Error().Err(err).Msg("failed to save site settings")

		return handler.InternalError(c)
	}

	return c.JSON(fiber.Map{"success": true, "settings": stored})
}

// bindOneOrMany parses a json object or array into out.
func bindOneOrMany[T any](c *fiber.Ctx, out *[]T) (bool, error) {
	body := bytes.TrimSpace(c.Body())

	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, out); err != nil {
			return false, handler.BadBody(c)
		}
	} else {
		var one T
		if err := json.Unmarshal(body, &one); err != nil {
			return false, handler.BadBody(c)
		}

		*out = []T{one}
	}

	if len(*out) == 0 {
		return false, handler.ValidationError(c, []handler.FieldError{{Field: "settings", Message: "settings is required"}})
	}

	return true, nil
}

// prefixed names fields of array bodies by index, e.g. [1].key.
func prefixed(total, i int, details []handler.FieldError) []handler.FieldError {
	if total == 1 {
		return details
	}

	for j := range details {
		details[j].Field = "[" + strconv.Itoa(i) + "]." + details[j].Field
	}

	return details
}

// validateValue checks value against the declared type.
func validateValue(typ, value string) []handler.FieldError {
	switch typ {
	case models.SettingTypeColor:
		return handler.ValidateVar("value", value, "required,iscolor")
	case models.SettingTypeURL:
		return handler.ValidateVar("value", value, "required,url")
	case models.SettingTypeBoolean:
		return handler.ValidateVar("value", value, "oneof=true false")
	case models.SettingTypeJSON:
		if !json.Valid([]byte(value)) {
			return []handler.FieldError{{Field: "value", Message: "value must be valid json"}}
		}
	}

	return nil
}
