package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Response messages shared by the api handlers.
const (
	MsgInvalidBody   = "invalid request body"
	MsgValidation    = "validation failed"
	MsgNoDatabase    = "database not configured"
	MsgInternalError = "internal server error"
	MsgInvalidID     = "invalid id"
)

// FieldError is one failing field of a request body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the error body of every api response.
type ErrorResponse struct {
	Error        string       `json:"error"`
	Details      []FieldError `json:"details,omitempty"`
	TOTPRequired bool         `json:"totpRequired,omitempty"`
}

// JSONError writes status with an error body.
func JSONError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Error: msg})
}

// ValidationError writes the 400 validation body.
func ValidationError(c *fiber.Ctx, details []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: MsgValidation, Details: details})
}

// BadBody writes the 400 malformed body response.
func BadBody(c *fiber.Ctx) error {
	return JSONError(c, fiber.StatusBadRequest, MsgInvalidBody)
}

// DatabaseUnavailable writes the 503 answer for writes without a database.
func DatabaseUnavailable(c *fiber.Ctx) error {
	return JSONError(c, fiber.StatusServiceUnavailable, MsgNoDatabase)
}

// InternalError writes the generic 500 body. The cause is logged by the caller.
func InternalError(c *fiber.Ctx) error {
	return JSONError(c, fiber.StatusInternalServerError, MsgInternalError)
}

// RequireDB answers 503 when deps has no database.
func RequireDB(deps *Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.DB == nil {
			return DatabaseUnavailable(c)
		}

		return c.Next()
	}
}

// ParseID reads the :id route parameter.
func ParseID(c *fiber.Ctx) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}

	return id, true
}
