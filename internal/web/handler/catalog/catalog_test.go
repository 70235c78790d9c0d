package catalog

import (
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/handler/handlertest"
	"github.com/growfastwithus/growfast/internal/web/webtest"
)

func validRequest() Request {
	return Request{
		Title:       "Review Requests",
		Description: "Ask happy customers for a review after every job.",
		Price:       "$197",
		Category:    "Marketing",
		Icon:        "star",
		Features:    []string{"SMS and email", "Google review link"},
		Popular:     true,
	}
}

func TestFallbackWithoutDatabase(t *testing.T) {
	env := handlertest.New(t, false).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodGet, Path, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []models.Template
	webtest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, len(defaults.Templates()))

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"?category=Operations", nil)

	list = nil
	webtest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, 2)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var one models.Template
	webtest.DecodeJSON(t, resp, &one)
	assert.Equal(t, defaults.Templates()[0].Title, one.Title)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"/999", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"/abc", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPost, Path, validRequest(), env.Admin(t))
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreateAndRead(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodPost, Path, validRequest())
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPost, Path, validRequest(), env.Login(t, models.RoleEditor))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	cookie := env.Login(t, models.RoleEditor, auth.PermTemplatesWrite)

	resp = webtest.Do(t, env.App, fiber.MethodPost, Path, Request{Title: "x"}, cookie)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var verr handler.ErrorResponse
	webtest.DecodeJSON(t, resp, &verr)
	assert.Len(t, verr.Details, 3)

	resp = webtest.Do(t, env.App, fiber.MethodPost, Path, validRequest(), cookie)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created models.Template
	webtest.DecodeJSON(t, resp, &created)
	require.NotZero(t, created.ID)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"/"+strconv.FormatUint(created.ID, 10), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got models.Template
	webtest.DecodeJSON(t, resp, &got)
	assert.Equal(t, "Review Requests", got.Title)
	assert.Equal(t, []string{"SMS and email", "Google review link"}, got.Features)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"/12345", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path+"?category=Marketing", nil)

	var list []models.Template
	webtest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, 1)
}
