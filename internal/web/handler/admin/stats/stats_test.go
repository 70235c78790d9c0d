package stats

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/web/handler/handlertest"
	"github.com/growfastwithus/growfast/internal/web/webtest"
)

func TestStats(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	require.NoError(t, env.DB.Create(&models.Contact{Name: "A", Email: "a@x.com"}).Error)
	require.NoError(t, env.DB.Create(&models.Contact{Name: "B", Email: "b@x.com"}).Error)
	require.NoError(t, env.DB.Create(&models.Template{Title: "T", Features: []string{}}).Error)
	require.NoError(t, env.DB.Create(&models.Review{Name: "R1", Rating: 5, Content: "x", IsActive: true}).Error)
	require.NoError(t, env.DB.Create(&models.Review{Name: "R2", Rating: 3, Content: "x", IsActive: true}).Error)
	require.NoError(t, env.DB.Create(&models.Review{Name: "R3", Rating: 1, Content: "x"}).Error)

	resp := webtest.Do(t, env.App, fiber.MethodGet, Path, nil, env.Login(t, models.RoleEditor, auth.PermStatsView))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body Response
	webtest.DecodeJSON(t, resp, &body)

	assert.True(t, body.Database)
	assert.Equal(t, int64(2), body.Contacts)
	assert.Equal(t, int64(1), body.Templates)
	assert.Equal(t, int64(3), body.Reviews.Total)
	assert.Equal(t, int64(2), body.Reviews.Active)
	assert.InDelta(t, 4.0, body.Reviews.AverageRating, 0.001)
}

func TestStatsWithoutDatabase(t *testing.T) {
	env := handlertest.New(t, false).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodGet, Path, nil, env.Admin(t))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body Response
	webtest.DecodeJSON(t, resp, &body)

	assert.False(t, body.Database)
	assert.Zero(t, body.Contacts)
	assert.Equal(t, int64(6), body.Templates)
	assert.Equal(t, int64(3), body.Reviews.Active)
}

func TestAccess(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodGet, Path, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodGet, ProtectedPath, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	editor := env.Login(t, models.RoleEditor)

	resp = webtest.Do(t, env.App, fiber.MethodGet, Path, nil, editor)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodGet, ProtectedPath, nil, editor)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body ProtectedResponse
	webtest.DecodeJSON(t, resp, &body)
	assert.Equal(t, models.RoleEditor, body.User.Role)
	assert.Equal(t, auth.SourceLocal, body.User.Source)
}
