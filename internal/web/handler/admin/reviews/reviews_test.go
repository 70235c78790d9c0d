package reviews

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

func create(t *testing.T, env *handlertest.Env, body map[string]any) models.Review {
	t.Helper()

	resp := webtest.Do(t, env.App, fiber.MethodPost, AdminPath, body, env.Admin(t))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var r models.Review
	webtest.DecodeJSON(t, resp, &r)

	return r
}

func idPath(id uint64) string {
	return AdminPath + "/" + strconv.FormatUint(id, 10)
}

func TestFallbackWithoutDatabase(t *testing.T) {
	env := handlertest.New(t, false).Init(t, &Service{})

	resp := webtest.Do(t, env.App, fiber.MethodGet, PublicPath, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var list []models.Review
	webtest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, len(defaults.Reviews()))

	cookie := env.Admin(t)

	resp = webtest.Do(t, env.App, fiber.MethodGet, AdminPath, nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPost, AdminPath,
		map[string]any{"name": "A", "rating": 5, "content": "great"}, cookie)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestCreateAndList(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	first := create(t, env, map[string]any{"name": "Ann", "company": "Acme", "rating": 5, "content": "great"})
	assert.NotZero(t, first.ID)
	assert.True(t, first.IsActive)

	hidden := create(t, env, map[string]any{"name": "Bob", "rating": 3, "content": "ok", "isActive": false})
	assert.False(t, hidden.IsActive)

	resp := webtest.Do(t, env.App, fiber.MethodGet, PublicPath, nil)

	var list []models.Review
	webtest.DecodeJSON(t, resp, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Ann", list[0].Name)

	resp = webtest.Do(t, env.App, fiber.MethodGet, AdminPath+"?includeInactive=true", nil, env.Login(t, models.RoleEditor))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	list = nil
	webtest.DecodeJSON(t, resp, &list)
	assert.Len(t, list, 2)
}

func TestCreateValidation(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})

	tests := []struct {
		name   string
		body   map[string]any
		fields []string
	}{
		{"rating too high", map[string]any{"name": "A", "rating": 6, "content": "x"}, []string{"rating"}},
		{"rating zero", map[string]any{"name": "A", "rating": 0, "content": "x"}, []string{"rating"}},
		{"missing name and content", map[string]any{"rating": 4}, []string{"name", "content"}},
		{"blank name and content", map[string]any{"name": "   ", "rating": 4, "content": "\t\n"}, []string{"name", "content"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := webtest.Do(t, env.App, fiber.MethodPost, AdminPath, tt.body, env.Admin(t))
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			var body handler.ErrorResponse
			webtest.DecodeJSON(t, resp, &body)
			require.Len(t, body.Details, len(tt.fields))

			for i, f := range tt.fields {
				assert.Equal(t, f, body.Details[i].Field)
			}
		})
	}

	var n int64
	require.NoError(t, env.DB.Model(&models.Review{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpdateAndDelete(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})
	r := create(t, env, map[string]any{"name": "Ann", "company": "Acme", "rating": 5, "content": "great"})

	cookie := env.Login(t, models.RoleEditor, auth.PermReviewsWrite)

	resp := webtest.Do(t, env.App, fiber.MethodPut, idPath(r.ID), map[string]any{"rating": 4}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated models.Review
	webtest.DecodeJSON(t, resp, &updated)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "great", updated.Content)

	resp = webtest.Do(t, env.App, fiber.MethodPut, idPath(r.ID), map[string]any{"rating": 9}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPut, idPath(r.ID), map[string]any{"name": "  "}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPut, idPath(r.ID), map[string]any{"content": ""}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPut, idPath(9999), map[string]any{"rating": 3}, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodPut, AdminPath+"/abc", map[string]any{"rating": 3}, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodDelete, idPath(r.ID), nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var stored models.Review
	require.NoError(t, env.DB.First(&stored, r.ID).Error)
	assert.False(t, stored.IsActive)

	resp = webtest.Do(t, env.App, fiber.MethodDelete, idPath(9999), nil, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestWriteRequiresPermission(t *testing.T) {
	env := handlertest.New(t, true).Init(t, &Service{})
	r := create(t, env, map[string]any{"name": "Ann", "rating": 5, "content": "great"})

	resp := webtest.Do(t, env.App, fiber.MethodGet, AdminPath, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	editor := env.Login(t, models.RoleEditor)

	resp = webtest.Do(t, env.App, fiber.MethodDelete, idPath(r.ID), nil, editor)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = webtest.Do(t, env.App, fiber.MethodGet, AdminPath, nil, editor)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
