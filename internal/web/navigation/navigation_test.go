package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContext(t *testing.T) {
	ctx := NewContext("Templates", "Ready made automations", PageTemplates)

	assert.Equal(t, "Templates", ctx.PageTitle)
	assert.Equal(t, "Ready made automations", ctx.Description)
	assert.Equal(t, PageTemplates, ctx.ActivePage)
	assert.Equal(t, Menu(), ctx.Menu)
	assert.Equal(t, Footer(), ctx.Footer)
	assert.NotNil(t, ctx.Breadcrumbs)
	assert.Empty(t, ctx.Breadcrumbs)
}

func TestContext_AddBreadcrumb_Chaining(t *testing.T) {
	ctx := NewContext("Privacy", "", PagePrivacy).
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Privacy Policy", "/privacy", true)

	assert.Len(t, ctx.Breadcrumbs, 2)
	assert.Equal(t, "Home", ctx.Breadcrumbs[0].Title)
	assert.False(t, ctx.Breadcrumbs[0].Active)
	assert.Equal(t, "/privacy", ctx.Breadcrumbs[1].URL)
	assert.True(t, ctx.Breadcrumbs[1].Active)
}

func TestContext_IsActive(t *testing.T) {
	ctx := NewContext("Home", "", PageHome)

	assert.True(t, ctx.IsActive(PageHome))
	assert.False(t, ctx.IsActive(PageTemplates))
	assert.False(t, ctx.IsActive(""))
}

func TestMenuPagesAreUnique(t *testing.T) {
	seen := map[string]bool{}

	for _, l := range append(Menu(), Footer()...) {
		assert.False(t, seen[l.Page], l.Page)
		assert.NotEmpty(t, l.URL)

		seen[l.Page] = true
	}
}
