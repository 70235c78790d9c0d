// Package pages renders the public marketing pages.
package pages

import (
	"cmp"
	"html/template"
	"slices"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/defaults"
	"github.com/growfastwithus/growfast/internal/pricing"
	"github.com/growfastwithus/growfast/internal/web/handler"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/reviews"
	"github.com/growfastwithus/growfast/internal/web/handler/admin/settings"
	"github.com/growfastwithus/growfast/internal/web/handler/catalog"
	"github.com/growfastwithus/growfast/internal/web/navigation"
)

// Page paths.
const (
	HomePath      = handler.RootPath
	TemplatesPath = handler.RootPath + "templates"
	ContactPath   = handler.RootPath + "contact"
	PrivacyPath   = handler.RootPath + "privacy"
	TermsPath     = handler.RootPath + "terms"
)

// Template names.
const (
	HomeTemplate      = "pages/home"
	TemplatesTemplate = "pages/templates"
	ContactTemplate   = "pages/contact"
	PrivacyTemplate   = "pages/privacy"
	TermsTemplate     = "pages/terms"
)

// Service is the pages handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
}

// Handler is the pages handler.
var Handler = Service{} //nolint:gochecknoglobals

// ThemeVar is one css custom property. Both parts are checked before they
// are marked safe for the style block.
type ThemeVar struct {
	Name  template.CSS
	Value template.CSS
}

// Category groups the catalog for the templates page.
type Category struct {
	Name      string
	Templates []models.Template
}

// Site is the data every page shares.
type Site struct {
	Settings map[string]string
	Theme    []ThemeVar
	Year     int
}

// Init initializes the pages handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps

	app.Get(HomePath, s.Home)
	app.Get(TemplatesPath, s.Templates)
	app.Get(ContactPath, s.Contact)
	app.Get(PrivacyPath, s.Privacy)
	app.Get(TermsPath, s.Terms)

	return nil
}

// site reads the settings shared by all pages.
func (s *Service) site() Site {
	return Site{
		Settings: settings.Values(s.deps),
		Theme:    ThemeVars(Merge(defaults.Settings(), settings.List(s.deps, ""))),
		Year:     time.Now().Year(),
	}
}

func render(c *fiber.Ctx, name string, nav *navigation.Context, site Site, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	data["Navigation"] = nav
	data["Site"] = site

	return c.Render(name, data, handler.BaseLayout)
}

// Home renders the landing page.
func (s *Service) Home(c *fiber.Ctx) error {
	site := s.site()
	nav := navigation.NewContext(site.Settings[defaults.KeySiteName], site.Settings[defaults.KeyHeroSubtitle],
		navigation.PageHome)

	var testimonials []models.Review
	if site.Settings[defaults.KeyShowReviews] != "false" {
		testimonials = reviews.List(s.deps, false)
	}

	return render(c, HomeTemplate, nav, site, fiber.Map{
		"Popular": Popular(catalog.ListTemplates(s.deps, "")),
		"Reviews": testimonials,
		"Plans":   pricing.Plans(),
	})
}

// Templates renders the catalog grouped by category, optionally one ?category=.
func (s *Service) Templates(c *fiber.Ctx) error {
	nav := navigation.NewContext("Automation Templates", "Ready made automations for small teams.",
		navigation.PageTemplates).
		AddBreadcrumb("Home", HomePath, false).
		AddBreadcrumb("Templates", TemplatesPath, true)

	category := c.Query("category")

	return render(c, TemplatesTemplate, nav, s.site(), fiber.Map{
		"Categories": GroupByCategory(catalog.ListTemplates(s.deps, category)),
		"Selected":   category,
	})
}

// Contact renders the lead form. The form posts to the json api.
func (s *Service) Contact(c *fiber.Ctx) error {
	nav := navigation.NewContext("Contact", "Tell us where your team loses time.", navigation.PageContact).
		AddBreadcrumb("Home", HomePath, false).
		AddBreadcrumb("Contact", ContactPath, true)

	return render(c, ContactTemplate, nav, s.site(), fiber.Map{
		"BusinessSizes": BusinessSizes(),
	})
}

// Privacy renders the privacy policy.
func (s *Service) Privacy(c *fiber.Ctx) error {
	nav := navigation.NewContext("Privacy Policy", "", navigation.PagePrivacy).
		AddBreadcrumb("Home", HomePath, false).
		AddBreadcrumb("Privacy Policy", PrivacyPath, true)

	return render(c, PrivacyTemplate, nav, s.site(), nil)
}

// Terms renders the terms of service.
func (s *Service) Terms(c *fiber.Ctx) error {
	nav := navigation.NewContext("Terms of Service", "", navigation.PageTerms).
		AddBreadcrumb("Home", HomePath, false).
		AddBreadcrumb("Terms of Service", TermsPath, true)

	return render(c, TermsTemplate, nav, s.site(), nil)
}

// Merge returns base with the rows of stored replacing those with the same key.
func Merge(base, stored []models.SiteSetting) []models.SiteSetting {
	index := make(map[string]int, len(base))
	out := slices.Clone(base)

	for i, st := range out {
		index[st.Key] = i
	}

	for _, st := range stored {
		if i, ok := index[st.Key]; ok {
			out[i] = st

			continue
		}

		index[st.Key] = len(out)
		out = append(out, st)
	}

	return out
}

// ThemeVars turns the color settings into css custom properties,
// e.g. primary_color becomes --primary-color.
func ThemeVars(list []models.SiteSetting) []ThemeVar {
	out := make([]ThemeVar, 0, len(list))

	for _, st := range list {
		if st.Type != models.SettingTypeColor || st.Value == "" {
			continue
		}

		if handler.ValidateVar("value", st.Value, "iscolor") != nil {
			continue
		}

		out = append(out, ThemeVar{Name: template.CSS("--" + cssName(st.Key)), Value: template.CSS(st.Value)}) //nolint:gosec
	}

	slices.SortFunc(out, func(a, b ThemeVar) int { return cmp.Compare(a.Name, b.Name) })

	return out
}

func cssName(key string) string {
	out := []byte(key)

	for i, ch := range out {
		switch {
		case ch >= 'A' && ch <= 'Z':
			out[i] = ch + ('a' - 'A')
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
		default:
			out[i] = '-'
		}
	}

	return string(out)
}

// Popular returns the templates flagged popular.
func Popular(list []models.Template) []models.Template {
	out := make([]models.Template, 0, len(list))

	for _, t := range list {
		if t.Popular {
			out = append(out, t)
		}
	}

	return out
}

// GroupByCategory groups list by category, categories sorted by name.
func GroupByCategory(list []models.Template) []Category {
	index := map[string]int{}

	var out []Category

	for _, t := range list {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i

			out = append(out, Category{Name: t.Category})
		}

		out[i].Templates = append(out[i].Templates, t)
	}

	slices.SortStableFunc(out, func(a, b Category) int { return cmp.Compare(a.Name, b.Name) })

	return out
}

// BusinessSizes are the bucket labels offered by the contact form.
func BusinessSizes() []string {
	return []string{"1-10", "11-50", "51-200", "200+"}
}
