// Package navigation describes the header menu and the page context of the marketing site.
package navigation

// Page identifiers used to highlight the header menu.
const (
	PageHome      = "home"
	PageTemplates = "templates"
	PageContact   = "contact"
	PagePrivacy   = "privacy"
	PageTerms     = "terms"
)

// Link is one header or footer menu entry.
type Link struct {
	Page  string
	Title string
	URL   string
}

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActivePage  string
	PageTitle   string
	Description string
	Menu        []Link
	Footer      []Link
	Breadcrumbs []BreadcrumbItem
}

// Menu returns the header links.
func Menu() []Link {
	return []Link{
		{Page: PageHome, Title: "Home", URL: "/"},
		{Page: PageTemplates, Title: "Templates", URL: "/templates"},
		{Page: PageContact, Title: "Contact", URL: "/contact"},
	}
}

// Footer returns the legal links.
func Footer() []Link {
	return []Link{
		{Page: PagePrivacy, Title: "Privacy Policy", URL: "/privacy"},
		{Page: PageTerms, Title: "Terms of Service", URL: "/terms"},
	}
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, description, activePage string) *Context {
	return &Context{
		PageTitle:   pageTitle,
		Description: description,
		ActivePage:  activePage,
		Menu:        Menu(),
		Footer:      Footer(),
		Breadcrumbs: make([]BreadcrumbItem, 0),
	}
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive reports whether page is the current page.
func (c *Context) IsActive(page string) bool {
	return c.ActivePage == page
}
