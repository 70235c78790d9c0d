// Package configuration shows the effective configuration of the running site.
package configuration

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

const (
	// Path is the configuration endpoint.
	Path = handler.AdminPrefix + "/configuration"

	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25

	maxPageSize = 100
)

// Setting types.
const (
	TypeString = "string"
	TypeNumber = "number"
	TypeBool   = "bool"
	TypeList   = "list"
	TypeNull   = "null"
)

// Service is the configuration handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Data is the response body.
type Data struct {
	Settings    []Setting `json:"settings"`
	CurrentPage int       `json:"currentPage"`
	PageSize    int       `json:"pageSize"`
	TotalItems  int       `json:"totalItems"`
	TotalPages  int       `json:"totalPages"`
	HasPrevPage bool      `json:"hasPrevPage"`
	HasNextPage bool      `json:"hasNextPage"`
	SearchQuery string    `json:"search,omitempty"`
	FilterType  string    `json:"type,omitempty"`
}

// Setting is one flattened configuration value, e.g. Webserver.Port.
type Setting struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Handler is the configuration handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the configuration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.cfg = cfg

	app.Get(Path, auth.RequirePermission(auth.PermConfigView), s.Get)

	return nil
}

// Get returns one page of the redacted configuration. ?search= matches
// name or value case-insensitively, ?type= filters by value type.
func (s *Service) Get(c *fiber.Ctx) error {
	all, err := Flatten(s.cfg)
	if err != nil {
		log.Error().Err(err).Msg("failed to flatten configuration")

		return handler.InternalError(c)
	}

	page, pageSize := getPaginationParams(c)
	searchQuery, filterType := c.Query("search"), c.Query("type")

	settings := make([]Setting, 0, len(all))

	for _, cs := range all {
		if includeSetting(cs, searchQuery, filterType) {
			settings = append(settings, cs)
		}
	}

	totalItems := len(settings)
	totalPages, page := computeTotalPagesAndAdjust(totalItems, pageSize, page)
	startIdx, endIdx := pageSliceBounds(totalItems, pageSize, page)

	return c.JSON(Data{
		Settings:    settings[startIdx:endIdx],
		CurrentPage: page,
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
		SearchQuery: searchQuery,
		FilterType:  filterType,
	})
}

// Flatten turns the redacted configuration into sorted name/value rows.
func Flatten(cfg *config.Config) ([]Setting, error) {
	dump, err := config.DumpConfigJSON(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	var tree map[string]any
	if err = json.Unmarshal([]byte(dump), &tree); err != nil {
		return nil, err //nolint:wrapcheck
	}

	var out []Setting

	flatten("", tree, &out)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func flatten(prefix string, value any, out *[]Setting) {
	switch v := value.(type) {
	case map[string]any:
		for k, child := range v {
			name := k
			if prefix != "" {
				name = prefix + "." + k
			}

			flatten(name, child, out)
		}
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, toString(item))
		}

		*out = append(*out, Setting{Name: prefix, Type: TypeList, Value: strings.Join(parts, ", ")})
	case string:
		*out = append(*out, Setting{Name: prefix, Type: TypeString, Value: v})
	case float64:
		*out = append(*out, Setting{Name: prefix, Type: TypeNumber, Value: toString(v)})
	case bool:
		*out = append(*out, Setting{Name: prefix, Type: TypeBool, Value: strconv.FormatBool(v)})
	case nil:
		*out = append(*out, Setting{Name: prefix, Type: TypeNull})
	}
}

func toString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// getPaginationParams parses and normalizes page and pageSize query parameters.
func getPaginationParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	return page, pageSize
}

// includeSetting returns true if the setting matches search and filter criteria.
func includeSetting(cs Setting, searchQuery, filterType string) bool {
	if searchQuery != "" && !contains(cs.Name, searchQuery) && !contains(cs.Value, searchQuery) {
		return false
	}

	return filterType == "" || cs.Type == filterType
}

// computeTotalPagesAndAdjust computes total pages and adjusts the page into range.
func computeTotalPagesAndAdjust(totalItems, pageSize, page int) (int, int) {
	totalPages := max((totalItems+pageSize-1)/pageSize, 1)

	return totalPages, min(page, totalPages)
}

// pageSliceBounds calculates start and end indices for slicing a page.
func pageSliceBounds(totalItems, pageSize, page int) (int, int) {
	endIdx := min(page*pageSize, totalItems)
	startIdx := min(max((page-1)*pageSize, 0), endIdx)

	return startIdx, endIdx
}

// contains reports whether s contains substr, ignoring case. An empty
// substr never matches.
func contains(s, substr string) bool {
	return substr != "" && strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
