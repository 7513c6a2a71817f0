package middleware

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/resumeforge/resume-api/internal/core/ports"
)

const listOptionsKey = "list_options"

// ResolvePagination turns raw page/limit query values into page, limit and
// skip. It never fails: missing, non-numeric or non-positive values fall back
// to the defaults, limit is clamped to ports.MaxLimit and page to
// ports.MaxPage.
func ResolvePagination(rawPage, rawLimit string) (page, limit, skip int) {
	page = positiveOr(rawPage, ports.DefaultPage)
	limit = positiveOr(rawLimit, ports.DefaultLimit)
	if limit > ports.MaxLimit {
		limit = ports.MaxLimit
	}
	if page > ports.MaxPage {
		page = ports.MaxPage
	}
	return page, limit, (page - 1) * limit
}

// ResolveFields splits a comma list into projected field names. An empty
// result means every field is returned. A leading "-" excludes the field.
func ResolveFields(raw string) []string {
	return splitList(raw)
}

// ResolveSort parses a comma list of sort keys where a leading "-" means
// descending. An empty list yields ports.DefaultSort.
func ResolveSort(raw string) []ports.SortField {
	keys := splitList(raw)
	if len(keys) == 0 {
		keys = []string{ports.DefaultSort}
	}

	out := make([]ports.SortField, 0, len(keys))
	for _, k := range keys {
		desc := strings.HasPrefix(k, "-")
		name := strings.TrimLeft(k, "-+")
		if name == "" {
			continue
		}
		out = append(out, ports.SortField{Field: name, Desc: desc})
	}
	if len(out) == 0 {
		return ResolveSort("")
	}
	return out
}

// ListQuery resolves pagination, projection and ordering from the query
// string and stores the typed result for ListOptionsFrom.
func ListQuery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			page, limit, skip := ResolvePagination(c.QueryParam("page"), c.QueryParam("limit"))
			c.Set(listOptionsKey, ports.ListOptions{
				Page:   page,
				Limit:  limit,
				Skip:   skip,
				Fields: ResolveFields(c.QueryParam("fields")),
				Sort:   ResolveSort(c.QueryParam("sort")),
			})
			return next(c)
		}
	}
}

// ListOptionsFrom returns the options resolved by ListQuery, or the defaults
// when the middleware did not run.
func ListOptionsFrom(c echo.Context) ports.ListOptions {
	if opts, ok := c.Get(listOptionsKey).(ports.ListOptions); ok {
		return opts
	}
	return ports.DefaultListOptions()
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

// splitList drops blanks and operator-looking names such as "$where".
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || strings.Contains(p, "$") {
			continue
		}
		out = append(out, p)
	}
	return out
}
