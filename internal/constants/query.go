package constants

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Task List Query Parameters
const (
	QueryParamCompleted = "completed"
	QueryParamLimit     = "limit"
	QueryParamSkip      = "skip"
	QueryParamSortBy    = "sortBy"
)

// Pagination Limits
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100
)

// Sort Directions
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ListParams are the composable list modifiers: completion filter,
// limit/skip pagination and sort field with direction. Each is independent
// and applies only within the caller's own-records scope.
type ListParams struct {
	Completed *bool
	Limit     int
	Skip      int
	SortField string
	SortDesc  bool
}

// ParseListParams parses task list query modifiers with validated bounds.
// Unknown sort fields are left to the repository allow-list.
func ParseListParams(c *gin.Context) ListParams {
	params := ListParams{
		Limit: DefaultLimit,
	}

	if raw := c.Query(QueryParamCompleted); raw != "" {
		completed := raw == "true" || raw == "1"
		params.Completed = &completed
	}

	if raw := c.Query(QueryParamLimit); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			params.Limit = limit
		}
	}
	if params.Limit < MinLimit {
		params.Limit = MinLimit
	}
	if params.Limit > MaxLimit {
		params.Limit = MaxLimit
	}

	if raw := c.Query(QueryParamSkip); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil && skip > 0 {
			params.Skip = skip
		}
	}

	if raw := c.Query(QueryParamSortBy); raw != "" {
		field, order := splitSortBy(raw)
		params.SortField = field
		params.SortDesc = order == OrderDesc
	}

	return params
}

// splitSortBy parses "field:desc" style sort expressions; "field_desc" is
// accepted as a lenient alternative. Field names may themselves contain
// underscores (created_at), so an underscore only separates when the suffix
// is a literal direction. A missing or unknown direction falls back to
// ascending.
func splitSortBy(raw string) (string, string) {
	if field, direction, found := strings.Cut(raw, ":"); found {
		return field, direction
	}
	if i := strings.LastIndexByte(raw, '_'); i >= 0 {
		if direction := raw[i+1:]; direction == OrderAsc || direction == OrderDesc {
			return raw[:i], direction
		}
	}
	return raw, OrderAsc
}
