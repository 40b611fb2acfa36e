package helpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps the page size on the resource lists that enforce one.
	MaxLimit = 100
)

// NormalizePage floors the page at 1. Malformed values have already been
// mapped to the default by the caller.
func NormalizePage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// NormalizeLimit floors the limit at 1 and, when maxLimit is positive,
// ceilings it there. maxLimit <= 0 means the endpoint has no cap.
func NormalizeLimit(limit, maxLimit int) int {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// ParseListParams extracts page and limit from the query string. Malformed
// numbers degrade to the defaults, never to an error.
func ParseListParams(c *gin.Context, maxLimit int) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}
	page = NormalizePage(page)

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = DefaultLimit
	}
	limit = NormalizeLimit(limit, maxLimit)

	return page, limit
}

// Offset converts a 1-based page into the 0-based row offset.
func Offset(page, limit int) uint64 {
	return uint64((page - 1) * limit)
}
