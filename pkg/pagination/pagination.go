// Package pagination parses page/limit query parameters for list endpoints
// such as the audit log.
package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a validated page window. Offset is derived and ready for a
// gorm Offset/Limit pair.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Parse reads page and limit from the query string. Anything missing,
// unparsable or out of range falls back to the defaults; limit is capped
// at MaxLimit.
func Parse(c *gin.Context) Params {
	page := atoiOr(c.Query("page"), DefaultPage)
	limit := atoiOr(c.Query("limit"), DefaultLimit)

	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}

	return Params{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
