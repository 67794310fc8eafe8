package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/The-Unpaid-Developers/solution-review-service/pkg/apperror"
	"github.com/The-Unpaid-Developers/solution-review-service/pkg/response"
)

// respondErr maps a service error onto the standard error envelope using
// its error kind for the HTTP status.
func respondErr(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	c.JSON(status, response.Error(status, err.Error()))
}

// actorFrom extracts the authenticated actor placed on the context by the
// auth middleware.
func actorFrom(c *gin.Context) (userID, username string) {
	if v, ok := c.Get("userID"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("username"); ok {
		username, _ = v.(string)
	}
	return userID, username
}
