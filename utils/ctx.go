package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the admin ID the auth middleware stored on the
// request. Zero means the handler ran without the middleware.
func CurrentUserID(c *gin.Context) uint {
	if id, ok := c.Get("userId"); ok {
		if v, ok := id.(uint); ok {
			return v
		}
	}
	return 0
}
