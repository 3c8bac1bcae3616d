package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/middleware"
)

// currentUser fetches the authenticated identity set by the auth middleware.
// When it is missing the request is aborted with a 401 and ok is false.
func currentUser(c *gin.Context) (middleware.AuthUser, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "unauthorized",
		})
		return middleware.AuthUser{}, false
	}
	return user, true
}
