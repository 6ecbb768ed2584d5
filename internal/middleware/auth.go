package middleware

import (
	"net/http"
	"strings"

	"commentbox/internal/repository"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// AuthRequired ensures a user is logged in. Browser navigations get a
// redirect to the login page, API calls a JSON 401.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		// LoadUser runs first; a stale session cookie whose user row is
		// gone counts as logged out.
		_, loaded := c.Get(CheckUserKey)
		session := sessions.Default(c)
		if session.Get("user_id") == nil || !loaded {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Debes iniciar sesión."})
			} else {
				c.Redirect(http.StatusFound, "/login")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves the session user from storage and sets it on the
// context for handlers downstream.
func LoadUser(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			if id, ok := userID.(uint); ok {
				if user, err := users.GetByID(id); err == nil {
					c.Set(CheckUserKey, user)
				}
			}
		}
		c.Next()
	}
}
