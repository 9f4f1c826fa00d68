package handler

import "github.com/gin-gonic/gin"

// SessionEmail extracts the session's account email from the Gin context
func SessionEmail(c *gin.Context) string {
	email, exists := c.Get("session_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// SessionName extracts the session's display name from the Gin context
func SessionName(c *gin.Context) string {
	name, exists := c.Get("session_name")
	if !exists {
		return ""
	}
	return name.(string)
}
