package auth

import "github.com/gin-gonic/gin"

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetPrincipal returns the authenticated principal for this request.
// Fields are zero-valued when the request is unauthenticated.
func GetPrincipal(c *gin.Context) Principal {
	p := Principal{UserID: GetUserID(c)}
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok {
			p.Role = Role(s)
		}
	}
	return p
}
