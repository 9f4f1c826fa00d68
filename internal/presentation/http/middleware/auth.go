package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/presentation/http/dto/response"
	"mims-console/pkg/apperror"
	"mims-console/pkg/utils"
)

// SessionMiddleware validates the session token and puts the identity in
// the request context. Presence of a valid token is the only auth state;
// there are no roles or permissions.
func SessionMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateSessionToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired session")
			c.Abort()
			return
		}

		c.Set("session_email", claims.Email)
		c.Set("session_name", claims.DisplayName)

		c.Next()
	}
}

// BusinessProfileRoute is where the guard sends accounts that have not
// created a profile yet.
const BusinessProfileRoute = "/business-profile"

// RequireBusinessProfile gates the business routes behind an onboarded
// profile. A valid session without a profile gets 409 plus the redirect
// target; that is distinct from 401, which means the session itself is
// missing. Backend outages pass through as errors rather than bouncing an
// onboarded account into profile creation.
func RequireBusinessProfile(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, exists := c.Get("session_email")
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		ok, err := profiles.Exists(c.Request.Context(), email.(string))
		if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !ok {
			response.RedirectRequired(c, 409, "Create your business profile to continue", BusinessProfileRoute)
			c.Abort()
			return
		}

		c.Next()
	}
}
