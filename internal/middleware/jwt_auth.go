package middleware

import (
	"net/http"
	"strings"

	"ecowaste/internal/pkg/jwt"
	"ecowaste/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenCookie is the cookie the login handlers set alongside the JSON token.
const TokenCookie = "token"

// JWTAuth accepts "Authorization: Bearer <token>" or the token cookie and puts
// user_id and role into the gin context.
func JWTAuth(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, code := extractToken(c)
		if code != "" {
			msg := "Authorization header is required"
			if code == "INVALID_AUTH_FORMAT" {
				msg = "Authorization header must be Bearer <token>"
			}
			response.CustomError(c, http.StatusUnauthorized, code, msg)
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.AccountID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			return "", "INVALID_AUTH_FORMAT"
		}
		return strings.TrimSpace(parts[1]), ""
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie, ""
	}
	return "", "AUTH_HEADER_MISSING"
}
