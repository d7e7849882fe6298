package mockapi

import (
	"net/http"
	"strings"

	v1 "rewearadmin/pkg/api/v1"

	"github.com/gin-gonic/gin"
)

const claimsContextKey = "admin_claims"

// JWTMiddleware validates the bearer token and stashes the claims for
// handlers. Missing or invalid tokens answer 401 with the backend's error
// payload shape.
func JWTMiddleware(auth *AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string
		if header := c.GetHeader("Authorization"); header != "" {
			parts := strings.Split(header, " ")
			if len(parts) == 2 && parts[0] == v1.DefaultTokenType {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "authorization header missing"})
			return
		}

		claims, err := auth.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "invalid access token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireRoles rejects authenticated admins whose role is not on the
// allow-list. The client's route guard normally prevents these calls; the
// server stays authoritative anyway.
func RequireRoles(roles ...v1.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFrom(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, v1.ErrorResponse{Message: "unauthorized"})
			return
		}
		for _, role := range roles {
			if string(role) == claims.Role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, v1.ErrorResponse{Message: "insufficient role"})
	}
}

func ClaimsFrom(c *gin.Context) *AdminClaims {
	val, ok := c.Get(claimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := val.(*AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
