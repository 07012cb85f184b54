package middleware

import (
	"log"
	"net/http"
	"strings"

	v1 "atm-monitor/services/v1"

	"github.com/gin-gonic/gin"
)

const claimsKey = "claims"

// AuthRequired rejects requests without a valid "Authorization: Bearer <token>" header and
// stores the token claims on the context.
func AuthRequired(auth *v1.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token format"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			log.Println("[AUTH] Token verification failed:", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the claims stored by AuthRequired, or nil outside an authenticated route.
func CurrentUser(c *gin.Context) *v1.Claims {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*v1.Claims)
	return claims
}
