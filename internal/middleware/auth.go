package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nghialuong53/tana-tra-quan/internal/models"
)

const roleKey = "role"

// AuthGuard validates the bearer token and resolves the actor's role from
// its "role" claim. Login and token issuance happen outside this service;
// the guard only decides who the caller is. The engine re-checks the role on
// every mutation, so this gate is convenience, not the authorization.
func AuthGuard(secret string, allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		roleValue, _ := claims[roleKey].(string)
		role := models.Role(roleValue)
		if role != models.RoleAdmin && role != models.RoleCashier {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown role"})
			return
		}

		if len(allowedRoles) > 0 {
			match := false
			for _, allowed := range allowedRoles {
				if role == allowed {
					match = true
					break
				}
			}
			if !match {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
				return
			}
		}

		c.Set(roleKey, role)
		c.Next()
	}
}

// AdminAuth admits admins only.
func AdminAuth(secret string) gin.HandlerFunc {
	return AuthGuard(secret, models.RoleAdmin)
}

// RoleFrom returns the role AuthGuard stored on the context.
func RoleFrom(c *gin.Context) models.Role {
	if value, ok := c.Get(roleKey); ok {
		if role, ok := value.(models.Role); ok {
			return role
		}
	}
	return models.RoleCashier
}
