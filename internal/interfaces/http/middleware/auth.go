package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"booked-barber.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// BarberIDKey is the context key for the authenticated barber ID
	BarberIDKey = "barberId"
	// BarberEmailKey is the context key for the barber email
	BarberEmailKey = "barberEmail"
	// BarberRoleKey is the context key for the barber role
	BarberRoleKey = "barberRole"

	// RoleAdmin marks platform operators
	RoleAdmin = "admin"
)

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization format. Use: Bearer <token>",
			})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if err == jwt.ErrExpiredToken {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "Token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(BarberIDKey, claims.BarberID)
		c.Set(BarberEmailKey, claims.Email)
		c.Set(BarberRoleKey, claims.Role)

		c.Next()
	}
}

// GetBarberID gets the authenticated barber ID from context
func GetBarberID(c *gin.Context) (uuid.UUID, bool) {
	barberID, exists := c.Get(BarberIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return barberID.(uuid.UUID), true
}

// GetBarberEmail gets the barber email from context
func GetBarberEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(BarberEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetBarberRole gets the barber role from context
func GetBarberRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(BarberRoleKey)
	if !exists {
		return "", false
	}
	return role.(string), true
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := GetBarberRole(c)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Role not found",
			})
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	}
}
