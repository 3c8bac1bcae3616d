package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const contextUserKey = "authUser"

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	ID    primitive.ObjectID
	Name  string
	Email string
	Role  string
}

// IsAdmin reports whether the identity carries the admin role.
func (u AuthUser) IsAdmin() bool {
	return u.Role == "admin"
}

// AuthGuard validates the bearer token and, when allowedRoles is non-empty,
// requires the token's role to be one of them. The resolved identity is
// stored on the context for handlers.
func AuthGuard(secret string, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing token"})
			return
		}

		parts := strings.Split(raw, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			log.WithError(err).Debug("token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		user, err := userFromClaims(claims)
		if err != nil {
			log.WithError(err).Debug("token claims invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		if len(allowedRoles) > 0 {
			match := false
			for _, r := range allowedRoles {
				if user.Role == r {
					match = true
					break
				}
			}
			if !match {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Access denied. Admin only."})
				return
			}
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// UserAuth accepts any authenticated account (user or admin).
func UserAuth(secret string) gin.HandlerFunc {
	return AuthGuard(secret)
}

// AdminAuth accepts admin accounts only.
func AdminAuth(secret string) gin.HandlerFunc {
	return AuthGuard(secret, "admin")
}

// CurrentUser returns the identity stored by AuthGuard.
func CurrentUser(c *gin.Context) (AuthUser, bool) {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return AuthUser{}, false
	}
	user, ok := value.(AuthUser)
	return user, ok
}

func userFromClaims(claims jwt.MapClaims) (AuthUser, error) {
	idValue, _ := claims["userId"].(string)
	userID, err := primitive.ObjectIDFromHex(strings.TrimSpace(idValue))
	if err != nil {
		return AuthUser{}, err
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = "user"
	}

	return AuthUser{ID: userID, Name: name, Email: email, Role: role}, nil
}
