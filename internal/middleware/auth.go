package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/models"
	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

// ActorKey is where the resolved caller identity lives in the gin context.
const ActorKey = "actor"

// AuthRequired validates the bearer token, loads the user and stores a
// service.Actor in the context. Banned users are rejected outright.
func AuthRequired(db *gorm.DB, secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}
		rawID, ok := claims["user_id"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		// Load the user so role changes and bans take effect immediately,
		// not at token expiry.
		var user models.User
		if err := db.First(&user, uint(rawID)).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
			return
		}
		if user.IsBanned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is banned"})
			return
		}

		c.Set(ActorKey, service.Actor{
			ID:       user.ID,
			Username: user.Username,
			Role:     user.Role,
		})
		c.Next()
	}
}

// AdminRequired rejects non-admin callers early. The services re-check the
// role on every moderation operation regardless.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := CurrentActor(c)
		if !ok || !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// CurrentActor pulls the resolved caller identity out of the context.
func CurrentActor(c *gin.Context) (service.Actor, bool) {
	raw, exists := c.Get(ActorKey)
	if !exists {
		return service.Actor{}, false
	}
	actor, ok := raw.(service.Actor)
	return actor, ok
}
