package middleware

import (
	"net/http"
	"strings"

	"backoffice/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

// RequireAuth validates the bearer token and stores the session on the
// gin context. Handlers read it back with GetSession and hand it to
// services explicitly.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		sess := domain.RequestContext{}
		if v, ok := claims["user_id"].(float64); ok {
			sess.UserID = int64(v)
		}
		if v, ok := claims["role"].(string); ok {
			sess.Role = v
		}
		if v, ok := claims["team"].(string); ok {
			sess.Team = v
		}
		if sess.UserID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the authenticated session, zero when absent.
func GetSession(c *gin.Context) domain.RequestContext {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(domain.RequestContext); ok {
			return s
		}
	}
	return domain.RequestContext{}
}
