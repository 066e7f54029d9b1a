package handlers

import (
	"net/http"
	"time"

	"backoffice/internal/domain"
	"backoffice/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks credentials and issues a 24h bearer token. A missing
// user and a wrong password produce the same response.
func Login(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		var req loginRequest
		if !BindJSONOrError(c, &req) {
			return
		}

		user, hash, err := (repositories.UserRepository{}).GetByEmail(req.Email)
		if err != nil {
			if domain.IsNotFound(err) {
				RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
				return
			}
			RespondDomainError(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
			RespondError(c, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"role":    user.Role,
			"team":    user.Team,
			"exp":     time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString(key)
		if err != nil {
			RespondError(c, http.StatusInternalServerError, "failed to sign token", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed, "user": user})
	}
}
