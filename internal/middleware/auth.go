package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/thereayou/trail-service/pkg/auth"
)

const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// AuthMiddleware требует валидный Bearer-токен
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		if !authenticate(c, verifier, token) {
			return
		}
		c.Next()
	}
}

// OptionalAuth пропускает анонимные запросы, но не запросы с плохим токеном
func OptionalAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}

		if !authenticate(c, verifier, token) {
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier TokenVerifier, token string) bool {
	identity, err := verifier.Verify(token)
	if err != nil {
		msg := "invalid token"
		if errors.Is(err, auth.ErrTokenExpired) {
			msg = "token expired"
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return false
	}

	c.Set(UserIDKey, identity.UserID)
	c.Set(UsernameKey, identity.Username)
	return true
}

// CurrentUserID возвращает id из проверенного токена, если он был
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
