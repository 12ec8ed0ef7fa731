package middlewares

import (
	"errors"
	"net/http"
	"strings"

	"baseballnote/models"
	"baseballnote/services"
	"baseballnote/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Keys set on the gin context by AuthMiddleware.
const (
	KeyClaims = "claims"
	KeyUser   = "user"
	KeyUserID = "userID"
	KeyUID    = "uid"
	KeyEmail  = "email"
	KeyRole   = "role"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	// Browsers cannot set headers on websocket upgrades.
	if c.IsWebsocket() {
		return c.Query("token")
	}
	return ""
}

func AuthMiddleware(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header required"})
			return
		}

		claims, user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var se *services.Error
			if errors.As(err, &se) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": se.Detail})
				return
			}
			zap.L().Error("authenticate", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "サーバーエラーが発生しました"})
			return
		}

		c.Set(KeyClaims, claims)
		c.Set(KeyUser, user)
		c.Set(KeyUserID, user.ID)
		c.Set(KeyUID, user.FirebaseUID)
		c.Set(KeyEmail, user.Email)
		c.Set(KeyRole, user.Role)
		c.Next()
	}
}

// CurrentUser returns the account loaded by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	u, _ := c.Get(KeyUser)
	user, _ := u.(*models.User)
	return user
}

func CurrentUserID(c *gin.Context) uuid.UUID {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return uuid.Nil
}

func CurrentClaims(c *gin.Context) *utils.Claims {
	v, _ := c.Get(KeyClaims)
	claims, _ := v.(*utils.Claims)
	return claims
}

// RequireRole rejects authenticated users whose role is not one of roles.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization header required"})
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "この操作を行う権限がありません"})
	}
}
