package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/sunrise-cafe/auth"
	"github.com/junaidrashid-git/sunrise-cafe/models"
	"gorm.io/gorm"
)

const (
	userKey   = "current_user"
	claimsKey = "session_claims"
)

// LoadSession resolves the session cookie into a request-scoped identity.
// Requests without a valid session continue anonymously.
func LoadSession(db *gorm.DB, sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := sessions.Parse(c.Request.Context(), token)
		if err != nil {
			slog.Debug("Ignoring session cookie", "err", err)
			c.Next()
			return
		}

		// The user row is authoritative for the admin flag, not the token.
		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			slog.Debug("Session user not found", "user_id", claims.UserID, "err", err)
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, if any.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// CurrentSession returns the verified session claims for this request, if any.
func CurrentSession(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

// RequireSession sends anonymous visitors back to the landing page.
func RequireSession(c *gin.Context) {
	if _, ok := CurrentUser(c); !ok {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// RequireAdmin sends anyone but an admin back to the landing page.
func RequireAdmin(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok || !user.IsAdmin {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// SetSessionCookie stores a signed session token on the client.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the session token from the client.
func ClearSessionCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", secure, true)
}
