package storefrontserver

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/go-storefront-api/internal/shared/errors"
)

const (
	// SessionCookieName carries the session token for browser clients.
	SessionCookieName = "sid"

	userIDKey = "storefront.userID"
	tokenKey  = "storefront.sessionToken"
)

// RequireAuth resolves the sid cookie or a Bearer token into the current user.
func RequireAuth(users userports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)
		if token == "" || users == nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("Authentication required"))
			return
		}
		user, err := users.CurrentUser(c.Request.Context(), token)
		if err != nil {
			apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("Authentication required"))
			return
		}
		c.Set(userIDKey, user.ID)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequestTimeout bounds the request context, and with it every store call the handler makes.
func RequestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// currentUserID is only valid behind RequireAuth.
func currentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
