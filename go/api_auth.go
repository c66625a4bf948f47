package storefrontserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	usermapper "github.com/Apurer/go-storefront-api/internal/domains/users/adapters/http/mapper"
	userapp "github.com/Apurer/go-storefront-api/internal/domains/users/application"
	userdomain "github.com/Apurer/go-storefront-api/internal/domains/users/domain"
	userports "github.com/Apurer/go-storefront-api/internal/domains/users/ports"
)

// AuthAPI handles registration and session lifecycle.
type AuthAPI struct {
	service      userports.Service
	secureCookie bool
	now          func() time.Time
}

// NewAuthAPI wires the identity service. secureCookie marks the sid cookie Secure.
func NewAuthAPI(service userports.Service, secureCookie bool) AuthAPI {
	return AuthAPI{service: service, secureCookie: secureCookie, now: time.Now}
}

// Post /api/register
// Creates an account and starts a session
func (api *AuthAPI) Register(c *gin.Context) {
	var payload usermapper.Registration
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, session, err := api.service.Register(c.Request.Context(), usermapper.ToRegisterInput(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	api.setSessionCookie(c, session)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    usermapper.FromDomainUser(user),
		"token":   session.Token,
	})
}

// Post /api/login
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	user, session, err := api.service.Login(c.Request.Context(), payload.Username, payload.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	api.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    usermapper.FromDomainUser(user),
		"token":   session.Token,
	})
}

// Post /api/logout
// Always succeeds; an unknown or missing session is already logged out.
func (api *AuthAPI) Logout(c *gin.Context) {
	if token := sessionToken(c); token != "" {
		if err := api.service.Logout(c.Request.Context(), token); err != nil && !errors.Is(err, userapp.ErrAuthentication) {
			respondError(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", api.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Get /api/user
func (api *AuthAPI) CurrentUser(c *gin.Context) {
	user, err := api.service.CurrentUser(c.Request.Context(), c.GetString(tokenKey))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": usermapper.FromDomainUser(user)})
}

func (api *AuthAPI) setSessionCookie(c *gin.Context, session *userdomain.Session) {
	maxAge := int(session.ExpiresAt.Sub(api.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.Token, maxAge, "/", "", api.secureCookie, true)
}
