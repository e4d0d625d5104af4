package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
	"skyjourney/internal/session"
)

const (
	// SessionCookie carries the opaque session token.
	SessionCookie = "skyjourney_session"

	userContextKey = "currentUser"
)

// Auth resolves the session cookie to a user and gates routes by
// authentication state and role. "Not logged in" (401) and "logged in but
// not allowed" (403) stay distinct.
type Auth struct {
	sessions *session.Manager
	users    repository.UserRepository
}

func NewAuth(sessions *session.Manager, users repository.UserRepository) *Auth {
	return &Auth{sessions: sessions, users: users}
}

// Identify loads the current user into the request context when a valid
// session cookie is present. It never rejects; the Require* middlewares do.
func (a *Auth) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			return
		}
		s, ok := a.sessions.Get(token)
		if !ok {
			return
		}
		user, err := a.users.GetByID(c.Request.Context(), s.UserID)
		if err != nil {
			return
		}
		c.Set(userContextKey, user)
	}
}

func (a *Auth) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		}
	}
}

func (a *Auth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden: Admin access required"})
		}
	}
}

// CurrentUser returns the authenticated user for the request, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
