package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skyjourney/internal/domain"
	"skyjourney/internal/repository"
	"skyjourney/internal/session"
)

func newGuardedRouter(t *testing.T) (*gin.Engine, *repository.MemStore, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemStore()
	sessions := session.NewManager(time.Hour)
	mw := NewAuth(sessions, store.Users())

	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	router := gin.New()
	router.Use(mw.Identify())
	router.GET("/user-only", mw.RequireUser(), ok)
	router.GET("/admin-only", mw.RequireAdmin(), ok)
	return router, store, sessions
}

func loginAs(t *testing.T, store *repository.MemStore, sessions *session.Manager, role domain.Role) *http.Cookie {
	t.Helper()
	user := &domain.User{
		Username: "someone-" + string(role),
		Password: "hash",
		Email:    "someone@example.com",
		Role:     role,
	}
	require.NoError(t, store.Users().Create(context.Background(), user))
	return &http.Cookie{Name: SessionCookie, Value: sessions.Create(user.ID).Token}
}

func TestAuth_AnonymousGets401(t *testing.T) {
	router, _, _ := newGuardedRouter(t)

	for _, path := range []string{"/user-only", "/admin-only"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestAuth_RegularUserOnAdminRouteGets403(t *testing.T) {
	router, store, sessions := newGuardedRouter(t)
	cookie := loginAs(t, store, sessions, domain.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user-only", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_AdminPassesBothGuards(t *testing.T) {
	router, store, sessions := newGuardedRouter(t)
	cookie := loginAs(t, store, sessions, domain.RoleAdmin)

	for _, path := range []string{"/user-only", "/admin-only"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(cookie)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestAuth_InvalidTokenIsAnonymous(t *testing.T) {
	router, _, _ := newGuardedRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user-only", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-session"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ExpiredSessionIsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := repository.NewMemStore()
	sessions := session.NewManager(-time.Minute)
	mw := NewAuth(sessions, store.Users())

	router := gin.New()
	router.Use(mw.Identify())
	router.GET("/user-only", mw.RequireUser(), func(c *gin.Context) { c.Status(http.StatusOK) })

	cookie := loginAs(t, store, sessions, domain.RoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/user-only", nil)
	req.AddCookie(cookie)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
