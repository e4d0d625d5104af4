package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyjourney/internal/service/auth"
	"skyjourney/internal/session"
)

type AuthHandler struct {
	service  auth.AuthUseCase
	sessions *session.Manager
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(service auth.AuthUseCase, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions}
}

func (h *AuthHandler) Register(router *gin.RouterGroup, mw *Auth) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", mw.RequireUser(), h.logout)
	router.GET("/user", mw.RequireUser(), h.currentUser)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration data"})
		return
	}

	user, err := h.service.Register(c.Request.Context(), auth.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, h.sessions.Create(user.ID).Token)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid login data"})
		return
	}

	user, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, h.sessions.Create(user.ID).Token)
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		h.sessions.Destroy(token)
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, CurrentUser(c))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, 0, "/", "", false, true)
}
