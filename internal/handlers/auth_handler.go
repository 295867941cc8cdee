package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillnest-io/course-service/internal/services"
	"github.com/skillnest-io/course-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	authService services.AuthService
	sessionTTL  time.Duration
}

func NewAuthHandler(authService services.AuthService, sessionTTL time.Duration, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		sessionTTL:  sessionTTL,
	}
}

// Register creates a new account and returns the profile with a session
// token. The admin secret path is rate limited per client IP.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

// Logout clears the legacy session cookie. Tokens are stateless and expire
// on their own.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Not authorized, no token"})
		return
	}

	profile, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: profile})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	// Cookie lifetime tracks the token lifetime.
	c.SetCookie(sessionCookieName, token, int(h.sessionTTL.Seconds()), "/", "", false, true)
}
