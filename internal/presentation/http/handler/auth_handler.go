package handler

import (
	"github.com/gin-gonic/gin"

	"mims-console/internal/application/service"
	"mims-console/internal/presentation/http/dto/request"
	"mims-console/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService        *service.AuthService
	preferencesService *service.PreferencesService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, preferencesService *service.PreferencesService) *AuthHandler {
	return &AuthHandler{
		authService:        authService,
		preferencesService: preferencesService,
	}
}

// Login handles direct credential login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", h.sessionPayload(output))
}

// LoginOTP verifies credentials and triggers the one-time passcode mail
func (h *AuthHandler) LoginOTP(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.BeginOTPLogin(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Verification code sent", gin.H{"email": req.Email})
}

// VerifyOTP exchanges a one-time passcode for a session
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req request.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", h.sessionPayload(output))
}

// Session returns the authenticated identity plus the stored preferences,
// letting a client restore its full UI state in one call.
func (h *AuthHandler) Session(c *gin.Context) {
	prefs, err := h.preferencesService.Get()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session active", gin.H{
		"session": gin.H{
			"email":        SessionEmail(c),
			"display_name": SessionName(c),
		},
		"preferences": prefs,
	})
}

// Logout discards the stored identity
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged out", nil)
}

func (h *AuthHandler) sessionPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"session":    output.Session,
		"token":      output.Token,
		"token_type": "Bearer",
	}
}
