package handlers

import (
	"errors"
	"net/http"

	"skillbridge/models"
	"skillbridge/services/business"
	"skillbridge/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BusinessHandler exposes business account endpoints.
type BusinessHandler struct {
	Service business.BusinessService
}

// NewBusinessHandler creates a BusinessHandler backed by the given service.
func NewBusinessHandler(svc business.BusinessService) *BusinessHandler {
	return &BusinessHandler{Service: svc}
}

// SendEmailOTPHandler handles POST /api/business/send-email-otp.
func (h *BusinessHandler) SendEmailOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.SendEmailOTP(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyEmailOTPHandler handles POST /api/business/verify-email.
func (h *BusinessHandler) VerifyEmailOTPHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := h.Service.VerifyEmailOTP(c.Request.Context(), req.Email, req.OTP); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// RegisterHandler handles POST /api/business/signup. The body is the
// multipart registration payload.
func (h *BusinessHandler) RegisterHandler(c *gin.Context) {
	logger := getLogger(c)

	reg, err := wizard.ParseRegistrationPayload(c.GetHeader("Content-Type"), c.Request.Body)
	if err != nil {
		logger.Error("Invalid registration payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid registration payload: " + err.Error()})
		return
	}

	resp, err := h.Service.Register(c.Request.Context(), reg)
	if err != nil {
		logger.Error("Business registration failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/business/login.
func (h *BusinessHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	resp, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetPasswordHandler handles POST /api/business/reset-password. It drives
// the three-state OTP flow: email only, then email+otp, then email+otp+newPassword.
func (h *BusinessHandler) ResetPasswordHandler(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required"`
		OTP         string `json:"otp"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	err := h.Service.ResetPassword(c.Request.Context(), req.Email, req.OTP, req.NewPassword)
	var pending business.OTPPendingError
	var needPass business.NewPasswordRequiredError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": "password_updated"})
	case errors.As(err, &pending):
		c.JSON(http.StatusAccepted, gin.H{"status": "otp_sent", "message": err.Error()})
	case errors.As(err, &needPass):
		c.JSON(http.StatusOK, gin.H{"status": "otp_verified", "message": err.Error()})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	}
}

// GetProfileHandler handles GET /api/business/profile.
func (h *BusinessHandler) GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	id, exists := c.Get("accountID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	rec, err := h.Service.GetByID(id.(string))
	if err != nil {
		logger.Error("Failed to get business profile", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// UpdateProfileHandler handles PATCH /api/business/profile.
func (h *BusinessHandler) UpdateProfileHandler(c *gin.Context) {
	logger := getLogger(c)

	id, exists := c.Get("accountID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	var req models.Business
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = id.(string)

	updated, err := h.Service.UpdateProfile(req)
	if err != nil {
		logger.Error("Failed to update business profile", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAccountHandler handles DELETE /api/business/account.
func (h *BusinessHandler) DeleteAccountHandler(c *gin.Context) {
	id, exists := c.Get("accountID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.Service.Delete(c.Request.Context(), id.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}

// LogoutHandler handles POST /api/business/logout.
func (h *BusinessHandler) LogoutHandler(c *gin.Context) {
	id, exists := c.Get("accountID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.Service.RevokeAuthToken(c.Request.Context(), id.(string)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
