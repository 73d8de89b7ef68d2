package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/application"
	"github.com/oksasatya/go-travel-assistant/pkg/helpers"
	"github.com/oksasatya/go-travel-assistant/pkg/response"
	"github.com/oksasatya/go-travel-assistant/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Cookies *helpers.CookieManager
	Logger  logrus.FieldLogger
}

func NewAuthHandler(svc *application.AuthService, cookies *helpers.CookieManager, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Svc: svc, Cookies: cookies, Logger: logger}
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func requestMeta(c *gin.Context) application.RequestMeta {
	return application.RequestMeta{IP: clientIP(c), UserAgent: c.GetHeader("User-Agent")}
}

func invalidPayload(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "Invalid request", validation.ToDetails(err))
}

func (h *AuthHandler) startSession(c *gin.Context, sess *application.Session) {
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	email, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password, requestMeta(c))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "OTP sent to your email", gin.H{"email": email})
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// VerifyOTP POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	sess, err := h.Svc.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	h.startSession(c, sess)
	response.Success(c, http.StatusOK, "Email verified successfully", nil)
}

// password is only used when no pending signup exists any more
type resendOTPRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,max=72"`
}

// ResendOTP POST /api/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req resendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	if err := h.Svc.ResendOTP(c.Request.Context(), req.Email, req.Password, requestMeta(c)); err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "OTP resent successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,max=72"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	h.startSession(c, sess)
	response.Success(c, http.StatusOK, "Logged in successfully", nil)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

type googleSigninRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleSignin POST /api/auth/google-signin
func (h *AuthHandler) GoogleSignin(c *gin.Context) {
	var req googleSigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	sess, err := h.Svc.GoogleSignin(c.Request.Context(), req.IDToken)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	h.startSession(c, sess)
	response.Success(c, http.StatusOK, "Google login successful", nil)
}

// Check GET /api/auth/check
func (h *AuthHandler) Check(c *gin.Context) {
	uid, err := h.Svc.CheckAuth(h.Cookies.Token(c))
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Authenticated", gin.H{"userId": uid})
}
