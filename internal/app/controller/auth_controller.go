package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/delishapp/delish-backend/internal/app/model"
	"github.com/delishapp/delish-backend/internal/app/service"
	apperrors "github.com/delishapp/delish-backend/internal/errors"
	"github.com/delishapp/delish-backend/internal/middleware"
	"github.com/delishapp/delish-backend/internal/session"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
}

func NewAuthController(authService service.AuthService, passwordResetService service.PasswordResetService) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

func userJSON(user *model.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

func sessionJSON(sess *session.Session) gin.H {
	return gin.H{
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
	}
}

func setSessionCookie(c *gin.Context, sess *session.Session) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	c.SetCookie(middleware.SessionCookieName, sess.Token, maxAge, "/", "", false, true)
}

func clearSessionCookie(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
}

// Register handles user registration
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "That registration is not valid")
		return
	}

	user, sess, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "That email is already registered")
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "register user")
		return
	}

	setSessionCookie(c, sess)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userJSON(user),
		"session": sessionJSON(sess),
	})
}

// Login handles user login
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "That login is not valid")
		return
	}

	user, sess, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for unknown email and wrong password alike.
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "login")
		return
	}

	setSessionCookie(c, sess)
	c.JSON(http.StatusOK, gin.H{
		"message": "You are now logged in!",
		"user":    userJSON(user),
		"session": sessionJSON(sess),
	})
}

// Logout revokes the current session if one is presented. Logging out
// while anonymous is not an error.
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if token, ok := middleware.GetSessionToken(c); ok {
		if err := ctrl.authService.Logout(c.Request.Context(), token); err != nil {
			log.Error("Logout failed", err, nil)
			apperrors.InternalError(c, "")
			return
		}
	}

	clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "You are now logged out!",
	})
}

// GetMe returns the authenticated user
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": userJSON(user),
	})
}

// ForgotPassword starts the password recovery flow. The response is the
// same whether or not the email belongs to an account.
// POST /api/v1/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid forgot-password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid email is required")
		return
	}

	if err := ctrl.passwordResetService.RequestReset(req.Email); err != nil {
		if errors.Is(err, service.ErrDeliveryFailed) {
			apperrors.RespondWithError(c, http.StatusBadGateway, apperrors.EmailDeliveryFailed, "We could not send the reset email. Please try again later")
			return
		}
		log.Error("Password reset request failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "request password reset")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "You have been emailed a password reset link",
	})
}

// CheckResetToken reports whether a reset token is currently redeemable,
// without consuming it. Used to decide whether to render the reset form.
// GET /api/v1/auth/reset-password/:token
func (ctrl *AuthController) CheckResetToken(c *gin.Context) {
	token := c.Param("token")

	if err := ctrl.passwordResetService.CheckToken(token); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			apperrors.BadRequest(c, apperrors.ResetTokenInvalid, "Password reset is invalid or has expired")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "check reset token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid",
	})
}

// ResetPassword redeems a reset token and logs the user in.
// POST /api/v1/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid reset-password request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "That request is not valid")
		return
	}

	// Confirmation gate, checked before anything touches the store.
	if req.Password != req.PasswordConfirm {
		apperrors.BadRequest(c, apperrors.ResetPasswordMismatch, "Passwords do not match!")
		return
	}

	user, sess, err := ctrl.passwordResetService.ResetPassword(c.Request.Context(), req.Token, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			apperrors.BadRequest(c, apperrors.ResetTokenInvalid, "Password reset is invalid or has expired")
			return
		}
		log.Error("Password reset failed", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "reset password")
		return
	}

	setSessionCookie(c, sess)
	c.JSON(http.StatusOK, gin.H{
		"message": "Your password has been updated! You are now logged in",
		"user":    userJSON(user),
		"session": sessionJSON(sess),
	})
}
