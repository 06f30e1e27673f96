package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/codinglive/codinglive_app/internal/apperrors"
	portssvc "github.com/codinglive/codinglive_app/internal/core/ports/services"
	"github.com/codinglive/codinglive_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GoogleOAuthHandler handles Google OAuth related requests. Sign-in is only
// allowed for staff accounts that already exist with the Google email as
// their username; OAuth never provisions a new account.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
	}
}

// ExchangeCodeRequest defines the expected JSON body for the /google/exchange-code endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// ExchangeCodeResponse defines the successful response for the /google/exchange-code endpoint.
type ExchangeCodeResponse struct {
	Token string `json:"token"`
}

// ExchangeCodeGoogle handles the POST request from the frontend containing the authorization code from Google.
// It exchanges the code for Google tokens, validates the ID token, looks up the staff account,
// generates an application-specific JWT, and returns it.
// @Summary Exchange authorization code for access token
// @Description Exchange authorization code for access token
// @Tags oauth
// @Accept  json
// @Produce  json
// @Param   code body ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} ExchangeCodeResponse
// @Failure 400 {object} apperrors.AppError "Invalid authorization code"
// @Failure 403 {object} apperrors.AppError "No staff account for this Google identity"
// @Failure 500 {object} apperrors.AppError "Failed to exchange authorization code for access token"
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for exchange code request", slog.String("error", err.Error()))
		appErr := apperrors.NewBadRequestError("Invalid request payload: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	// 1. Exchange authorization code for Google tokens
	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		appErr := apperrors.NewGatewayTimeoutError("Failed to communicate with Google OAuth service.")
		if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") || strings.Contains(strings.ToLower(err.Error()), "bad request") {
			appErr = apperrors.NewBadRequestError("Invalid or expired authorization code provided by Google.")
		}
		c.JSON(appErr.Code, appErr)
		return
	}

	idTokenString, ok := oauth2Token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token not found in Google's token response")
		appErr := apperrors.NewInternalServerError("Failed to retrieve ID token from Google.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 2. Validate Google's ID Token
	googleIDTokenPayload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
	if err != nil {
		logger.Error("Google ID token validation failed", slog.String("error", err.Error()))
		appErr := apperrors.NewUnauthorizedError("Invalid Google ID token: " + err.Error())
		c.JSON(appErr.Code, appErr)
		return
	}

	email, _ := googleIDTokenPayload.Claims["email"].(string)
	emailVerified, _ := googleIDTokenPayload.Claims["email_verified"].(bool)
	if email == "" || !emailVerified {
		logger.Error("Verified email missing from Google ID token payload")
		appErr := apperrors.NewUnauthorizedError("A verified Google email is required.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 3. The email must match an already-provisioned staff account
	user, err := h.userService.GetUserByUsername(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Google sign-in attempted without a staff account", slog.String("email", email))
			appErr := apperrors.NewForbiddenError("No staff account exists for this Google identity.")
			c.JSON(appErr.Code, appErr)
			return
		}
		logger.Error("Failed to look up user for Google sign-in", slog.String("error", err.Error()))
		appErr := apperrors.NewInternalServerError("Failed to process user authentication.")
		c.JSON(appErr.Code, appErr)
		return
	}

	// 4. Generate the application's own JWT
	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate application access token", slog.String("error", err.Error()), slog.String("user_id", user.UserID))
		appErr := apperrors.NewInternalServerError("Failed to generate access token.")
		c.JSON(appErr.Code, appErr)
		return
	}

	logger.Info("User signed in via Google OAuth", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, ExchangeCodeResponse{Token: accessToken})
}

// registerGoogleOAuthRoutes registers the Google OAuth routes.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}
