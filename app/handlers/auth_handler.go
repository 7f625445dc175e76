// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"time"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/app/services"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// AuthHandlerInterface defines the contract for authentication handlers
type AuthHandlerInterface interface {
	Token(c fiber.Ctx) error
	Refresh(c fiber.Ctx) error
	Revoke(c fiber.Ctx) error
}

// AuthHandler handles token issuance HTTP requests
type AuthHandler struct {
	loginFlow    businessflow.LoginFlow
	tokenService services.TokenService
	validator    *validator.Validate
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(loginFlow businessflow.LoginFlow, tokenService services.TokenService) *AuthHandler {
	return &AuthHandler{
		loginFlow:    loginFlow,
		tokenService: tokenService,
		validator:    validator.New(),
	}
}

func (h *AuthHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *AuthHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *AuthHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContext(c, endpoint, 30*time.Second)
}

// Token handles the credentials-for-tokens exchange
// @Summary Issue tokens
// @Description Exchange a username and password for an access/refresh token pair
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "User credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Tokens issued"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Router /api/token [post]
func (h *AuthHandler) Token(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.loginFlow.Login(h.createRequestContext(c, "/api/token"), &req, metadata)
	if err != nil {
		// Unknown user and wrong password both present as invalid credentials
		if businessflow.IsUserNotFound(err) || businessflow.IsIncorrectPassword(err) {
			return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", "INVALID_CREDENTIALS", nil)
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Token issuance failed", "INTERNAL_ERROR", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tokens issued successfully", result)
}

// RefreshTokenRequest represents the request to rotate a refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles refresh token rotation
// @Summary Refresh tokens
// @Description Exchange a valid refresh token for a new token pair; the used refresh token is revoked
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body handlers.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Tokens rotated"
// @Failure 401 {object} dto.APIResponse "Invalid or revoked token"
// @Router /api/token/refresh [post]
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req RefreshTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	accessToken, refreshToken, err := h.tokenService.RefreshToken(h.createRequestContext(c, "/api/token/refresh"), req.RefreshToken)
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", "INVALID_TOKEN", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tokens refreshed successfully", dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(utils.AccessTokenTTL.Seconds()),
	})
}

// RevokeTokenRequest represents the request to revoke a token
type RevokeTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Revoke handles explicit token revocation
// @Summary Revoke token
// @Description Mark a token as revoked until its natural expiry
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body handlers.RevokeTokenRequest true "Token to revoke"
// @Success 200 {object} dto.APIResponse "Token revoked"
// @Failure 400 {object} dto.APIResponse "Invalid token"
// @Router /api/token/revoke [post]
func (h *AuthHandler) Revoke(c fiber.Ctx) error {
	var req RevokeTokenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	if err := h.tokenService.RevokeToken(h.createRequestContext(c, "/api/token/revoke"), req.Token); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid token", "INVALID_TOKEN", nil)
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Token revoked successfully", nil)
}
