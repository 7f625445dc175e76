// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/amirphl/gift-certificate-system/app/dto"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// CertificateHandlerInterface defines the contract for certificate handlers
type CertificateHandlerInterface interface {
	Create(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Search(c fiber.Ctx) error
	Patch(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// CertificateHandler handles certificate catalog HTTP requests
type CertificateHandler struct {
	certificateFlow businessflow.CertificateFlow
	validator       *validator.Validate
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(certificateFlow businessflow.CertificateFlow) *CertificateHandler {
	return &CertificateHandler{
		certificateFlow: certificateFlow,
		validator:       validator.New(),
	}
}

func (h *CertificateHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *CertificateHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *CertificateHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContext(c, endpoint, 30*time.Second)
}

func (h *CertificateHandler) mapBusinessError(c fiber.Ctx, err error, fallbackMessage string) error {
	code := "INTERNAL_ERROR"
	if berr, ok := err.(*businessflow.BusinessError); ok {
		code = berr.Code
	}
	switch {
	case businessflow.IsValidationError(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), code, nil)
	case businessflow.IsNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, err.Error(), code, nil)
	case businessflow.IsTagNameExists(err):
		return h.ErrorResponse(c, fiber.StatusConflict, err.Error(), code, nil)
	default:
		return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, code, nil)
	}
}

// Create handles certificate creation
// @Summary Create gift certificate
// @Description Create a new gift certificate with optional tags; the default tag is always attached
// @Tags Certificates
// @Accept json
// @Produce json
// @Param request body dto.CreateCertificateRequest true "Certificate data"
// @Success 201 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /gift-certificates/certificates [post]
func (h *CertificateHandler) Create(c fiber.Ctx) error {
	var req dto.CreateCertificateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.certificateFlow.CreateCertificate(h.createRequestContext(c, "/gift-certificates/certificates"), &req, metadata)
	if err != nil {
		return h.mapBusinessError(c, err, "Certificate creation failed")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Certificate created successfully", result)
}

// Get handles single certificate retrieval
// @Summary Get gift certificate
// @Description Retrieve one gift certificate with its tags
// @Tags Certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate found"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Router /gift-certificates/certificates/{id} [get]
func (h *CertificateHandler) Get(c fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid certificate ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.certificateFlow.GetCertificate(h.createRequestContext(c, "/gift-certificates/certificates/:id"), id)
	if err != nil {
		return h.mapBusinessError(c, err, "Certificate lookup failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Certificate retrieved successfully", result)
}

// Search handles catalog search with filters, sorting and pagination
// @Summary Search gift certificates
// @Description Search certificates by name or description fragment and tag names, with sorting and pagination
// @Tags Certificates
// @Produce json
// @Param name query string false "Fragment of the certificate name"
// @Param description query string false "Fragment of the certificate description"
// @Param tag query string false "Single tag name"
// @Param tags query string false "Comma-separated tag names, matches any of them"
// @Param sort query string false "Sort field: name, date or price"
// @Param order query string false "Sort order, DESC for descending"
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size, at most 100"
// @Success 200 {object} dto.APIResponse{data=dto.SearchCertificatesResponse} "Matching certificates"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Router /gift-certificates/certificates [get]
func (h *CertificateHandler) Search(c fiber.Ctx) error {
	req := dto.SearchCertificatesRequest{
		Name:        c.Query("name"),
		Description: c.Query("description"),
		Tag:         c.Query("tag"),
		SortBy:      c.Query("sort"),
		SortOrder:   c.Query("order"),
		Page:        parseIntQuery(c, "page", utils.DefaultPage),
		PageSize:    parseIntQuery(c, "page_size", utils.DefaultPageSize),
	}
	if raw := c.Query("tags"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.TrimSpace(name); name != "" {
				req.Tags = append(req.Tags, name)
			}
		}
	}

	result, err := h.certificateFlow.SearchCertificates(h.createRequestContext(c, "/gift-certificates/certificates"), &req)
	if err != nil {
		return h.mapBusinessError(c, err, "Certificate search failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Certificates retrieved successfully", result)
}

// Patch handles partial certificate updates
// @Summary Update gift certificate
// @Description Apply a partial update; absent fields keep their current value, a present tags list replaces the tag set
// @Tags Certificates
// @Accept json
// @Produce json
// @Param id path int true "Certificate ID"
// @Param request body dto.PatchCertificateRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.CertificateResponse} "Certificate updated"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Router /gift-certificates/certificates/{id} [patch]
func (h *CertificateHandler) Patch(c fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid certificate ID", "INVALID_REQUEST", err.Error())
	}

	var req dto.PatchCertificateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.certificateFlow.UpdateCertificate(h.createRequestContext(c, "/gift-certificates/certificates/:id"), id, &req, metadata)
	if err != nil {
		return h.mapBusinessError(c, err, "Certificate update failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Certificate updated successfully", result)
}

// Delete handles certificate deletion
// @Summary Delete gift certificate
// @Description Remove a gift certificate and its tag associations
// @Tags Certificates
// @Produce json
// @Param id path int true "Certificate ID"
// @Success 200 {object} dto.APIResponse "Certificate deleted"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Router /gift-certificates/certificates/{id} [delete]
func (h *CertificateHandler) Delete(c fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid certificate ID", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if err := h.certificateFlow.DeleteCertificate(h.createRequestContext(c, "/gift-certificates/certificates/:id"), id, metadata); err != nil {
		return h.mapBusinessError(c, err, "Certificate deletion failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Certificate deleted successfully", nil)
}
