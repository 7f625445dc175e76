// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"time"

	"github.com/amirphl/gift-certificate-system/app/dto"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// TagHandlerInterface defines the contract for tag handlers
type TagHandlerInterface interface {
	Create(c fiber.Ctx) error
	List(c fiber.Ctx) error
	GetByName(c fiber.Ctx) error
	Assign(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagFlow   businessflow.TagFlow
	validator *validator.Validate
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagFlow businessflow.TagFlow) *TagHandler {
	return &TagHandler{
		tagFlow:   tagFlow,
		validator: validator.New(),
	}
}

func (h *TagHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *TagHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *TagHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContext(c, endpoint, 30*time.Second)
}

func (h *TagHandler) mapBusinessError(c fiber.Ctx, err error, fallbackMessage string) error {
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

// Create handles tag creation
// @Summary Create tag
// @Description Create a new tag; tag names are unique
// @Tags Tags
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "Tag data"
// @Success 201 {object} dto.APIResponse{data=dto.TagResponse} "Tag created"
// @Failure 400 {object} dto.APIResponse "Validation error"
// @Failure 409 {object} dto.APIResponse "Tag name already exists"
// @Router /gift-certificates/tags [post]
func (h *TagHandler) Create(c fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.tagFlow.CreateTag(h.createRequestContext(c, "/gift-certificates/tags"), &req, metadata)
	if err != nil {
		return h.mapBusinessError(c, err, "Tag creation failed")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Tag created successfully", result)
}

// List handles paged tag listing
// @Summary List tags
// @Description Retrieve one page of tags ordered by ID
// @Tags Tags
// @Produce json
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size, at most 100"
// @Success 200 {object} dto.APIResponse{data=[]dto.TagResponse} "Tags retrieved"
// @Router /gift-certificates/tags [get]
func (h *TagHandler) List(c fiber.Ctx) error {
	page := parseIntQuery(c, "page", utils.DefaultPage)
	pageSize := parseIntQuery(c, "page_size", utils.DefaultPageSize)

	result, err := h.tagFlow.ListTags(h.createRequestContext(c, "/gift-certificates/tags"), page, pageSize)
	if err != nil {
		return h.mapBusinessError(c, err, "Tag listing failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tags retrieved successfully", result)
}

// GetByName handles tag lookup by its unique name
// @Summary Get tag by name
// @Description Retrieve a single tag by its unique name
// @Tags Tags
// @Produce json
// @Param name path string true "Tag name"
// @Success 200 {object} dto.APIResponse{data=dto.TagResponse} "Tag found"
// @Failure 404 {object} dto.APIResponse "Tag not found"
// @Router /gift-certificates/tags/{name} [get]
func (h *TagHandler) GetByName(c fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Tag name is required", "INVALID_REQUEST", nil)
	}

	result, err := h.tagFlow.GetTagByName(h.createRequestContext(c, "/gift-certificates/tags/:name"), name)
	if err != nil {
		return h.mapBusinessError(c, err, "Tag lookup failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag retrieved successfully", result)
}

// Assign handles attaching a tag to a certificate
// @Summary Assign tag
// @Description Attach an existing tag to an existing certificate
// @Tags Tags
// @Accept json
// @Produce json
// @Param request body dto.AssignTagRequest true "Tag and certificate IDs"
// @Success 200 {object} dto.APIResponse "Tag assigned"
// @Failure 404 {object} dto.APIResponse "Tag or certificate not found"
// @Router /gift-certificates/tags/assign [post]
func (h *TagHandler) Assign(c fiber.Ctx) error {
	var req dto.AssignTagRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if err := h.tagFlow.AssignTag(h.createRequestContext(c, "/gift-certificates/tags/assign"), &req, metadata); err != nil {
		return h.mapBusinessError(c, err, "Tag assignment failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag assigned successfully", nil)
}

// Delete handles tag deletion
// @Summary Delete tag
// @Description Remove a tag and its certificate associations
// @Tags Tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} dto.APIResponse "Tag deleted"
// @Failure 404 {object} dto.APIResponse "Tag not found"
// @Router /gift-certificates/tags/{id} [delete]
func (h *TagHandler) Delete(c fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid tag ID", "INVALID_REQUEST", err.Error())
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if err := h.tagFlow.DeleteTag(h.createRequestContext(c, "/gift-certificates/tags/:id"), id, metadata); err != nil {
		return h.mapBusinessError(c, err, "Tag deletion failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Tag deleted successfully", nil)
}
