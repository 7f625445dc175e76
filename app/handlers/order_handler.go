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

// OrderHandlerInterface defines the contract for order handlers
type OrderHandlerInterface interface {
	Purchase(c fiber.Ctx) error
	List(c fiber.Ctx) error
	Details(c fiber.Ctx) error
	Export(c fiber.Ctx) error
}

// OrderHandler handles order HTTP requests for the authenticated user
type OrderHandler struct {
	orderFlow businessflow.OrderFlow
	validator *validator.Validate
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderFlow businessflow.OrderFlow) *OrderHandler {
	return &OrderHandler{
		orderFlow: orderFlow,
		validator: validator.New(),
	}
}

func (h *OrderHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *OrderHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func (h *OrderHandler) createRequestContext(c fiber.Ctx, endpoint string) context.Context {
	return createRequestContext(c, endpoint, 30*time.Second)
}

func (h *OrderHandler) mapBusinessError(c fiber.Ctx, err error, fallbackMessage string) error {
	code := "INTERNAL_ERROR"
	if berr, ok := err.(*businessflow.BusinessError); ok {
		code = berr.Code
	}
	switch {
	case businessflow.IsValidationError(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), code, nil)
	case businessflow.IsNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, err.Error(), code, nil)
	default:
		return h.ErrorResponse(c, fiber.StatusInternalServerError, fallbackMessage, code, nil)
	}
}

func (h *OrderHandler) authenticatedUserID(c fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("user_id").(uint)
	return userID, ok
}

// Purchase handles certificate purchase by the authenticated user
// @Summary Purchase gift certificate
// @Description Create an order for a certificate; the purchase cost snapshots the current price
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PurchaseCertificateRequest true "Certificate to purchase"
// @Success 201 {object} dto.APIResponse{data=dto.OrderResponse} "Order created"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Certificate not found"
// @Router /api/v1/orders [post]
func (h *OrderHandler) Purchase(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	var req dto.PurchaseCertificateRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}
	req.UserID = userID

	if err := h.validator.Struct(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationMessages(err))
	}

	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	result, err := h.orderFlow.PurchaseCertificate(h.createRequestContext(c, "/api/v1/orders"), &req, metadata)
	if err != nil {
		return h.mapBusinessError(c, err, "Purchase failed")
	}

	return h.SuccessResponse(c, fiber.StatusCreated, "Order created successfully", result)
}

// List handles paged listing of the authenticated user's orders
// @Summary List my orders
// @Description Retrieve one page of the authenticated user's orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, starting at 1"
// @Param page_size query int false "Page size, at most 100"
// @Success 200 {object} dto.APIResponse{data=[]dto.OrderSummaryResponse} "Orders retrieved"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/orders [get]
func (h *OrderHandler) List(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	page := parseIntQuery(c, "page", utils.DefaultPage)
	pageSize := parseIntQuery(c, "page_size", utils.DefaultPageSize)

	result, err := h.orderFlow.GetUserOrders(h.createRequestContext(c, "/api/v1/orders"), userID, page, pageSize)
	if err != nil {
		return h.mapBusinessError(c, err, "Order listing failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Orders retrieved successfully", result)
}

// Details handles retrieval of one order owned by the authenticated user
// @Summary Get order details
// @Description Retrieve the cost and timestamp of one of the authenticated user's orders
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} dto.APIResponse{data=dto.OrderSummaryResponse} "Order found"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 404 {object} dto.APIResponse "Order not found"
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) Details(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid order ID", "INVALID_REQUEST", err.Error())
	}

	result, err := h.orderFlow.GetOrderDetails(h.createRequestContext(c, "/api/v1/orders/:id"), userID, orderID)
	if err != nil {
		return h.mapBusinessError(c, err, "Order lookup failed")
	}

	return h.SuccessResponse(c, fiber.StatusOK, "Order retrieved successfully", result)
}

// Export handles XLSX export of the authenticated user's orders
// @Summary Export my orders
// @Description Download every order of the authenticated user as an XLSX workbook
// @Tags Orders
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Order export"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /api/v1/orders/export [get]
func (h *OrderHandler) Export(c fiber.Ctx) error {
	userID, ok := h.authenticatedUserID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required", "UNAUTHORIZED", nil)
	}

	filename, payload, err := h.orderFlow.ExportUserOrders(h.createRequestContext(c, "/api/v1/orders/export"), userID)
	if err != nil {
		return h.mapBusinessError(c, err, "Order export failed")
	}

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", "attachment; filename="+filename)
	return c.Send(payload)
}
