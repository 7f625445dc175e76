// Package businessflow contains the core business logic and use cases for order workflows
package businessflow

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/repository"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// OrderFlow handles the order business logic
type OrderFlow interface {
	PurchaseCertificate(ctx context.Context, req *dto.PurchaseCertificateRequest, metadata *ClientMetadata) (*dto.OrderResponse, error)
	GetUserOrders(ctx context.Context, userID uint, page, pageSize int) ([]dto.OrderSummaryResponse, error)
	GetOrderDetails(ctx context.Context, userID, orderID uint) (*dto.OrderSummaryResponse, error)
	ExportUserOrders(ctx context.Context, userID uint) (string, []byte, error)
}

// OrderFlowImpl implements the order business flow
type OrderFlowImpl struct {
	orderRepo       repository.OrderRepository
	certificateRepo repository.CertificateRepository
	userRepo        repository.UserRepository
	db              *gorm.DB
}

// NewOrderFlow creates a new order flow instance
func NewOrderFlow(
	orderRepo repository.OrderRepository,
	certificateRepo repository.CertificateRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) OrderFlow {
	return &OrderFlowImpl{
		orderRepo:       orderRepo,
		certificateRepo: certificateRepo,
		userRepo:        userRepo,
		db:              db,
	}
}

// PurchaseCertificate creates an order for the authenticated user. The
// purchase cost snapshots the certificate price at this moment.
func (s *OrderFlowImpl) PurchaseCertificate(ctx context.Context, req *dto.PurchaseCertificateRequest, metadata *ClientMetadata) (*dto.OrderResponse, error) {
	user, err := s.userRepo.ByID(ctx, req.UserID)
	if err != nil {
		return nil, newStorageError("User lookup failed", err)
	}
	if user == nil {
		return nil, NewBusinessError("USER_NOT_FOUND", fmt.Sprintf("User %d not found", req.UserID), ErrUserNotFound)
	}

	certificate, err := s.certificateRepo.ByID(ctx, req.CertificateID)
	if err != nil {
		return nil, newStorageError("Certificate lookup failed", err)
	}
	if certificate == nil {
		return nil, NewBusinessError("CERTIFICATE_NOT_FOUND", fmt.Sprintf("Certificate %d not found", req.CertificateID), ErrCertificateNotFound)
	}

	order := &models.Order{
		UUID:          uuid.New(),
		UserID:        user.ID,
		CertificateID: certificate.ID,
		PurchaseCost:  certificate.Price,
		PurchaseTime:  utils.UTCNow(),
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.orderRepo.Save(txCtx, order)
	})
	if err != nil {
		return nil, newStorageError("Order creation failed", err)
	}

	resp := ToOrderDTO(*order)
	return &resp, nil
}

// GetUserOrders returns one page of the user's order summaries.
func (s *OrderFlowImpl) GetUserOrders(ctx context.Context, userID uint, page, pageSize int) ([]dto.OrderSummaryResponse, error) {
	window, err := buildPageRequest(page, pageSize)
	if err != nil {
		return nil, NewBusinessError("ORDER_LIST_VALIDATION_FAILED", "Invalid page window", err)
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID, window)
	if err != nil {
		return nil, newStorageError("Order listing failed", err)
	}

	results := make([]dto.OrderSummaryResponse, 0, len(orders))
	for _, order := range orders {
		summary := order.Summary()
		results = append(results, dto.OrderSummaryResponse{
			ID:           summary.ID,
			PurchaseCost: summary.PurchaseCost,
			PurchaseTime: summary.PurchaseTime,
		})
	}
	return results, nil
}

// GetOrderDetails returns the summary of one order owned by the user.
func (s *OrderFlowImpl) GetOrderDetails(ctx context.Context, userID, orderID uint) (*dto.OrderSummaryResponse, error) {
	summary, err := s.orderRepo.DetailsForUser(ctx, userID, orderID)
	if err != nil {
		return nil, newStorageError("Order lookup failed", err)
	}
	if summary == nil {
		return nil, NewBusinessError("ORDER_NOT_FOUND", fmt.Sprintf("Order %d not found", orderID), ErrOrderNotFound)
	}

	return &dto.OrderSummaryResponse{
		ID:           summary.ID,
		PurchaseCost: summary.PurchaseCost,
		PurchaseTime: summary.PurchaseTime,
	}, nil
}

// ExportUserOrders builds an XLSX report of every order the user owns and
// returns the suggested file name with the workbook bytes.
func (s *OrderFlowImpl) ExportUserOrders(ctx context.Context, userID uint) (string, []byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "uuid", "certificate_id", "purchase_cost", "purchase_time"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	row := 2
	window := models.PageRequest{Page: 1, PageSize: models.MaxPageSize}
	for {
		orders, err := s.orderRepo.ListByUser(ctx, userID, window)
		if err != nil {
			return "", nil, newStorageError("Order export failed", err)
		}

		for _, order := range orders {
			values := []any{
				order.ID,
				order.UUID.String(),
				order.CertificateID,
				order.PurchaseCost,
				order.PurchaseTime.Format(time.RFC3339),
			}
			_ = xl.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
			row++
		}

		if len(orders) < window.PageSize {
			break
		}
		window.Page++
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("ORDER_EXPORT_FAILED", "Failed to build order export workbook", err)
	}

	name := fmt.Sprintf("orders_user_%d_%s.xlsx", userID, utils.UTCNow().Format("20060102_150405"))
	return name, buf.Bytes(), nil
}
