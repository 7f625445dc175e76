package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/gift-certificate-system/models"
	"gorm.io/gorm"
)

// OrderRepositoryImpl implements OrderRepository interface
type OrderRepositoryImpl struct {
	*BaseRepository[models.Order, models.OrderFilter]
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{
		BaseRepository: NewBaseRepository[models.Order, models.OrderFilter](db),
	}
}

// applyFilter applies filter criteria to a GORM query
func (r *OrderRepositoryImpl) applyFilter(query *gorm.DB, filter models.OrderFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.CertificateID != nil {
		query = query.Where("certificate_id = ?", *filter.CertificateID)
	}
	return query
}

// ByFilter retrieves orders based on filter criteria
func (r *OrderRepositoryImpl) ByFilter(ctx context.Context, filter models.OrderFilter, orderBy string, limit, offset int) ([]*models.Order, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Order{}), filter)

	if orderBy == "" {
		orderBy = "id DESC"
	}
	query = query.Order(orderBy)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var rows []*models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders by filter: %w", err)
	}
	return rows, nil
}

// ListByUser returns one page of a user's orders, newest first.
func (r *OrderRepositoryImpl) ListByUser(ctx context.Context, userID uint, page models.PageRequest) ([]*models.Order, error) {
	db := r.getDB(ctx)

	var rows []*models.Order
	err := db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Order("purchase_time DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders of user %d: %w", userID, err)
	}
	return rows, nil
}

// DetailsForUser returns the summary of one order scoped to its owner, or nil
// when the order does not exist or belongs to someone else.
func (r *OrderRepositoryImpl) DetailsForUser(ctx context.Context, userID, orderID uint) (*models.OrderSummary, error) {
	db := r.getDB(ctx)

	var order models.Order
	err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get order %d of user %d: %w", orderID, userID, err)
	}

	summary := order.Summary()
	return &summary, nil
}

// Count returns the number of orders matching the filter
func (r *OrderRepositoryImpl) Count(ctx context.Context, filter models.OrderFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.Order{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// Exists checks if any order matching the filter exists
func (r *OrderRepositoryImpl) Exists(ctx context.Context, filter models.OrderFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}
