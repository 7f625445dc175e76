// Package repository provides data access layer implementations and interfaces for database operations
package repository

import (
	"context"

	"github.com/amirphl/gift-certificate-system/models"
)

// RepositoryContext key for transaction in context
type contextKey string

const TxContextKey contextKey = "tx"

type Repository[T any, F any] interface {
	ByID(ctx context.Context, id uint) (*T, error)
	ByFilter(ctx context.Context, filter F, orderBy string, limit, offset int) ([]*T, error)
	Save(ctx context.Context, entity *T) error
	Count(ctx context.Context, filter F) (int64, error)
	Exists(ctx context.Context, filter F) (bool, error)
}

// CertificateRepository defines operations for gift certificates
type CertificateRepository interface {
	Repository[models.GiftCertificate, models.CertificateFilter]
	Search(ctx context.Context, criteria models.CertificateSearchCriteria, page models.PageRequest) ([]*models.GiftCertificate, error)
	List(ctx context.Context, page models.PageRequest) ([]*models.GiftCertificate, error)
	Update(ctx context.Context, certificate *models.GiftCertificate) error
	ReplaceTags(ctx context.Context, certificateID uint, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
}

// TagRepository defines operations for tags
type TagRepository interface {
	Repository[models.Tag, models.TagFilter]
	ByName(ctx context.Context, name string) (*models.Tag, error)
	ListByNames(ctx context.Context, names []string) ([]*models.Tag, error)
	AssignToCertificate(ctx context.Context, tagID, certificateID uint) error
	Delete(ctx context.Context, id uint) error
}

// UserRepository defines operations for users
type UserRepository interface {
	Repository[models.User, models.UserFilter]
	ByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, page models.PageRequest) ([]*models.User, error)
}

// OrderRepository defines operations for orders
type OrderRepository interface {
	Repository[models.Order, models.OrderFilter]
	ListByUser(ctx context.Context, userID uint, page models.PageRequest) ([]*models.Order, error)
	DetailsForUser(ctx context.Context, userID, orderID uint) (*models.OrderSummary, error)
}
