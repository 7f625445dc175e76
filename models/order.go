package models

import (
	"time"

	"github.com/google/uuid"
)

// Order represents a certificate purchase by a user
// Table: orders
// PurchaseCost snapshots the certificate price at purchase time and is never
// recomputed afterwards
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	UUID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uk_orders_uuid" json:"uuid"`
	UserID        uint            `gorm:"not null;index:idx_orders_user_id" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"-"`
	CertificateID uint            `gorm:"not null;index:idx_orders_certificate_id" json:"certificate_id"`
	Certificate   GiftCertificate `gorm:"foreignKey:CertificateID" json:"-"`
	PurchaseCost  uint64          `gorm:"not null" json:"purchase_cost"`
	PurchaseTime  time.Time       `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_orders_purchase_time" json:"purchase_time"`
}

func (Order) TableName() string { return "orders" }

// OrderSummary is the read-side projection exposed to order owners.
type OrderSummary struct {
	ID           uint      `json:"id"`
	PurchaseCost uint64    `json:"purchase_cost"`
	PurchaseTime time.Time `json:"purchase_time"`
}

// Summary converts an order into its read-side projection.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:           o.ID,
		PurchaseCost: o.PurchaseCost,
		PurchaseTime: o.PurchaseTime,
	}
}

// OrderFilter represents filter criteria for order queries
type OrderFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	UserID        *uint
	CertificateID *uint
}
