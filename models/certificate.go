package models

import (
	"time"

	"github.com/google/uuid"
)

// GiftCertificate represents an item in the certificate catalog
// Table: certificates
// Price is stored in minor currency units; Duration counts validity days.
// Tags are attached through the certificate_tags join table.
type GiftCertificate struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uk_certificates_uuid" json:"uuid"`
	Name        string     `gorm:"size:255;not null;index:idx_certificates_name" json:"name"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Price       uint64     `gorm:"not null" json:"price"`
	Duration    int        `gorm:"not null" json:"duration"`
	Tags        []Tag      `gorm:"many2many:certificate_tags;" json:"tags"`
	CreatedAt   time.Time  `gorm:"default:(CURRENT_TIMESTAMP AT TIME ZONE 'UTC');index:idx_certificates_created_at" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (GiftCertificate) TableName() string { return "certificates" }

// CertificateFilter represents filter criteria for certificate queries
type CertificateFilter struct {
	ID            *uint
	UUID          *uuid.UUID
	Name          *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
