package dto

import "time"

// PurchaseCertificateRequest represents the request to purchase a certificate
type PurchaseCertificateRequest struct {
	UserID        uint `json:"-"`
	CertificateID uint `json:"certificate_id" validate:"required"`
}

// OrderResponse represents an order in responses
type OrderResponse struct {
	ID            uint      `json:"id"`
	UUID          string    `json:"uuid"`
	CertificateID uint      `json:"certificate_id"`
	PurchaseCost  uint64    `json:"purchase_cost"`
	PurchaseTime  time.Time `json:"purchase_time"`
}

// OrderSummaryResponse represents the owner-facing order projection
type OrderSummaryResponse struct {
	ID           uint      `json:"id"`
	PurchaseCost uint64    `json:"purchase_cost"`
	PurchaseTime time.Time `json:"purchase_time"`
}
