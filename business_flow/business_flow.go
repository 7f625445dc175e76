// Package businessflow contains the business logic for the application.
package businessflow

import (
	"fmt"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds client-related information for request tracking
type ClientMetadata struct {
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	RequestID string `json:"request_id,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToCertificateDTO converts a certificate model to its response representation
func ToCertificateDTO(certificate models.GiftCertificate) dto.CertificateResponse {
	tags := make([]string, 0, len(certificate.Tags))
	for _, tag := range certificate.Tags {
		tags = append(tags, tag.Name)
	}

	return dto.CertificateResponse{
		ID:          certificate.ID,
		UUID:        certificate.UUID.String(),
		Name:        certificate.Name,
		Description: certificate.Description,
		Price:       certificate.Price,
		Duration:    certificate.Duration,
		Tags:        tags,
		CreatedAt:   certificate.CreatedAt,
		UpdatedAt:   certificate.UpdatedAt,
	}
}

// ToTagDTO converts a tag model to its response representation
func ToTagDTO(tag models.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
	}
}

// ToOrderDTO converts an order model to its response representation
func ToOrderDTO(order models.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		UUID:          order.UUID.String(),
		CertificateID: order.CertificateID,
		PurchaseCost:  order.PurchaseCost,
		PurchaseTime:  order.PurchaseTime,
	}
}

// buildPageRequest guards page bounds before any query is constructed, so a
// page below 1 can never turn into a negative offset downstream.
func buildPageRequest(page, pageSize int) (models.PageRequest, error) {
	if page < 1 {
		return models.PageRequest{}, fmt.Errorf("%w: got %d", ErrInvalidPage, page)
	}
	if pageSize < 1 || pageSize > models.MaxPageSize {
		return models.PageRequest{}, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}
	return models.PageRequest{Page: page, PageSize: pageSize}, nil
}
