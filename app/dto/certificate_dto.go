package dto

import (
	"time"
)

// CreateCertificateRequest represents the request to create a new certificate
type CreateCertificateRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Price       uint64   `json:"price" validate:"required,gt=0"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	Tags        []string `json:"tags,omitempty"`
}

// PatchCertificateRequest represents a merge patch over an existing
// certificate. Absent fields leave the current value unchanged; a present
// tags list replaces the tag set.
type PatchCertificateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Price       *uint64  `json:"price,omitempty"`
	Duration    *int     `json:"duration,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// CertificateResponse represents a certificate in responses
type CertificateResponse struct {
	ID          uint       `json:"id"`
	UUID        string     `json:"uuid"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       uint64     `json:"price"`
	Duration    int        `json:"duration"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// SearchCertificatesRequest represents the query parameters of a catalog search
type SearchCertificatesRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tag         string   `json:"tag"`
	Tags        []string `json:"tags"`
	SortBy      string   `json:"sort"`
	SortOrder   string   `json:"order"`
	Page        int      `json:"page"`
	PageSize    int      `json:"page_size"`
}

// SearchCertificatesResponse represents one page of search results
type SearchCertificatesResponse struct {
	Certificates []CertificateResponse `json:"certificates"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
}
