package dto

import "time"

// CreateTagRequest represents the request to create a new tag
type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// TagResponse represents a tag in responses
type TagResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AssignTagRequest represents the request to attach a tag to a certificate
type AssignTagRequest struct {
	TagID         uint `json:"tag_id" validate:"required"`
	CertificateID uint `json:"certificate_id" validate:"required"`
}
