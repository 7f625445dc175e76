// Package businessflow contains the core business logic and use cases for tag workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/repository"
	"gorm.io/gorm"
)

// TagFlow handles the tag business logic
type TagFlow interface {
	CreateTag(ctx context.Context, req *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagResponse, error)
	ListTags(ctx context.Context, page, pageSize int) ([]dto.TagResponse, error)
	GetTagByName(ctx context.Context, name string) (*dto.TagResponse, error)
	AssignTag(ctx context.Context, req *dto.AssignTagRequest, metadata *ClientMetadata) error
	DeleteTag(ctx context.Context, id uint, metadata *ClientMetadata) error
}

// TagFlowImpl implements the tag business flow
type TagFlowImpl struct {
	tagRepo         repository.TagRepository
	certificateRepo repository.CertificateRepository
	db              *gorm.DB
}

// NewTagFlow creates a new tag flow instance
func NewTagFlow(
	tagRepo repository.TagRepository,
	certificateRepo repository.CertificateRepository,
	db *gorm.DB,
) TagFlow {
	return &TagFlowImpl{
		tagRepo:         tagRepo,
		certificateRepo: certificateRepo,
		db:              db,
	}
}

// CreateTag inserts a new tag. A duplicate name surfaces as a conflict and
// never creates a second row.
func (s *TagFlowImpl) CreateTag(ctx context.Context, req *dto.CreateTagRequest, metadata *ClientMetadata) (*dto.TagResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewBusinessError("TAG_VALIDATION_FAILED", "Tag validation failed", ErrTagNameRequired)
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, NewBusinessError("TAG_NAME_EXISTS", fmt.Sprintf("Tag %q already exists", name), ErrTagNameExists)
		}
		return nil, newStorageError("Tag creation failed", err)
	}

	resp := ToTagDTO(*tag)
	return &resp, nil
}

// ListTags returns one page of tags.
func (s *TagFlowImpl) ListTags(ctx context.Context, page, pageSize int) ([]dto.TagResponse, error) {
	window, err := buildPageRequest(page, pageSize)
	if err != nil {
		return nil, NewBusinessError("TAG_LIST_VALIDATION_FAILED", "Invalid page window", err)
	}

	tags, err := s.tagRepo.ByFilter(ctx, models.TagFilter{}, "id", window.Limit(), window.Offset())
	if err != nil {
		return nil, newStorageError("Tag listing failed", err)
	}

	results := make([]dto.TagResponse, 0, len(tags))
	for _, tag := range tags {
		results = append(results, ToTagDTO(*tag))
	}
	return results, nil
}

// GetTagByName returns a tag by its unique name.
func (s *TagFlowImpl) GetTagByName(ctx context.Context, name string) (*dto.TagResponse, error) {
	tag, err := s.tagRepo.ByName(ctx, name)
	if err != nil {
		return nil, newStorageError("Tag lookup failed", err)
	}
	if tag == nil {
		return nil, NewBusinessError("TAG_NOT_FOUND", fmt.Sprintf("Tag %q not found", name), ErrTagNotFound)
	}

	resp := ToTagDTO(*tag)
	return &resp, nil
}

// AssignTag attaches an existing tag to an existing certificate.
func (s *TagFlowImpl) AssignTag(ctx context.Context, req *dto.AssignTagRequest, metadata *ClientMetadata) error {
	tag, err := s.tagRepo.ByID(ctx, req.TagID)
	if err != nil {
		return newStorageError("Tag lookup failed", err)
	}
	if tag == nil {
		return NewBusinessError("TAG_NOT_FOUND", fmt.Sprintf("Tag %d not found", req.TagID), ErrTagNotFound)
	}

	certificate, err := s.certificateRepo.ByID(ctx, req.CertificateID)
	if err != nil {
		return newStorageError("Certificate lookup failed", err)
	}
	if certificate == nil {
		return NewBusinessError("CERTIFICATE_NOT_FOUND", fmt.Sprintf("Certificate %d not found", req.CertificateID), ErrCertificateNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tagRepo.AssignToCertificate(txCtx, tag.ID, certificate.ID)
	})
	if err != nil {
		return newStorageError("Tag assignment failed", err)
	}

	return nil
}

// DeleteTag removes a tag by ID.
func (s *TagFlowImpl) DeleteTag(ctx context.Context, id uint, metadata *ClientMetadata) error {
	tag, err := s.tagRepo.ByID(ctx, id)
	if err != nil {
		return newStorageError("Tag lookup failed", err)
	}
	if tag == nil {
		return NewBusinessError("TAG_NOT_FOUND", fmt.Sprintf("Tag %d not found", id), ErrTagNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.tagRepo.Delete(txCtx, id)
	})
	if err != nil {
		return newStorageError("Tag deletion failed", err)
	}

	return nil
}
