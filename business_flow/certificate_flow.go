// Package businessflow contains the core business logic and use cases for certificate workflows
package businessflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateFlow handles the certificate catalog business logic
type CertificateFlow interface {
	CreateCertificate(ctx context.Context, req *dto.CreateCertificateRequest, metadata *ClientMetadata) (*dto.CertificateResponse, error)
	UpdateCertificate(ctx context.Context, id uint, patch *dto.PatchCertificateRequest, metadata *ClientMetadata) (*dto.CertificateResponse, error)
	GetCertificate(ctx context.Context, id uint) (*dto.CertificateResponse, error)
	DeleteCertificate(ctx context.Context, id uint, metadata *ClientMetadata) error
	SearchCertificates(ctx context.Context, req *dto.SearchCertificatesRequest) (*dto.SearchCertificatesResponse, error)
}

// CertificateFlowImpl implements the certificate business flow
type CertificateFlowImpl struct {
	certificateRepo repository.CertificateRepository
	tagRepo         repository.TagRepository
	db              *gorm.DB
}

// NewCertificateFlow creates a new certificate flow instance
func NewCertificateFlow(
	certificateRepo repository.CertificateRepository,
	tagRepo repository.TagRepository,
	db *gorm.DB,
) CertificateFlow {
	return &CertificateFlowImpl{
		certificateRepo: certificateRepo,
		tagRepo:         tagRepo,
		db:              db,
	}
}

// validateCertificate rejects invalid field values before any write happens.
func validateCertificate(name string, price uint64, duration int) error {
	if strings.TrimSpace(name) == "" {
		return ErrCertificateNameRequired
	}
	if price == 0 {
		return ErrCertificatePriceInvalid
	}
	if duration <= 0 {
		return ErrCertificateDurationInvalid
	}
	return nil
}

// findOrCreateTag resolves a tag by name, creating it on first use. A
// concurrent insert of the same name is absorbed by re-reading after a
// duplicate-key failure.
func (s *CertificateFlowImpl) findOrCreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.tagRepo.ByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag != nil {
		return tag, nil
	}

	tag = &models.Tag{Name: name}
	if err := s.tagRepo.Save(ctx, tag); err != nil {
		if repository.IsDuplicateKey(err) {
			return s.tagRepo.ByName(ctx, name)
		}
		return nil, err
	}
	return tag, nil
}

// resolveTags maps tag names onto tag rows, creating missing ones and
// dropping blank or repeated names. Existing tags are fetched in one batch,
// only the missing ones go through find-or-create.
func (s *CertificateFlowImpl) resolveTags(ctx context.Context, names []string) ([]models.Tag, error) {
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	if len(cleaned) == 0 {
		return []models.Tag{}, nil
	}

	existing, err := s.tagRepo.ListByNames(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*models.Tag, len(existing))
	for _, tag := range existing {
		byName[tag.Name] = tag
	}

	tags := make([]models.Tag, 0, len(cleaned))
	for _, name := range cleaned {
		tag := byName[name]
		if tag == nil {
			tag, err = s.findOrCreateTag(ctx, name)
			if err != nil {
				return nil, err
			}
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// CreateCertificate persists a new certificate and assigns the default tag.
// Both writes share one transaction, so a failed tag assignment rolls the
// certificate back instead of leaving it half-created.
func (s *CertificateFlowImpl) CreateCertificate(ctx context.Context, req *dto.CreateCertificateRequest, metadata *ClientMetadata) (*dto.CertificateResponse, error) {
	if err := validateCertificate(req.Name, req.Price, req.Duration); err != nil {
		return nil, NewBusinessError("CERTIFICATE_VALIDATION_FAILED", "Certificate validation failed", err)
	}

	var certificate *models.GiftCertificate

	err := repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		tags, err := s.resolveTags(txCtx, req.Tags)
		if err != nil {
			return err
		}

		certificate = &models.GiftCertificate{
			UUID:        uuid.New(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Duration:    req.Duration,
			Tags:        tags,
		}
		if err := s.certificateRepo.Save(txCtx, certificate); err != nil {
			return err
		}

		return s.assignDefaultTag(txCtx, certificate)
	})
	if err != nil {
		return nil, newStorageError("Certificate creation failed", err)
	}

	created, err := s.certificateRepo.ByID(ctx, certificate.ID)
	if err != nil {
		return nil, newStorageError("Failed to load created certificate", err)
	}

	resp := ToCertificateDTO(*created)
	return &resp, nil
}

// assignDefaultTag attaches the well-known default tag unless the certificate
// already carries it.
func (s *CertificateFlowImpl) assignDefaultTag(ctx context.Context, certificate *models.GiftCertificate) error {
	for _, tag := range certificate.Tags {
		if tag.Name == models.DefaultTagName {
			return nil
		}
	}

	tag, err := s.findOrCreateTag(ctx, models.DefaultTagName)
	if err != nil {
		return err
	}
	return s.tagRepo.AssignToCertificate(ctx, tag.ID, certificate.ID)
}

// mergeCertificate applies merge-patch semantics: present patch fields
// replace the stored value, absent fields keep it.
func mergeCertificate(certificate models.GiftCertificate, patch *dto.PatchCertificateRequest) models.GiftCertificate {
	if patch.Name != nil {
		certificate.Name = *patch.Name
	}
	if patch.Description != nil {
		certificate.Description = *patch.Description
	}
	if patch.Price != nil {
		certificate.Price = *patch.Price
	}
	if patch.Duration != nil {
		certificate.Duration = *patch.Duration
	}
	return certificate
}

// UpdateCertificate applies a partial patch to an existing certificate,
// re-validates the merged result and persists it. Updating an unknown ID is
// an error, not a silent no-op.
func (s *CertificateFlowImpl) UpdateCertificate(ctx context.Context, id uint, patch *dto.PatchCertificateRequest, metadata *ClientMetadata) (*dto.CertificateResponse, error) {
	existing, err := s.certificateRepo.ByID(ctx, id)
	if err != nil {
		return nil, newStorageError("Failed to lookup certificate", err)
	}
	if existing == nil {
		return nil, NewBusinessError("CERTIFICATE_NOT_FOUND", fmt.Sprintf("Certificate %d not found", id), ErrCertificateNotFound)
	}

	merged := mergeCertificate(*existing, patch)
	if err := validateCertificate(merged.Name, merged.Price, merged.Duration); err != nil {
		return nil, NewBusinessError("CERTIFICATE_VALIDATION_FAILED", "Patched certificate is invalid", err)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.certificateRepo.Update(txCtx, &merged); err != nil {
			return err
		}

		if patch.Tags == nil {
			return nil
		}
		tags, err := s.resolveTags(txCtx, patch.Tags)
		if err != nil {
			return err
		}
		return s.certificateRepo.ReplaceTags(txCtx, merged.ID, tags)
	})
	if err != nil {
		return nil, newStorageError("Certificate update failed", err)
	}

	updated, err := s.certificateRepo.ByID(ctx, id)
	if err != nil {
		return nil, newStorageError("Failed to load updated certificate", err)
	}

	resp := ToCertificateDTO(*updated)
	return &resp, nil
}

// GetCertificate returns a certificate by ID, escalating absence to an error.
func (s *CertificateFlowImpl) GetCertificate(ctx context.Context, id uint) (*dto.CertificateResponse, error) {
	certificate, err := s.certificateRepo.ByID(ctx, id)
	if err != nil {
		return nil, newStorageError("Failed to lookup certificate", err)
	}
	if certificate == nil {
		return nil, NewBusinessError("CERTIFICATE_NOT_FOUND", fmt.Sprintf("Certificate %d not found", id), ErrCertificateNotFound)
	}

	resp := ToCertificateDTO(*certificate)
	return &resp, nil
}

// DeleteCertificate removes a certificate and its tag associations.
func (s *CertificateFlowImpl) DeleteCertificate(ctx context.Context, id uint, metadata *ClientMetadata) error {
	existing, err := s.certificateRepo.ByID(ctx, id)
	if err != nil {
		return newStorageError("Failed to lookup certificate", err)
	}
	if existing == nil {
		return NewBusinessError("CERTIFICATE_NOT_FOUND", fmt.Sprintf("Certificate %d not found", id), ErrCertificateNotFound)
	}

	err = repository.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.certificateRepo.Delete(txCtx, id)
	})
	if err != nil {
		return newStorageError("Certificate deletion failed", err)
	}

	return nil
}

// SearchCertificates builds the filter criteria from raw request input and
// returns the matching page. No matches is an empty page, not an error.
func (s *CertificateFlowImpl) SearchCertificates(ctx context.Context, req *dto.SearchCertificatesRequest) (*dto.SearchCertificatesResponse, error) {
	criteria, err := models.NewCertificateSearchCriteria(req.Name, req.Description, req.Tag, req.Tags, req.SortBy, req.SortOrder)
	if err != nil {
		return nil, NewBusinessError("SEARCH_VALIDATION_FAILED", "Invalid sort field", fmt.Errorf("%w: %v", ErrInvalidSortField, err))
	}

	page, err := buildPageRequest(req.Page, req.PageSize)
	if err != nil {
		return nil, NewBusinessError("SEARCH_VALIDATION_FAILED", "Invalid page window", err)
	}

	certificates, err := s.certificateRepo.Search(ctx, criteria, page)
	if err != nil {
		return nil, newStorageError("Certificate search failed", err)
	}

	results := make([]dto.CertificateResponse, 0, len(certificates))
	for _, certificate := range certificates {
		results = append(results, ToCertificateDTO(*certificate))
	}

	return &dto.SearchCertificatesResponse{
		Certificates: results,
		Page:         page.Page,
		PageSize:     page.PageSize,
	}, nil
}
