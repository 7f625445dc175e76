package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CertificateRepositoryImpl implements the CertificateRepository interface
type CertificateRepositoryImpl struct {
	*BaseRepository[models.GiftCertificate, models.CertificateFilter]
}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository(db *gorm.DB) CertificateRepository {
	return &CertificateRepositoryImpl{
		BaseRepository: NewBaseRepository[models.GiftCertificate, models.CertificateFilter](db),
	}
}

// ByID retrieves a certificate with its tags, or nil when the row is absent.
// A missing row is not an error at this layer.
func (r *CertificateRepositoryImpl) ByID(ctx context.Context, id uint) (*models.GiftCertificate, error) {
	db := r.getDB(ctx)

	var certificate models.GiftCertificate
	err := db.Preload("Tags").Last(&certificate, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find certificate by ID %d: %w", id, err)
	}

	return &certificate, nil
}

// applyFilter applies equality filter criteria to a GORM query
func (r *CertificateRepositoryImpl) applyFilter(query *gorm.DB, filter models.CertificateFilter) *gorm.DB {
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.UUID != nil {
		query = query.Where("uuid = ?", *filter.UUID)
	}
	if filter.Name != nil {
		query = query.Where("name = ?", *filter.Name)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at > ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore)
	}
	return query
}

// ByFilter retrieves certificates based on filter criteria
func (r *CertificateRepositoryImpl) ByFilter(ctx context.Context, filter models.CertificateFilter, orderBy string, limit, offset int) ([]*models.GiftCertificate, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.GiftCertificate{}), filter)

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

	var rows []*models.GiftCertificate
	if err := query.Preload("Tags").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find certificates by filter: %w", err)
	}
	return rows, nil
}

// Count returns the number of certificates matching the filter
func (r *CertificateRepositoryImpl) Count(ctx context.Context, filter models.CertificateFilter) (int64, error) {
	db := r.getDB(ctx)
	query := r.applyFilter(db.Model(&models.GiftCertificate{}), filter)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count certificates: %w", err)
	}
	return count, nil
}

// Exists checks if any certificate matching the filter exists
func (r *CertificateRepositoryImpl) Exists(ctx context.Context, filter models.CertificateFilter) (bool, error) {
	c, err := r.Count(ctx, filter)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// applySearch translates the search criteria into query predicates. Every
// present criterion contributes one AND condition. Substring patterns are
// bound as parameters, never concatenated into the statement. Tag conditions
// join through certificate_tags and deduplicate on the root entity, because a
// certificate carrying several matching tags must still appear once.
func (r *CertificateRepositoryImpl) applySearch(query *gorm.DB, criteria models.CertificateSearchCriteria) *gorm.DB {
	switch {
	case criteria.HasTagNames():
		query = query.
			Distinct("certificates.*").
			Joins("JOIN certificate_tags ON certificate_tags.gift_certificate_id = certificates.id").
			Joins("JOIN tags ON tags.id = certificate_tags.tag_id").
			Where("tags.name IN ?", criteria.TagNames)
	case criteria.HasTagName():
		query = query.
			Distinct("certificates.*").
			Joins("JOIN certificate_tags ON certificate_tags.gift_certificate_id = certificates.id").
			Joins("JOIN tags ON tags.id = certificate_tags.tag_id").
			Where("tags.name = ?", *criteria.TagName)
	}

	if criteria.HasPartOfName() {
		query = query.Where("certificates.name LIKE ?", "%"+*criteria.PartOfName+"%")
	}
	if criteria.HasPartOfDescription() {
		query = query.Where("certificates.description LIKE ?", "%"+*criteria.PartOfDescription+"%")
	}

	if criteria.HasSort() {
		// SortBy is whitelisted at construction time; the column reference is
		// never raw caller input.
		query = query.Order(fmt.Sprintf("certificates.%s %s", criteria.SortBy.Column(), criteria.SortOrder))
	}

	return query
}

// Search returns one page of certificates matching the criteria.
func (r *CertificateRepositoryImpl) Search(ctx context.Context, criteria models.CertificateSearchCriteria, page models.PageRequest) ([]*models.GiftCertificate, error) {
	db := r.getDB(ctx)

	query := r.applySearch(db.Model(&models.GiftCertificate{}), criteria).
		Limit(page.Limit()).
		Offset(page.Offset())

	var rows []*models.GiftCertificate
	if err := query.Preload("Tags").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search certificates: %w", err)
	}
	return rows, nil
}

// List returns one page of the unfiltered catalog.
func (r *CertificateRepositoryImpl) List(ctx context.Context, page models.PageRequest) ([]*models.GiftCertificate, error) {
	return r.Search(ctx, models.CertificateSearchCriteria{}, page)
}

// Update persists a modified certificate. The caller is expected to have
// loaded the row first; updating an unknown ID is surfaced by the flow layer.
func (r *CertificateRepositoryImpl) Update(ctx context.Context, certificate *models.GiftCertificate) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	certificate.UpdatedAt = utils.UTCNowPtr()

	err = db.Omit(clause.Associations).Save(certificate).Error
	if err != nil {
		return fmt.Errorf("failed to update certificate %d: %w", certificate.ID, err)
	}

	return nil
}

// ReplaceTags swaps the tag set attached to a certificate.
func (r *CertificateRepositoryImpl) ReplaceTags(ctx context.Context, certificateID uint, tags []models.Tag) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	certificate := models.GiftCertificate{ID: certificateID}
	err = db.Model(&certificate).Association("Tags").Replace(tags)
	if err != nil {
		err = fmt.Errorf("failed to replace tags of certificate %d: %w", certificateID, err)
		return err
	}

	return nil
}

// Delete removes a certificate and its tag associations.
func (r *CertificateRepositoryImpl) Delete(ctx context.Context, id uint) error {
	db, shouldCommit, err := r.getDBForWrite(ctx)
	if err != nil {
		return err
	}

	if shouldCommit {
		defer func() {
			if err != nil {
				db.Rollback()
			} else {
				db.Commit()
			}
		}()
	}

	err = db.Select(clause.Associations).Delete(&models.GiftCertificate{ID: id}).Error
	if err != nil {
		return fmt.Errorf("failed to delete certificate %d: %w", id, err)
	}

	return nil
}
