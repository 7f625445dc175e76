// Package testing provides test utilities and database setup for testing the gift certificate service
package testing

import (
	"fmt"
	"math/rand"

	"github.com/amirphl/gift-certificate-system/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestUser creates a user whose password is "TestPass123!"
func (tf *TestFixtures) CreateTestUser() (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("TestPass123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UUID:         uuid.New(),
		Username:     fmt.Sprintf("user_%09d", rand.Intn(900000000)+100000000),
		PasswordHash: string(hashedPassword),
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestTag creates a tag with the given name.
func (tf *TestFixtures) CreateTestTag(name string) (*models.Tag, error) {
	tag := &models.Tag{Name: name}
	if err := tf.DB.DB.Create(tag).Error; err != nil {
		return nil, fmt.Errorf("failed to create test tag %s: %w", name, err)
	}
	return tag, nil
}

// CreateTestCertificate creates a certificate with the given name, price and
// tag names. Tags are created on first use.
func (tf *TestFixtures) CreateTestCertificate(name string, price uint64, tagNames ...string) (*models.GiftCertificate, error) {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, tagName := range tagNames {
		var tag models.Tag
		err := tf.DB.DB.Where("name = ?", tagName).First(&tag).Error
		if err != nil {
			tag = models.Tag{Name: tagName}
			if err := tf.DB.DB.Create(&tag).Error; err != nil {
				return nil, fmt.Errorf("failed to create tag %s: %w", tagName, err)
			}
		}
		tags = append(tags, tag)
	}

	certificate := &models.GiftCertificate{
		UUID:        uuid.New(),
		Name:        name,
		Description: fmt.Sprintf("%s description", name),
		Price:       price,
		Duration:    30,
		Tags:        tags,
	}

	if err := tf.DB.DB.Create(certificate).Error; err != nil {
		return nil, fmt.Errorf("failed to create test certificate %s: %w", name, err)
	}

	return certificate, nil
}

// CreateTestOrder creates an order for the given user and certificate with the
// certificate's current price as the purchase cost.
func (tf *TestFixtures) CreateTestOrder(user *models.User, certificate *models.GiftCertificate) (*models.Order, error) {
	order := &models.Order{
		UUID:          uuid.New(),
		UserID:        user.ID,
		CertificateID: certificate.ID,
		PurchaseCost:  certificate.Price,
	}

	if err := tf.DB.DB.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create test order: %w", err)
	}

	return order, nil
}
