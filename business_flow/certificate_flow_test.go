package businessflow

import (
	"testing"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCertificate(t *testing.T) {
	t.Run("ValidInput", func(t *testing.T) {
		assert.NoError(t, validateCertificate("Spa Day", 5000, 30))
	})

	t.Run("BlankName", func(t *testing.T) {
		assert.ErrorIs(t, validateCertificate("   ", 5000, 30), ErrCertificateNameRequired)
	})

	t.Run("ZeroPrice", func(t *testing.T) {
		assert.ErrorIs(t, validateCertificate("Spa Day", 0, 30), ErrCertificatePriceInvalid)
	})

	t.Run("NonPositiveDuration", func(t *testing.T) {
		assert.ErrorIs(t, validateCertificate("Spa Day", 5000, 0), ErrCertificateDurationInvalid)
		assert.ErrorIs(t, validateCertificate("Spa Day", 5000, -1), ErrCertificateDurationInvalid)
	})
}

func TestMergeCertificate(t *testing.T) {
	base := models.GiftCertificate{
		Name:        "Spa Day",
		Description: "A relaxing day",
		Price:       5000,
		Duration:    30,
	}

	t.Run("AbsentFieldsKeepValues", func(t *testing.T) {
		merged := mergeCertificate(base, &dto.PatchCertificateRequest{})
		assert.Equal(t, base, merged)
	})

	t.Run("PresentFieldsReplaceValues", func(t *testing.T) {
		merged := mergeCertificate(base, &dto.PatchCertificateRequest{
			Name:  utils.ToPtr("Deluxe Spa Day"),
			Price: utils.ToPtr(uint64(7500)),
		})
		assert.Equal(t, "Deluxe Spa Day", merged.Name)
		assert.Equal(t, uint64(7500), merged.Price)
		assert.Equal(t, base.Description, merged.Description)
		assert.Equal(t, base.Duration, merged.Duration)
	})

	t.Run("ExplicitEmptyDescriptionWins", func(t *testing.T) {
		merged := mergeCertificate(base, &dto.PatchCertificateRequest{
			Description: utils.ToPtr(""),
		})
		assert.Equal(t, "", merged.Description)
	})
}

func TestBuildPageRequest(t *testing.T) {
	t.Run("ValidWindow", func(t *testing.T) {
		page, err := buildPageRequest(2, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, page.Offset())
	})

	t.Run("PageBelowOne", func(t *testing.T) {
		_, err := buildPageRequest(0, 10)
		assert.ErrorIs(t, err, ErrInvalidPage)
	})

	t.Run("PageSizeOutOfBounds", func(t *testing.T) {
		_, err := buildPageRequest(1, 0)
		assert.ErrorIs(t, err, ErrInvalidPageSize)

		_, err = buildPageRequest(1, models.MaxPageSize+1)
		assert.ErrorIs(t, err, ErrInvalidPageSize)
	})
}

func TestErrorKinds(t *testing.T) {
	t.Run("ValidationGroup", func(t *testing.T) {
		assert.True(t, IsValidationError(NewBusinessError("X", "x", ErrCertificateNameRequired)))
		assert.True(t, IsValidationError(NewBusinessError("X", "x", ErrInvalidSortField)))
		assert.False(t, IsValidationError(NewBusinessError("X", "x", ErrCertificateNotFound)))
	})

	t.Run("NotFoundGroup", func(t *testing.T) {
		assert.True(t, IsNotFound(NewBusinessError("X", "x", ErrCertificateNotFound)))
		assert.True(t, IsNotFound(NewBusinessError("X", "x", ErrOrderNotFound)))
		assert.False(t, IsNotFound(NewBusinessError("X", "x", ErrTagNameExists)))
	})

	t.Run("StorageFailureKeepsCause", func(t *testing.T) {
		err := newStorageError("Save failed", assert.AnError)
		assert.True(t, IsStorageFailure(err))
		assert.Contains(t, err.Error(), "Save failed")
	})
}
