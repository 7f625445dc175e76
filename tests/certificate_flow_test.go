// Package tests contains test cases for flows and repositories to avoid circular imports
package tests

import (
	"testing"

	"github.com/amirphl/gift-certificate-system/app/dto"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/repository"
	testingutil "github.com/amirphl/gift-certificate-system/testing"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertificateFlow(testDB *testingutil.TestDB) businessflow.CertificateFlow {
	certificateRepo := repository.NewCertificateRepository(testDB.DB)
	tagRepo := repository.NewTagRepository(testDB.DB)
	return businessflow.NewCertificateFlow(certificateRepo, tagRepo, testDB.DB)
}

func testMetadata() *businessflow.ClientMetadata {
	return businessflow.NewClientMetadata("127.0.0.1", "go-test")
}

func TestCertificateLifecycle(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newCertificateFlow(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("CreateAttachesDefaultTag", func(t *testing.T) {
			created, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "Day Spa",
				Description: "A relaxing day at the spa",
				Price:       3000,
				Duration:    30,
				Tags:        []string{"health"},
			}, testMetadata())
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.NotEmpty(t, created.UUID)
			assert.ElementsMatch(t, []string{"health", models.DefaultTagName}, created.Tags)
		})

		t.Run("CreateWithDefaultTagDoesNotDuplicate", func(t *testing.T) {
			created, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "Gym Month",
				Description: "One month of gym access",
				Price:       4500,
				Duration:    31,
				Tags:        []string{models.DefaultTagName, "fitness"},
			}, testMetadata())
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{models.DefaultTagName, "fitness"}, created.Tags)
		})

		t.Run("CreateRejectsInvalidFields", func(t *testing.T) {
			_, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "  ",
				Description: "no name",
				Price:       100,
				Duration:    10,
			}, testMetadata())
			assert.True(t, businessflow.IsCertificateNameRequired(err))

			_, err = flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "Free Pass",
				Description: "zero price",
				Price:       0,
				Duration:    10,
			}, testMetadata())
			assert.True(t, businessflow.IsCertificatePriceInvalid(err))
		})

		t.Run("GetReturnsCreatedCertificate", func(t *testing.T) {
			created, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "Cinema Night",
				Description: "Two tickets",
				Price:       1200,
				Duration:    90,
			}, testMetadata())
			require.NoError(t, err)

			fetched, err := flow.GetCertificate(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, created.Name, fetched.Name)
			assert.Equal(t, created.Price, fetched.Price)
			assert.Equal(t, created.UUID, fetched.UUID)
		})

		t.Run("GetUnknownIDIsNotFound", func(t *testing.T) {
			_, err := flow.GetCertificate(ctx, 999999)
			assert.True(t, businessflow.IsCertificateNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCertificateUpdate(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newCertificateFlow(testDB)
		ctx := testingutil.CreateTestContext()

		created, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
			Name:        "Massage Hour",
			Description: "One hour massage",
			Price:       2000,
			Duration:    60,
			Tags:        []string{"health"},
		}, testMetadata())
		require.NoError(t, err)

		t.Run("PartialPatchKeepsAbsentFields", func(t *testing.T) {
			updated, err := flow.UpdateCertificate(ctx, created.ID, &dto.PatchCertificateRequest{
				Price: utils.ToPtr(uint64(2500)),
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, uint64(2500), updated.Price)
			assert.Equal(t, "Massage Hour", updated.Name)
			assert.Equal(t, "One hour massage", updated.Description)
			assert.NotNil(t, updated.UpdatedAt)
		})

		t.Run("PresentTagListReplacesTagSet", func(t *testing.T) {
			updated, err := flow.UpdateCertificate(ctx, created.ID, &dto.PatchCertificateRequest{
				Tags: []string{"wellness"},
			}, testMetadata())
			require.NoError(t, err)
			assert.Equal(t, []string{"wellness"}, updated.Tags)
		})

		t.Run("PatchedResultIsRevalidated", func(t *testing.T) {
			_, err := flow.UpdateCertificate(ctx, created.ID, &dto.PatchCertificateRequest{
				Name: utils.ToPtr(""),
			}, testMetadata())
			assert.True(t, businessflow.IsCertificateNameRequired(err))
		})

		t.Run("UpdatingUnknownIDIsNotFound", func(t *testing.T) {
			_, err := flow.UpdateCertificate(ctx, 999999, &dto.PatchCertificateRequest{
				Price: utils.ToPtr(uint64(100)),
			}, testMetadata())
			assert.True(t, businessflow.IsCertificateNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCertificateDelete(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newCertificateFlow(testDB)
		ctx := testingutil.CreateTestContext()

		created, err := flow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
			Name:        "Short Lived",
			Description: "To be removed",
			Price:       500,
			Duration:    5,
		}, testMetadata())
		require.NoError(t, err)

		require.NoError(t, flow.DeleteCertificate(ctx, created.ID, testMetadata()))

		_, err = flow.GetCertificate(ctx, created.ID)
		assert.True(t, businessflow.IsCertificateNotFound(err))

		t.Run("DeletingTwiceIsNotFound", func(t *testing.T) {
			err := flow.DeleteCertificate(ctx, created.ID, testMetadata())
			assert.True(t, businessflow.IsCertificateNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestCertificateSearch(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newCertificateFlow(testDB)
		ctx := testingutil.CreateTestContext()

		seed := []dto.CreateCertificateRequest{
			{Name: "Day Spa", Description: "A relaxing day", Price: 3000, Duration: 30, Tags: []string{"health"}},
			{Name: "Spa Retreat", Description: "A weekend of rest", Price: 9000, Duration: 60, Tags: []string{"health", "beauty"}},
			{Name: "Yoga Pass", Description: "Ten yoga sessions", Price: 5000, Duration: 90, Tags: []string{"fitness"}},
			{Name: "Makeover", Description: "Full makeover session", Price: 7000, Duration: 14, Tags: []string{"beauty"}},
		}
		for i := range seed {
			_, err := flow.CreateCertificate(ctx, &seed[i], testMetadata())
			require.NoError(t, err)
		}

		t.Run("NameFragmentWithPriceDescOrder", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Name:      "Spa",
				SortBy:    "price",
				SortOrder: "DESC",
				Page:      1,
				PageSize:  20,
			})
			require.NoError(t, err)
			require.Len(t, result.Certificates, 2)
			assert.Equal(t, "Spa Retreat", result.Certificates[0].Name)
			assert.Equal(t, "Day Spa", result.Certificates[1].Name)
		})

		t.Run("LowercaseOrderSortsAscending", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Name:      "Spa",
				SortBy:    "price",
				SortOrder: "desc",
				Page:      1,
				PageSize:  20,
			})
			require.NoError(t, err)
			require.Len(t, result.Certificates, 2)
			assert.Equal(t, "Day Spa", result.Certificates[0].Name)
		})

		t.Run("MultiTagUnionDeduplicates", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Tags:     []string{"health", "beauty"},
				Page:     1,
				PageSize: 20,
			})
			require.NoError(t, err)
			names := make([]string, 0, len(result.Certificates))
			for _, c := range result.Certificates {
				names = append(names, c.Name)
			}
			// Spa Retreat carries both tags but appears once
			assert.ElementsMatch(t, []string{"Day Spa", "Spa Retreat", "Makeover"}, names)
		})

		t.Run("SingleTagFilter", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Tag:      "fitness",
				Page:     1,
				PageSize: 20,
			})
			require.NoError(t, err)
			require.Len(t, result.Certificates, 1)
			assert.Equal(t, "Yoga Pass", result.Certificates[0].Name)
		})

		t.Run("DescriptionFragment", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Description: "yoga",
				Page:        1,
				PageSize:    20,
			})
			require.NoError(t, err)
			require.Len(t, result.Certificates, 1)
			assert.Equal(t, "Yoga Pass", result.Certificates[0].Name)
		})

		t.Run("NoMatchesIsEmptyPage", func(t *testing.T) {
			result, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Name:     "Helicopter",
				Page:     1,
				PageSize: 20,
			})
			require.NoError(t, err)
			assert.Empty(t, result.Certificates)
		})

		t.Run("Pagination", func(t *testing.T) {
			page1, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				SortBy:   "name",
				Page:     1,
				PageSize: 3,
			})
			require.NoError(t, err)
			require.Len(t, page1.Certificates, 3)

			page2, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				SortBy:   "name",
				Page:     2,
				PageSize: 3,
			})
			require.NoError(t, err)
			require.Len(t, page2.Certificates, 1)
			assert.NotContains(t,
				[]string{page1.Certificates[0].Name, page1.Certificates[1].Name, page1.Certificates[2].Name},
				page2.Certificates[0].Name)
		})

		t.Run("UnknownSortFieldIsRejected", func(t *testing.T) {
			_, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				SortBy:   "duration",
				Page:     1,
				PageSize: 20,
			})
			assert.True(t, businessflow.IsInvalidSortField(err))
		})

		t.Run("PageBelowOneIsRejected", func(t *testing.T) {
			_, err := flow.SearchCertificates(ctx, &dto.SearchCertificatesRequest{
				Page:     0,
				PageSize: 20,
			})
			assert.True(t, businessflow.IsInvalidPage(err))
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTagFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		tagRepo := repository.NewTagRepository(testDB.DB)
		certificateRepo := repository.NewCertificateRepository(testDB.DB)
		flow := businessflow.NewTagFlow(tagRepo, certificateRepo, testDB.DB)
		certificateFlow := newCertificateFlow(testDB)
		ctx := testingutil.CreateTestContext()

		t.Run("CreateAndFetchByName", func(t *testing.T) {
			created, err := flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "seasonal"}, testMetadata())
			require.NoError(t, err)
			assert.NotZero(t, created.ID)

			fetched, err := flow.GetTagByName(ctx, "seasonal")
			require.NoError(t, err)
			assert.Equal(t, created.ID, fetched.ID)
		})

		t.Run("DuplicateNameIsConflict", func(t *testing.T) {
			_, err := flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "unique-tag"}, testMetadata())
			require.NoError(t, err)

			_, err = flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "unique-tag"}, testMetadata())
			assert.True(t, businessflow.IsTagNameExists(err))

			tags, err := flow.ListTags(ctx, 1, models.MaxPageSize)
			require.NoError(t, err)
			count := 0
			for _, tag := range tags {
				if tag.Name == "unique-tag" {
					count++
				}
			}
			assert.Equal(t, 1, count)
		})

		t.Run("BlankNameIsValidationFailure", func(t *testing.T) {
			_, err := flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "   "}, testMetadata())
			assert.True(t, businessflow.IsTagNameRequired(err))
		})

		t.Run("AssignTagToCertificate", func(t *testing.T) {
			certificate, err := certificateFlow.CreateCertificate(ctx, &dto.CreateCertificateRequest{
				Name:        "Book Bundle",
				Description: "Three books",
				Price:       1500,
				Duration:    365,
			}, testMetadata())
			require.NoError(t, err)

			tag, err := flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "reading"}, testMetadata())
			require.NoError(t, err)

			err = flow.AssignTag(ctx, &dto.AssignTagRequest{
				TagID:         tag.ID,
				CertificateID: certificate.ID,
			}, testMetadata())
			require.NoError(t, err)

			fetched, err := certificateFlow.GetCertificate(ctx, certificate.ID)
			require.NoError(t, err)
			assert.Contains(t, fetched.Tags, "reading")
		})

		t.Run("AssignUnknownTagIsNotFound", func(t *testing.T) {
			err := flow.AssignTag(ctx, &dto.AssignTagRequest{
				TagID:         999999,
				CertificateID: 1,
			}, testMetadata())
			assert.True(t, businessflow.IsTagNotFound(err))
		})

		t.Run("DeleteTag", func(t *testing.T) {
			tag, err := flow.CreateTag(ctx, &dto.CreateTagRequest{Name: "doomed"}, testMetadata())
			require.NoError(t, err)

			require.NoError(t, flow.DeleteTag(ctx, tag.ID, testMetadata()))

			_, err = flow.GetTagByName(ctx, "doomed")
			assert.True(t, businessflow.IsTagNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
