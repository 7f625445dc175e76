package tests

import (
	"testing"

	"github.com/amirphl/gift-certificate-system/models"
	"github.com/amirphl/gift-certificate-system/repository"
	testingutil "github.com/amirphl/gift-certificate-system/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryList(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		userRepo := repository.NewUserRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		created := make([]uint, 0, 5)
		for i := 0; i < 5; i++ {
			user, err := fixtures.CreateTestUser()
			require.NoError(t, err)
			created = append(created, user.ID)
		}

		t.Run("PagesAreDisjointAndOrdered", func(t *testing.T) {
			page1, err := userRepo.List(ctx, models.PageRequest{Page: 1, PageSize: 3})
			require.NoError(t, err)
			require.Len(t, page1, 3)

			page2, err := userRepo.List(ctx, models.PageRequest{Page: 2, PageSize: 3})
			require.NoError(t, err)
			require.Len(t, page2, 2)

			ids := make(map[uint]bool, 5)
			var prev uint
			for _, user := range append(page1, page2...) {
				assert.Greater(t, user.ID, prev)
				prev = user.ID
				ids[user.ID] = true
			}
			for _, id := range created {
				assert.True(t, ids[id], "user %d missing from pages", id)
			}
		})

		t.Run("WindowPastEndIsEmpty", func(t *testing.T) {
			page, err := userRepo.List(ctx, models.PageRequest{Page: 3, PageSize: 5})
			require.NoError(t, err)
			assert.Empty(t, page)
		})

		return nil
	})
	require.NoError(t, err)
}

func TestTagRepositoryListByNames(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		tagRepo := repository.NewTagRepository(testDB.DB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		for _, name := range []string{"health", "beauty", "fitness"} {
			_, err := fixtures.CreateTestTag(name)
			require.NoError(t, err)
		}

		t.Run("ReturnsOnlyExistingNames", func(t *testing.T) {
			tags, err := tagRepo.ListByNames(ctx, []string{"health", "beauty", "no-such-tag"})
			require.NoError(t, err)

			names := make([]string, 0, len(tags))
			for _, tag := range tags {
				names = append(names, tag.Name)
			}
			assert.ElementsMatch(t, []string{"health", "beauty"}, names)
		})

		t.Run("EmptyInputYieldsEmptyResult", func(t *testing.T) {
			tags, err := tagRepo.ListByNames(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, tags)
		})

		return nil
	})
	require.NoError(t, err)
}
