package tests

import (
	"strings"
	"testing"

	"github.com/amirphl/gift-certificate-system/app/dto"
	"github.com/amirphl/gift-certificate-system/app/services"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/amirphl/gift-certificate-system/repository"
	testingutil "github.com/amirphl/gift-certificate-system/testing"
	"github.com/amirphl/gift-certificate-system/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFlow(testDB *testingutil.TestDB) businessflow.OrderFlow {
	orderRepo := repository.NewOrderRepository(testDB.DB)
	certificateRepo := repository.NewCertificateRepository(testDB.DB)
	userRepo := repository.NewUserRepository(testDB.DB)
	return businessflow.NewOrderFlow(orderRepo, certificateRepo, userRepo, testDB.DB)
}

func TestOrderFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		flow := newOrderFlow(testDB)
		certificateFlow := newCertificateFlow(testDB)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		otherUser, err := fixtures.CreateTestUser()
		require.NoError(t, err)
		certificate, err := fixtures.CreateTestCertificate("Spa Day", 5000, "health")
		require.NoError(t, err)

		t.Run("PurchaseSnapshotsPrice", func(t *testing.T) {
			order, err := flow.PurchaseCertificate(ctx, &dto.PurchaseCertificateRequest{
				UserID:        user.ID,
				CertificateID: certificate.ID,
			}, testMetadata())
			require.NoError(t, err)
			assert.NotZero(t, order.ID)
			assert.Equal(t, uint64(5000), order.PurchaseCost)
			assert.False(t, order.PurchaseTime.IsZero())

			// A later price change must not touch the recorded cost
			_, err = certificateFlow.UpdateCertificate(ctx, certificate.ID, &dto.PatchCertificateRequest{
				Price: utils.ToPtr(uint64(9000)),
			}, testMetadata())
			require.NoError(t, err)

			details, err := flow.GetOrderDetails(ctx, user.ID, order.ID)
			require.NoError(t, err)
			assert.Equal(t, uint64(5000), details.PurchaseCost)
		})

		t.Run("PurchaseUnknownCertificateIsNotFound", func(t *testing.T) {
			_, err := flow.PurchaseCertificate(ctx, &dto.PurchaseCertificateRequest{
				UserID:        user.ID,
				CertificateID: 999999,
			}, testMetadata())
			assert.True(t, businessflow.IsCertificateNotFound(err))
		})

		t.Run("ListingIsScopedToOwner", func(t *testing.T) {
			_, err := flow.PurchaseCertificate(ctx, &dto.PurchaseCertificateRequest{
				UserID:        otherUser.ID,
				CertificateID: certificate.ID,
			}, testMetadata())
			require.NoError(t, err)

			mine, err := flow.GetUserOrders(ctx, user.ID, 1, 20)
			require.NoError(t, err)
			require.Len(t, mine, 1)

			theirs, err := flow.GetUserOrders(ctx, otherUser.ID, 1, 20)
			require.NoError(t, err)
			require.Len(t, theirs, 1)
			assert.NotEqual(t, mine[0].ID, theirs[0].ID)
		})

		t.Run("DetailsOfAnotherUsersOrderIsNotFound", func(t *testing.T) {
			theirs, err := flow.GetUserOrders(ctx, otherUser.ID, 1, 20)
			require.NoError(t, err)
			require.NotEmpty(t, theirs)

			_, err = flow.GetOrderDetails(ctx, user.ID, theirs[0].ID)
			assert.True(t, businessflow.IsOrderNotFound(err))
		})

		t.Run("ExportBuildsWorkbook", func(t *testing.T) {
			name, payload, err := flow.ExportUserOrders(ctx, user.ID)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(name, "orders_user_"))
			assert.True(t, strings.HasSuffix(name, ".xlsx"))
			// XLSX files are zip archives
			require.Greater(t, len(payload), 4)
			assert.Equal(t, []byte{'P', 'K'}, payload[:2])
		})

		return nil
	})
	require.NoError(t, err)
}

func TestLoginFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		userRepo := repository.NewUserRepository(testDB.DB)
		tokenService := services.NewTokenService(
			[]byte("test-secret-key-that-is-long-enough!"),
			"gift-certificates",
			"gift-certificates-api",
			nil,
		)
		flow := businessflow.NewLoginFlow(userRepo, tokenService)
		fixtures := testingutil.NewTestFixtures(testDB)
		ctx := testingutil.CreateTestContext()

		user, err := fixtures.CreateTestUser()
		require.NoError(t, err)

		t.Run("ValidCredentialsIssueTokenPair", func(t *testing.T) {
			resp, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "TestPass123!",
			}, testMetadata())
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Equal(t, "Bearer", resp.TokenType)
			assert.Positive(t, resp.ExpiresIn)

			claims, err := tokenService.ValidateToken(ctx, resp.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.UserID)
		})

		t.Run("WrongPassword", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Username: user.Username,
				Password: "WrongPass123!",
			}, testMetadata())
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("UnknownUsername", func(t *testing.T) {
			_, err := flow.Login(ctx, &dto.LoginRequest{
				Username: "no_such_user",
				Password: "TestPass123!",
			}, testMetadata())
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		return nil
	})
	require.NoError(t, err)
}
