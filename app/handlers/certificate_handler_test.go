package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/amirphl/gift-certificate-system/app/dto"
	businessflow "github.com/amirphl/gift-certificate-system/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCertificateFlow records the context it receives so handler-level
// plumbing can be asserted without a database.
type stubCertificateFlow struct {
	lastCtx context.Context
	get     func(id uint) (*dto.CertificateResponse, error)
}

func (s *stubCertificateFlow) CreateCertificate(ctx context.Context, req *dto.CreateCertificateRequest, metadata *businessflow.ClientMetadata) (*dto.CertificateResponse, error) {
	s.lastCtx = ctx
	return &dto.CertificateResponse{ID: 1, Name: req.Name}, nil
}

func (s *stubCertificateFlow) UpdateCertificate(ctx context.Context, id uint, patch *dto.PatchCertificateRequest, metadata *businessflow.ClientMetadata) (*dto.CertificateResponse, error) {
	s.lastCtx = ctx
	return nil, businessflow.NewBusinessError("CERTIFICATE_NOT_FOUND", "Certificate not found", businessflow.ErrCertificateNotFound)
}

func (s *stubCertificateFlow) GetCertificate(ctx context.Context, id uint) (*dto.CertificateResponse, error) {
	s.lastCtx = ctx
	return s.get(id)
}

func (s *stubCertificateFlow) DeleteCertificate(ctx context.Context, id uint, metadata *businessflow.ClientMetadata) error {
	s.lastCtx = ctx
	return nil
}

func (s *stubCertificateFlow) SearchCertificates(ctx context.Context, req *dto.SearchCertificatesRequest) (*dto.SearchCertificatesResponse, error) {
	s.lastCtx = ctx
	return &dto.SearchCertificatesResponse{Certificates: []dto.CertificateResponse{}, Page: req.Page, PageSize: req.PageSize}, nil
}

func newTestApp(flow businessflow.CertificateFlow) *fiber.App {
	handler := NewCertificateHandler(flow)
	app := fiber.New()
	app.Get("/gift-certificates/certificates/:id", handler.Get)
	app.Get("/gift-certificates/certificates", handler.Search)
	return app
}

func TestCertificateHandlerGet(t *testing.T) {
	t.Run("KnownIDReturnsCertificate", func(t *testing.T) {
		flow := &stubCertificateFlow{
			get: func(id uint) (*dto.CertificateResponse, error) {
				return &dto.CertificateResponse{ID: id, Name: "Spa Day"}, nil
			},
		}
		app := newTestApp(flow)

		resp, err := app.Test(httptest.NewRequest("GET", "/gift-certificates/certificates/7", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body dto.APIResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)

		// The flow receives a deadline-bounded context tagged with the endpoint
		require.NotNil(t, flow.lastCtx)
		_, hasDeadline := flow.lastCtx.Deadline()
		assert.True(t, hasDeadline)
		assert.Equal(t, "/gift-certificates/certificates/:id", flow.lastCtx.Value("endpoint"))
	})

	t.Run("UnknownIDMapsToNotFound", func(t *testing.T) {
		flow := &stubCertificateFlow{
			get: func(id uint) (*dto.CertificateResponse, error) {
				return nil, businessflow.NewBusinessError("CERTIFICATE_NOT_FOUND", "Certificate not found", businessflow.ErrCertificateNotFound)
			},
		}
		app := newTestApp(flow)

		resp, err := app.Test(httptest.NewRequest("GET", "/gift-certificates/certificates/999", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body dto.APIResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Success)
		errDetail, ok := body.Error.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "CERTIFICATE_NOT_FOUND", errDetail["code"])
	})

	t.Run("MalformedIDIsRejected", func(t *testing.T) {
		flow := &stubCertificateFlow{get: func(id uint) (*dto.CertificateResponse, error) { return nil, nil }}
		app := newTestApp(flow)

		for _, raw := range []string{"0", "abc", "-3"} {
			resp, err := app.Test(httptest.NewRequest("GET", "/gift-certificates/certificates/"+raw, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "id %q", raw)
		}
	})
}

func TestCertificateHandlerSearch(t *testing.T) {
	t.Run("QueryParametersFlowIntoRequest", func(t *testing.T) {
		var captured *dto.SearchCertificatesRequest
		flow := &stubCertificateFlow{}
		handler := NewCertificateHandler(&searchCapturingFlow{stub: flow, captured: &captured})
		app := fiber.New()
		app.Get("/gift-certificates/certificates", handler.Search)

		resp, err := app.Test(httptest.NewRequest("GET",
			"/gift-certificates/certificates?name=spa&tags=health,%20beauty&sort=price&order=DESC&page=2&page_size=10", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		require.NotNil(t, captured)
		assert.Equal(t, "spa", captured.Name)
		assert.Equal(t, []string{"health", "beauty"}, captured.Tags)
		assert.Equal(t, "price", captured.SortBy)
		assert.Equal(t, "DESC", captured.SortOrder)
		assert.Equal(t, 2, captured.Page)
		assert.Equal(t, 10, captured.PageSize)
	})
}

// searchCapturingFlow wraps the stub to record the search request.
type searchCapturingFlow struct {
	stub     *stubCertificateFlow
	captured **dto.SearchCertificatesRequest
}

func (s *searchCapturingFlow) CreateCertificate(ctx context.Context, req *dto.CreateCertificateRequest, metadata *businessflow.ClientMetadata) (*dto.CertificateResponse, error) {
	return s.stub.CreateCertificate(ctx, req, metadata)
}

func (s *searchCapturingFlow) UpdateCertificate(ctx context.Context, id uint, patch *dto.PatchCertificateRequest, metadata *businessflow.ClientMetadata) (*dto.CertificateResponse, error) {
	return s.stub.UpdateCertificate(ctx, id, patch, metadata)
}

func (s *searchCapturingFlow) GetCertificate(ctx context.Context, id uint) (*dto.CertificateResponse, error) {
	return s.stub.GetCertificate(ctx, id)
}

func (s *searchCapturingFlow) DeleteCertificate(ctx context.Context, id uint, metadata *businessflow.ClientMetadata) error {
	return s.stub.DeleteCertificate(ctx, id, metadata)
}

func (s *searchCapturingFlow) SearchCertificates(ctx context.Context, req *dto.SearchCertificatesRequest) (*dto.SearchCertificatesResponse, error) {
	*s.captured = req
	return s.stub.SearchCertificates(ctx, req)
}
