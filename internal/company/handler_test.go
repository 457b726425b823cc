package company

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
)

type mockService struct {
	createFn func(ctx context.Context, input CreateInput) (*Company, error)
	listFn   func(ctx context.Context) ([]Company, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*Company, error)
	updateFn func(ctx context.Context, id uuid.UUID, input UpdateInput) (*Company, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockService) CreateCompany(ctx context.Context, input CreateInput) (*Company, error) {
	return m.createFn(ctx, input)
}

func (m *mockService) GetCompanies(ctx context.Context) ([]Company, error) {
	return m.listFn(ctx)
}

func (m *mockService) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	return m.getFn(ctx, id)
}

func (m *mockService) UpdateCompany(ctx context.Context, id uuid.UUID, input UpdateInput) (*Company, error) {
	return m.updateFn(ctx, id, input)
}

func (m *mockService) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newTestRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	r := gin.New()
	r.POST("/api/companies", h.Create)
	r.GET("/api/companies", h.List)
	r.GET("/api/companies/:companyId", h.GetByID)
	r.PATCH("/api/companies/:companyId", h.Update)
	r.DELETE("/api/companies/:companyId", h.Remove)
	return r
}

func TestHandlerCreate(t *testing.T) {
	svc := &mockService{
		createFn: func(ctx context.Context, input CreateInput) (*Company, error) {
			require.Equal(t, "Acme", input.Name)
			require.NotNil(t, input.Email)
			require.Equal(t, "contato@acme.com", *input.Email)
			require.Nil(t, input.Phone)
			return &Company{ID: uuid.New(), Name: input.Name, Email: input.Email}, nil
		},
	}
	r := newTestRouter(svc)

	body := `{"name": "  Acme  ", "email": "contato@acme.com"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var got Company
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Acme", got.Name)
}

func TestHandlerCreateMissingName(t *testing.T) {
	r := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message": "name: required field"}`, w.Body.String())
}

func TestHandlerCreateInvalidEmail(t *testing.T) {
	r := newTestRouter(&mockService{})

	body := `{"name": "Acme", "email": "not-an-email"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/companies", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message": "email: invalid e-mail"}`, w.Body.String())
}

func TestHandlerGetByIDBadUUID(t *testing.T) {
	r := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies/not-a-uuid", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message": "companyId: invalid company ID"}`, w.Body.String())
}

func TestHandlerGetByIDNotFound(t *testing.T) {
	svc := &mockService{
		getFn: func(ctx context.Context, id uuid.UUID) (*Company, error) {
			return nil, apperror.NotFound("Company not found")
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message": "Company not found"}`, w.Body.String())
}

func TestHandlerUpdateEmptyBody(t *testing.T) {
	r := newTestRouter(&mockService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/companies/"+uuid.NewString(), strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.JSONEq(t, `{"message": "body: enter at least one field to update"}`, w.Body.String())
}

func TestHandlerUpdateNullEmail(t *testing.T) {
	svc := &mockService{
		updateFn: func(ctx context.Context, id uuid.UUID, input UpdateInput) (*Company, error) {
			require.True(t, input.Email.Present)
			require.True(t, input.Email.Null)
			require.False(t, input.Name.Present)
			return &Company{ID: id, Name: "Acme"}, nil
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/api/companies/"+uuid.NewString(), strings.NewReader(`{"email": null}`))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestHandlerRemove(t *testing.T) {
	svc := &mockService{
		deleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/companies/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Empty(t, w.Body.String())
}

func TestHandlerServerError(t *testing.T) {
	svc := &mockService{
		listFn: func(ctx context.Context) ([]Company, error) {
			return nil, context.DeadlineExceeded
		},
	}
	r := newTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/companies", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"message": "Server error"}`, w.Body.String())
}
