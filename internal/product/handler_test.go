package product

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductResponse), args.Error(1)
}

func (m *MockService) FetchProducts(ctx context.Context, page, size int) (*utils.PaginatedData, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.PaginatedData), args.Error(1)
}

func (m *MockService) FetchProduct(ctx context.Context, productID int64) (*ProductResponse, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductResponse), args.Error(1)
}

func (m *MockService) EditProduct(ctx context.Context, productID int64, req ProductRequest) (*ProductResponse, error) {
	args := m.Called(ctx, productID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProductResponse), args.Error(1)
}

func (m *MockService) DeleteProduct(ctx context.Context, productID int64) error {
	return m.Called(ctx, productID).Error(0)
}

func (m *MockService) FindProduct(ctx context.Context, productID int64) (*Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockService) UpdateProductQuantityFromOrderItems(ctx context.Context, items []StockAdjustment, deduct bool) error {
	return m.Called(ctx, items, deduct).Error(0)
}

func serve(svc Service, method, target, body string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Route("/api/v1", NewHandler(svc).Register)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) utils.ApiResponse {
	t.Helper()
	var body utils.ApiResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestHandler_Create(t *testing.T) {
	svc := new(MockService)
	svc.On("CreateProduct", mock.Anything, mock.Anything).Return(&ProductResponse{ProductID: 1, Name: "Ball"}, nil)

	w := serve(svc, http.MethodPost, "/api/v1/products/private",
		`{"name":"Ball","description":"Leather","price":19.99,"availabilityQuantity":3}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Product Created Successfully", decode(t, w).Message)
	req := svc.Calls[0].Arguments.Get(1).(ProductRequest)
	assert.True(t, req.Price.Valid)
	assert.Equal(t, "19.99", req.Price.Decimal.String())
}

func TestHandler_CreateRejectsOutOfRangeStock(t *testing.T) {
	svc := new(MockService)

	w := serve(svc, http.MethodPost, "/api/v1/products/private",
		`{"name":"Ball","description":"Leather","price":1,"availabilityQuantity":3000000000}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestHandler_List(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		svc := new(MockService)
		data := utils.NewPaginatedData(0, 10, 0, []ProductResponse{})
		svc.On("FetchProducts", mock.Anything, 1, 10).Return(&data, nil)

		w := serve(svc, http.MethodGet, "/api/v1/products/public", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Products Fetched Successfully", decode(t, w).Message)
	})

	t.Run("Invalid page", func(t *testing.T) {
		svc := new(MockService)
		svc.On("FetchProducts", mock.Anything, 0, 10).Return(nil, utils.ValidatePage(0, 10))

		w := serve(svc, http.MethodGet, "/api/v1/products/public?page=0", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Page cannot be less than or equal to zero", decode(t, w).Message)
	})
}

func TestHandler_Get(t *testing.T) {
	svc := new(MockService)
	svc.On("FetchProduct", mock.Anything, int64(3)).Return(nil, ErrProductNotFound)

	w := serve(svc, http.MethodGet, "/api/v1/products/public/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(svc, http.MethodGet, "/api/v1/products/public/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_EditAndDelete(t *testing.T) {
	svc := new(MockService)
	svc.On("EditProduct", mock.Anything, int64(3), mock.Anything).Return(&ProductResponse{ProductID: 3}, nil)
	svc.On("DeleteProduct", mock.Anything, int64(3)).Return(nil)

	w := serve(svc, http.MethodPut, "/api/v1/products/private/3",
		`{"name":"Ball","description":"Leather","price":"5","availabilityQuantity":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product Edited Successfully", decode(t, w).Message)

	w = serve(svc, http.MethodDelete, "/api/v1/products/private/3", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product Deleted Successfully", decode(t, w).Message)
}
