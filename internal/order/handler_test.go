package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gridiron-be/internal/cart"
	"gridiron-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) CreateOrderForUser(ctx context.Context, userID int64) (*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockService) UpdateOrderStatusByOrderID(ctx context.Context, orderID int64, status string) error {
	return m.Called(ctx, orderID, status).Error(0)
}

func (m *MockService) FetchAllOrders(ctx context.Context, page, size int) (*utils.PaginatedData, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.PaginatedData), args.Error(1)
}

func (m *MockService) FetchOrdersForUser(ctx context.Context, userID int64, page, size int) (*utils.PaginatedData, error) {
	args := m.Called(ctx, userID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.PaginatedData), args.Error(1)
}

func (m *MockService) FetchAllOrderItemsByOrderID(ctx context.Context, orderID int64, page, size int) (*utils.PaginatedData, error) {
	args := m.Called(ctx, orderID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.PaginatedData), args.Error(1)
}

func serve(svc Service, method, target string, userID int64) (int, utils.ApiResponse) {
	r := chi.NewRouter()
	r.Route("/api/v1", NewHandler(svc).Register)

	req := httptest.NewRequest(method, target, nil)
	if userID > 0 {
		req = req.WithContext(utils.SetUserContext(req.Context(), userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body utils.ApiResponse
	_ = json.NewDecoder(w.Body).Decode(&body)
	return w.Code, body
}

func TestHandler_PlaceOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateOrderForUser", mock.Anything, int64(4)).Return(&Order{ID: 1}, nil)

		code, body := serve(svc, http.MethodPost, "/api/v1/orders/customer", 4)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Order Placed Successfully", body.Message)
		assert.Nil(t, body.Data)
	})

	t.Run("Empty cart", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateOrderForUser", mock.Anything, int64(4)).Return(nil, ErrCartEmpty)

		code, body := serve(svc, http.MethodPost, "/api/v1/orders/customer", 4)
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Cart is empty", body.Message)
	})

	t.Run("Busy cart", func(t *testing.T) {
		svc := new(MockService)
		svc.On("CreateOrderForUser", mock.Anything, int64(4)).Return(nil, cart.ErrCartBusy)

		code, _ := serve(svc, http.MethodPost, "/api/v1/orders/customer", 4)
		assert.Equal(t, http.StatusConflict, code)
	})
}

func TestHandler_UpdateStatus(t *testing.T) {
	svc := new(MockService)
	svc.On("UpdateOrderStatusByOrderID", mock.Anything, int64(5), "SHIPPED").Return(nil)
	svc.On("UpdateOrderStatusByOrderID", mock.Anything, int64(6), "SHIPPED").Return(alreadyInStatus(StatusShipped))

	code, body := serve(svc, http.MethodPut, "/api/v1/orders/admin/5?status=SHIPPED", 1)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Order Status Updated Successfully", body.Message)

	code, body = serve(svc, http.MethodPut, "/api/v1/orders/admin/6?status=SHIPPED", 1)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Order is already shipped", body.Message)

	code, _ = serve(svc, http.MethodPut, "/api/v1/orders/admin/5", 1)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHandler_Listings(t *testing.T) {
	svc := new(MockService)
	data := utils.NewPaginatedData(0, 10, 0, []OrderResponse{})
	items := utils.NewPaginatedData(0, 10, 0, []OrderItemResponse{})
	svc.On("FetchAllOrders", mock.Anything, 1, 10).Return(&data, nil)
	svc.On("FetchOrdersForUser", mock.Anything, int64(4), 1, 10).Return(&data, nil)
	svc.On("FetchAllOrderItemsByOrderID", mock.Anything, int64(5), 1, 10).Return(&items, nil)

	code, body := serve(svc, http.MethodGet, "/api/v1/orders/admin", 1)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Fetched All Orders Successfully", body.Message)

	code, _ = serve(svc, http.MethodGet, "/api/v1/orders/customer", 4)
	assert.Equal(t, http.StatusOK, code)

	code, _ = serve(svc, http.MethodGet, "/api/v1/orders/admin/5", 1)
	assert.Equal(t, http.StatusOK, code)

	svc.AssertExpectations(t)
}
