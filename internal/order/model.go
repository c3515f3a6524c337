package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCanceled  OrderStatus = "CANCELED"
)

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusShipped, StatusDelivered, StatusCanceled:
		return st, nil
	}
	return "", invalidStatus(s)
}

type Order struct {
	ID            int64
	UserID        int64
	TotalPrice    decimal.Decimal
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CanceledAt    *time.Time
	NumberOfItems int
	Items         []OrderItem
}

// OrderItem is a price snapshot of one cart line. ProductID is nil once the
// product has been deleted from the catalog.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   *int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type OrderResponse struct {
	OrderID       int64           `json:"orderId"`
	UserID        int64           `json:"userId"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        OrderStatus     `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
	ShippedAt     *time.Time      `json:"shippedAt"`
	DeliveredAt   *time.Time      `json:"deliveredAt"`
	CancelledAt   *time.Time      `json:"cancelledAt"`
	NumberOfItems int             `json:"numberOfItems"`
}

type OrderItemResponse struct {
	OrderItemID int64           `json:"orderItemId"`
	ProductID   *int64          `json:"productId"`
	ProductName string          `json:"productName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

func ToResponses(orders []Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, OrderResponse{
			OrderID:       o.ID,
			UserID:        o.UserID,
			TotalPrice:    o.TotalPrice,
			Status:        o.Status,
			CreatedAt:     o.CreatedAt,
			ShippedAt:     o.ShippedAt,
			DeliveredAt:   o.DeliveredAt,
			CancelledAt:   o.CanceledAt,
			NumberOfItems: o.NumberOfItems,
		})
	}
	return out
}

func ToItemResponses(items []OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OrderItemResponse{
			OrderItemID: it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return out
}
