package product

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Column bounds: quantities are INTEGER, money is NUMERIC(12,2).
const MaxQuantity = math.MaxInt32

// MaxPrice is the exclusive upper bound of any stored amount.
var MaxPrice = decimal.New(1, 10)

type Product struct {
	ID                   int64
	Name                 string
	Description          string
	Price                decimal.Decimal
	AvailabilityQuantity int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ProductRequest is the body of both create and edit.
type ProductRequest struct {
	Name                 string              `json:"name" validate:"required"`
	Description          string              `json:"description" validate:"required"`
	Price                decimal.NullDecimal `json:"price"`
	AvailabilityQuantity int                 `json:"availabilityQuantity" validate:"min=0,max=2147483647"`
}

type ProductResponse struct {
	ProductID            int64           `json:"productId"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	AvailabilityQuantity int             `json:"availabilityQuantity"`
	Price                decimal.Decimal `json:"price"`
}

// StockAdjustment moves Quantity units of one product in or out of stock.
type StockAdjustment struct {
	ProductID int64
	Quantity  int
}
