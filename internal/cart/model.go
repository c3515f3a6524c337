package cart

import (
	"time"

	"gridiron-be/internal/product"
)

type Cart struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one product line of a cart. Product is fully populated only
// when the item is read through a listing.
type CartItem struct {
	ID        int64
	CartID    int64
	Product   product.Product
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required"`
	Quantity  int   `json:"quantity" validate:"min=1,max=2147483647"`
}

type CartItemResponse struct {
	CartItemID int64                   `json:"cartItemId"`
	Product    product.ProductResponse `json:"product"`
	Quantity   int                     `json:"quantity"`
}

func ToItemResponses(items []CartItem) []CartItemResponse {
	out := make([]CartItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, CartItemResponse{
			CartItemID: it.ID,
			Product:    product.ToResponse(it.Product),
			Quantity:   it.Quantity,
		})
	}
	return out
}
