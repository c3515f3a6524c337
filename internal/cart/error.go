package cart

import "gridiron-be/internal/apperror"

var (
	ErrCartNotFound     = apperror.NotFound("Cart not found")
	ErrInvalidQuantity  = apperror.InvalidInput("quantity must be at least 1")
	ErrQuantityTooLarge = apperror.InvalidInput("quantity in cart must be at most 2147483647")
	ErrCartBusy         = apperror.Conflict("Cart is busy, try again")
)

func productNotFound(id int64) error {
	return apperror.NotFoundf("Product with id %d not found", id)
}

func itemNotFound(id int64) error {
	return apperror.NotFoundf("Item with id %d not found", id)
}
