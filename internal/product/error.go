package product

import "gridiron-be/internal/apperror"

var (
	ErrProductNotFound = apperror.NotFound("Product not found")
	ErrNameRequired    = apperror.InvalidInput("name is required")
	ErrDescRequired    = apperror.InvalidInput("description is required")
	ErrPriceRequired   = apperror.InvalidInput("price is required")
	ErrNegativePrice   = apperror.InvalidInput("price must be at least 0")
	ErrPriceTooLarge   = apperror.InvalidInput("price must be less than 10000000000")
	ErrNegativeStock   = apperror.InvalidInput("availabilityQuantity must be at least 0")
	ErrStockTooLarge   = apperror.InvalidInput("availabilityQuantity must be at most 2147483647")
)
