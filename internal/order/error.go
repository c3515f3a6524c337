package order

import (
	"strings"

	"gridiron-be/internal/apperror"
)

var (
	ErrOrderNotFound      = apperror.NotFound("Order not found")
	ErrCartEmpty          = apperror.NotFound("Cart is empty")
	ErrOrderTotalTooLarge = apperror.InvalidInput("Order total must be less than 10000000000")
)

func invalidStatus(s string) error {
	return apperror.InvalidInputf("Invalid order status: %s", s)
}

func alreadyInStatus(st OrderStatus) error {
	return apperror.InvalidInput("Order is already " + strings.ToLower(string(st)))
}
