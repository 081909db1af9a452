package domain

import "errors"

var (
	// ErrOutOfStock is returned when a product not yet in the cart has no
	// stock left.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrNotEnoughStock is returned when the request exceeds what remains.
	ErrNotEnoughStock = errors.New("not enough stock")

	ErrUnknownProduct  = errors.New("product not in catalog snapshot")
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrEmptyCart blocks leaving product selection with nothing selected.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCustomerRequired blocks leaving customer details without a name.
	ErrCustomerRequired = errors.New("customer name is required")

	// ErrWrongStage is returned for an operation the current stage does not allow.
	ErrWrongStage = errors.New("operation not allowed at this stage")
)
