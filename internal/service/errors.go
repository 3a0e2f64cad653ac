package service

import "errors"

// Domain errors surfaced by the service layer. All are recoverable at the
// caller: the operation simply did not apply. Handlers match them with
// errors.Is and translate to HTTP statuses; they are never wrapped into a
// generic not-found.
var (
	ErrTableOccupied       = errors.New("table already has an active order")
	ErrOrderNotActive      = errors.New("order is not active")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrUnknownProduct      = errors.New("product is unknown or inactive")
	ErrLineNotFound        = errors.New("order line not found")
	ErrNothingToPay        = errors.New("order total is zero")
	ErrInsufficientPayment = errors.New("amount tendered is less than the order total")
	ErrCategoryInUse       = errors.New("category is referenced by products")
	ErrValidation          = errors.New("validation failed")
	ErrNotFound            = errors.New("not found")
	ErrInvalidTransition   = errors.New("invalid table state transition")
)
