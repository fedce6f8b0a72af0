package service

import "errors"

// Business-rule failures are returned as sentinel errors; handlers map
// them onto HTTP codes. Infrastructure errors pass through untouched.
var (
	ErrNotFound          = errors.New("not_found")
	ErrForbidden         = errors.New("forbidden")
	ErrInsufficientStock = errors.New("insufficient_stock")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrAlreadyProcessed  = errors.New("already_processed")
	ErrInvalidState      = errors.New("invalid_state")
	ErrInvalidRating     = errors.New("invalid_rating")
	ErrAlreadyReviewed   = errors.New("already_reviewed")
	ErrHasActiveOrders   = errors.New("has_active_orders")
)

// ValidationError marks a rejected request field. Handlers return it as a
// 400 with the message intact; any other unmatched error is infrastructure
// and must not leak its text to the client.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
