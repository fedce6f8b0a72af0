package handler

import (
	"errors"
	"net/http"

	"github.com/kluaihom/banana-market-backend/internal/service"
	"github.com/labstack/echo/v4"
)

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorPayload `json:"error"`
}

func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: errorPayload{
			Code:    code,
			Message: message,
		},
	}
}

// writeServiceError maps the service sentinels onto the HTTP surface.
// Validation errors keep their message; anything unmatched is an
// infrastructure failure and surfaces as a generic 500.
func writeServiceError(c echo.Context, err error) error {
	var ve service.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", ve.Error()))
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "not found"))
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, NewErrorResponse("forbidden", "not allowed"))
	case errors.Is(err, service.ErrInsufficientStock):
		return c.JSON(http.StatusConflict, NewErrorResponse("insufficient_stock", "not enough stock available"))
	case errors.Is(err, service.ErrInvalidQuantity):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_quantity", "quantity must be positive"))
	case errors.Is(err, service.ErrAlreadyProcessed):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_processed", "this action is no longer available, please refresh"))
	case errors.Is(err, service.ErrInvalidState):
		return c.JSON(http.StatusConflict, NewErrorResponse("invalid_state", "this action is no longer available, please refresh"))
	case errors.Is(err, service.ErrInvalidRating):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_rating", "rating must be between 1 and 5"))
	case errors.Is(err, service.ErrAlreadyReviewed):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_reviewed", "order already has a review"))
	case errors.Is(err, service.ErrHasActiveOrders):
		return c.JSON(http.StatusConflict, NewErrorResponse("has_active_orders", "product has active orders"))
	default:
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "something went wrong, please try again later"))
	}
}
