package menu

import "restobot/pkg/response"

var (
	ErrDishNotFound    = response.NewError(404, "dish not found")
	ErrUnknownCategory = response.NewError(404, "unknown category")
	ErrInvalidPrice    = response.NewError(400, "max_price must not be negative")
)
