package engine

import "errors"

// Engine failures are per-operation and recoverable; callers match them with
// errors.Is. Wrapped messages carry the offending id or field.
var (
	ErrValidation      = errors.New("invalid catalog data")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("role not permitted")
	ErrInvalidVariant  = errors.New("size not offered by product")
	ErrInvalidTopping  = errors.New("topping not offered by product")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrAlreadyCanceled = errors.New("order already canceled")
)
