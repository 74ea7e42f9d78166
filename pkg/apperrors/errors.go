package apperrors

import "errors"

var (
	ErrEmptyTable        = errors.New("table has no rows")
	ErrUnknownColumn     = errors.New("unknown column")
	ErrOracleUnavailable = errors.New("functional-dependency oracle unavailable")
	ErrExhausted         = errors.New("no candidate key found within the key length ceiling")
)
