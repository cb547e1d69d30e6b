package models

import (
	"errors"
)

var (
	ErrValidation      = errors.New("models: validation failed")
	ErrPackageNotFound = errors.New("models: package not found")
	ErrOrderNotFound   = errors.New("models: order not found")
	ErrTokenNotFound   = errors.New("models: download token not found")
	ErrItemNotFound    = errors.New("models: content item not found")
	ErrPaymentRejected = errors.New("models: payment rejected")
)
