package service

import "errors"

var (
	// checkout validation
	ErrEmptyCart       = errors.New("cart items are required")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
	ErrProductNotFound = errors.New("product not found")

	// webhook rejection, no writes performed
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMissingUserID    = errors.New("missing user_id in session metadata")

	ErrAlreadySubscribed = errors.New("email is already subscribed")
)
