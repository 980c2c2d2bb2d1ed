package domain

import "errors"

var (
	// ErrCustomerNotFound: the requested customer_id is absent from the catalog.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrPolicyNotFound: the requested policy_id is absent from the catalog.
	ErrPolicyNotFound = errors.New("policy not found")

	ErrPromotionNotFound = errors.New("promotion not found")

	// ErrInsufficientData: the historical corpus is empty, so feature
	// transforms cannot be fitted. Fatal at warm-up.
	ErrInsufficientData = errors.New("insufficient data to fit transforms")

	// ErrScorerUnavailable: the model artifact could not be loaded or the
	// scoring call failed. Always surfaced, never masked by a fallback
	// ranking.
	ErrScorerUnavailable = errors.New("relevance scorer unavailable")

	ErrCartEmpty = errors.New("cart is empty")
)
