package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned when the address is empty
	ErrInvalidAddress = errors.New("address is empty")

	// ErrAddressNotFound is returned when the geocoder has no match for the address.
	// It is a negative result, not a failure.
	ErrAddressNotFound = errors.New("address not found")

	// ErrNoPharmacies is returned when the search succeeded with zero matches
	ErrNoPharmacies = errors.New("no pharmacies found")

	// ErrInvalidSearch is returned when search parameters are rejected before any request
	ErrInvalidSearch = errors.New("invalid search parameters")

	// ErrProviderUnavailable marks geocoding transport, status and payload failures
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")

	// ErrServiceUnavailable marks map-feature service transport, status and payload failures
	ErrServiceUnavailable = errors.New("place search service unavailable")
)

// UpstreamError describes a failed call to an external service.
// errors.Is matches it against its Kind (ErrProviderUnavailable or ErrServiceUnavailable).
type UpstreamError struct {
	Kind       error
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s error: %s (status %d)", e.Service, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s error: %s", e.Service, msg)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}
