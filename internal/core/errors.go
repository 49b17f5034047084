package core

import "errors"

var (
	// ErrNoPlan is returned by a plan provider that produced nothing usable.
	ErrNoPlan = errors.New("plan provider returned no plan")
	// ErrMalformedPlan marks provider output that could not be decoded.
	ErrMalformedPlan = errors.New("malformed plan")
	// ErrUnknownAction marks an action type the executor does not handle.
	ErrUnknownAction = errors.New("unknown action type")
	// ErrInternal is surfaced to transports when a turn failed unexpectedly.
	ErrInternal = errors.New("internal error")

	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrNotFound          = errors.New("not found")
)
