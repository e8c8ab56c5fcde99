package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSellerNotFound  = errors.New("seller not found")
	ErrProductNotFound = errors.New("product not found")
	ErrMalformedReply  = errors.New("malformed reply")
	ErrInvalidInput    = errors.New("invalid input")
)

// ShapeMismatchError reports tensor dimensions that disagree with what an
// operation expects.
type ShapeMismatchError struct {
	Op       string
	What     string
	Expected int
	Actual   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: shape mismatch in %s: expected %d, got %d", e.Op, e.What, e.Expected, e.Actual)
}

// UpstreamError wraps a failed call to an external model service.
type UpstreamError struct {
	Service    string
	StatusCode int
	Detail     string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("%s upstream failure", e.Service)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
