package gateway

import (
	"errors"
	"fmt"
)

// ErrUnavailable is the single failure kind of the gateway: transport errors,
// non-2xx responses and malformed bodies all match it.
var ErrUnavailable = errors.New("server unavailable")

// Error describes a failed call.
type Error struct {
	Op     string // gateway operation, e.g. "check exercise"
	Status int    // HTTP status, 0 when no response was received
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrUnavailable }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Status
	}
	return 0
}
