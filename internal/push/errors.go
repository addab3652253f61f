package push

import "errors"

var (
	// ErrUnavailable indicates the push gateway is unreachable.
	ErrUnavailable = errors.New("push gateway unavailable")

	// ErrTimeout indicates delivery exceeded the configured timeout.
	ErrTimeout = errors.New("push request timed out")

	// ErrRejected indicates the gateway refused the message (4xx).
	// Rejections are not retried.
	ErrRejected = errors.New("push message rejected")

	// ErrCircuitOpen indicates the breaker is open after repeated failures.
	ErrCircuitOpen = errors.New("push circuit open")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("push retry attempts exhausted")
)
