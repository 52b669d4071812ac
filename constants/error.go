package constants

import "errors"

var (
	// ErrRecordNotFound record not found error
	ErrRecordNotFound = errors.New("record not found")
	// ErrEmptySymbol raised when user input holds no ticker
	ErrEmptySymbol = errors.New("empty symbol")
	// ErrAllProxiesExhausted raised when every relay endpoint failed
	ErrAllProxiesExhausted = errors.New("all proxies exhausted")
	// ErrMalformedPayload raised when a relay answered but the payload is unusable
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrTooManyConsecutiveFailures raised when live updates pause
	ErrTooManyConsecutiveFailures = errors.New("too many consecutive failures")
)
