package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrInvalidResponse is returned when no well-formed fenced JSON block
	// could be recovered from the model's reply.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrRemoteStatus is returned when the remote service answered with a
	// non-success HTTP status.
	ErrRemoteStatus = errors.New("remote service returned an error status")

	// ErrTransportFailure is returned for errors talking to the remote
	// service: connection failures, timeouts, or an unreadable response body.
	ErrTransportFailure = errors.New("transport failure calling language model")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
