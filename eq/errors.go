package eq

import "errors"

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("eq: sample rate must be positive")

	// ErrNotPrepared is returned when an operation needs Prepare first.
	ErrNotPrepared = errors.New("eq: processor not prepared")

	// ErrInvalidState is returned when a persisted state blob is rejected.
	ErrInvalidState = errors.New("eq: invalid state")

	// ErrUnknownParameter is returned for parameter names outside the layout.
	ErrUnknownParameter = errors.New("eq: unknown parameter")
)
