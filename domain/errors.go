package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable indicates the review source could not be reached or located.
	ErrSourceUnavailable = errors.New("review source unavailable")

	// ErrDecodeFailure indicates a fetched payload could not be decoded.
	ErrDecodeFailure = errors.New("review payload malformed")
)

// DecodeError wraps the cause of a malformed page. It matches ErrDecodeFailure.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", ErrDecodeFailure, e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

func (e *DecodeError) Is(target error) bool { return target == ErrDecodeFailure }

// Error kinds reported in logs.
const (
	KindSourceUnavailable = "source_unavailable"
	KindDecodeFailure     = "decode_failure"
	KindUnknown           = "unknown"
)

// KindOf classifies a fetch error.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrDecodeFailure):
		return KindDecodeFailure
	case errors.Is(err, ErrSourceUnavailable):
		return KindSourceUnavailable
	default:
		return KindUnknown
	}
}
