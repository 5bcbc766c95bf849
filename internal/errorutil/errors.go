// Package errorutil provides helpers to build sentinel-wrapped errors.
package errorutil

//go:generate go tool errtrace -w .

import (
	"errors"
	"fmt"
)

// Error is a string type that implements the error interface.
type Error string

func (s Error) Error() string { return string(s) }

// NewWrapperError creates or wraps an error with a sentinel error.
// It supports multiple argument patterns:
//   - No args: returns sentinel
//   - error arg: wraps with sentinel (unless already wrapped)
//   - string arg: formats as message with sentinel
//   - string + args: formats with Sprintf then wraps with sentinel
func NewWrapperError(sentinel error, args ...any) error {
	if len(args) == 0 {
		return sentinel //errtrace:skip
	}
	switch v := args[0].(type) {
	case error:
		if errors.Is(v, sentinel) {
			return v //errtrace:skip
		}
		return fmt.Errorf("%w: %w", sentinel, v) //errtrace:skip
	case string:
		if len(args) == 1 {
			return fmt.Errorf("%w: %s", sentinel, v) //errtrace:skip
		}
		return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(v, args[1:]...)) //errtrace:skip
	default:
		return sentinel //errtrace:skip
	}
}

// NewPrefixedError wraps err with sentinel and a formatted prefix,
// so the message reads "sentinel: prefix: err".
func NewPrefixedError(sentinel, err error, format string, args ...any) error {
	if err == nil {
		return NewWrapperError(sentinel, append([]any{format}, args...)...) //errtrace:skip
	}
	return fmt.Errorf("%w: %s: %w", sentinel, fmt.Sprintf(format, args...), err) //errtrace:skip
}
