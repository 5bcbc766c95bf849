package urn

// Error is a sentinel error of the urn package.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrInvalidFormat is returned for any input that violates the URN syntax.
	// All construction errors wrap it.
	ErrInvalidFormat Error = "invalid URN format"
	// ErrRequiresEscaping is wrapped into [ErrInvalidFormat] when an NSS given in [Escaped] mode
	// contains characters that must be percent-encoded.
	ErrRequiresEscaping Error = "requires escaping"
	// ErrDuplicateKey is returned when a resolution or query key appears twice.
	ErrDuplicateKey Error = "duplicate key"
)
