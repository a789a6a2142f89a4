package refpack

import "errors"

// Sentinel errors returned by this package. Callers should use errors.Is
// to check for them, since they are frequently wrapped with positional
// context via fmt.Errorf.
var (
	// ErrEmptyInput is returned by Compress when the declared length is 0.
	ErrEmptyInput = errors.New("refpack: input is empty")

	// ErrBadDistance is returned when a decoded back-reference's distance
	// is 0 or greater than the number of bytes decoded so far.
	ErrBadDistance = errors.New("refpack: back-reference distance out of range")

	// ErrMalformedStream is reserved for an opcode whose bits take a value
	// no encoder would produce. Every byte pattern of the current opcode
	// layout decodes to a valid Command, so nothing in this package
	// returns it.
	ErrMalformedStream = errors.New("refpack: malformed control-code stream")

	// ErrLengthMismatch is returned when the decoded payload length
	// disagrees with the header's declared decompressed length.
	ErrLengthMismatch = errors.New("refpack: decompressed length does not match header")

	// ErrLengthTooLarge is returned when Compress is given an uncompressed
	// length that the chosen header format cannot represent.
	ErrLengthTooLarge = errors.New("refpack: uncompressed length exceeds format limit")
)
