// Package header implements refpack's handful of header formats: the
// bytes that precede the control-code stream and record how large the
// decompressed (and, in some variants, compressed) payload is.
//
// Every game-specific variant EA/Maxis shipped wraps the same compressed
// body, so a Mode only needs to read and write that one framing; the
// control-code codec in the parent package is shared by all of them.
package header

import (
	"errors"
	"io"
)

// Magic is the single byte every refpack header in this package carries,
// right after its flags byte, to identify the stream as refpack data.
const Magic = 0xFB

// Sentinel errors returned by Mode implementations in this package.
var (
	// ErrBadMagic is returned when a header's magic byte doesn't match Magic.
	ErrBadMagic = errors.New("header: bad magic number")

	// ErrBadFlags is returned when a header's flags byte has bits set
	// that no known encoder would produce.
	ErrBadFlags = errors.New("header: unrecognized flags")
)

// Header is the framing information a Mode reads from or writes around a
// refpack compressed body.
type Header struct {
	// DecompressedLength is the size, in bytes, of the data once
	// decompressed. Every variant carries this.
	DecompressedLength uint32

	// CompressedLength is the size, in bytes, of the compressed body
	// including the header itself. Not every variant records this; nil
	// means the format has no such field (or the encoder chose not to
	// fill it in).
	CompressedLength *uint32
}

// A Mode is one of refpack's header layouts. Mode values are stateless;
// implementations are typically unexported struct types with a single
// exported zero value.
type Mode interface {
	// Length returns the number of bytes this Mode's header occupies for
	// a payload that decompresses to decompressedSize bytes. Some
	// variants use a wider length field once the payload crosses
	// 0xFFFFFF bytes, so the answer can depend on the size.
	Length(decompressedSize int) int

	// Read parses a Header from the start of r.
	Read(r io.Reader) (Header, error)

	// Write encodes h and writes it to w.
	Write(w io.Writer, h Header) error
}
