package header

import "io"

// referenceFlags is the fixed flags byte every Reference header carries.
const referenceFlags = 0x10

// referenceMode is the minimal refpack header: a fixed flags byte, the
// magic number, and a big-endian 24-bit decompressed length. No
// compressed-length field, no large-file variant.
type referenceMode struct{}

// Reference is refpack's minimal 5-byte header: flags byte 0x10, the magic
// number, and a big-endian 24-bit decompressed length.
var Reference Mode = referenceMode{}

func (referenceMode) Length(int) int { return 5 }

func (referenceMode) Read(r io.Reader) (Header, error) {
	var buf [5]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}
	if buf[0] != referenceFlags {
		return Header{}, ErrBadFlags
	}
	if buf[1] != Magic {
		return Header{}, ErrBadMagic
	}
	return Header{DecompressedLength: readUint24BE(buf[2:5])}, nil
}

func (referenceMode) Write(w io.Writer, h Header) error {
	var buf [5]byte
	buf[0] = referenceFlags
	buf[1] = Magic
	writeUint24BE(buf[2:5], h.DecompressedLength)
	_, err := w.Write(buf[:])
	return err
}
