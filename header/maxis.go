package header

import (
	"encoding/binary"
	"io"
)

// maxisFlags is the one flags-byte value every known Maxis-format encoder
// produces. Its meaning is otherwise undocumented.
const maxisFlags = 0x10

// maxisMode is the 9-byte header used by many Maxis and SimEA-era titles:
// a little-endian compressed length, a fixed flags byte, the magic number,
// and a big-endian 24-bit decompressed length.
type maxisMode struct{}

// Maxis is the 9-byte header format used by many Maxis titles: little-
// endian compressed length, a flags byte (always 0x10), the magic number,
// and a big-endian 24-bit decompressed length.
var Maxis Mode = maxisMode{}

func (maxisMode) Length(int) int { return 9 }

func (maxisMode) Read(r io.Reader) (Header, error) {
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, err
	}

	compressedLength := binary.LittleEndian.Uint32(buf[0:4])
	flags := buf[4]
	if flags != maxisFlags {
		return Header{}, ErrBadFlags
	}
	if buf[5] != Magic {
		return Header{}, ErrBadMagic
	}
	decompressedLength := readUint24BE(buf[6:9])

	h := Header{DecompressedLength: decompressedLength}
	if compressedLength != 0 {
		h.CompressedLength = &compressedLength
	}
	return h, nil
}

func (maxisMode) Write(w io.Writer, h Header) error {
	var buf [9]byte
	var compressedLength uint32
	if h.CompressedLength != nil {
		compressedLength = *h.CompressedLength
	}
	binary.LittleEndian.PutUint32(buf[0:4], compressedLength)
	buf[4] = maxisFlags
	buf[5] = Magic

	decompressedLength := h.DecompressedLength
	if decompressedLength > 0xFFFFFF {
		decompressedLength = 0xFFFFFF
	}
	writeUint24BE(buf[6:9], decompressedLength)

	_, err := w.Write(buf[:])
	return err
}

func readUint24BE(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func writeUint24BE(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}
