package header

import (
	"encoding/binary"
	"io"
)

const (
	maxis2FlagLittle           = 0x10
	maxis2FlagLittleRestricted = 0x40
	maxis2FlagBig              = 0x80
)

// maxis2Mode is Maxis without the compressed-length field: a flags byte,
// the magic number, and a big-endian 24- or 32-bit decompressed length
// (32-bit only when the flags byte selects it and the payload needs it).
type maxis2Mode struct{}

// Maxis2 is a 5- or 6-byte header: a flags byte, the magic number, and a
// big-endian decompressed length (24 bits normally, 32 bits when the
// payload exceeds 0xFFFFFF bytes).
var Maxis2 Mode = maxis2Mode{}

func (maxis2Mode) Length(decompressedSize int) int {
	if decompressedSize > 0xFFFFFF {
		return 6
	}
	return 5
}

func (maxis2Mode) Read(r io.Reader) (Header, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Header{}, err
	}

	flags := head[0]
	big := false
	switch flags {
	case maxis2FlagLittle, maxis2FlagLittleRestricted:
	case maxis2FlagBig:
		big = true
	default:
		return Header{}, ErrBadFlags
	}
	if head[1] != Magic {
		return Header{}, ErrBadMagic
	}

	var decompressedLength uint32
	if big {
		var buf [4]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Header{}, err
		}
		decompressedLength = binary.BigEndian.Uint32(buf[:])
	} else {
		var buf [3]byte
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return Header{}, err
		}
		decompressedLength = readUint24BE(buf[:])
	}

	return Header{DecompressedLength: decompressedLength}, nil
}

func (maxis2Mode) Write(w io.Writer, h Header) error {
	big := h.DecompressedLength > 0xFFFFFF

	flags := byte(maxis2FlagLittle)
	if big {
		flags = maxis2FlagBig
	}
	if _, err := w.Write([]byte{flags, Magic}); err != nil {
		return err
	}

	if big {
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], h.DecompressedLength)
		_, err := w.Write(buf[:])
		return err
	}
	var buf [3]byte
	writeUint24BE(buf[:], h.DecompressedLength)
	_, err := w.Write(buf[:])
	return err
}
