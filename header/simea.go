package header

import (
	"encoding/binary"
	"io"
)

// simEAFlags packs the three documented bits of a SimEA header's flags
// byte. The remaining bits are reserved; any encoder would leave them 0.
type simEAFlags struct {
	bigDecompressed bool
	restricted      bool
	compressedSize  bool
}

const simEAReservedBits = 0b0010_1110

func readSimEAFlags(b byte) (simEAFlags, error) {
	if b&simEAReservedBits > 0 {
		return simEAFlags{}, ErrBadFlags
	}
	return simEAFlags{
		bigDecompressed: b&0b1000_0000 > 0,
		restricted:      b&0b0100_0000 > 0,
		compressedSize:  b&0b0000_0001 > 0,
	}, nil
}

func (f simEAFlags) encode() byte {
	var b byte
	if f.bigDecompressed {
		b |= 0b1000_0000
	}
	if f.restricted {
		b |= 0b0100_0000
	}
	if f.compressedSize {
		b |= 0b0000_0001
	}
	// Bit 4 is a fixed marker every known encoder sets; its purpose is
	// undocumented.
	b |= 0b0001_0000
	return b
}

// simEAMode is like Maxis2, but with a richer (and stricter) flags byte:
// reserved bits must be 0, and the flags record whether the decompressed
// length is 24 or 32 bits wide rather than inferring it from a fixed set
// of flag values.
type simEAMode struct{}

// SimEA is the 5- or 6-byte header used by SimEA-era titles: a flags byte,
// the magic number, and a big-endian decompressed length (24 or 32 bits,
// selected by the flags byte's high bit).
var SimEA Mode = simEAMode{}

func (simEAMode) Length(decompressedSize int) int {
	if decompressedSize > 0xFFFFFF {
		return 6
	}
	return 5
}

func (simEAMode) Read(r io.Reader) (Header, error) {
	var head [2]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return Header{}, err
	}

	flags, err := readSimEAFlags(head[0])
	if err != nil {
		return Header{}, err
	}
	if head[1] != Magic {
		return Header{}, ErrBadMagic
	}

	var decompressedLength uint32
	if flags.bigDecompressed {
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

func (simEAMode) Write(w io.Writer, h Header) error {
	big := h.DecompressedLength > 0xFFFFFF

	flags := simEAFlags{bigDecompressed: big}
	if _, err := w.Write([]byte{flags.encode(), Magic}); err != nil {
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
