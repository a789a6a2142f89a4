package refpack

import (
	"fmt"
	"io"

	"github.com/andybalholm/refpack/header"
)

// Decompress reads a refpack stream (header plus control codes) from r and
// writes the decompressed bytes to w.
func Decompress(r io.Reader, w io.Writer, hdr header.Mode) error {
	h, err := hdr.Read(r)
	if err != nil {
		return fmt.Errorf("refpack: reading header: %w", err)
	}

	buf := make([]byte, h.DecompressedLength)
	n, err := decompressInto(buf, r)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return ErrLengthMismatch
	}

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("refpack: writing output: %w", err)
	}
	return nil
}

// DecompressBytes decompresses a refpack stream held entirely in memory.
func DecompressBytes(src []byte, hdr header.Mode) ([]byte, error) {
	r := byteReader{b: src}
	h, err := hdr.Read(&r)
	if err != nil {
		return nil, fmt.Errorf("refpack: reading header: %w", err)
	}

	buf := make([]byte, h.DecompressedLength)
	n, err := decompressInto(buf, &r)
	if err != nil {
		return nil, err
	}
	if n != len(buf) {
		return nil, ErrLengthMismatch
	}
	return buf, nil
}

// decompressInto runs the control-code interpreter, writing decoded bytes
// into buf starting at position 0, and returns the number of bytes written.
func decompressInto(buf []byte, r io.Reader) (int, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &byteReaderWrapper{r: r}
	}

	var pos int
	for {
		cmd, err := DecodeCommand(br)
		if err != nil {
			return pos, fmt.Errorf("refpack: reading control code at output offset %d: %w", pos, err)
		}

		switch cmd.Kind {
		case CmdShort, CmdMedium, CmdLong:
			if cmd.Literal > 0 {
				pos, err = copyLiteral(buf, br, pos, cmd.Literal)
				if err != nil {
					return pos, err
				}
			}
			pos, err = copyBackref(buf, pos, cmd.Distance, cmd.Length)
			if err != nil {
				return pos, err
			}

		case CmdLiteral:
			pos, err = copyLiteral(buf, br, pos, cmd.Literal)
			if err != nil {
				return pos, err
			}

		case CmdStop:
			pos, err = copyLiteral(buf, br, pos, cmd.Literal)
			if err != nil {
				return pos, err
			}
			return pos, nil
		}
	}
}

// copyLiteral reads n literal bytes from r into buf starting at pos.
func copyLiteral(buf []byte, r io.ByteReader, pos, n int) (int, error) {
	if pos+n > len(buf) {
		return pos, ErrLengthMismatch
	}
	for i := 0; i < n; i++ {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return pos, fmt.Errorf("refpack: reading literal byte at output offset %d: %w", pos+i, err)
		}
		buf[pos+i] = b
	}
	return pos + n, nil
}

// copyBackref appends a length-byte run copied from distance bytes before
// pos. The copy is done one byte at a time, since a match may legitimately
// overlap itself (distance < length), in which case bytes written earlier
// in this very call are read again later in it.
func copyBackref(buf []byte, pos, distance, length int) (int, error) {
	if distance <= 0 || distance > pos {
		return pos, ErrBadDistance
	}
	if pos+length > len(buf) {
		return pos, ErrLengthMismatch
	}
	src := pos - distance
	for i := 0; i < length; i++ {
		buf[pos+i] = buf[src+i]
	}
	return pos + length, nil
}

// byteReaderWrapper adapts an io.Reader without ReadByte into an
// io.ByteReader, for callers that pass in something other than a bufio
// Reader or the in-memory byteReader below.
type byteReaderWrapper struct {
	r io.Reader
}

func (w *byteReaderWrapper) ReadByte() (byte, error) {
	var b [1]byte
	_, err := io.ReadFull(w.r, b[:])
	return b[0], err
}

// byteReader is a minimal io.Reader + io.ByteReader over an in-memory slice,
// used by the Bytes-suffixed convenience wrappers so they never touch
// bufio.
type byteReader struct {
	b   []byte
	pos int
}

func (r *byteReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	n := copy(p, r.b[r.pos:])
	r.pos += n
	return n, nil
}

func (r *byteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.b) {
		return 0, io.EOF
	}
	b := r.b[r.pos]
	r.pos++
	return b, nil
}
