package refpack

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/refpack/header"
)

// Mode selects which match-finding and parsing strategy Compress uses.
// Higher modes trade encoding time for a smaller compressed result.
type Mode int

const (
	// ModeFastest does one hash-table probe per byte and accepts the
	// first viable candidate, with no profitability check.
	ModeFastest Mode = iota
	// ModeFast does one hash-table probe per byte and only accepts a
	// candidate when the resulting opcode is smaller than the literal
	// bytes it replaces.
	ModeFast
	// ModeDeep walks a hash chain at each position and greedily takes
	// the longest match found.
	ModeDeep
	// ModeOptimal walks the same hash chain as ModeDeep, but chooses
	// matches with a dynamic-programming search over the whole input
	// instead of greedily.
	ModeOptimal
)

// defaultChainDepth is how many hash-chain entries ModeDeep and
// ModeOptimal examine per position when Options.ChainDepth is 0.
const defaultChainDepth = 16

// Options configures Compress.
type Options struct {
	Mode Mode

	// ChainDepth is how many hash-chain entries to examine per position
	// in ModeDeep or ModeOptimal. Only consulted for those two modes;
	// the default is 16.
	ChainDepth uint16
}

func newMatchFinder(opts Options) MatchFinder {
	switch opts.Mode {
	case ModeFastest:
		return &FastestMatchFinder{}
	case ModeFast:
		return &FastMatchFinder{}
	case ModeOptimal:
		return &ChainMatchFinder{SearchLen: chainDepth(opts), Parser: &OptimalParser{}}
	default:
		return &ChainMatchFinder{SearchLen: chainDepth(opts), Parser: &GreedyParser{}}
	}
}

func chainDepth(opts Options) int {
	if opts.ChainDepth == 0 {
		return defaultChainDepth
	}
	return int(opts.ChainDepth)
}

// checkLength rejects input too large for hdr to represent: 2^32-1
// unconditionally, and 2^24-1 for the two header formats with no
// large-file flag.
func checkLength(n int, hdr header.Mode) error {
	if uint64(n) > 1<<32-1 {
		return ErrLengthTooLarge
	}
	if (hdr == header.Reference || hdr == header.Maxis) && uint64(n) > 1<<24-1 {
		return ErrLengthTooLarge
	}
	return nil
}

// CompressBytes compresses src into a complete refpack stream (header plus
// control codes) using hdr's header format and opts' encoding strategy.
func CompressBytes(src []byte, hdr header.Mode, opts Options) ([]byte, error) {
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}
	if err := checkLength(len(src), hdr); err != nil {
		return nil, err
	}

	mf := newMatchFinder(opts)
	matches := mf.FindMatches(nil, src)
	body := Emit(nil, src, matches)

	totalLength := uint32(hdr.Length(len(src)) + len(body))
	h := header.Header{
		DecompressedLength: uint32(len(src)),
		CompressedLength:   &totalLength,
	}

	var out bytes.Buffer
	out.Grow(int(totalLength))
	if err := hdr.Write(&out, h); err != nil {
		return nil, fmt.Errorf("refpack: writing header: %w", err)
	}
	out.Write(body)
	return out.Bytes(), nil
}

// Compress reads length bytes from r, compresses them, and writes the
// resulting refpack stream to w.
func Compress(length int, r io.Reader, w io.Writer, hdr header.Mode, opts Options) error {
	if length == 0 {
		return ErrEmptyInput
	}

	src := make([]byte, length)
	if _, err := io.ReadFull(r, src); err != nil {
		return fmt.Errorf("refpack: reading input: %w", err)
	}

	out, err := CompressBytes(src, hdr, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("refpack: writing output: %w", err)
	}
	return nil
}
