// Package refpacktest holds test-only plumbing shared by the refpack
// package's test files: corpus loading, fuzz seed generation, and a
// cross-library sanity check, none of which belong in the library itself.
package refpacktest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// LoadCorpus reads a fixture file from testdata/, transparently
// decompressing it with zstd if its name ends in ".zst". Large corpora
// (e.g. a slice of the Silesia corpus) are checked in zstd-compressed to
// keep the repository small.
func LoadCorpus(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("refpacktest: reading %s: %w", path, err)
	}
	if filepath.Ext(path) != ".zst" {
		return raw, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("refpacktest: creating zstd reader: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("refpacktest: decompressing %s: %w", path, err)
	}
	return out, nil
}

// LZ4RoundTrip compresses and decompresses data through an independent
// LZ77 codec and returns the result, which must equal data. Tests use
// this to sanity-check fixture bytes before trusting them as refpack test
// input: if a fixture can't round-trip through a well-established LZ77
// implementation, it isn't representative of ordinary game assets.
func LZ4RoundTrip(data []byte) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	var c lz4.Compressor
	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("refpacktest: lz4 compress: %w", err)
	}
	if n == 0 {
		// lz4 declined to emit a block because data is incompressible;
		// that says nothing bad about the fixture.
		return append([]byte(nil), data...), nil
	}

	out := make([]byte, len(data))
	if _, err := lz4.UncompressBlock(dst[:n], out); err != nil {
		return nil, fmt.Errorf("refpacktest: lz4 decompress: %w", err)
	}
	return out, nil
}

// SnappyFuzzSeeds returns byte slices derived from Snappy's own block
// encoding of a handful of small literal patterns, suitable for seeding
// Compress/Decompress fuzz targets. Snappy's block format packs literal
// runs and back-reference copies with the same grammar shape any LZ77
// codec shares, so its encoded output reliably exercises boundary cases
// (very short runs, runs that repeat across the whole input) without the
// test needing to construct them by hand.
func SnappyFuzzSeeds() [][]byte {
	patterns := [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte("a"), 3),
		bytes.Repeat([]byte("a"), 300),
		bytes.Repeat([]byte("refpack"), 20),
		[]byte("Hello World!"),
	}

	seeds := make([][]byte, 0, len(patterns)*2)
	for _, p := range patterns {
		seeds = append(seeds, p)
		seeds = append(seeds, snappy.Encode(nil, p))
	}
	return seeds
}
