package refpacktest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestLoadCorpusPlain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.bin")
	want := []byte("some plain fixture bytes")
	if err := os.WriteFile(path, want, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCorpus(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLoadCorpusZstd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.bin.zst")
	want := bytes.Repeat([]byte("compressible fixture data "), 100)

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	compressed := enc.EncodeAll(want, nil)
	enc.Close()

	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadCorpus(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, want) {
		t.Fatal("decompressed corpus does not match original")
	}
}

func TestLZ4RoundTrip(t *testing.T) {
	tests := [][]byte{
		nil,
		[]byte("a"),
		bytes.Repeat([]byte("refpack test fixture "), 50),
	}
	for _, data := range tests {
		got, err := LZ4RoundTrip(data)
		if err != nil {
			t.Errorf("%q: %v", data, err)
			continue
		}
		if !bytes.Equal(got, data) {
			t.Errorf("round trip mismatch for %q", data)
		}
	}
}

func TestSnappyFuzzSeeds(t *testing.T) {
	seeds := SnappyFuzzSeeds()
	if len(seeds) == 0 {
		t.Fatal("no seeds returned")
	}
}
