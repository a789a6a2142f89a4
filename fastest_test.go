package refpack

import (
	"bytes"
	"testing"
)

func TestFastestMatchFinderRoundTrip(t *testing.T) {
	srcs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("Hello World!"),
		bytes.Repeat([]byte("abcabc"), 200),
		bytes.Repeat([]byte("x"), 3000),
	}

	for _, src := range srcs {
		mf := &FastestMatchFinder{}
		matches := mf.FindMatches(nil, src)
		body := Emit(nil, src, matches)
		got, err := decodeBody(body, len(src))
		if err != nil {
			t.Errorf("%q: decodeBody: %v", src, err)
			continue
		}
		if !bytes.Equal(got, src) {
			t.Errorf("round trip mismatch for %q", src)
		}
	}
}

func TestFastestMatchFinderReset(t *testing.T) {
	mf := &FastestMatchFinder{}
	mf.FindMatches(nil, []byte("seed some state into the hash table"))
	mf.Reset()
	if len(mf.history) != 0 {
		t.Fatal("Reset did not clear history")
	}
}
