package refpack

import (
	"bytes"
	"testing"
)

func TestChainMatchFinderRoundTrip(t *testing.T) {
	src := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 50)

	mf := &ChainMatchFinder{SearchLen: 8, Parser: &GreedyParser{}}
	matches := mf.FindMatches(nil, src)

	body := Emit(nil, src, matches)
	got, err := decodeBody(body, len(src))
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("round trip mismatch")
	}
}

func TestChainMatchFinderRespectsMaxDistance(t *testing.T) {
	// The second "distinctivepattern" repeats one 2018 bytes back, beyond
	// MaxDistance, so it must not be matched: no match may be farther back
	// than MaxDistance, and the result must still round-trip.
	gap := bytes.Repeat([]byte("z"), 2000)
	src := append(append([]byte("distinctivepattern"), gap...), []byte("distinctivepattern")...)

	mf := &ChainMatchFinder{SearchLen: 8, MaxDistance: 100, Parser: &GreedyParser{}}
	matches := mf.FindMatches(nil, src)

	for _, m := range matches {
		if m.Distance > 100 {
			t.Fatalf("match with distance %d exceeds MaxDistance 100", m.Distance)
		}
	}

	body := Emit(nil, src, matches)
	got, err := decodeBody(body, len(src))
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("round trip mismatch")
	}
}

func TestChainMatchFinderReset(t *testing.T) {
	mf := &ChainMatchFinder{SearchLen: 4, Parser: &GreedyParser{}}
	mf.FindMatches(nil, []byte("some input to seed internal state"))
	mf.Reset()
	if len(mf.history) != 0 || len(mf.chain) != 0 {
		t.Fatal("Reset did not clear history/chain")
	}

	src := []byte("abcabcabc")
	matches := mf.FindMatches(nil, src)
	body := Emit(nil, src, matches)
	got, err := decodeBody(body, len(src))
	if err != nil {
		t.Fatalf("decodeBody: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatal("round trip mismatch after Reset")
	}
}

func TestExtendMatch(t *testing.T) {
	src := []byte("abcdefgh" + "abcdefgh" + "XYZ")
	end := extendMatch(src, 0, 8)
	if end != 16 {
		t.Errorf("extendMatch found end %d, want 16", end)
	}
}

func TestLoad24(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0xFF}
	got := load24(b)
	want := uint32(0x01) | uint32(0x02)<<8 | uint32(0x03)<<16
	if got != want {
		t.Errorf("load24 = %#x, want %#x", got, want)
	}
}
