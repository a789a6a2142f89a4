package refpack

import (
	"bytes"
	"testing"
)

func TestGreedyParserRoundTrip(t *testing.T) {
	srcs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("ab"),
		[]byte("Hello World! Hello World!"),
		bytes.Repeat([]byte("mississippi"), 30),
	}

	for _, src := range srcs {
		mf := &ChainMatchFinder{SearchLen: 8, Parser: &GreedyParser{}}
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

func TestLongestMatch(t *testing.T) {
	matches := []AbsoluteMatch{
		{Start: 10, End: 13, Match: 0},
		{Start: 10, End: 20, Match: 2},
		{Start: 10, End: 15, Match: 5},
	}
	got := longestMatch(matches)
	want := AbsoluteMatch{Start: 10, End: 20, Match: 2}
	if got != want {
		t.Errorf("longestMatch = %+v, want %+v", got, want)
	}
}

func TestLongestMatchEmpty(t *testing.T) {
	got := longestMatch(nil)
	if got != (AbsoluteMatch{}) {
		t.Errorf("longestMatch(nil) = %+v, want zero value", got)
	}
}
