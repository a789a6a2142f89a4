// Package refpack implements the RefPack (also known as QFS) byte-stream
// compression format used by EA/Maxis titles from the mid-1990s through the
// late 2000s (Origin titles, The Sims 1-4, The Sims Online, SimCity
// 4-era Maxis packages).
//
// Like many LZ77-derived formats, compression splits into two loosely
// coupled stages: finding repeated byte sequences (a MatchFinder), and
// choosing how to encode the ones that are worth encoding (a Parser) before
// handing the result to Emit, which writes the actual opcode stream.
// ChainMatchFinder takes either of the two parsing strategies
// (GreedyParser, OptimalParser) as its Parser; FastMatchFinder and
// FastestMatchFinder do their own greedy parsing and take no Parser.
package refpack

// A Match is the basic unit of LZ77 compression: a run of bytes copied
// verbatim from the input ("Unmatched" bytes immediately preceding it),
// followed by a back-reference copy of "Length" bytes from "Distance" bytes
// before the current output position. Length is 0 for the final Match in a
// stream, which carries only trailing unmatched bytes.
type Match struct {
	Unmatched int // number of literal bytes since the previous match
	Length    int // number of bytes in the back-reference copy
	Distance  int // how far back to copy from
}

// A MatchFinder performs the LZ77 stage of compression: it looks at the
// whole input and decides which runs of bytes to encode as back-references.
type MatchFinder interface {
	// FindMatches looks for matches in src, appends them to dst, and
	// returns the result.
	FindMatches(dst []Match, src []byte) []Match

	// Reset clears any internal state, preparing the MatchFinder to be
	// reused for a new, unrelated input.
	Reset()
}

// An AbsoluteMatch is like a Match, but it stores indexes into the byte
// stream instead of lengths, which is more convenient for a Searcher to
// produce.
type AbsoluteMatch struct {
	// Start is the index of the first byte of the match.
	Start int

	// End is the index of the byte after the last byte of the match
	// (so End-Start is the match's length).
	End int

	// Match is the index of the earlier occurrence this match copies from
	// (so Start-Match is the match's distance).
	Match int
}

// A Searcher is the source of candidate matches for a Parser. It is a
// lower-level interface than MatchFinder: it only looks for matches at one
// position at a time, leaving the decision of which candidates to keep to
// the Parser. ChainMatchFinder implements Searcher so that it can be driven
// by either GreedyParser or OptimalParser.
type Searcher interface {
	// Search looks for matches at pos and appends them to dst. Every
	// returned match must satisfy Match < Start < End, with Start within
	// [min, max) and End no greater than max.
	Search(dst []AbsoluteMatch, pos, min, max int) []AbsoluteMatch
}

// A Parser chooses which of a Searcher's candidate matches to actually use.
type Parser interface {
	// Parse gets candidate matches from src for the byte range [start,
	// end), decides which ones to keep, and appends the resulting Matches
	// to dst.
	Parse(dst []Match, src Searcher, start, end int) []Match
}
