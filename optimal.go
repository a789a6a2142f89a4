package refpack

// OptimalParser implements Parser with a forward dynamic-programming search
// over byte positions: cost[i] holds the fewest output bytes (opcodes plus
// the literal bytes themselves) known to encode src[start:start+i], and
// from[i] records which edge (one
// literal byte, or a copy of some length at the distance Search offered at
// that position) achieves it. Once the whole range has been costed, the
// cheapest path is recovered by walking from[] backward.
//
// Matches are always searched with min == pos, so Searcher never extends a
// candidate backward past the position being costed; that keeps every edge
// anchored at a single position, which the DP relies on.
//
// Each literal byte costs one output byte for itself. On top of that, the
// literal-run cost model charges one overhead byte for every four
// literal bytes beyond the first three (which always ride free, inline in
// the following copy or stop opcode's Literal field) and never credits the
// 112-byte block size Emit is willing to use. That makes this parser
// slightly conservative on very long incompressible runs, in exchange for
// a DP edge cost that only depends on run length modulo 4, not on where a
// run will eventually end.
type OptimalParser struct {
	matchCache []AbsoluteMatch
}

type optimalEdge struct {
	literal  bool
	distance int
	length   int
}

// infinity is an unreachable cost, used to mark DP positions not yet costed.
const infinity = int(^uint(0) >> 1)

func (p *OptimalParser) Parse(dst []Match, src Searcher, start, end int) []Match {
	n := end - start
	if n <= 0 {
		return dst
	}

	cost := make([]int, n+1)
	runLen := make([]int, n+1)
	from := make([]optimalEdge, n+1)
	for i := 1; i <= n; i++ {
		cost[i] = infinity
	}

	matches := p.matchCache[:0]
	for i := 0; i < n; i++ {
		if cost[i] == infinity {
			continue
		}
		pos := start + i

		if c := cost[i] + 1 + literalMarginalCost(runLen[i]); c < cost[i+1] {
			cost[i+1] = c
			runLen[i+1] = runLen[i] + 1
			from[i+1] = optimalEdge{literal: true}
		}

		matches = src.Search(matches[:0], pos, pos, end)
		longest := longestMatch(matches)
		maxLength := longest.End - longest.Start
		if maxLength >= minMatchLength {
			distance := longest.Start - longest.Match

			// Lengths up to one opcode's own reach (LongLengthMax) each
			// get their own edge, costed exactly by the opcode classify
			// picks for that length.
			singleCap := maxLength
			if singleCap > LongLengthMax {
				singleCap = LongLengthMax
			}
			for length := minMatchLength; length <= singleCap; length++ {
				kind, _, ok := classify(distance, length)
				if !ok {
					continue
				}
				addCopyEdge(cost, runLen, from, i, length, distance, opcodeSize(kind))
			}

			// Longer matches can't be encoded in one opcode; Emit splits
			// them into ceil(length/LongLengthMax) Long opcodes at the
			// same distance. Add one edge per split-point length instead
			// of enumerating every intermediate length, so the DP's cost
			// for a long match matches what Emit will actually write
			// without an edge per byte.
			for length := 2 * LongLengthMax; length < maxLength; length += LongLengthMax {
				addCopyEdge(cost, runLen, from, i, length, distance, copyCost(distance, length))
			}
			if maxLength > LongLengthMax {
				addCopyEdge(cost, runLen, from, i, maxLength, distance, copyCost(distance, maxLength))
			}
		}
	}
	p.matchCache = matches[:0]

	path := make([]optimalEdge, 0, n)
	for i := n; i > 0; {
		e := from[i]
		path = append(path, e)
		if e.literal {
			i--
		} else {
			i -= e.length
		}
	}

	var unmatched int
	for i := len(path) - 1; i >= 0; i-- {
		e := path[i]
		if e.literal {
			unmatched++
			continue
		}
		dst = append(dst, Match{Unmatched: unmatched, Length: e.length, Distance: e.distance})
		unmatched = 0
	}
	if unmatched > 0 {
		dst = append(dst, Match{Unmatched: unmatched})
	}

	return dst
}

// literalMarginalCost is the opcode overhead the DP charges for extending a
// pending literal run (currently pending bytes long) by one more byte; Parse
// adds one more for the literal byte itself. See the OptimalParser
// doc comment for the block-size-4 approximation this relies on.
func literalMarginalCost(pending int) int {
	next := pending + 1
	if next <= InlineLiteralMax {
		return 0
	}
	if next%4 == 0 {
		return 1
	}
	return 0
}

// addCopyEdge records a candidate copy edge from DP position i of the given
// length and distance, costed at cost, if it beats whatever edge already
// reaches i+length.
func addCopyEdge(cost []int, runLen []int, from []optimalEdge, i, length, distance, edgeCost int) {
	if edgeCost >= infinity {
		return
	}
	j := i + length
	if c := cost[i] + edgeCost; c < cost[j] {
		cost[j] = c
		runLen[j] = 0
		from[j] = optimalEdge{distance: distance, length: length}
	}
}

// copyCost returns the total opcode bytes Emit uses to encode a single
// back-reference copy of length bytes at distance, including the extra
// opcodes a length beyond one opcode's reach (LongLengthMax) is split into.
// It mirrors Emit's own splitting loop, including the remainder-safety
// adjustment that keeps every split chunk at least minMatchLength bytes, so
// the DP never undercounts a long match's real encoded size.
func copyCost(distance, length int) int {
	total := 0
	for length > 0 {
		kind, maxLength, ok := classify(distance, length)
		if !ok {
			return infinity
		}
		chunk := length
		if chunk > maxLength {
			chunk = maxLength
			if rem := length - chunk; rem > 0 && rem < minMatchLength {
				chunk = length - minMatchLength
			}
		}
		total += opcodeSize(kind)
		length -= chunk
	}
	return total
}

func opcodeSize(kind Kind) int {
	switch kind {
	case CmdShort:
		return 2
	case CmdMedium:
		return 3
	case CmdLong:
		return 4
	default:
		return 0
	}
}
