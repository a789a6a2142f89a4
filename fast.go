package refpack

// FastMatchFinder is a MatchFinder with an GreedyParser inlined: at each
// position it looks up one candidate in a 3-byte-prefix hash table and
// accepts it only if the resulting opcode is actually worth its size
// (worthwhile, below). It corresponds to refpack's "fast"
// compression mode: a single pass, no backtracking, no hash chain.
type FastMatchFinder struct {
	// MaxDistance is the maximum distance (in bytes) to look back for a
	// match. The default is the largest distance refpack's Long opcode
	// can express.
	MaxDistance int

	table [maxTableSize]uint32

	history []byte
}

func (q *FastMatchFinder) Reset() {
	q.table = [maxTableSize]uint32{}
	q.history = q.history[:0]
}

// FindMatches looks for matches in src, appends them to dst, and returns dst.
func (q *FastMatchFinder) FindMatches(dst []Match, src []byte) []Match {
	if q.MaxDistance == 0 {
		q.MaxDistance = maxWindow
	}
	var nextEmit int

	if len(q.history) > maxHistory {
		delta := len(q.history) - minHistory
		copy(q.history, q.history[delta:])
		q.history = q.history[:minHistory]

		for i, v := range q.table {
			newV := int(v) - delta
			if newV < 0 {
				newV = 0
			}
			q.table[i] = uint32(newV)
		}
	}

	nextEmit = len(q.history)
	q.history = append(q.history, src...)
	src = q.history

	return q.parse(dst, nextEmit, len(src))
}

func (q *FastMatchFinder) parse(dst []Match, start, end int) []Match {
	s := start
	nextEmit := start

	for s < end {
		m := q.search(s, nextEmit, end)
		if m.End-m.Start < minMatchLength {
			s++
			continue
		}

		dst = append(dst, Match{
			Unmatched: m.Start - nextEmit,
			Length:    m.End - m.Start,
			Distance:  m.Start - m.Match,
		})
		nextEmit = m.End
		s = nextEmit
	}

	if nextEmit < end {
		dst = append(dst, Match{Unmatched: end - nextEmit})
	}
	return dst
}

// search returns the candidate at pos, filtered by worthwhile so
// that FastMatchFinder never emits a back-reference that costs more bytes
// than it saves.
func (q *FastMatchFinder) search(pos, min, max int) AbsoluteMatch {
	if pos+3 > len(q.history) {
		return AbsoluteMatch{}
	}
	src := q.history

	h := hash3(load24(src[pos:]))
	candidate := int(q.table[h&tableMask])
	q.table[h&tableMask] = uint32(pos)

	if candidate == 0 || pos-candidate > q.MaxDistance {
		return AbsoluteMatch{}
	}
	if load24(src[pos:]) != load24(src[candidate:]) {
		return AbsoluteMatch{}
	}

	start := pos
	match := candidate
	end := extendMatch(src[:max], match+3, start+3)
	for start > min && match > 0 && src[start-1] == src[match-1] {
		start--
		match--
	}

	if !worthwhile(end-start, start-match) {
		return AbsoluteMatch{}
	}

	return AbsoluteMatch{Start: start, End: end, Match: match}
}

// worthwhile reports whether a match of the given length and distance
// encodes to fewer bytes than it represents, i.e. whether it is cheaper
// than leaving those bytes as literals.
func worthwhile(length, distance int) bool {
	kind, _, ok := classify(distance, length)
	if !ok {
		return false
	}
	var opcodeBytes int
	switch kind {
	case CmdShort:
		opcodeBytes = 2
	case CmdMedium:
		opcodeBytes = 3
	case CmdLong:
		opcodeBytes = 4
	}
	return length > opcodeBytes
}
