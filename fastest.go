package refpack

// FastestMatchFinder is the cheapest of this package's match finders: it
// accepts the first hash-table candidate at each position as soon as it
// reaches the minimum match length, with no profitability check and no
// rescan of positions already consumed by an accepted match. It corresponds
// to refpack's supplemental "fastest" mode: lower ratio than
// FastMatchFinder, but a single unconditional hash probe per byte.
type FastestMatchFinder struct {
	MaxDistance int

	table [maxTableSize]uint32

	history []byte
}

func (q *FastestMatchFinder) Reset() {
	q.table = [maxTableSize]uint32{}
	q.history = q.history[:0]
}

func (q *FastestMatchFinder) FindMatches(dst []Match, src []byte) []Match {
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

	s := nextEmit
	emit := nextEmit
	end := len(src)

	for s < end {
		if s+3 > len(src) {
			s++
			continue
		}
		h := hash3(load24(src[s:]))
		candidate := int(q.table[h&tableMask])
		q.table[h&tableMask] = uint32(s)

		if candidate == 0 || s-candidate > q.MaxDistance || load24(src[s:]) != load24(src[candidate:]) {
			s++
			continue
		}

		matchEnd := extendMatch(src[:end], candidate+3, s+3)
		if matchEnd-s < minMatchLength {
			s++
			continue
		}

		dst = append(dst, Match{
			Unmatched: s - emit,
			Length:    matchEnd - s,
			Distance:  s - candidate,
		})
		s = matchEnd
		emit = s
	}

	if emit < end {
		dst = append(dst, Match{Unmatched: end - emit})
	}
	return dst
}
