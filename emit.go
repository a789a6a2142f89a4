package refpack

// classify picks the cheapest opcode that can represent a back-reference of
// the given distance and length, and the longest length that opcode can
// carry in one command (match_length may need to be split across several
// copy commands to reach it). ok is false when no opcode can encode a
// back-reference of this length at this distance (the distance is beyond
// LongDistanceMax, or the length is below the minimum of every opcode that
// reaches the distance).
func classify(distance, length int) (kind Kind, maxLength int, ok bool) {
	switch {
	case distance > LongDistanceMax:
		return 0, 0, false

	case length >= LongLengthMin:
		switch {
		case length > MediumLengthMax || distance > MediumDistanceMax:
			return CmdLong, LongLengthMax, true
		case length > ShortLengthMax || distance > ShortDistanceMax:
			return CmdMedium, MediumLengthMax, true
		default:
			return CmdShort, ShortLengthMax, true
		}

	case distance <= ShortDistanceMax:
		return CmdShort, ShortLengthMax, true

	case distance <= MediumDistanceMax:
		if length >= MediumLengthMin {
			return CmdMedium, MediumLengthMax, true
		}
		return 0, 0, false

	default:
		return 0, 0, false
	}
}

// Emit encodes matches (as produced by a Parser, over the bytes in src) into
// refpack's control-code stream, appending the result to dst.
//
// Literal runs are queued rather than written immediately: a run's length
// is split into a multiple-of-4 "bulk" part, written as one or more
// CmdLiteral opcodes, and a 0-3 byte remainder, which rides inline in the
// Literal field of whichever copy or stop opcode follows it.
func Emit(dst, src []byte, matches []Match) []byte {
	var pos int
	stopped := false

	for _, m := range matches {
		stopped = false
		run := src[pos : pos+m.Unmatched]
		pos += m.Unmatched

		inline := len(run) % 4
		dst = emitLiteralBlocks(dst, run[:len(run)-inline])
		tail := run[len(run)-inline:]

		if m.Length == 0 {
			dst = Command{Kind: CmdStop, Literal: len(tail)}.Encode(dst)
			dst = append(dst, tail...)
			stopped = true
			continue
		}

		distance, length := m.Distance, m.Length
		for length > 0 {
			kind, maxLength, ok := classify(distance, length)
			if !ok {
				panic("refpack: MatchFinder produced an unencodable match")
			}
			chunk := length
			if chunk > maxLength {
				chunk = maxLength
				// Splitting off exactly maxLength here can leave a
				// remainder of 1 or 2 bytes, too short for any opcode
				// to carry on its own (and, at a short distance,
				// classify would wrongly call it valid). Shrink this
				// chunk so the remainder is never less than
				// minMatchLength.
				if rem := length - chunk; rem > 0 && rem < minMatchLength {
					chunk = length - minMatchLength
				}
			}

			literal := 0
			if len(tail) > 0 {
				literal = len(tail)
			}
			dst = Command{Kind: kind, Distance: distance, Length: chunk, Literal: literal}.Encode(dst)
			if len(tail) > 0 {
				dst = append(dst, tail...)
				tail = nil
			}

			pos += chunk
			length -= chunk
		}
	}

	if !stopped {
		// Any bytes of src past the last match (all of src, when matches
		// is empty) are flushed as a final literal run.
		var tail []byte
		if pos < len(src) {
			run := src[pos:]
			inline := len(run) % 4
			dst = emitLiteralBlocks(dst, run[:len(run)-inline])
			tail = run[len(run)-inline:]
		}
		dst = Command{Kind: CmdStop, Literal: len(tail)}.Encode(dst)
		dst = append(dst, tail...)
	}

	return dst
}

func emitLiteralBlocks(dst, buf []byte) []byte {
	for len(buf) > 0 {
		n := len(buf)
		if n > LiteralRunMax {
			n = LiteralRunMax
		}
		dst = Command{Kind: CmdLiteral, Literal: n}.Encode(dst)
		dst = append(dst, buf[:n]...)
		buf = buf[n:]
	}
	return dst
}
