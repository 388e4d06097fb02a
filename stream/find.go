package stream

import (
	"io"
	"unicode/utf8"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

// FindReader reports every match of m in r to fn, in the same order and with the
// same boundaries as m.FindAllIndex would report for the whole input. Scanning stops
// without error when fn returns false.
//
// Only the bytes of the current, still undecided match attempt are kept between
// reads. An attempt that outgrows cfg.MaxLeftover aborts the scan with
// ErrLeftoverExceeded.
func FindReader(r io.Reader, m *dfa.Machine, cfg Config, fn func(Match) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg = cfg.ApplyDefaults()

	buf := make([]byte, 0, cfg.BufferSize)
	var base int64 // stream offset of buf[0]
	pos := 0
	chunk := -1
	eof := false

	for {
		// Runes split by the read boundary are left for the next chunk.
		limit := len(buf)
		if !eof {
			limit = completePrefix(buf)
		}
		for pos < limit {
			end, state := m.Run(buf[:limit], pos)
			if !eof && end == limit {
				// the walk might continue with the next chunk
				break
			}
			if m.Accepting(state) {
				match := Match{
					Text:         buf[pos:end],
					StreamOffset: base + int64(pos),
					ChunkIndex:   chunk,
				}
				if !fn(match) {
					return nil
				}
				if end > pos {
					pos = end
					continue
				}
			}
			_, size := utf8.DecodeRune(buf[pos:limit])
			pos += size
		}

		if eof {
			return nil
		}

		// Keep only the undecided attempt
		if pos > 0 {
			n := copy(buf, buf[pos:])
			buf = buf[:n]
			base += int64(pos)
			pos = 0
		}
		if cfg.MaxLeftover > 0 && len(buf) > cfg.MaxLeftover {
			return ErrLeftoverExceeded{Limit: cfg.MaxLeftover, StreamOffset: base}
		}

		if cap(buf)-len(buf) < cfg.BufferSize/2+1 {
			grown := make([]byte, len(buf), len(buf)+cfg.BufferSize)
			copy(grown, buf)
			buf = grown
		}

		n, err := r.Read(buf[len(buf):cap(buf)])
		if n > 0 {
			buf = buf[:len(buf)+n]
			chunk++
		}
		if err != nil {
			if err != io.EOF {
				return err
			}
			eof = true
		}
	}
}

// completePrefix returns the length of the longest prefix of b that does not end
// inside an incomplete UTF-8 sequence.
func completePrefix(b []byte) int {
	for i := len(b) - 1; i >= 0 && i > len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if utf8.FullRune(b[i:]) {
				return len(b)
			}
			return i
		}
	}
	return len(b)
}

// FindAllReader collects the matches of m in r, copying each match out of the
// internal buffer. If n >= 0 at most n matches are returned.
func FindAllReader(r io.Reader, m *dfa.Machine, cfg Config, n int) ([]Match, error) {
	if n == 0 {
		return nil, nil
	}
	var result []Match
	err := FindReader(r, m, cfg, func(match Match) bool {
		match.Text = append([]byte(nil), match.Text...)
		result = append(result, match)
		return n < 0 || len(result) < n
	})
	return result, err
}
