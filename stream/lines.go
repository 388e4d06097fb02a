package stream

import (
	"bytes"
	"io"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
)

const lineBufferSize = 4096

// MatchingLines returns an io.Reader that only outputs the lines of r in which m
// finds at least one match. Lines are delimited by '\n', which is kept in the
// output but never offered to the machine.
//
// Example - print the lines containing a date:
//
//	io.Copy(os.Stdout, stream.MatchingLines(input, dates))
func MatchingLines(r io.Reader, m *dfa.Machine) io.Reader {
	return &lineReader{
		source: r,
		buf:    make([]byte, 0, lineBufferSize),
		fn: func(dst, line []byte) []byte {
			if len(m.FindAllBytes(trimNewline(line), 1)) == 0 {
				return dst
			}
			return append(dst, line...)
		},
	}
}

// MarkMatches returns an io.Reader that copies r, surrounding every non-empty
// match of m with before and after. Matching restarts at each line.
func MarkMatches(r io.Reader, m *dfa.Machine, before, after string) io.Reader {
	return &lineReader{
		source: r,
		buf:    make([]byte, 0, lineBufferSize),
		fn: func(dst, line []byte) []byte {
			text := trimNewline(line)
			last := 0
			for _, loc := range m.FindAllIndex(string(text), -1) {
				if loc[0] == loc[1] {
					continue
				}
				dst = append(dst, text[last:loc[0]]...)
				dst = append(dst, before...)
				dst = append(dst, text[loc[0]:loc[1]]...)
				dst = append(dst, after...)
				last = loc[1]
			}
			return append(dst, line[last:]...)
		},
	}
}

func trimNewline(line []byte) []byte {
	return bytes.TrimSuffix(line, []byte{'\n'})
}

// lineReader feeds each line of source to fn, which appends its output for the
// line to dst.
type lineReader struct {
	source io.Reader
	fn     func(dst, line []byte) []byte

	// Input buffer
	buf       []byte
	bufStart  int
	sourceEOF bool

	// Output not yet returned by Read
	output      []byte
	outputStart int

	err error
}

func (r *lineReader) Read(p []byte) (n int, err error) {
	for r.outputStart == len(r.output) {
		r.output = r.output[:0]
		r.outputStart = 0
		if r.err != nil {
			return 0, r.err
		}
		r.err = r.processMore()
	}

	n = copy(p, r.output[r.outputStart:])
	r.outputStart += n
	return n, nil
}

// processMore reads once from source and converts every complete line. It
// returns io.EOF after the last line has been converted.
func (r *lineReader) processMore() error {
	if r.bufStart > 0 {
		remaining := copy(r.buf, r.buf[r.bufStart:])
		r.buf = r.buf[:remaining]
		r.bufStart = 0
	}

	if !r.sourceEOF {
		if cap(r.buf)-len(r.buf) < lineBufferSize {
			grown := make([]byte, len(r.buf), len(r.buf)+lineBufferSize)
			copy(grown, r.buf)
			r.buf = grown
		}

		n, err := r.source.Read(r.buf[len(r.buf):cap(r.buf)])
		r.buf = r.buf[:len(r.buf)+n]
		if err == io.EOF {
			r.sourceEOF = true
		} else if err != nil {
			return err
		}
	}

	data := r.buf[r.bufStart:]
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		r.output = r.fn(r.output, data[:idx+1])
		data = data[idx+1:]
		r.bufStart += idx + 1
	}

	if r.sourceEOF {
		// Last line without newline
		if len(data) > 0 {
			r.output = r.fn(r.output, data)
			r.bufStart = len(r.buf)
		}
		return io.EOF
	}
	return nil
}
