package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/KromDaniel/dfamatch/pkg/dfa"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const sampleText = "abba 01.01.2017 xyzzy 02.02.2017"

func digits() *dfa.Machine {
	m := dfa.New(0, 1)
	m.AddRange(0, '0', '9', 1)
	m.AddRange(1, '0', '9', 1)
	return m
}

func words() *dfa.Machine {
	m := dfa.New(0, 1)
	for _, from := range []dfa.State{0, 1} {
		m.AddRange(from, 'a', 'z', 1)
		m.AddRange(from, 'а', 'я', 1)
	}
	return m
}

// anyRune accepts a single code point from the Basic Multilingual Plane,
// including U+FFFD, which invalid bytes decode to.
func anyRune() *dfa.Machine {
	m := dfa.New(0, 1)
	m.AddRange(0, 0, 0xFFFF, 1)
	return m
}

// chunkReader returns one chunk per Read.
type chunkReader struct {
	chunks []string
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	r.chunks[0] = r.chunks[0][n:]
	if r.chunks[0] == "" {
		r.chunks = r.chunks[1:]
	}
	return n, nil
}

// collect runs FindReader and returns [start, end) pairs relative to the stream.
func collect(t *testing.T, r io.Reader, m *dfa.Machine, cfg Config) [][]int {
	t.Helper()
	var got [][]int
	err := FindReader(r, m, cfg, func(match Match) bool {
		start := int(match.StreamOffset)
		got = append(got, []int{start, start + len(match.Text)})
		return true
	})
	if err != nil {
		t.Fatalf("FindReader() error = %v", err)
	}
	return got
}

func TestFindReaderMatchesFindAllIndex(t *testing.T) {
	tests := []struct {
		name  string
		m     *dfa.Machine
		input string
	}{
		{name: "digits", m: digits(), input: sampleText},
		{name: "digits repeated", m: digits(), input: strings.Repeat(sampleText+"\n", 50)},
		{name: "multibyte words", m: words(), input: "привет world, ёж и ежи: abc"},
		{name: "empty matches", m: dfa.New(0, 0), input: "héllo"},
		{name: "empty input", m: digits(), input: ""},
		{name: "invalid utf8", m: digits(), input: "\xff12\xfe3"},
		{name: "any rune", m: anyRune(), input: "€ héllo мир"},
		{name: "any rune over invalid utf8", m: anyRune(), input: "a\xe2\x82 €\xac\xff"},
	}

	bufferSizes := []int{MinBufferSize, 5, 7, 64, 0}

	for _, tt := range tests {
		want := tt.m.FindAllIndex(tt.input, -1)
		for _, size := range bufferSizes {
			cfg := Config{BufferSize: size}
			t.Run(tt.name, func(t *testing.T) {
				got := collect(t, strings.NewReader(tt.input), tt.m, cfg)
				if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("buffer %d: FindReader() mismatch (-want +got):\n%s", size, diff)
				}

				// one byte per read splits every rune
				got = collect(t, iotest.OneByteReader(strings.NewReader(tt.input)), tt.m, cfg)
				if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("buffer %d, one byte reads: FindReader() mismatch (-want +got):\n%s", size, diff)
				}
			})
		}
	}
}

func TestFindReaderSplitRune(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   [][]int
	}{
		{name: "two bytes then one", chunks: []string{"\xe2\x82", "\xac"}, want: [][]int{{0, 3}}},
		{name: "one byte then two", chunks: []string{"\xe2", "\x82\xac"}, want: [][]int{{0, 3}}},
		{name: "after ascii", chunks: []string{"a\xe2", "\x82", "\xacb"}, want: [][]int{{0, 1}, {1, 4}, {4, 5}}},
		{name: "truncated at eof", chunks: []string{"\xe2\x82"}, want: [][]int{{0, 1}, {1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Join(tt.chunks, "")
			if diff := cmp.Diff(tt.want, anyRune().FindAllIndex(input, -1)); diff != "" {
				t.Fatalf("FindAllIndex() mismatch (-want +got):\n%s", diff)
			}

			got := collect(t, &chunkReader{chunks: append([]string(nil), tt.chunks...)}, anyRune(), Config{BufferSize: 8})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindReader() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompletePrefix(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{input: "", want: 0},
		{input: "abc", want: 3},
		{input: "a€", want: 4},
		{input: "a\xe2", want: 1},
		{input: "a\xe2\x82", want: 1},
		{input: "\xf0\x9f\x98", want: 0},
		{input: "\x82\x82", want: 2},
		{input: "a\xff", want: 2},
	}

	for _, tt := range tests {
		if got := completePrefix([]byte(tt.input)); got != tt.want {
			t.Errorf("completePrefix(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestFindReaderText(t *testing.T) {
	var got []string
	err := FindReader(strings.NewReader(sampleText), digits(), Config{BufferSize: 8}, func(m Match) bool {
		got = append(got, string(m.Text))
		return true
	})
	if err != nil {
		t.Fatalf("FindReader() error = %v", err)
	}
	want := []string{"01", "01", "2017", "02", "02", "2017"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("FindReader() = %q, want %q", got, want)
	}
}

func TestFindReaderStopsEarly(t *testing.T) {
	calls := 0
	err := FindReader(strings.NewReader(sampleText), digits(), DefaultConfig(), func(Match) bool {
		calls++
		return calls < 2
	})
	if err != nil {
		t.Fatalf("FindReader() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("callback called %d times, want 2", calls)
	}
}

func TestFindReaderLeftoverExceeded(t *testing.T) {
	input := "x" + strings.Repeat("7", 100)
	err := FindReader(strings.NewReader(input), digits(), Config{BufferSize: 8, MaxLeftover: 16}, func(Match) bool {
		return true
	})
	var exceeded ErrLeftoverExceeded
	if !errors.As(err, &exceeded) {
		t.Fatalf("FindReader() error = %v, want ErrLeftoverExceeded", err)
	}
	if exceeded.StreamOffset != 1 {
		t.Errorf("ErrLeftoverExceeded.StreamOffset = %d, want 1", exceeded.StreamOffset)
	}

	// unlimited leftover finds the single long match
	got := collect(t, strings.NewReader(input), digits(), Config{BufferSize: 8, MaxLeftover: -1})
	if diff := cmp.Diff([][]int{{1, 101}}, got); diff != "" {
		t.Errorf("FindReader() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindReaderErrors(t *testing.T) {
	errBoom := errors.New("boom")
	r := io.MultiReader(strings.NewReader("12 34 "), iotest.ErrReader(errBoom))
	err := FindReader(r, digits(), Config{BufferSize: 4}, func(Match) bool { return true })
	if !errors.Is(err, errBoom) {
		t.Errorf("FindReader() error = %v, want %v", err, errBoom)
	}

	err = FindReader(strings.NewReader("1"), digits(), Config{BufferSize: 1}, func(Match) bool { return true })
	var tooSmall ErrBufferTooSmall
	if !errors.As(err, &tooSmall) {
		t.Errorf("FindReader() error = %v, want ErrBufferTooSmall", err)
	}
}

func TestFindAllReader(t *testing.T) {
	matches, err := FindAllReader(strings.NewReader(sampleText), digits(), Config{BufferSize: 4}, 3)
	if err != nil {
		t.Fatalf("FindAllReader() error = %v", err)
	}
	want := []struct {
		text   string
		offset int64
	}{
		{"01", 5},
		{"01", 8},
		{"2017", 11},
	}
	if len(matches) != len(want) {
		t.Fatalf("FindAllReader() returned %d matches, want %d", len(matches), len(want))
	}
	for i, w := range want {
		if string(matches[i].Text) != w.text || matches[i].StreamOffset != w.offset {
			t.Errorf("match %d = %q@%d, want %q@%d", i, matches[i].Text, matches[i].StreamOffset, w.text, w.offset)
		}
	}

	none, err := FindAllReader(strings.NewReader(sampleText), digits(), DefaultConfig(), 0)
	if err != nil || none != nil {
		t.Errorf("FindAllReader(n=0) = %v, %v, want nil, nil", none, err)
	}
}
