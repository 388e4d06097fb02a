// Package stream finds automaton matches in arbitrarily large inputs (files, network
// streams) with bounded memory. Matches are delivered via callbacks to avoid
// buffering results.
//
// Example usage:
//
//	file, _ := os.Open("large.log")
//	defer file.Close()
//
//	err := stream.FindReader(file, machine, stream.Config{
//	    BufferSize: 2 * 1024 * 1024, // 2MB chunks
//	}, func(m stream.Match) bool {
//	    fmt.Printf("Match at offset %d: %s\n", m.StreamOffset, m.Text)
//	    return true // continue
//	})
package stream

import (
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultBufferSize is the read chunk size used when Config.BufferSize is zero.
	DefaultBufferSize = 64 * 1024

	// DefaultMaxLeftover bounds the bytes held for a single match attempt.
	DefaultMaxLeftover = 1024 * 1024

	// MinBufferSize is the smallest chunk that always holds a complete rune.
	MinBufferSize = utf8.UTFMax
)

// Config configures streaming matching behavior.
type Config struct {
	// BufferSize is the chunk size for reading from the io.Reader.
	// Default: 64KB (65536).
	// Larger values reduce syscall overhead but use more memory.
	BufferSize int

	// MaxLeftover limits the bytes kept for one match attempt that has not yet been
	// decided because the walk reached the end of the buffered input. It bounds
	// memory on streams where the machine keeps consuming without stopping.
	//
	// Default: 1MB. Set to -1 for unlimited (use with caution on infinite streams!).
	// Set to 0 to use the default.
	MaxLeftover int
}

// DefaultConfig returns a Config with sensible defaults.
// BufferSize defaults to 64KB.
// MaxLeftover is set to 0, meaning DefaultMaxLeftover will be used.
func DefaultConfig() Config {
	return Config{
		BufferSize:  DefaultBufferSize,
		MaxLeftover: 0,
	}
}

// Match contains match information with stream positioning.
//
// WARNING: Text points into an internal buffer that may be reused after the
// callback returns. You MUST copy any data you need to retain after the callback!
type Match struct {
	// Text is the matched input. Only valid during the callback.
	Text []byte

	// StreamOffset is the absolute byte position of the match start
	// within the entire stream (0-indexed).
	StreamOffset int64

	// ChunkIndex indicates which read delivered the end of the match (0-indexed).
	// Useful for debugging or progress reporting.
	ChunkIndex int
}

// ErrBufferTooSmall is returned when Config.BufferSize is positive but smaller
// than MinBufferSize.
type ErrBufferTooSmall struct {
	Requested int
	Minimum   int
}

func (e ErrBufferTooSmall) Error() string {
	return fmt.Sprintf("stream: buffer size %d too small, minimum is %d", e.Requested, e.Minimum)
}

// ErrLeftoverExceeded is returned when a single undecided match attempt grows
// beyond Config.MaxLeftover bytes.
type ErrLeftoverExceeded struct {
	Limit        int
	StreamOffset int64
}

func (e ErrLeftoverExceeded) Error() string {
	return fmt.Sprintf("stream: match attempt at offset %d exceeds %d bytes", e.StreamOffset, e.Limit)
}

// Validate returns an error if the Config cannot be used.
func (c Config) Validate() error {
	if c.BufferSize > 0 && c.BufferSize < MinBufferSize {
		return ErrBufferTooSmall{Requested: c.BufferSize, Minimum: MinBufferSize}
	}
	if c.BufferSize < 0 {
		return fmt.Errorf("stream: negative buffer size %d", c.BufferSize)
	}
	if c.MaxLeftover < -1 {
		return fmt.Errorf("stream: invalid max leftover %d", c.MaxLeftover)
	}
	return nil
}

// ApplyDefaults returns a Config with defaults applied for any zero values.
func (c Config) ApplyDefaults() Config {
	result := c

	if result.BufferSize == 0 {
		result.BufferSize = DefaultBufferSize
	}
	if result.BufferSize < MinBufferSize {
		result.BufferSize = MinBufferSize
	}
	if result.MaxLeftover == 0 {
		result.MaxLeftover = DefaultMaxLeftover
	}

	return result
}
