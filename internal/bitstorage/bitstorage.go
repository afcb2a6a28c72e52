// Package bitstorage implements a fixed-stride integer array packed into
// 64-bit words, as used for Minecraft chunk palette indices and biome data.
package bitstorage

import (
	"errors"
	"fmt"
)

const wordBits = 64

// Errors returned by Storage's accessors.
var (
	// ErrValueTooBig is returned by Set when v does not fit the stride.
	ErrValueTooBig = errors.New("bitstorage: value exceeds stride width")
	// ErrIndexOutOfBounds is returned by Set when i >= length.
	ErrIndexOutOfBounds = errors.New("bitstorage: index out of bounds")
	// ErrInvalidStride is returned when a stride outside 1..64 is requested.
	ErrInvalidStride = errors.New("bitstorage: stride must be in 1..64")
)

// Storage is a length-slot array of stride-bit unsigned values, packed so
// that no slot straddles a 64-bit word boundary: each word holds
// floor(64/stride) slots.
type Storage struct {
	stride  int
	length  int
	perWord int
	mask    uint64
	data    []uint64
}

// New allocates and zeroes a Storage of length slots, each stride bits wide.
func New(stride, length int) (*Storage, error) {
	if stride < 1 || stride > 64 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStride, stride)
	}
	perWord := wordBits / stride
	words := ceilDiv(length, perWord)
	return &Storage{
		stride:  stride,
		length:  length,
		perWord: perWord,
		mask:    maskFor(stride),
		data:    make([]uint64, words),
	}, nil
}

// Len returns the number of slots.
func (s *Storage) Len() int { return s.length }

// Stride returns the configured bits-per-slot.
func (s *Storage) Stride() int { return s.stride }

// Get returns the value at slot i, and false if i is out of range.
func (s *Storage) Get(i int) (uint64, bool) {
	if i < 0 || i >= s.length {
		return 0, false
	}
	word := i / s.perWord
	offset := (i % s.perWord) * s.stride
	return (s.data[word] >> uint(offset)) & s.mask, true
}

// Set writes v into slot i. It fails with ErrIndexOutOfBounds when
// i >= length, and ErrValueTooBig when v does not fit in stride bits.
func (s *Storage) Set(i int, v uint64) error {
	if i < 0 || i >= s.length {
		return fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfBounds, i, s.length)
	}
	if v > s.mask {
		return fmt.Errorf("%w: value %d, stride %d", ErrValueTooBig, v, s.stride)
	}
	word := i / s.perWord
	offset := uint((i % s.perWord) * s.stride)
	s.data[word] = (s.data[word] &^ (s.mask << offset)) | (v << offset)
	return nil
}

// Resize allocates a new backing store at newStride and copies every slot
// value across via Get/Set, then swaps storage in place. It fails if any
// existing value no longer fits newStride.
func (s *Storage) Resize(newStride int) error {
	next, err := New(newStride, s.length)
	if err != nil {
		return err
	}
	for i := 0; i < s.length; i++ {
		v, _ := s.Get(i)
		if err := next.Set(i, v); err != nil {
			return err
		}
	}
	s.stride = next.stride
	s.perWord = next.perWord
	s.mask = next.mask
	s.data = next.data
	return nil
}

// All iterates the length slots in order, calling fn with each index and
// value. fn returning false stops iteration early.
func (s *Storage) All(fn func(i int, v uint64) bool) {
	for i := 0; i < s.length; i++ {
		v, _ := s.Get(i)
		if !fn(i, v) {
			return
		}
	}
}

func maskFor(stride int) uint64 {
	if stride == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(stride)) - 1
}

func ceilDiv(a, b int) int {
	if a == 0 {
		return 0
	}
	return (a + b - 1) / b
}
