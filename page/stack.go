package page

import (
	"fmt"

	"github.com/caffeineduck/wasmpage/handle"
)

// Stack is the bump allocator for one page: a single top-of-stack offset
// that only moves forward, plus an explicit rewind for the owner. There is
// no per-allocation free; reclamation is strictly LIFO.
type Stack struct {
	top      uint32
	capacity uint32
}

// NewStack returns an empty stack over capacity bytes.
func NewStack(capacity uint32) *Stack {
	return &Stack{capacity: capacity}
}

// Reserve proposes the offset a length-byte allocation would get. It is a
// pure check, no state changes until Commit. Fails with ErrZeroLength for
// an empty request and ErrOutOfBounds when the range would not fit.
func (s *Stack) Reserve(length uint32) (uint32, error) {
	if length == 0 {
		return 0, fmt.Errorf("reserving buffer: %w", handle.ErrZeroLength)
	}
	// 64-bit math so top+length cannot wrap.
	if uint64(s.top)+uint64(length) > uint64(s.capacity) {
		return 0, fmt.Errorf("reserving %d bytes at offset %d exceeds capacity %d: %w",
			length, s.top, s.capacity, handle.ErrOutOfBounds)
	}
	return s.top, nil
}

// Commit advances the stack past the reserved range. Call only after a
// successful Reserve with the same values; the pair keeps the allocator
// and the stack pointer consistent.
func (s *Stack) Commit(offset, length uint32) {
	s.top = offset + length
}

// Top returns the next free offset.
func (s *Stack) Top() uint32 {
	return s.top
}

// Rewind moves the stack pointer back to a previously recorded top,
// reclaiming every allocation made after that point. Rewinding forward
// fails with ErrOutOfBounds.
func (s *Stack) Rewind(to uint32) error {
	if to > s.top {
		return fmt.Errorf("rewinding to %d past current top %d: %w", to, s.top, handle.ErrOutOfBounds)
	}
	s.top = to
	return nil
}

// Reset reclaims the whole stack.
func (s *Stack) Reset() {
	s.top = 0
}
