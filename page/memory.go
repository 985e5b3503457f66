package page

import (
	"github.com/caffeineduck/wasmpage/handle"
)

// Memory is the raw linear memory a manager works against. It is a
// structural subset of wazero's api.Memory, so the memory exported by an
// instantiated guest module satisfies it directly; Buffer provides a native
// implementation for hosts that own the region themselves.
type Memory interface {
	// Size returns the currently backed size in bytes.
	Size() uint32
	// Read returns a view of byteCount bytes at offset, or false when the
	// range is outside the backed region. The view aliases the memory;
	// callers that need an independent buffer must copy.
	Read(offset, byteCount uint32) ([]byte, bool)
	// Write copies v into memory at offset, or returns false when the
	// range is outside the backed region.
	Write(offset uint32, v []byte) bool
	// Grow extends the memory by deltaPages 64 KiB pages, returning the
	// previous size in pages, or false when the limit would be exceeded.
	Grow(deltaPages uint32) (previousPages uint32, ok bool)
}

// Buffer is an in-process Memory: a byte slice that starts at a given
// number of pages and grows page-at-a-time up to a limit.
type Buffer struct {
	data     []byte
	maxPages uint32
}

// BufferOption configures a Buffer at creation time.
type BufferOption func(*Buffer)

// WithMaxPages caps how far the buffer may grow. The default is one page,
// matching the single-page design of the manager.
func WithMaxPages(pages uint32) BufferOption {
	return func(b *Buffer) {
		b.maxPages = pages
	}
}

// NewBuffer returns a buffer backed by pages 64 KiB pages.
func NewBuffer(pages uint32, opts ...BufferOption) *Buffer {
	b := &Buffer{
		data:     make([]byte, pages*handle.PageSize),
		maxPages: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.maxPages < pages {
		b.maxPages = pages
	}
	return b
}

// Size returns the currently backed size in bytes.
func (b *Buffer) Size() uint32 {
	return uint32(len(b.data))
}

// Read returns a view of byteCount bytes at offset, or false when the range
// is outside the backed region.
func (b *Buffer) Read(offset, byteCount uint32) ([]byte, bool) {
	if !b.inRange(offset, byteCount) {
		return nil, false
	}
	return b.data[offset : offset+byteCount : offset+byteCount], true
}

// Write copies v into the buffer at offset, or returns false when the range
// is outside the backed region.
func (b *Buffer) Write(offset uint32, v []byte) bool {
	if !b.inRange(offset, uint32(len(v))) {
		return false
	}
	copy(b.data[offset:], v)
	return true
}

// Grow extends the buffer by deltaPages pages up to the configured limit,
// returning the previous size in pages.
func (b *Buffer) Grow(deltaPages uint32) (uint32, bool) {
	currentPages := b.Size() / handle.PageSize
	if uint64(currentPages)+uint64(deltaPages) > uint64(b.maxPages) {
		return 0, false
	}
	b.data = append(b.data, make([]byte, deltaPages*handle.PageSize)...)
	return currentPages, true
}

func (b *Buffer) inRange(offset, byteCount uint32) bool {
	return uint64(offset)+uint64(byteCount) <= uint64(len(b.data))
}
