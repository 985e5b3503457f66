package handle

import (
	"errors"
	"fmt"
)

const (
	// PageSize is the capacity of one wasm linear memory page (64 KiB).
	PageSize = 1 << 16

	// MaxLength is the largest buffer a single handle can describe.
	MaxLength = 1<<16 - 1
)

var (
	// ErrZeroLength reports an attempt to encode or transfer an empty buffer.
	ErrZeroLength = errors.New("zero length")

	// ErrOutOfBounds reports an offset/length pair that cannot be represented
	// or that would extend past the page capacity.
	ErrOutOfBounds = errors.New("out of bounds")
)

// Handle packs an (offset, length) pair into a single scalar: offset in the
// high 16 bits, length in the low 16 bits. It is the only value that crosses
// the host/guest call boundary.
//
// A handle with length zero carries no data; its offset field is a status
// code instead (0 = success). Use [Status] to build one and [Handle.IsStatus]
// to recognize one; data and status handles are structurally identical on
// purpose.
type Handle uint32

// StatusOK is the status handle reporting success.
const StatusOK Handle = 0

// Encode packs offset and length into a Handle. Data handles always describe
// at least one byte, so a zero length fails with ErrZeroLength; an offset or
// length that does not fit in 16 bits, or a range extending past the page,
// fails with ErrOutOfBounds.
func Encode(offset, length uint32) (Handle, error) {
	if length == 0 {
		return 0, fmt.Errorf("encoding data handle: %w", ErrZeroLength)
	}
	if offset > MaxLength || length > MaxLength || offset+length > PageSize {
		return 0, fmt.Errorf("range [%d, %d) does not fit in one page: %w", offset, offset+length, ErrOutOfBounds)
	}
	return Handle(offset<<16 | length), nil
}

// Status builds the degenerate length-zero handle that carries a result or
// error code in place of data.
func Status(code uint16) Handle {
	return Handle(uint32(code) << 16)
}

// FromScalar converts a raw scalar received from the far side of the call
// boundary into a Handle. Nothing guarantees the value was produced by a
// manager; this is the explicit trust-boundary step, so every place a
// foreign scalar enters the system is visible in the code.
func FromScalar(v uint32) Handle {
	return Handle(v)
}

// Scalar returns the wire value of the handle.
func (h Handle) Scalar() uint32 {
	return uint32(h)
}

// Offset returns the start of the referenced range within the page.
func (h Handle) Offset() uint32 {
	return uint32(h) >> 16
}

// Length returns the size of the referenced range. Zero means the handle is
// a status carrier, not a data reference.
func (h Handle) Length() uint32 {
	return uint32(h) & MaxLength
}

// IsStatus reports whether the handle carries a status code instead of data.
func (h Handle) IsStatus() bool {
	return h.Length() == 0
}

// StatusCode returns the code carried by a status handle. Only meaningful
// when IsStatus is true.
func (h Handle) StatusCode() uint16 {
	return uint16(uint32(h) >> 16)
}

func (h Handle) String() string {
	if h.IsStatus() {
		if h == StatusOK {
			return "status(ok)"
		}
		return fmt.Sprintf("status(%d)", h.StatusCode())
	}
	return fmt.Sprintf("data(offset=%d length=%d)", h.Offset(), h.Length())
}
