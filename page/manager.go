package page

import (
	"fmt"

	"github.com/caffeineduck/wasmpage/handle"
)

// Manager owns one page's worth of linear memory and the stack allocator
// inside it. It is the only producer of data handles: every allocation goes
// through its bounds checks before a handle ever exists.
//
// A manager assumes exclusive ownership of its memory and stack pointer.
// Hosts driving several guest instances give each one its own manager;
// sharing one across goroutines needs a mutex at the boundary, never inside
// the allocator.
type Manager struct {
	stack *Stack
	mem   Memory
}

// NewManager returns a manager over mem with an empty stack. The addressable
// capacity is fixed at one page; mem may start smaller and is grown on
// demand up to that limit.
func NewManager(mem Memory) *Manager {
	return &Manager{
		stack: NewStack(handle.PageSize),
		mem:   mem,
	}
}

// Allocate reserves length bytes on top of the stack without writing
// anything, for the pattern where the other side of the boundary fills the
// range itself, e.g. a guest writing its return value into a host-provided
// slot. The caller fills the range through Memory before handing the handle
// across.
func (m *Manager) Allocate(length uint32) (handle.Handle, error) {
	if length > handle.MaxLength {
		return 0, fmt.Errorf("allocating %d bytes exceeds max handle length %d: %w",
			length, handle.MaxLength, handle.ErrOutOfBounds)
	}
	offset, err := m.stack.Reserve(length)
	if err != nil {
		return 0, err
	}
	if err := m.ensureBacked(offset + length); err != nil {
		return 0, err
	}
	m.stack.Commit(offset, length)
	return handle.Encode(offset, length)
}

// Write pushes data onto the stack and returns the handle referencing it.
// This is the common path for handing a buffer across the boundary.
func (m *Manager) Write(data []byte) (handle.Handle, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("writing empty buffer: %w", handle.ErrZeroLength)
	}
	if len(data) > handle.MaxLength {
		return 0, fmt.Errorf("writing %d bytes exceeds max handle length %d: %w",
			len(data), handle.MaxLength, handle.ErrOutOfBounds)
	}
	length := uint32(len(data))
	offset, err := m.stack.Reserve(length)
	if err != nil {
		return 0, err
	}
	if err := m.ensureBacked(offset + length); err != nil {
		return 0, err
	}
	if !m.mem.Write(offset, data) {
		return 0, fmt.Errorf("writing %d bytes at offset %d outside backed memory: %w",
			length, offset, handle.ErrOutOfBounds)
	}
	m.stack.Commit(offset, length)
	return handle.Encode(offset, length)
}

// Read copies the range referenced by h out of the page and returns it as a
// fresh buffer, never aliasing the page. Handles are forgeable scalars, so
// the range is re-validated even though a manager-produced handle is always
// in bounds: a status handle fails with ErrZeroLength, a range outside the
// backed memory with ErrOutOfBounds.
func (m *Manager) Read(h handle.Handle) ([]byte, error) {
	if h.IsStatus() {
		return nil, fmt.Errorf("handle carries status code %d, not data: %w",
			h.StatusCode(), handle.ErrZeroLength)
	}
	offset, length := h.Offset(), h.Length()
	view, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, fmt.Errorf("range [%d, %d) outside backed memory: %w",
			offset, offset+length, handle.ErrOutOfBounds)
	}
	out := make([]byte, length)
	copy(out, view)
	return out, nil
}

// Top returns the current stack pointer, the next free offset. Recording it
// before a group of allocations gives the value to Rewind to afterwards.
func (m *Manager) Top() uint32 {
	return m.stack.Top()
}

// Rewind reclaims every allocation made after the stack pointer was at
// "to". Handles issued above that point reference reusable memory from here
// on; staying away from them is the caller's discipline.
func (m *Manager) Rewind(to uint32) error {
	return m.stack.Rewind(to)
}

// Reset reclaims the whole stack.
func (m *Manager) Reset() {
	m.stack.Reset()
}

// Memory exposes the raw accessor, for filling a range obtained from
// Allocate before its handle crosses the boundary.
func (m *Manager) Memory() Memory {
	return m.mem
}

// ensureBacked grows the backing memory in whole pages until end bytes are
// addressable. The stack capacity already caps end at one page, so at most
// one page is ever requested; a backing that cannot grow that far reports
// ErrOutOfBounds.
func (m *Manager) ensureBacked(end uint32) error {
	size := m.mem.Size()
	if end <= size {
		return nil
	}
	deltaPages := (end - size + handle.PageSize - 1) / handle.PageSize
	if _, ok := m.mem.Grow(deltaPages); !ok {
		return fmt.Errorf("growing backing memory from %d to %d bytes: %w",
			size, end, handle.ErrOutOfBounds)
	}
	return nil
}
