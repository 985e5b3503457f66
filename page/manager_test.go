package page

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caffeineduck/wasmpage/handle"
)

func TestWriteReadRoundTrip(t *testing.T) {
	mgr := NewManager(NewBuffer(1))

	h, err := mgr.Write([]byte("hello"))
	require.NoError(t, err)
	require.EqualValues(t, 0, h.Offset())
	require.EqualValues(t, 5, h.Length())

	data, err := mgr.Read(h)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)

	h2, err := mgr.Write([]byte("!"))
	require.NoError(t, err)
	require.EqualValues(t, 5, h2.Offset())
	require.EqualValues(t, 1, h2.Length())

	// Earlier handles stay readable under normal bump growth.
	data, err = mgr.Read(h)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
}

func TestReadReturnsIndependentCopy(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	h, err := mgr.Write([]byte("aaaa"))
	require.NoError(t, err)

	data, err := mgr.Read(h)
	require.NoError(t, err)
	data[0] = 'z'

	again, err := mgr.Read(h)
	require.NoError(t, err)
	require.Equal(t, []byte("aaaa"), again)
}

func TestWriteZeroLength(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	_, err := mgr.Write(nil)
	require.ErrorIs(t, err, handle.ErrZeroLength)
	_, err = mgr.Write([]byte{})
	require.ErrorIs(t, err, handle.ErrZeroLength)

	// Allocator state makes no difference.
	_, err = mgr.Write([]byte("x"))
	require.NoError(t, err)
	_, err = mgr.Write(nil)
	require.ErrorIs(t, err, handle.ErrZeroLength)
}

func TestWriteOversize(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	_, err := mgr.Write(make([]byte, 70000))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)

	// Oversize is rejected on length alone, independent of remaining
	// capacity, and a failed write never moves the stack.
	require.EqualValues(t, 0, mgr.Top())
	_, err = mgr.Write(make([]byte, handle.MaxLength+1))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
	require.EqualValues(t, 0, mgr.Top())
}

func TestStackMonotonicity(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	var prevEnd uint32
	for _, size := range []int{1, 17, 256, 4000, 1} {
		h, err := mgr.Write(bytes.Repeat([]byte{0x5A}, size))
		require.NoError(t, err)
		require.GreaterOrEqual(t, h.Offset(), prevEnd)
		prevEnd = h.Offset() + h.Length()
		require.EqualValues(t, prevEnd, mgr.Top())
	}
}

func TestStatusDataDisjointness(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	h, err := mgr.Write([]byte("data"))
	require.NoError(t, err)
	require.False(t, h.IsStatus())

	h, err = mgr.Allocate(8)
	require.NoError(t, err)
	require.False(t, h.IsStatus())

	// Only the explicit status path produces length-zero handles.
	require.True(t, handle.Status(0).IsStatus())
	require.True(t, handle.Status(42).IsStatus())
}

func TestCapacityExhaustion(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	_, err := mgr.Write(make([]byte, 60000))
	require.NoError(t, err)

	// 10000 bytes fit in 16 bits but not in what is left of the page.
	_, err = mgr.Write(make([]byte, 10000))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
	_, err = mgr.Allocate(10000)
	require.ErrorIs(t, err, handle.ErrOutOfBounds)

	// The remainder is still usable.
	h, err := mgr.Write(make([]byte, 5536))
	require.NoError(t, err)
	require.EqualValues(t, 60000, h.Offset())
	require.EqualValues(t, handle.PageSize, mgr.Top())

	_, err = mgr.Write([]byte("x"))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
}

func TestAllocateThenFill(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	h, err := mgr.Allocate(5)
	require.NoError(t, err)
	require.EqualValues(t, 0, h.Offset())
	require.EqualValues(t, 5, mgr.Top())

	// The caller fills the reserved range through the raw accessor.
	require.True(t, mgr.Memory().Write(h.Offset(), []byte("guest")))
	data, err := mgr.Read(h)
	require.NoError(t, err)
	require.Equal(t, []byte("guest"), data)
}

func TestAllocateZeroLength(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	_, err := mgr.Allocate(0)
	require.ErrorIs(t, err, handle.ErrZeroLength)
}

func TestGrowsBackingOnDemand(t *testing.T) {
	buf := NewBuffer(0)
	mgr := NewManager(buf)
	require.EqualValues(t, 0, buf.Size())

	h, err := mgr.Write([]byte("hello"))
	require.NoError(t, err)
	require.EqualValues(t, handle.PageSize, buf.Size())

	data, err := mgr.Read(h)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
}

func TestGrowFailureIsOutOfBounds(t *testing.T) {
	// A backing that cannot reach one page makes allocations fail without
	// moving the stack.
	mgr := NewManager(NewBuffer(0, WithMaxPages(0)))
	_, err := mgr.Write([]byte("hello"))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
	require.EqualValues(t, 0, mgr.Top())

	_, err = mgr.Allocate(1)
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
}

func TestRewindReclaimsLIFO(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	h1, err := mgr.Write([]byte("keep"))
	require.NoError(t, err)

	mark := mgr.Top()
	h2, err := mgr.Write([]byte("scratch"))
	require.NoError(t, err)

	require.NoError(t, mgr.Rewind(mark))
	require.EqualValues(t, mark, mgr.Top())

	// The next allocation reuses the rewound range; h2 now aliases it.
	h3, err := mgr.Write([]byte("fresh!!"))
	require.NoError(t, err)
	require.Equal(t, h2.Offset(), h3.Offset())

	data, err := mgr.Read(h2)
	require.NoError(t, err)
	require.Equal(t, []byte("fresh!!"), data)

	// Handles below the rewind point are untouched.
	data, err = mgr.Read(h1)
	require.NoError(t, err)
	require.Equal(t, []byte("keep"), data)

	mgr.Reset()
	require.EqualValues(t, 0, mgr.Top())
}

func TestReadStatusHandle(t *testing.T) {
	mgr := NewManager(NewBuffer(1))
	_, err := mgr.Read(handle.StatusOK)
	require.ErrorIs(t, err, handle.ErrZeroLength)
	_, err = mgr.Read(handle.Status(3))
	require.ErrorIs(t, err, handle.ErrZeroLength)
}

func TestReadForgedHandle(t *testing.T) {
	// A scalar forged on the far side can reference anything; reads past
	// the backed memory are rejected instead of trusted.
	mgr := NewManager(NewBuffer(0))
	_, err := mgr.Read(handle.FromScalar(0x0000_0005))
	require.ErrorIs(t, err, handle.ErrOutOfBounds)
}
