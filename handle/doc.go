// Package handle packs an (offset, length) pair describing a range inside a
// shared wasm memory page into a single 32-bit scalar, the only value that
// ever crosses the host/guest call boundary.
//
// The high 16 bits hold the offset, the low 16 bits the length. Because a
// data handle always describes at least one byte, length zero is free to
// mean something else: the offset field then carries a status code, with 0
// meaning success. Both sides of the boundary must agree on this layout;
// there is no other framing.
//
//	h, _ := handle.Encode(5, 1)
//	h.Offset()   // 5
//	h.Length()   // 1
//	h.Scalar()   // 0x00050001
//
//	handle.Status(3).IsStatus()  // true
//
// Handles are produced by the page manager; converting an arbitrary integer
// into a handle goes through [FromScalar] so that trust-boundary crossings
// stay explicit.
package handle
