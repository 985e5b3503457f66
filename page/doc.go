// Package page manages a single 64 KiB wasm memory page as a stack of
// call-scoped buffers.
//
// A [Manager] owns one [Memory] (either a guest module's exported linear
// memory or an in-process [Buffer]) and one bump-pointer [Stack]. Pushing a
// buffer with [Manager.Write] returns a packed handle; the receiving side
// recovers the bytes with [Manager.Read] on its own manager over the same
// memory.
//
//	mgr := page.NewManager(page.NewBuffer(1))
//	h, _ := mgr.Write([]byte("hello"))
//	// h crosses the call boundary as h.Scalar()
//	data, _ := mgr.Read(h)  // "hello"
//
// Reclamation is strictly LIFO: record [Manager.Top] before a group of
// allocations and [Manager.Rewind] to it afterwards, or [Manager.Reset] the
// whole page between calls. There is no per-allocation free and nothing
// tracks handle validity: a handle issued above a rewound stack pointer
// references memory a later allocation may reuse.
package page
