// Package wasmpage moves byte buffers between a wasm host and guest while
// the only value crossing the call boundary is one 32-bit scalar.
//
// # Overview
//
// Both sides share a single 64 KiB linear memory page managed as a stack of
// call-scoped buffers. Pushing a buffer yields a handle (offset in the
// high 16 bits, length in the low 16) and that packed scalar is the entire
// wire protocol. A handle whose length field is zero carries a status code
// in the offset field instead (0 = success), so results and errors travel
// through the same convention when there is no payload.
//
// # Basic Usage
//
//	mgr := page.NewManager(page.NewBuffer(1))
//
//	h, _ := mgr.Write([]byte("hello"))
//	// pass h.Scalar() across the boundary...
//
//	data, _ := mgr.Read(handle.FromScalar(scalar))
//
// # Against a guest module
//
// The memory exported by a wazero-instantiated module satisfies the same
// interface, so the manager works on real guest memory unchanged:
//
//	mgr, _ := abi.ModuleManager(mod)
//	h, _ := mgr.Write(input)
//	result, _ := abi.Call(ctx, mod.ExportedFunction("process"), h)
//
// Reclamation is strictly LIFO: record the stack pointer, make the call,
// rewind. See the [handle], [page], and [abi] packages for detailed API
// documentation.
package wasmpage
