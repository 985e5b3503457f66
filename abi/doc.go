// Package abi is the wazero side of the handle convention: it binds a page
// manager to an instantiated module's exported linear memory and packs
// handles into the uint64 stack values wazero uses for wasm parameters and
// results.
//
// In a host function, decode the incoming scalar and read through a manager
// over the calling module's memory:
//
//	func hostEcho(ctx context.Context, mod api.Module, stack []uint64) {
//	    mgr, _ := abi.ModuleManager(mod)
//	    data, _ := mgr.Read(abi.DecodeHandle(stack[0]))
//	    h, _ := mgr.Write(data)
//	    stack[0] = abi.EncodeHandle(h)
//	}
//
// Loading and instantiating guest modules, and deciding which function a
// call dispatches to, stay with the caller.
package abi
