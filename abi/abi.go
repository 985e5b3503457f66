package abi

import (
	"context"
	"errors"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/caffeineduck/wasmpage/handle"
	"github.com/caffeineduck/wasmpage/page"
)

// ModuleManager wraps the linear memory exported by an instantiated guest
// module in a page manager. The memory export is conventionally named
// "memory"; wazero surfaces it through mod.Memory regardless of name.
func ModuleManager(mod api.Module) (*page.Manager, error) {
	if mod == nil {
		return nil, errors.New("module is unassigned")
	}
	mem := mod.Memory()
	if mem == nil {
		return nil, errors.New("module doesn't export memory")
	}
	return page.NewManager(mem), nil
}

// EncodeHandle packs a handle into a wasm stack value, for returning it
// from a host function or passing it to api.Function.Call.
func EncodeHandle(h handle.Handle) uint64 {
	return api.EncodeI32(int32(h.Scalar()))
}

// DecodeHandle recovers the handle from a wasm stack value received from
// the guest. The value is untrusted; it goes through the codec's explicit
// trust-boundary conversion.
func DecodeHandle(v uint64) handle.Handle {
	return handle.FromScalar(api.DecodeU32(v))
}

// Call invokes a guest export whose signature is one i32 parameter and one
// i32 result, marshaling the handle on both ends. Which function to call,
// and what the bytes behind the handles mean, is entirely up to the caller.
func Call(ctx context.Context, fn api.Function, h handle.Handle) (handle.Handle, error) {
	if fn == nil {
		return 0, errors.New("function is unassigned")
	}
	results, err := fn.Call(ctx, EncodeHandle(h))
	if err != nil {
		return 0, fmt.Errorf("calling guest function: %w", err)
	}
	if len(results) != 1 {
		return 0, fmt.Errorf("expected a single scalar result, got %d values", len(results))
	}
	return DecodeHandle(results[0]), nil
}
