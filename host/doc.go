// Package host provides wazero-backed stable memory.
//
// A Host owns a wazero runtime and a minimal module that exports one linear
// memory with zero initial pages. Memory adapts that api.Memory to the
// 32-bit PageMemory capability; Memory64 is a 64-bit view over the same
// memory for callers written against 64-bit addresses.
//
// # Default Memory
//
// Most programs use one process-wide memory. Default returns a stateless
// handle to it; the backing Host is created on first use:
//
//	mem := host.Default()
//	w := stablememory.NewWriter(mem, 0)
//
// The package-level functions (Size, Grow, Write, Read, Bytes and their 64-bit
// variants) and constructors (NewReader, NewWriter, ...) operate on the same
// default memory.
//
// # Dedicated Memory
//
// Tests and embedders that need isolation create their own Host:
//
//	h, err := host.New(ctx, &host.Config{MemoryLimitPages: 256})
//	if err != nil {
//	    return err
//	}
//	defer h.Close(ctx)
//
//	r := stablememory.NewReader(h.Memory(), 0)
package host
