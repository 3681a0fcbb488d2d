package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/stable-memory/errors"
)

const (
	// DefaultMemoryLimitPages is the wasm32 ceiling of 65536 pages (4GiB).
	DefaultMemoryLimitPages = 65536

	// DefaultModuleName names the module instance that owns the memory.
	DefaultModuleName = "stable"

	exportName = "memory"
)

// memoryModule is a WASM module exporting one memory of 0 initial pages and
// no declared maximum, so the runtime limit bounds growth.
var memoryModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x00, // memory section: 1 memory, min 0, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
}

// Config holds configuration for Host creation
type Config struct {
	// MemoryLimitPages caps growth in pages (64KB each).
	// 0 means default (65536 pages = 4GB).
	// 256 = 16MB, 1024 = 64MB, 4096 = 256MB
	MemoryLimitPages uint32

	// ModuleName names the module instance. Empty means DefaultModuleName.
	ModuleName string
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.MemoryLimitPages == 0 {
		out.MemoryLimitPages = DefaultMemoryLimitPages
	}
	if out.ModuleName == "" {
		out.ModuleName = DefaultModuleName
	}
	return out
}

// Host owns a wazero runtime holding one growable linear memory.
type Host struct {
	runtime wazero.Runtime
	memory  *Memory
	cfg     Config
}

// New creates a Host. A nil cfg selects the defaults.
func New(ctx context.Context, cfg *Config) (*Host, error) {
	c := cfg.withDefaults()
	if c.MemoryLimitPages > DefaultMemoryLimitPages {
		return nil, errors.InvalidInput(errors.PhaseHost,
			fmt.Sprintf("memory limit %d pages exceeds %d", c.MemoryLimitPages, DefaultMemoryLimitPages))
	}

	runtimeCfg := wazero.NewRuntimeConfig().WithMemoryLimitPages(c.MemoryLimitPages)
	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := rt.CompileModule(ctx, memoryModule)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation("compile memory module", err)
	}

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(c.ModuleName))
	if err != nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation("instantiate memory module", err)
	}

	mem := Wrap(mod.ExportedMemory(exportName))
	if mem == nil {
		_ = rt.Close(ctx)
		return nil, errors.Instantiation(fmt.Sprintf("module %q exports no %q", c.ModuleName, exportName), nil)
	}

	Logger().Debug("host memory ready",
		zap.String("module", c.ModuleName),
		zap.Uint32("limit_pages", c.MemoryLimitPages))

	return &Host{
		runtime: rt,
		memory:  mem,
		cfg:     c,
	}, nil
}

// Memory returns the 32-bit capability.
func (h *Host) Memory() *Memory {
	return h.memory
}

// Memory64 returns the 64-bit capability over the same memory.
func (h *Host) Memory64() *Memory64 {
	return h.memory.Wide()
}

// Config returns the effective configuration.
func (h *Host) Config() Config {
	return h.cfg
}

// Close releases the runtime and its memory.
// Memory obtained from this Host must not be used afterwards.
func (h *Host) Close(ctx context.Context) error {
	return h.runtime.Close(ctx)
}
