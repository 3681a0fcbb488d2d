package host

import (
	"fmt"
	"math"
	"sync"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	stablememory "github.com/wippyai/stable-memory"
	"github.com/wippyai/stable-memory/errors"
)

var (
	_ stablememory.Memory32 = (*Memory)(nil)
	_ stablememory.Memory64 = (*Memory64)(nil)
)

// Wrap adapts a wazero api.Memory to the 32-bit PageMemory capability.
func Wrap(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{mem: mem}
}

// Memory adapts wazero api.Memory to stablememory.Memory32.
// Calls are serialized so several goroutines may share it.
type Memory struct {
	mem api.Memory
	mu  sync.Mutex
}

// Size returns the memory size in pages.
func (m *Memory) Size() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	// memory.grow 0 reports the page count without the uint32 byte-size overflow at 4GiB
	pages, _ := m.mem.Grow(0)
	return pages
}

// Grow adds pages and returns the previous page count.
func (m *Memory) Grow(pages uint32) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, ok := m.mem.Grow(pages)
	if !ok {
		Logger().Debug("memory grow refused", zap.Uint32("pages", pages))
		return 0, errors.OutOfMemory(errors.PhaseGrow, uint64(pages), nil)
	}
	Logger().Debug("memory grown",
		zap.Uint32("previous", prev),
		zap.Uint32("pages", pages))
	return prev, nil
}

// Write writes buf at offset. It panics if the range was never grown into.
func (m *Memory) Write(offset uint32, buf []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.mem.Write(offset, buf) {
		panic(fmt.Sprintf("memory write out of bounds: offset=%d, length=%d", offset, len(buf)))
	}
}

// Read fills buf from offset. It panics if the range is outside the memory.
func (m *Memory) Read(offset uint32, buf []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if uint64(len(buf)) > math.MaxUint32 {
		panic(fmt.Sprintf("memory read out of bounds: offset=%d, length=%d", offset, len(buf)))
	}
	data, ok := m.mem.Read(offset, uint32(len(buf)))
	if !ok {
		panic(fmt.Sprintf("memory read out of bounds: offset=%d, length=%d", offset, len(buf)))
	}
	copy(buf, data)
}

// Wide returns a 64-bit view of the memory.
func (m *Memory) Wide() *Memory64 {
	return &Memory64{narrow: m}
}

// Memory64 exposes a Memory through 64-bit addresses.
// Growth beyond what 32-bit page counts express is refused.
type Memory64 struct {
	narrow *Memory
}

// Size returns the memory size in pages.
func (m *Memory64) Size() uint64 {
	return uint64(m.narrow.Size())
}

// Grow adds pages and returns the previous page count.
func (m *Memory64) Grow(pages uint64) (uint64, error) {
	if pages > math.MaxUint32 {
		return 0, errors.OutOfMemory(errors.PhaseGrow, pages, nil)
	}
	prev, err := m.narrow.Grow(uint32(pages))
	return uint64(prev), err
}

// Write writes buf at offset. It panics if the range was never grown into.
func (m *Memory64) Write(offset uint64, buf []byte) {
	if offset > math.MaxUint32 {
		panic(fmt.Sprintf("memory write out of bounds: offset=%d, length=%d", offset, len(buf)))
	}
	m.narrow.Write(uint32(offset), buf)
}

// Read fills buf from offset. It panics if the range is outside the memory.
func (m *Memory64) Read(offset uint64, buf []byte) {
	if offset > math.MaxUint32 {
		panic(fmt.Sprintf("memory read out of bounds: offset=%d, length=%d", offset, len(buf)))
	}
	m.narrow.Read(uint32(offset), buf)
}
