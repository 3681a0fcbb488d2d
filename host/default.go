package host

import (
	"context"
	"sync"

	"go.uber.org/zap"

	stablememory "github.com/wippyai/stable-memory"
)

var (
	defaultOnce sync.Once
	defaultHost *Host
	defaultErr  error
)

// defaultMemory creates the process-wide Host on first use. The embedded
// module is constant, so failure to instantiate it is unrecoverable.
func defaultMemory() *Memory {
	defaultOnce.Do(func() {
		defaultHost, defaultErr = New(context.Background(), nil)
		if defaultErr == nil {
			Logger().Info("default stable memory created",
				zap.String("module", defaultHost.cfg.ModuleName))
		}
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultHost.memory
}

// Stable is a stateless handle to the process-wide memory.
type Stable struct{}

// Stable64 is the 64-bit handle to the process-wide memory.
type Stable64 struct{}

var (
	_ stablememory.Memory32 = Stable{}
	_ stablememory.Memory64 = Stable64{}
)

// Default returns the handle to the process-wide memory.
func Default() Stable { return Stable{} }

// Default64 returns the 64-bit handle to the process-wide memory.
func Default64() Stable64 { return Stable64{} }

func (Stable) Size() uint32                        { return defaultMemory().Size() }
func (Stable) Grow(pages uint32) (uint32, error)   { return defaultMemory().Grow(pages) }
func (Stable) Write(offset uint32, buf []byte)     { defaultMemory().Write(offset, buf) }
func (Stable) Read(offset uint32, buf []byte)      { defaultMemory().Read(offset, buf) }
func (Stable64) Size() uint64                      { return defaultMemory().Wide().Size() }
func (Stable64) Grow(pages uint64) (uint64, error) { return defaultMemory().Wide().Grow(pages) }
func (Stable64) Write(offset uint64, buf []byte)   { defaultMemory().Wide().Write(offset, buf) }
func (Stable64) Read(offset uint64, buf []byte)    { defaultMemory().Wide().Read(offset, buf) }

// Size returns the default memory size in pages.
func Size() uint32 { return Default().Size() }

// Size64 is Size with 64-bit page counts.
func Size64() uint64 { return Default64().Size() }

// Grow adds pages to the default memory and returns the previous size.
func Grow(pages uint32) (uint32, error) { return Default().Grow(pages) }

// Grow64 is Grow with 64-bit page counts.
func Grow64(pages uint64) (uint64, error) { return Default64().Grow(pages) }

// Write writes buf to the default memory at offset.
// It panics if offset+len(buf) exceeds the current size; Grow first.
func Write(offset uint32, buf []byte) { Default().Write(offset, buf) }

// Write64 is Write with a 64-bit offset.
func Write64(offset uint64, buf []byte) { Default64().Write(offset, buf) }

// Read fills buf from the default memory at offset.
func Read(offset uint32, buf []byte) { Default().Read(offset, buf) }

// Read64 is Read with a 64-bit offset.
func Read64(offset uint64, buf []byte) { Default64().Read(offset, buf) }

// Bytes returns a copy of the whole default memory, written or not.
func Bytes() []byte { return stablememory.Snapshot[uint32](Default()) }

// NewCursor returns a cursor over the default memory at offset 0.
func NewCursor() *stablememory.Cursor32 {
	return stablememory.NewCursor[uint32](Default(), 0)
}

// NewCursor64 returns a 64-bit cursor over the default memory at offset 0.
func NewCursor64() *stablememory.Cursor64 {
	return stablememory.NewCursor[uint64](Default64(), 0)
}

// NewReader returns a Reader over the default memory at offset 0.
func NewReader() *stablememory.Reader {
	return stablememory.NewReader(Default(), 0)
}

// NewWriter returns a Writer over the default memory at offset 0.
func NewWriter() *stablememory.Writer {
	return stablememory.NewWriter(Default(), 0)
}

// NewBufferedReader returns a BufferedReader of size bytes over the default memory.
func NewBufferedReader(size int) *stablememory.BufferedReader {
	return stablememory.NewBufferedReader(size, NewReader())
}

// NewBufferedWriter returns a BufferedWriter of size bytes over the default memory.
func NewBufferedWriter(size int) *stablememory.BufferedWriter {
	return stablememory.NewBufferedWriter(size, NewWriter())
}
