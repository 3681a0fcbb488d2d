package stablememory

import (
	"fmt"
	"io"
	"math"
	"math/bits"

	"go.uber.org/zap"

	"github.com/wippyai/stable-memory/errors"
)

// Cursor performs sequential reads, writes and seeks on a PageMemory.
//
// Writes overwrite whatever is stored at the current offset and grow the
// memory as needed. The capacity is cached in pages and is only refreshed by
// construction and by Grow, see the package documentation.
type Cursor[A Address] struct {
	offset   A
	capacity A
	memory   PageMemory[A]
}

// Cursor32 and Cursor64 are the two address-width instantiations.
type (
	Cursor32 = Cursor[uint32]
	Cursor64 = Cursor[uint64]
)

var (
	_ io.WriteSeeker = (*Cursor32)(nil)
	_ io.WriteSeeker = (*Cursor64)(nil)
)

// NewCursor creates a cursor over memory positioned at offset.
// It queries the memory size once and caches it.
func NewCursor[A Address](memory PageMemory[A], offset A) *Cursor[A] {
	return &Cursor[A]{
		offset:   offset,
		capacity: memory.Size(),
		memory:   memory,
	}
}

// Offset returns the position of the next read or write.
func (c *Cursor[A]) Offset() A {
	return c.offset
}

// Capacity returns the cached region size in pages.
func (c *Cursor[A]) Capacity() A {
	return c.capacity
}

// Grow asks the memory for additional pages.
// The new capacity is based on the size the memory reports before growth,
// not on the cached value.
func (c *Cursor[A]) Grow(pages A) error {
	return c.grow(errors.PhaseGrow, pages)
}

func (c *Cursor[A]) grow(phase errors.Phase, pages A) error {
	prev, err := c.memory.Grow(pages)
	if err != nil {
		Logger().Debug("grow refused",
			zap.Uint64("pages", uint64(pages)),
			zap.Uint64("capacity", uint64(c.capacity)),
			zap.Error(err))
		return errors.OutOfMemory(phase, uint64(pages), err)
	}
	c.capacity = prev + pages
	Logger().Debug("grew memory",
		zap.Uint64("previous", uint64(prev)),
		zap.Uint64("capacity", uint64(c.capacity)))
	return nil
}

// Write writes p at the current offset and advances past it.
//
// If the bytes do not fit the cached capacity, the memory is grown by exactly
// the missing number of pages first. The only failure is a refused growth, in
// which case nothing is written and the offset is unchanged. On success the
// whole of p is written.
func (c *Cursor[A]) Write(p []byte) (int, error) {
	start := uint64(c.offset)
	end, carry := bits.Add64(start, uint64(len(p)), 0)
	if carry != 0 || (end > 0 && end-1 > maxAddress[A]()) {
		return 0, errors.New(errors.PhaseWrite, errors.KindOutOfMemory).
			At(start).
			Cause(errors.Overflow(errors.PhaseWrite, start, len(p), widthName[A]())).
			Detail("write does not fit the address space").
			Build()
	}

	required := end / PageSize
	if end%PageSize != 0 {
		required++
	}
	if required > uint64(c.capacity) {
		if err := c.grow(errors.PhaseWrite, A(required-uint64(c.capacity))); err != nil {
			return 0, err
		}
	}

	c.memory.Write(c.offset, p)
	c.offset += A(len(p))
	return len(p), nil
}

// Read fills p from the current offset and advances past the bytes read.
//
// The bound is the cached capacity. A read starting inside it but running
// past its end is truncated and returns fewer bytes without error. A read
// starting at or past the end fails with an error matching ErrOutOfBounds.
// Unlike io.Reader, Read never returns io.EOF; use Stream or Reader for that.
func (c *Cursor[A]) Read(p []byte) (int, error) {
	limit := c.capacityBytes()
	start := uint64(c.offset)
	n := uint64(len(p))

	end, carry := bits.Add64(start, n, 0)
	if carry != 0 || end > limit {
		if start >= limit {
			return 0, errors.OutOfBounds(errors.PhaseRead, start, limit)
		}
		n = limit - start
	}

	c.memory.Read(c.offset, p[:n])
	c.offset += A(n)
	return int(n), nil
}

// Seek sets the offset for the next read or write.
//
// io.SeekEnd is relative to the cached capacity. The result is not validated:
// an offset outside the region is only detected by the next Read, and
// negative results wrap around the address width.
//
// The returned position is the offset converted to int64, as io.Seeker
// requires. On a 64-bit cursor an offset at or above 2^63 is reported as a
// negative number; Offset returns the exact value.
func (c *Cursor[A]) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = A(offset)
	case io.SeekCurrent:
		c.offset = A(int64(c.offset) + offset)
	case io.SeekEnd:
		c.offset = A(int64(c.capacityBytes()) + offset)
	default:
		return int64(c.offset), errors.InvalidInput(errors.PhaseSeek, fmt.Sprintf("invalid whence %d", whence))
	}
	return int64(c.offset), nil
}

// capacityBytes saturates instead of wrapping for capacities beyond 2^48 pages.
func (c *Cursor[A]) capacityBytes() uint64 {
	hi, lo := bits.Mul64(uint64(c.capacity), PageSize)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

func maxAddress[A Address]() uint64 {
	return uint64(^A(0))
}

func widthName[A Address]() string {
	if maxAddress[A]() == math.MaxUint32 {
		return "32-bit"
	}
	return "64-bit"
}
