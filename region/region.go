package region

import (
	"fmt"
	"sync"

	stablememory "github.com/wippyai/stable-memory"
	"github.com/wippyai/stable-memory/errors"
)

// Stats counts the calls a Region has served.
type Stats struct {
	GrowPages []uint64 // pages requested by each successful grow
	Grows     int
	Refused   int
	Writes    int
	Reads     int
}

type page [stablememory.PageSize]byte

// Region is a sparse, growable PageMemory held in process memory.
type Region[A stablememory.Address] struct {
	pages map[uint64]*page
	stats Stats
	size  A
	limit A
	mu    sync.Mutex
}

var (
	_ stablememory.Memory32 = (*Region[uint32])(nil)
	_ stablememory.Memory64 = (*Region[uint64])(nil)
)

// New creates a Region of size pages that can grow up to limit pages.
func New[A stablememory.Address](size, limit A) *Region[A] {
	if size > limit {
		limit = size
	}
	return &Region[A]{
		pages: make(map[uint64]*page),
		size:  size,
		limit: limit,
	}
}

// Size returns the region size in pages.
func (r *Region[A]) Size() A {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Limit returns the maximum number of pages.
func (r *Region[A]) Limit() A {
	return r.limit
}

// Grow adds pages, failing when the result would exceed the limit.
func (r *Region[A]) Grow(pages A) (A, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.size
	if pages > r.limit-prev {
		r.stats.Refused++
		return prev, errors.New(errors.PhaseGrow, errors.KindOutOfMemory).
			Value(uint64(pages)).
			Detail("region of %d pages cannot grow by %d (limit %d)", prev, pages, r.limit).
			Build()
	}
	r.size += pages
	r.stats.Grows++
	r.stats.GrowPages = append(r.stats.GrowPages, uint64(pages))
	return prev, nil
}

// Write copies buf to offset. It panics if the range is outside the region.
func (r *Region[A]) Write(offset A, buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.check("write", offset, len(buf))
	r.stats.Writes++

	off := uint64(offset)
	for len(buf) > 0 {
		idx, within := off/stablememory.PageSize, off%stablememory.PageSize
		p := r.pages[idx]
		if p == nil {
			p = new(page)
			r.pages[idx] = p
		}
		n := copy(p[within:], buf)
		buf = buf[n:]
		off += uint64(n)
	}
}

// Read copies bytes at offset into buf. Bytes never written read as zero.
// It panics if the range is outside the region.
func (r *Region[A]) Read(offset A, buf []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.check("read", offset, len(buf))
	r.stats.Reads++

	off := uint64(offset)
	for len(buf) > 0 {
		idx, within := off/stablememory.PageSize, off%stablememory.PageSize
		var n int
		if p := r.pages[idx]; p != nil {
			n = copy(buf, p[within:])
		} else {
			n = min(len(buf), int(stablememory.PageSize-within))
			clear(buf[:n])
		}
		buf = buf[n:]
		off += uint64(n)
	}
}

// Stats returns a copy of the call counters.
func (r *Region[A]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.stats
	st.GrowPages = append([]uint64(nil), r.stats.GrowPages...)
	return st
}

// ResetStats zeroes the call counters.
func (r *Region[A]) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
}

func (r *Region[A]) check(op string, offset A, length int) {
	end := uint64(offset) + uint64(length)
	if end < uint64(offset) || end > r.sizeBytes() {
		panic(fmt.Sprintf("region: %s out of bounds: offset=%d, length=%d, size=%d pages",
			op, offset, length, r.size))
	}
}

func (r *Region[A]) sizeBytes() uint64 {
	pages := uint64(r.size)
	if pages > ^uint64(0)/stablememory.PageSize {
		return ^uint64(0)
	}
	return pages * stablememory.PageSize
}
