package stablememory

import (
	"github.com/wippyai/stable-memory/errors"
)

// PageSize is the unit, in bytes, in which memory is measured and grown.
const PageSize = 64 * 1024

// Address is the integer width used for offsets and page counts.
type Address interface {
	~uint32 | ~uint64
}

// PageMemory is the host capability the cursors operate on.
//
// Implementations own a growable byte region addressed
// [0, Size()*PageSize). Write and Read are raw: callers guarantee the range
// lies inside the region, and implementations panic when it does not.
type PageMemory[A Address] interface {
	// Size returns the current region size in pages.
	Size() A
	// Grow adds pages to the region and returns the size before growth.
	// The error matches ErrOutOfMemory when the host refuses.
	Grow(pages A) (A, error)
	Write(offset A, buf []byte)
	Read(offset A, buf []byte)
}

// Memory32 and Memory64 name the two capability widths.
type (
	Memory32 = PageMemory[uint32]
	Memory64 = PageMemory[uint64]
)

var (
	// ErrOutOfMemory matches any error caused by the host refusing to grow.
	ErrOutOfMemory = &errors.Error{Kind: errors.KindOutOfMemory, Detail: "no more memory could be allocated"}

	// ErrOutOfBounds matches any read that starts at or past the cached end.
	ErrOutOfBounds = &errors.Error{Kind: errors.KindOutOfBounds, Detail: "read exceeds allocated memory"}
)

// Snapshot copies the whole declared region, starting at offset 0, into a
// new slice of Size()*PageSize bytes, whether or not it was ever written.
func Snapshot[A Address](memory PageMemory[A]) []byte {
	size := uint64(memory.Size()) * PageSize
	buf := make([]byte, size)
	if size > 0 {
		memory.Read(0, buf)
	}
	return buf
}
