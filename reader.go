package stablememory

import (
	"io"
)

// Reader reads 32-bit addressed memory sequentially.
//
// The memory size is cached when the Reader is created. Data written after
// that by a cursor that had to grow the memory lies past the cached end and
// cannot be read through this Reader.
type Reader struct {
	cursor *Cursor32
}

var _ io.ReadSeeker = (*Reader)(nil)

// NewReader creates a Reader over memory positioned at offset.
func NewReader(memory Memory32, offset int) *Reader {
	return &Reader{cursor: NewCursor(memory, uint32(offset))}
}

// ReaderFrom wraps an existing cursor, sharing its offset and capacity.
func ReaderFrom(c *Cursor32) *Reader {
	return &Reader{cursor: c}
}

// Offset returns the position of the next read.
func (r *Reader) Offset() int {
	return int(r.cursor.Offset())
}

// Cursor returns the underlying cursor.
func (r *Reader) Cursor() *Cursor32 {
	return r.cursor
}

// Read implements io.Reader. Short reads at the end of the region return
// the available bytes; reading at or past the end returns io.EOF. A
// zero-length read returns 0, nil wherever the offset is.
func (r *Reader) Read(p []byte) (int, error) {
	return r.cursor.Stream().Read(p)
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.cursor.Seek(offset, whence)
}
