package stablememory

import (
	"io"
)

// Writer writes 32-bit addressed memory sequentially, growing it on demand.
//
// Writing overwrites existing data, so position the Writer past anything that
// must be preserved.
type Writer struct {
	cursor *Cursor32
}

var _ io.WriteSeeker = (*Writer)(nil)

// NewWriter creates a Writer over memory positioned at offset.
func NewWriter(memory Memory32, offset int) *Writer {
	return &Writer{cursor: NewCursor(memory, uint32(offset))}
}

// WriterFrom wraps an existing cursor, sharing its offset and capacity.
func WriterFrom(c *Cursor32) *Writer {
	return &Writer{cursor: c}
}

// Offset returns the position of the next write.
func (w *Writer) Offset() int {
	return int(w.cursor.Offset())
}

// Cursor returns the underlying cursor.
func (w *Writer) Cursor() *Cursor32 {
	return w.cursor
}

// Grow adds pages to the memory.
func (w *Writer) Grow(pages uint32) error {
	return w.cursor.Grow(pages)
}

// Write implements io.Writer. It fails only when the memory cannot grow; the
// error then matches ErrOutOfMemory and nothing was written.
func (w *Writer) Write(p []byte) (int, error) {
	return w.cursor.Write(p)
}

// Flush is a no-op; writes reach memory immediately.
func (w *Writer) Flush() error {
	return nil
}

// Seek implements io.Seeker.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	return w.cursor.Seek(offset, whence)
}
