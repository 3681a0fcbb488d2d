package stablememory

import (
	"bufio"
	"io"

	"go.uber.org/zap"
)

// BufferedReader reads memory a buffer-sized chunk at a time.
//
// Offset reports the inner Reader's offset, which is past any bytes buffered
// but not yet returned. Track consumption separately if the logical position
// matters.
type BufferedReader struct {
	inner *Reader
	buf   *bufio.Reader
}

var _ io.ReadSeeker = (*BufferedReader)(nil)

// NewBufferedReader wraps r with a buffer of size bytes.
// Sizes below 16 are raised to 16.
func NewBufferedReader(size int, r *Reader) *BufferedReader {
	return &BufferedReader{
		inner: r,
		buf:   bufio.NewReaderSize(r, size),
	}
}

// Offset returns the inner Reader's offset.
func (b *BufferedReader) Offset() int {
	return b.inner.Offset()
}

// Buffered returns the number of bytes read from memory but not yet returned.
func (b *BufferedReader) Buffered() int {
	return b.buf.Buffered()
}

// Read implements io.Reader.
func (b *BufferedReader) Read(p []byte) (int, error) {
	return b.buf.Read(p)
}

// Seek implements io.Seeker and discards the buffer.
// io.SeekCurrent is relative to the position of the bytes returned so far.
func (b *BufferedReader) Seek(offset int64, whence int) (int64, error) {
	if whence == io.SeekCurrent {
		offset -= int64(b.buf.Buffered())
	}
	pos, err := b.inner.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	b.buf.Reset(b.inner)
	return pos, nil
}

// BufferedWriter collects writes in memory and writes them out each time
// the buffer fills.
//
// Every grow or write on the memory is relatively expensive, so pick a buffer
// large enough to keep flushes rare. Buffered bytes are lost unless Flush or
// Close is called; defer Close right after construction.
type BufferedWriter struct {
	inner *Writer
	buf   *bufio.Writer
}

var (
	_ io.WriteSeeker = (*BufferedWriter)(nil)
	_ io.Closer      = (*BufferedWriter)(nil)
)

// NewBufferedWriter wraps w with a buffer of size bytes.
func NewBufferedWriter(size int, w *Writer) *BufferedWriter {
	return &BufferedWriter{
		inner: w,
		buf:   bufio.NewWriterSize(w, size),
	}
}

// Offset returns the inner Writer's offset, which excludes buffered bytes.
func (b *BufferedWriter) Offset() int {
	return b.inner.Offset()
}

// Buffered returns the number of bytes waiting to be flushed.
func (b *BufferedWriter) Buffered() int {
	return b.buf.Buffered()
}

// Write implements io.Writer. After a failed flush the error is sticky and
// every following Write or Flush returns it.
func (b *BufferedWriter) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// Flush writes all buffered bytes to memory.
func (b *BufferedWriter) Flush() error {
	return b.buf.Flush()
}

// Seek implements io.Seeker. Buffered bytes are flushed first.
func (b *BufferedWriter) Seek(offset int64, whence int) (int64, error) {
	if err := b.buf.Flush(); err != nil {
		return int64(b.inner.Offset()), err
	}
	return b.inner.Seek(offset, whence)
}

// Close flushes buffered bytes. The writer must not be used afterwards.
func (b *BufferedWriter) Close() error {
	if err := b.buf.Flush(); err != nil {
		Logger().Warn("flush on close failed",
			zap.Int("buffered", b.buf.Buffered()),
			zap.Int("offset", b.inner.Offset()),
			zap.Error(err))
		return err
	}
	return nil
}
