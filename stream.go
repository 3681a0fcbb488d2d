package stablememory

import (
	"io"
)

// Stream adapts a Cursor to io.Reader semantics at either address width.
// Reading at or past the cached end returns io.EOF instead of an
// out-of-bounds error. Writes and seeks go straight to the cursor.
type Stream[A Address] struct {
	cursor *Cursor[A]
}

var (
	_ io.ReadWriteSeeker = (*Stream[uint32])(nil)
	_ io.ReadWriteSeeker = (*Stream[uint64])(nil)
)

// Stream returns a view of c that shares its offset and capacity.
func (c *Cursor[A]) Stream() *Stream[A] {
	return &Stream[A]{cursor: c}
}

// Cursor returns the underlying cursor.
func (s *Stream[A]) Cursor() *Cursor[A] {
	return s.cursor
}

// Read implements io.Reader. A zero-length read always succeeds.
func (s *Stream[A]) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.cursor.Read(p)
	if err != nil {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer.
func (s *Stream[A]) Write(p []byte) (int, error) {
	return s.cursor.Write(p)
}

// Seek implements io.Seeker.
func (s *Stream[A]) Seek(offset int64, whence int) (int64, error) {
	return s.cursor.Seek(offset, whence)
}
