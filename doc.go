// Package stablememory provides streaming I/O over growable, page-granular
// linear memory.
//
// A host exposes a memory region measured in 64 KiB pages. The region only
// grows, and every host call is comparatively expensive. This package layers
// sequential cursor semantics (read, write, seek) on top of that region and
// batches host calls through buffered wrappers.
//
// # Architecture Overview
//
//	stablememory/   Root package: PageMemory capability, Cursor engine,
//	│               Reader, Writer, buffered wrappers, Snapshot
//	├── host/       wazero-backed memory and the process-wide default handle
//	├── region/     In-process PageMemory for tests and embedding
//	├── codec/      CBOR save/restore of Go values through the stream types
//	└── errors/     Structured error types
//
// # Quick Start
//
// Write and read back through the default host memory:
//
//	w := host.NewBufferedWriter(64 * 1024)
//	defer w.Close()
//
//	if _, err := w.Write(payload); err != nil {
//	    log.Fatal(err)
//	}
//	if err := w.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
//	r := host.NewReader()
//	data, err := io.ReadAll(io.LimitReader(r, int64(len(payload))))
//
// # Address Widths
//
// The Cursor engine is generic over the address width. Cursor32 and Cursor64
// run the same algorithm over uint32 and uint64 offsets. Reader and Writer are
// always 32-bit.
//
// # Growth and Bounds
//
// Writes grow the region on demand by exactly the missing number of pages.
// Reads never grow: a read that starts inside the known region but runs past
// its end is truncated to a short read; a read that starts at or past the end
// fails with ErrOutOfBounds (Reader reports io.EOF instead).
//
// # Cached Capacity
//
// A cursor caches the page count observed at construction or at its last
// successful grow. Growth performed through another cursor is invisible to it,
// so reading data written by someone else after construction may fail with
// ErrOutOfBounds even though the host holds the bytes. Create a fresh cursor
// to observe the current size.
//
// # Thread Safety
//
// Cursor, Reader, Writer and the buffered wrappers are NOT thread-safe and
// should be used by a single goroutine. PageMemory implementations in this
// module serialize their own calls, but nothing coordinates two cursors
// writing the same range.
//
// # Memory Model
//
// The region can only grow, never shrink. There is no compaction or
// defragmentation; persistence is the host's responsibility.
package stablememory
