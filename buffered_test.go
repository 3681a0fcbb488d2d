package stablememory_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	stablememory "github.com/wippyai/stable-memory"
	"github.com/wippyai/stable-memory/region"
)

func TestBufferedWriter_ByteAtATimeMatchesSingleWrite(t *testing.T) {
	const bufSize = 16 * 1024
	data := pattern(70000, 5)

	buffered := region.New[uint32](0, 8)
	bw := stablememory.NewBufferedWriter(bufSize, stablememory.NewWriter(buffered, 0))
	for i := range data {
		if _, err := bw.Write(data[i : i+1]); err != nil {
			t.Fatalf("byte %d: Write failed: %v", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	direct := region.New[uint32](0, 8)
	if _, err := stablememory.NewWriter(direct, 0).Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if !bytes.Equal(stablememory.Snapshot[uint32](buffered), stablememory.Snapshot[uint32](direct)) {
		t.Error("buffered and direct writes produced different memory")
	}

	// 70000 bytes in 16KiB chunks
	if got := buffered.Stats().Writes; got != 5 {
		t.Errorf("memory writes = %d, want 5", got)
	}
	if bw.Offset() != len(data) {
		t.Errorf("Offset = %d, want %d", bw.Offset(), len(data))
	}
}

func TestBufferedWriter_OffsetExcludesBuffered(t *testing.T) {
	mem := region.New[uint32](0, 1)
	bw := stablememory.NewBufferedWriter(1024, stablememory.NewWriter(mem, 0))

	if _, err := bw.Write(make([]byte, 10)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if bw.Offset() != 0 || bw.Buffered() != 10 {
		t.Errorf("Offset = %d, Buffered = %d; want 0, 10", bw.Offset(), bw.Buffered())
	}
	if mem.Stats().Writes != 0 {
		t.Error("buffered bytes reached memory before flush")
	}

	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if bw.Offset() != 10 || bw.Buffered() != 0 {
		t.Errorf("Offset = %d, Buffered = %d; want 10, 0", bw.Offset(), bw.Buffered())
	}
}

func TestBufferedWriter_SeekFlushes(t *testing.T) {
	mem := region.New[uint32](0, 1)
	bw := stablememory.NewBufferedWriter(1024, stablememory.NewWriter(mem, 0))

	if _, err := bw.Write([]byte("head")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	pos, err := bw.Seek(100, io.SeekStart)
	if err != nil || pos != 100 {
		t.Fatalf("Seek = %d, %v; want 100", pos, err)
	}
	if _, err := bw.Write([]byte("tail")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := bw.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	got := make([]byte, 104)
	mem.Read(0, got)
	if string(got[:4]) != "head" || string(got[100:]) != "tail" {
		t.Errorf("memory holds %q ... %q", got[:4], got[100:])
	}
}

func TestBufferedWriter_CloseReportsOutOfMemory(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	stablememory.SetLogger(zap.New(core))
	defer stablememory.SetLogger(zap.NewNop())

	mem := region.New[uint32](0, 0)
	bw := stablememory.NewBufferedWriter(64, stablememory.NewWriter(mem, 0))

	if _, err := bw.Write(make([]byte, 10)); err != nil {
		t.Fatalf("buffered Write should not touch memory: %v", err)
	}
	err := bw.Close()
	if !errors.Is(err, stablememory.ErrOutOfMemory) {
		t.Fatalf("Close = %v, want ErrOutOfMemory", err)
	}
	if logs.FilterMessage("flush on close failed").Len() != 1 {
		t.Error("failed close should be logged")
	}

	// bufio keeps the first failure
	if _, err := bw.Write([]byte{1}); !errors.Is(err, stablememory.ErrOutOfMemory) {
		t.Errorf("Write after failed flush = %v, want ErrOutOfMemory", err)
	}
}

func TestBufferedReader_BatchesReads(t *testing.T) {
	mem := region.New[uint32](0, 1)
	data := pattern(3000, 2)
	if _, err := stablememory.NewWriter(mem, 0).Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	mem.ResetStats()

	br := stablememory.NewBufferedReader(4096, stablememory.NewReader(mem, 0))
	got := make([]byte, 0, len(data))
	one := make([]byte, 1)
	for range data {
		if _, err := io.ReadFull(br, one); err != nil {
			t.Fatalf("ReadFull failed: %v", err)
		}
		got = append(got, one[0])
	}

	if !bytes.Equal(got, data) {
		t.Error("buffered read differs from written data")
	}
	if reads := mem.Stats().Reads; reads != 1 {
		t.Errorf("memory reads = %d, want 1", reads)
	}
}

func TestBufferedReader_OffsetReportsInner(t *testing.T) {
	mem := region.New[uint32](1, 1)
	data := pattern(3000, 4)
	mem.Write(0, data)

	br := stablememory.NewBufferedReader(1024, stablememory.NewReader(mem, 0))
	buf := make([]byte, 10)
	if _, err := io.ReadFull(br, buf); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if br.Offset() != 1024 {
		t.Errorf("Offset = %d, want 1024", br.Offset())
	}
	if br.Buffered() != 1014 {
		t.Errorf("Buffered = %d, want 1014", br.Buffered())
	}
}

func TestBufferedReader_Seek(t *testing.T) {
	mem := region.New[uint32](1, 1)
	data := pattern(3000, 6)
	mem.Write(0, data)

	br := stablememory.NewBufferedReader(1024, stablememory.NewReader(mem, 0))
	if _, err := io.ReadFull(br, make([]byte, 10)); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}

	pos, err := br.Seek(0, io.SeekCurrent)
	if err != nil || pos != 10 {
		t.Fatalf("Seek(0, current) = %d, %v; want 10", pos, err)
	}
	buf := make([]byte, 5)
	if _, err := io.ReadFull(br, buf); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if !bytes.Equal(buf, data[10:15]) {
		t.Errorf("read %v after seek, want %v", buf, data[10:15])
	}

	if _, err := br.Seek(2000, io.SeekStart); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if br.Buffered() != 0 {
		t.Errorf("Buffered = %d after seek, want 0", br.Buffered())
	}
	if _, err := io.ReadFull(br, buf); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if !bytes.Equal(buf, data[2000:2005]) {
		t.Errorf("read %v after seek, want %v", buf, data[2000:2005])
	}

	if _, err := br.Seek(1, 42); err == nil {
		t.Error("expected error for invalid whence")
	}
}

func TestBufferedReader_EOF(t *testing.T) {
	mem := region.New[uint32](1, 1)
	br := stablememory.NewBufferedReader(1024, stablememory.NewReader(mem, 60000))

	data, err := io.ReadAll(br)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(data) != 5536 {
		t.Errorf("read %d bytes, want 5536", len(data))
	}
}
