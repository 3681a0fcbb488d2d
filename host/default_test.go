package host

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	stablememory "github.com/wippyai/stable-memory"
	smerrors "github.com/wippyai/stable-memory/errors"
)

func TestDefault_StaticFunctions(t *testing.T) {
	before := Size()
	if Size64() != uint64(before) {
		t.Errorf("Size64 = %d, Size = %d", Size64(), before)
	}

	prev, err := Grow(1)
	if err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	if prev != before {
		t.Errorf("prev = %d, want %d", prev, before)
	}
	if Size() != before+1 {
		t.Errorf("Size = %d, want %d", Size(), before+1)
	}

	offset := before * stablememory.PageSize
	Write(offset, []byte("static"))
	got := make([]byte, 6)
	Read64(uint64(offset), got)
	if string(got) != "static" {
		t.Errorf("Read64 = %q, want %q", got, "static")
	}

	prev64, err := Grow64(1)
	if err != nil {
		t.Fatalf("Grow64 failed: %v", err)
	}
	if prev64 != uint64(before)+1 {
		t.Errorf("prev64 = %d, want %d", prev64, before+1)
	}
	Write64(uint64(offset)+stablememory.PageSize, []byte("wide"))
	got = got[:4]
	Read(offset+stablememory.PageSize, got)
	if string(got) != "wide" {
		t.Errorf("Read = %q, want %q", got, "wide")
	}

	snap := Bytes()
	if len(snap) != int(Size())*stablememory.PageSize {
		t.Errorf("Bytes has %d bytes, want %d", len(snap), int(Size())*stablememory.PageSize)
	}
	if !bytes.Equal(snap[offset:offset+6], []byte("static")) {
		t.Error("Bytes does not reflect written data")
	}
}

func TestDefault_HandlesShareMemory(t *testing.T) {
	if Default().Size() != Size() || Default64().Size() != Size64() {
		t.Error("handles disagree with package functions")
	}
	if _, err := Default().Grow(1); err != nil {
		t.Fatalf("Grow failed: %v", err)
	}
	if Default64().Size() != uint64(Default().Size()) {
		t.Error("64-bit handle does not see growth through 32-bit handle")
	}
}

func TestDefault_ReaderWriter(t *testing.T) {
	data := []byte("written through the default memory")

	w := NewBufferedWriter(1024)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	r := NewBufferedReader(1024)
	got := make([]byte, len(data))
	if _, err := io.ReadFull(r, got); err != nil {
		t.Fatalf("ReadFull failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("read %q, want %q", got, data)
	}

	if _, err := NewWriter().Write([]byte("X")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	one := make([]byte, 1)
	if _, err := NewReader().Read(one); err != nil || one[0] != 'X' {
		t.Errorf("Read = %q, %v", one, err)
	}

	c := NewCursor64()
	if c.Capacity() != Size64() {
		t.Errorf("Capacity = %d, want %d", c.Capacity(), Size64())
	}
	if NewCursor().Capacity() != Size() {
		t.Errorf("32-bit cursor capacity disagrees with Size")
	}
}

func TestNew_RejectsLimitAboveWasm32(t *testing.T) {
	_, err := New(context.Background(), &Config{MemoryLimitPages: DefaultMemoryLimitPages + 1})
	if !errors.Is(err, &smerrors.Error{Kind: smerrors.KindInvalidInput}) {
		t.Errorf("error %v should be invalid input", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	ctx := context.Background()
	h, err := New(ctx, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer h.Close(ctx)

	cfg := h.Config()
	if cfg.MemoryLimitPages != DefaultMemoryLimitPages || cfg.ModuleName != DefaultModuleName {
		t.Errorf("config = %+v", cfg)
	}
}
