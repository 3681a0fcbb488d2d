// Package codec saves and restores Go values in stable memory using CBOR.
//
// Encode and Decode work on any stream, including the stablememory stream
// types. Save and Restore place a single value at offset 0 of a memory:
//
//	if err := codec.Save(host.Default(), state); err != nil {
//	    return err
//	}
//	...
//	var state State
//	if err := codec.Restore(host.Default(), &state); err != nil {
//	    return err
//	}
//
// Save overwrites from offset 0 and never shrinks the memory; bytes past the
// encoded value are left as they were and ignored by Restore.
package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	stablememory "github.com/wippyai/stable-memory"
	"github.com/wippyai/stable-memory/errors"
)

// BufferSize is the buffer used by Save and Restore.
const BufferSize = 64 * 1024

var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	enc, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return enc
}

// Encode writes v to w as canonical CBOR.
func Encode(w io.Writer, v any) error {
	if err := encMode.NewEncoder(w).Encode(v); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindInvalidData, err, "encode value")
	}
	return nil
}

// Decode reads one CBOR value from r into v.
func Decode(r io.Reader, v any) error {
	if err := cbor.NewDecoder(r).Decode(v); err != nil {
		if err == io.EOF {
			return errors.InvalidData(errors.PhaseDecode, "no value stored", err)
		}
		return errors.Wrap(errors.PhaseDecode, errors.KindInvalidData, err, "decode value")
	}
	return nil
}

// Save encodes v at offset 0 of memory, growing it as needed.
// The error matches stablememory.ErrOutOfMemory if the memory cannot grow.
func Save(memory stablememory.Memory32, v any) error {
	w := stablememory.NewBufferedWriter(BufferSize, stablememory.NewWriter(memory, 0))
	if err := Encode(w, v); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return errors.Wrap(errors.PhaseEncode, errors.KindOutOfMemory, err, "flush value")
	}
	return nil
}

// Restore decodes the value saved at offset 0 of memory into v.
func Restore(memory stablememory.Memory32, v any) error {
	r := stablememory.NewBufferedReader(BufferSize, stablememory.NewReader(memory, 0))
	return Decode(r, v)
}
