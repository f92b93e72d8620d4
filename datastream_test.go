// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"
)

// shortReader delivers its contents in small, arbitrary chunks, to exercise
// ensure's compaction-and-refill loop against a backing source that never
// fills the whole buffer in a single read.
type shortReader struct {
	data  []byte
	chunk int
}

func (r *shortReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	n := r.chunk
	if n > len(p) {
		n = len(p)
	}
	if n > len(r.data) {
		n = len(r.data)
	}
	copy(p, r.data[:n])
	r.data = r.data[n:]
	return n, nil
}

func TestDataStreamTypedAccessorsBigEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(1)                                   // bool true
	buf.WriteByte(0xFE)                                 // i8 -2
	binary.Write(&buf, binary.BigEndian, uint16(0x4142)) // char
	binary.Write(&buf, binary.BigEndian, int16(-5))
	binary.Write(&buf, binary.BigEndian, int32(-100))
	binary.Write(&buf, binary.BigEndian, int64(-1000))
	binary.Write(&buf, binary.BigEndian, uint32(0x3F800000)) // 1.0f
	binary.Write(&buf, binary.BigEndian, uint64(0x3FF0000000000000)) // 1.0

	ds := newDataStream(&shortReader{data: buf.Bytes(), chunk: 3}, binary.BigEndian, 4)

	if v, err := ds.boolVal(); err != nil || v != true {
		t.Fatalf("boolVal = %v, %v", v, err)
	}
	if v, err := ds.i8(); err != nil || v != -2 {
		t.Fatalf("i8 = %v, %v", v, err)
	}
	if v, err := ds.charVal(); err != nil || v != 0x4142 {
		t.Fatalf("charVal = %v, %v", v, err)
	}
	if v, err := ds.i16(); err != nil || v != -5 {
		t.Fatalf("i16 = %v, %v", v, err)
	}
	if v, err := ds.i32(); err != nil || v != -100 {
		t.Fatalf("i32 = %v, %v", v, err)
	}
	if v, err := ds.i64(); err != nil || v != -1000 {
		t.Fatalf("i64 = %v, %v", v, err)
	}
	if v, err := ds.f32(); err != nil || v != 1.0 {
		t.Fatalf("f32 = %v, %v", v, err)
	}
	if v, err := ds.f64(); err != nil || v != 1.0 {
		t.Fatalf("f64 = %v, %v", v, err)
	}
}

func TestDataStreamIDWidth(t *testing.T) {
	for _, tc := range []struct {
		idSize int
		bytes  []byte
		want   uint64
	}{
		{4, []byte{0x00, 0x00, 0x00, 0x2A}, 0x2A},
		{8, []byte{0, 0, 0, 0, 0, 0, 0, 0x2A}, 0x2A},
	} {
		ds := newDataStream(bytes.NewReader(tc.bytes), binary.BigEndian, tc.idSize)
		got, err := ds.id()
		if err != nil {
			t.Fatalf("id(): %v", err)
		}
		if got != tc.want {
			t.Fatalf("idSize=%d: got %d, want %d", tc.idSize, got, tc.want)
		}
	}
}

func TestDataStreamHasRemainingCleanEOF(t *testing.T) {
	ds := newDataStream(bytes.NewReader(nil), binary.BigEndian, 4)
	more, err := ds.hasRemaining()
	if err != nil {
		t.Fatalf("hasRemaining: %v", err)
	}
	if more {
		t.Fatal("expected hasRemaining to report false on clean EOF")
	}
}

func TestDataStreamEnsureTruncationError(t *testing.T) {
	ds := newDataStream(bytes.NewReader([]byte{1, 2}), binary.BigEndian, 4)
	_, err := ds.u32()
	ioErr, ok := err.(*IOError)
	if !ok {
		t.Fatalf("got %T, want *IOError", err)
	}
	if ioErr.Required != 4 || ioErr.Available != 2 {
		t.Fatalf("unexpected truncation fields: %+v", ioErr)
	}
}

func TestDataStreamIsItselfAnIOReader(t *testing.T) {
	ds := newDataStream(&shortReader{data: []byte("0123456789"), chunk: 3}, binary.BigEndian, 4)
	// Pull two bytes via the typed accessor first, to populate the buffer
	// ahead of the Read call.
	if _, err := ds.u16(); err != nil {
		t.Fatalf("u16: %v", err)
	}
	rest, err := io.ReadAll(ds)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(rest) != "23456789" {
		t.Fatalf("got %q, want 23456789", rest)
	}
}

func TestDataStreamReadFullDrainsBufferThenSource(t *testing.T) {
	ds := newDataStream(&shortReader{data: []byte("abcdef"), chunk: 2}, binary.BigEndian, 4)
	if _, err := ds.u8(); err != nil {
		t.Fatalf("u8: %v", err)
	}
	dst := make([]byte, 5)
	if err := ds.readFull(dst); err != nil {
		t.Fatalf("readFull: %v", err)
	}
	if string(dst) != "bcdef" {
		t.Fatalf("got %q, want bcdef", dst)
	}
}
