// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"encoding/binary"
	"io"
	"math"
)

const dataStreamBufSize = 32 * 1024

// dataStream is a refill-by-compaction buffered reader with typed
// primitive accessors over a configured byte order and identifier width.
// It also implements io.Reader itself, so a dataStream can be wrapped by a
// lengthFramedReader to build a fresh inner dataStream over a HEAP_DUMP
// payload without any manual buffer-splicing between layers: bytes the
// outer dataStream had already buffered ahead are drained first, then
// further reads fall through to its own src, all transparently bounded by
// the framed reader's remaining count.
type dataStream struct {
	src    io.Reader
	order  binary.ByteOrder
	idSize int

	buf      []byte
	pos, lim int
}

func newDataStream(src io.Reader, order binary.ByteOrder, idSize int) *dataStream {
	return &dataStream{src: src, order: order, idSize: idSize, buf: make([]byte, dataStreamBufSize)}
}

// Read implements io.Reader: buffered bytes first, then src directly.
func (d *dataStream) Read(dst []byte) (int, error) {
	if d.pos < d.lim {
		n := copy(dst, d.buf[d.pos:d.lim])
		d.pos += n
		return n, nil
	}
	return d.src.Read(dst)
}

func (d *dataStream) buffered() int { return d.lim - d.pos }

// ensure guarantees at least n bytes are available in the buffer,
// compacting and refilling from src as needed. It returns a truncation
// IOError if the stream ends before n bytes accumulate.
func (d *dataStream) ensure(n int) error {
	if n <= d.buffered() {
		return nil
	}
	if n > len(d.buf) {
		grown := make([]byte, nextPowerOfTwo(n))
		copy(grown, d.buf[d.pos:d.lim])
		d.lim -= d.pos
		d.pos = 0
		d.buf = grown
	} else if d.pos > 0 {
		copy(d.buf, d.buf[d.pos:d.lim])
		d.lim -= d.pos
		d.pos = 0
	}
	for d.buffered() < n {
		r, err := d.src.Read(d.buf[d.lim:])
		d.lim += r
		if err != nil {
			if err == io.EOF {
				return newTruncationError("ensure", n, d.buffered())
			}
			return newIOError("ensure", err)
		}
	}
	return nil
}

// hasRemaining reports whether at least one more byte is available,
// attempting at most one refill. EOF on that refill yields (false, nil):
// a clean end of stream, not an error.
func (d *dataStream) hasRemaining() (bool, error) {
	if d.buffered() > 0 {
		return true, nil
	}
	if d.pos > 0 {
		d.pos, d.lim = 0, 0
	}
	n, err := d.src.Read(d.buf)
	d.lim = n
	if n > 0 {
		return true, nil
	}
	if err == io.EOF || err == nil {
		return false, nil
	}
	return false, newIOError("hasRemaining", err)
}

// readFull copies exactly len(dst) bytes, draining the buffer first.
func (d *dataStream) readFull(dst []byte) error {
	n := copy(dst, d.buf[d.pos:d.lim])
	d.pos += n
	if n == len(dst) {
		return nil
	}
	rd, err := io.ReadFull(d.src, dst[n:])
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return newTruncationError("readFull", len(dst), n+rd)
		}
		return newIOError("readFull", err)
	}
	return nil
}

func (d *dataStream) u8() (uint8, error) {
	if err := d.ensure(1); err != nil {
		return 0, err
	}
	v := d.buf[d.pos]
	d.pos++
	return v, nil
}

func (d *dataStream) i8() (int8, error) {
	v, err := d.u8()
	return int8(v), err
}

func (d *dataStream) boolVal() (bool, error) {
	v, err := d.u8()
	return v != 0, err
}

func (d *dataStream) u16() (uint16, error) {
	if err := d.ensure(2); err != nil {
		return 0, err
	}
	v := d.order.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v, nil
}

func (d *dataStream) i16() (int16, error) {
	v, err := d.u16()
	return int16(v), err
}

func (d *dataStream) charVal() (uint16, error) { return d.u16() }

func (d *dataStream) u32() (uint32, error) {
	if err := d.ensure(4); err != nil {
		return 0, err
	}
	v := d.order.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v, nil
}

func (d *dataStream) i32() (int32, error) {
	v, err := d.u32()
	return int32(v), err
}

func (d *dataStream) f32() (float32, error) {
	v, err := d.u32()
	return math.Float32frombits(v), err
}

func (d *dataStream) u64() (uint64, error) {
	if err := d.ensure(8); err != nil {
		return 0, err
	}
	v := d.order.Uint64(d.buf[d.pos:])
	d.pos += 8
	return v, nil
}

func (d *dataStream) i64() (int64, error) {
	v, err := d.u64()
	return int64(v), err
}

func (d *dataStream) f64() (float64, error) {
	v, err := d.u64()
	return math.Float64frombits(v), err
}

// id reads an identifier, zero-extended to uint64 regardless of whether
// the header declared a 4- or 8-byte identifier width.
func (d *dataStream) id() (uint64, error) {
	if d.idSize == 8 {
		return d.u64()
	}
	v, err := d.u32()
	return uint64(v), err
}
