// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "github.com/valyala/bytebufferpool"

// scratchBuffer is a named, growable-with-ceiling byte region. It never
// shrinks, and a request above its configured maximum is a fatal
// configuration error (ResourceError) rather than an allocation.
type scratchBuffer struct {
	name string
	buf  []byte
	max  int
}

func newScratchBuffer(name string, initial, max int) *scratchBuffer {
	if initial > max {
		initial = max
	}
	return &scratchBuffer{name: name, buf: make([]byte, initial), max: max}
}

// ensure returns a []byte of length n backed by the buffer's storage,
// growing to the next power of two (bounded by max) if the current
// capacity is insufficient. The returned slice is only valid until the
// next call to ensure on the same scratchBuffer.
func (b *scratchBuffer) ensure(n int) ([]byte, error) {
	if n < 0 {
		n = 0
	}
	if n > b.max {
		return nil, newResourceError(b.name, n, b.max)
	}
	if n <= cap(b.buf) {
		return b.buf[:n], nil
	}
	newCap := nextPowerOfTwo(n)
	if newCap > b.max {
		newCap = b.max
	}
	b.buf = make([]byte, newCap)
	return b.buf[:n], nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// smallBufferPool backs the fixed-layout, fixed-upper-bound records
// (LOAD_CLASS, STACK_FRAME, the 9-byte outer record header) that don't
// warrant one of the three named scratch buffers: they're read once,
// decoded in place, and released immediately.
var smallBufferPool bytebufferpool.Pool

// borrowSmall returns a pooled buffer sized to exactly n bytes. Callers
// must releaseSmall it when done.
func borrowSmall(n int) *bytebufferpool.ByteBuffer {
	bb := smallBufferPool.Get()
	if cap(bb.B) < n {
		bb.B = make([]byte, n, max(n, 4*1024))
	} else {
		bb.B = bb.B[:n]
	}
	return bb
}

func releaseSmall(bb *bytebufferpool.ByteBuffer) {
	bb.Reset()
	smallBufferPool.Put(bb)
}
