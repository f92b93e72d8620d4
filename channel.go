// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "io"

// prependReader splices a fixed slice of already-read bytes in front of a
// raw source, so header-parsing lookahead doesn't have to be un-read on
// the channel itself. Once pre is drained, reads fall through to src
// unmodified.
type prependReader struct {
	pre []byte
	off int
	src io.Reader
}

func newPrependReader(leftover []byte, src io.Reader) io.Reader {
	if len(leftover) == 0 {
		return src
	}
	return &prependReader{pre: leftover, src: src}
}

func (r *prependReader) Read(dst []byte) (int, error) {
	if r.off < len(r.pre) {
		n := copy(dst, r.pre[r.off:])
		r.off += n
		return n, nil
	}
	return r.src.Read(dst)
}

// lengthFramedReader exposes exactly the next rem bytes of src, then
// returns io.EOF. It does not own src: once rem reaches zero the caller is
// free to keep reading src directly; further Reads on the framed reader
// return io.EOF. This is how a HEAP_DUMP payload is carved out of the outer
// record stream without copying it.
type lengthFramedReader struct {
	src io.Reader
	rem int64
}

func newLengthFramedReader(src io.Reader, length int64) *lengthFramedReader {
	return &lengthFramedReader{src: src, rem: length}
}

func (r *lengthFramedReader) Read(dst []byte) (int, error) {
	if r.rem <= 0 {
		return 0, io.EOF
	}
	if int64(len(dst)) > r.rem {
		dst = dst[:r.rem]
	}
	n, err := r.src.Read(dst)
	r.rem -= int64(n)
	return n, err
}

// remaining reports how many bytes are still readable before the frame
// closes.
func (r *lengthFramedReader) remaining() int64 { return r.rem }

// discard consumes and drops any bytes the frame's consumer left unread,
// so the underlying stream lands exactly at the next outer record.
func (r *lengthFramedReader) discard() error {
	if r.rem <= 0 {
		return nil
	}
	n, err := io.CopyN(io.Discard, r.src, r.rem)
	r.rem -= n
	if err != nil && err != io.EOF {
		return newIOError("discard", err)
	}
	return nil
}
