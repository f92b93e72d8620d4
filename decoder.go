// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Decoder walks a single heap-dump stream, invoking a Visitor once per
// logical record in stream order. It owns its scratch buffers and is not
// safe for concurrent use across streams; build a separate Decoder per
// concurrent decode.
type Decoder struct {
	cfg Config

	stackBuf    *scratchBuffer
	stringBuf   *scratchBuffer
	instanceBuf *scratchBuffer
}

// New builds a Decoder from the given options.
func New(opts ...Option) (*Decoder, error) {
	cfg := defaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ByteOrder == nil {
		return nil, newFormatError("byte order must not be nil")
	}
	d := &Decoder{
		cfg:         cfg,
		stackBuf:    newScratchBuffer("stack", initialBufferCapacity, cfg.MaxStackBuffer),
		stringBuf:   newScratchBuffer("string", initialBufferCapacity, cfg.MaxStringBuffer),
		instanceBuf: newScratchBuffer("instance", initialBufferCapacity, cfg.MaxInstanceBuffer),
	}
	return d, nil
}

// Read decodes channel in a single pass, dispatching to visitor. It
// returns on a clean end of stream (after HEAP_DUMP_END or EOF at a record
// boundary) or the first error of any kind.
func (d *Decoder) Read(channel io.Reader, visitor Visitor) error {
	sessionID := uuid.New()
	log := d.cfg.Logger.With(zap.String("session", sessionID.String()))

	hdr, rest, err := readHeader(channel, d.cfg)
	if err != nil {
		return err
	}
	if hdr.Magic != HeaderJDK5 && hdr.Magic != HeaderJDK6 {
		log.Debug("accepted non-standard header magic", zap.String("magic", hdr.Magic))
	}
	if err := visitor.VisitHeader(hdr); err != nil {
		return err
	}

	ds := newDataStream(rest, d.cfg.ByteOrder, hdr.IDSize)
	heapDumpStarted := false

	for {
		more, err := ds.hasRemaining()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		recHdr := borrowSmall(9)
		err = ds.readFull(recHdr.B)
		tagByte := recHdr.B[0]
		length := d.cfg.ByteOrder.Uint32(recHdr.B[5:9])
		releaseSmall(recHdr)
		if err != nil {
			return err
		}
		tag := outerTag(tagByte)

		switch tag {
		case tagString:
			if err := d.decodeString(ds, length, visitor); err != nil {
				return err
			}
		case tagLoadClass:
			if err := d.decodeLoadClass(ds, hdr.IDSize, visitor); err != nil {
				return err
			}
		case tagStackFrame:
			if err := d.decodeStackFrame(ds, hdr.IDSize, visitor); err != nil {
				return err
			}
		case tagStackTrace:
			if err := d.decodeStackTrace(ds, hdr.IDSize, visitor); err != nil {
				return err
			}
		case tagHeapDump:
			log.Debug("entering heap dump frame", zap.Uint32("length", length))
			framed := newLengthFramedReader(ds, int64(length))
			inner := newDataStream(framed, d.cfg.ByteOrder, hdr.IDSize)
			if !heapDumpStarted {
				heapDumpStarted = true
				if err := visitor.VisitHeapDumpStart(); err != nil {
					return err
				}
			}
			if err := d.decodeHeapDumpSegment(inner, framed, hdr.IDSize, visitor); err != nil {
				return err
			}
			if err := framed.discard(); err != nil {
				return err
			}
			log.Debug("exiting heap dump frame")
		case tagHeapDumpEnd:
			return visitor.VisitHeapDumpEnd()
		default:
			return newFormatErrorByte(tagByte, fmt.Sprintf("unrecognized outer record tag 0x%02x", tagByte))
		}
	}
}

func (d *Decoder) decodeString(ds *dataStream, length uint32, visitor Visitor) error {
	idSize := ds.idSize
	if int64(length) < int64(idSize) {
		return newFormatError("STRING record shorter than identifier width")
	}
	buf, err := d.stringBuf.ensure(int(length))
	if err != nil {
		return err
	}
	if err := ds.readFull(buf); err != nil {
		return err
	}
	var id uint64
	if idSize == 8 {
		id = d.cfg.ByteOrder.Uint64(buf[0:8])
	} else {
		id = uint64(d.cfg.ByteOrder.Uint32(buf[0:4]))
	}
	text := string(buf[idSize:])
	return visitor.VisitString(id, text)
}

func (d *Decoder) decodeLoadClass(ds *dataStream, idSize int, visitor Visitor) error {
	bb := borrowSmall(2*idSize + 8)
	defer releaseSmall(bb)
	if err := ds.readFull(bb.B); err != nil {
		return err
	}
	off := 0
	classSerial := d.cfg.ByteOrder.Uint32(bb.B[off:])
	off += 4
	classObjID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	off += idSize
	stackSerial := d.cfg.ByteOrder.Uint32(bb.B[off:])
	off += 4
	classNameID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	return visitor.VisitLoadClass(classSerial, classObjID, stackSerial, classNameID)
}

func (d *Decoder) decodeStackFrame(ds *dataStream, idSize int, visitor Visitor) error {
	bb := borrowSmall(4*idSize + 8)
	defer releaseSmall(bb)
	if err := ds.readFull(bb.B); err != nil {
		return err
	}
	off := 0
	frameID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	off += idSize
	methodNameID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	off += idSize
	methodSigID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	off += idSize
	sourceFileNameID := readID(bb.B[off:], idSize, d.cfg.ByteOrder)
	off += idSize
	classSerial := d.cfg.ByteOrder.Uint32(bb.B[off:])
	off += 4
	lineNumber := int32(d.cfg.ByteOrder.Uint32(bb.B[off:]))
	return visitor.VisitStackFrame(frameID, methodNameID, methodSigID, sourceFileNameID, classSerial, lineNumber)
}

func (d *Decoder) decodeStackTrace(ds *dataStream, idSize int, visitor Visitor) error {
	bb := borrowSmall(12)
	defer releaseSmall(bb)
	if err := ds.readFull(bb.B); err != nil {
		return err
	}
	serialNum := d.cfg.ByteOrder.Uint32(bb.B[0:4])
	threadSerialNum := d.cfg.ByteOrder.Uint32(bb.B[4:8])
	frameCount := d.cfg.ByteOrder.Uint32(bb.B[8:12])

	need := int64(frameCount) * int64(idSize)
	if need > int64(d.stackBuf.max) {
		return newResourceError("stack", int(need), d.stackBuf.max)
	}
	buf, err := d.stackBuf.ensure(int(need))
	if err != nil {
		return err
	}
	if err := ds.readFull(buf); err != nil {
		return err
	}
	frameIDs := make([]uint64, frameCount)
	for i := range frameIDs {
		frameIDs[i] = readID(buf[i*idSize:], idSize, d.cfg.ByteOrder)
	}
	return visitor.VisitStackTrace(serialNum, threadSerialNum, frameIDs)
}

func readID(b []byte, idSize int, order binary.ByteOrder) uint64 {
	if idSize == 8 {
		return order.Uint64(b[0:8])
	}
	return uint64(order.Uint32(b[0:4]))
}
