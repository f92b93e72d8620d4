// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"code.hybscloud.com/hprof"
)

type classDumpVisitor struct {
	hprof.NopVisitor
	started      bool
	ended        bool
	instanceSize uint32
	staticBytes  []int8
	constantInts []int32
}

func (v *classDumpVisitor) VisitClassDumpStart(classObjID uint64, stackSerial uint32, superObjID, loaderObjID, signersObjID, domainObjID uint64, instanceSize uint32) error {
	v.started = true
	v.instanceSize = instanceSize
	return nil
}

func (v *classDumpVisitor) VisitClassDumpEnd() error { v.ended = true; return nil }

func (v *classDumpVisitor) VisitClassStaticByte(nameID uint64, value int8) error {
	v.staticBytes = append(v.staticBytes, value)
	return nil
}

func (v *classDumpVisitor) VisitClassConstantInt(index uint16, value int32) error {
	v.constantInts = append(v.constantInts, value)
	return nil
}

func TestClassDumpStaticByteIsSignedByteNotFloat(t *testing.T) {
	var inner bytes.Buffer
	inner.WriteByte(0x20) // CLASS_DUMP
	binary.Write(&inner, binary.BigEndian, uint32(0x100)) // class_oid
	binary.Write(&inner, binary.BigEndian, uint32(0))     // stack_serial
	binary.Write(&inner, binary.BigEndian, uint32(0))     // super_oid
	binary.Write(&inner, binary.BigEndian, uint32(0))     // loader_oid
	binary.Write(&inner, binary.BigEndian, uint32(0))     // signers_oid
	binary.Write(&inner, binary.BigEndian, uint32(0))     // domain_oid
	binary.Write(&inner, binary.BigEndian, uint32(0))     // reserved1
	binary.Write(&inner, binary.BigEndian, uint32(0))     // reserved2
	binary.Write(&inner, binary.BigEndian, uint32(8))     // instance_size
	binary.Write(&inner, binary.BigEndian, uint16(0))     // constant pool count
	binary.Write(&inner, binary.BigEndian, uint16(1))     // static count
	binary.Write(&inner, binary.BigEndian, uint32(0x200)) // static name id
	inner.WriteByte(0x08)                                  // BYTE
	inner.WriteByte(0xFE)                                  // -2 as signed byte
	binary.Write(&inner, binary.BigEndian, uint16(0))     // instance field count

	stream := header("JAVA PROFILE 1.0.2", 4, 0)
	stream = append(stream, outerRecord(0x1C, 0, uint32(inner.Len()), inner.Bytes())...)
	stream = append(stream, outerRecord(0x2C, 0, 0, nil)...)

	dec, err := hprof.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := &classDumpVisitor{}
	if err := dec.Read(bytes.NewReader(stream), v); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.started || !v.ended {
		t.Fatalf("expected class dump start/end, got started=%v ended=%v", v.started, v.ended)
	}
	if v.instanceSize != 8 {
		t.Fatalf("instanceSize = %d, want 8", v.instanceSize)
	}
	if len(v.staticBytes) != 1 || v.staticBytes[0] != -2 {
		t.Fatalf("staticBytes = %v, want [-2] (as a signed byte, not a float)", v.staticBytes)
	}
}

func TestPrimitiveArrayRejectsObjectType(t *testing.T) {
	var inner bytes.Buffer
	inner.WriteByte(0x23) // PRIMITIVE_ARRAY_DUMP
	binary.Write(&inner, binary.BigEndian, uint32(1))
	binary.Write(&inner, binary.BigEndian, uint32(0))
	binary.Write(&inner, binary.BigEndian, uint32(1))
	inner.WriteByte(0x02) // OBJECT -- invalid here

	stream := header("JAVA PROFILE 1.0.2", 4, 0)
	stream = append(stream, outerRecord(0x1C, 0, uint32(inner.Len()), inner.Bytes())...)
	stream = append(stream, outerRecord(0x2C, 0, 0, nil)...)

	dec, err := hprof.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := &classDumpVisitor{}
	err = dec.Read(bytes.NewReader(stream), v)
	if _, ok := err.(*hprof.FormatError); !ok {
		t.Fatalf("got %T (%v), want *hprof.FormatError", err, err)
	}
}

func TestObjectArrayOverlengthIsTruncationNotOOM(t *testing.T) {
	var inner bytes.Buffer
	inner.WriteByte(0x22) // OBJECT_ARRAY_DUMP
	binary.Write(&inner, binary.BigEndian, uint32(1))          // oid
	binary.Write(&inner, binary.BigEndian, uint32(0))          // stack_serial
	binary.Write(&inner, binary.BigEndian, uint32(0xFFFFFFFF)) // length: absurd
	binary.Write(&inner, binary.BigEndian, uint32(2))          // elem_class_oid

	stream := header("JAVA PROFILE 1.0.2", 4, 0)
	stream = append(stream, outerRecord(0x1C, 0, uint32(inner.Len()), inner.Bytes())...)
	stream = append(stream, outerRecord(0x2C, 0, 0, nil)...)

	dec, err := hprof.New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v := &classDumpVisitor{}
	err = dec.Read(bytes.NewReader(stream), v)
	if err == nil {
		t.Fatal("expected an error for an array length exceeding the frame")
	}
	if _, ok := err.(*hprof.IOError); !ok {
		t.Fatalf("got %T (%v), want *hprof.IOError (truncation)", err, err)
	}
}

