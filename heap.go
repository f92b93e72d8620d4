// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "fmt"

// decodeHeapDumpSegment parses the tagged sub-records of a HEAP_DUMP
// payload until the framed sub-stream is exhausted.
// Multiple consecutive HEAP_DUMP records under a single logical dump
// (segmented dumps) fall out of this naturally: the outer loop in
// decoder.go calls this once per HEAP_DUMP record, and HEAP_DUMP_END is
// recognized only at the outer level.
func (d *Decoder) decodeHeapDumpSegment(ds *dataStream, framed *lengthFramedReader, idSize int, visitor Visitor) error {
	for {
		more, err := ds.hasRemaining()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		tagByte, err := ds.u8()
		if err != nil {
			return err
		}
		if err := d.decodeInnerRecord(ds, framed, innerTag(tagByte), idSize, visitor); err != nil {
			return err
		}
	}
}

func (d *Decoder) decodeInnerRecord(ds *dataStream, framed *lengthFramedReader, tag innerTag, idSize int, visitor Visitor) error {
	switch tag {
	case tagRootUnknown:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitRootUnknown(oid)

	case tagRootJNIGlobal:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		ref, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitRootJNIGlobal(oid, ref)

	case tagRootJNILocal:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		thread, err := ds.u32()
		if err != nil {
			return err
		}
		frame, err := ds.i32()
		if err != nil {
			return err
		}
		return visitor.VisitRootJNILocal(oid, thread, frame)

	case tagRootJavaFrame:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		thread, err := ds.u32()
		if err != nil {
			return err
		}
		frame, err := ds.i32()
		if err != nil {
			return err
		}
		return visitor.VisitRootJavaFrame(oid, thread, frame)

	case tagRootNativeStack:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		thread, err := ds.u32()
		if err != nil {
			return err
		}
		return visitor.VisitRootNativeStack(oid, thread)

	case tagRootStickyClass:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitRootStickyClass(oid)

	case tagRootThreadBlock:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		thread, err := ds.u32()
		if err != nil {
			return err
		}
		return visitor.VisitRootThreadBlock(oid, thread)

	case tagRootMonitorUsed:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitRootMonitorUsed(oid)

	case tagRootThreadObject:
		oid, err := ds.id()
		if err != nil {
			return err
		}
		thread, err := ds.u32()
		if err != nil {
			return err
		}
		stackSerial, err := ds.u32()
		if err != nil {
			return err
		}
		return visitor.VisitRootThreadObject(oid, thread, stackSerial)

	case tagClassDump:
		return d.decodeClassDump(ds, framed, idSize, visitor)

	case tagInstanceDump:
		return d.decodeInstanceDump(ds, framed, visitor)

	case tagObjectArrayDump:
		return d.decodeObjectArrayDump(ds, framed, idSize, visitor)

	case tagPrimitiveArrayDump:
		return d.decodePrimitiveArrayDump(ds, framed, visitor)

	default:
		return newFormatErrorByte(byte(tag), fmt.Sprintf("unrecognized heap record tag 0x%02x", byte(tag)))
	}
}

// frameBudget reports how many more bytes can possibly be read from the
// current HEAP_DUMP frame: whatever the framed reader has left to deliver,
// plus whatever the inner dataStream has already buffered ahead of it.
// Used to reject an oversized length/count before allocating for it.
func frameBudget(ds *dataStream, framed *lengthFramedReader) int64 {
	return framed.remaining() + int64(ds.buffered())
}

func (d *Decoder) decodeClassDump(ds *dataStream, framed *lengthFramedReader, idSize int, visitor Visitor) error {
	classObjID, err := ds.id()
	if err != nil {
		return err
	}
	stackSerial, err := ds.u32()
	if err != nil {
		return err
	}
	superObjID, err := ds.id()
	if err != nil {
		return err
	}
	loaderObjID, err := ds.id()
	if err != nil {
		return err
	}
	signersObjID, err := ds.id()
	if err != nil {
		return err
	}
	domainObjID, err := ds.id()
	if err != nil {
		return err
	}
	if _, err := ds.id(); err != nil { // reserved1, discarded
		return err
	}
	if _, err := ds.id(); err != nil { // reserved2, discarded
		return err
	}
	instanceSize, err := ds.u32()
	if err != nil {
		return err
	}
	if err := visitor.VisitClassDumpStart(classObjID, stackSerial, superObjID, loaderObjID, signersObjID, domainObjID, instanceSize); err != nil {
		return err
	}

	constCount, err := ds.u16()
	if err != nil {
		return err
	}
	for i := uint16(0); i < constCount; i++ {
		index, err := ds.u16()
		if err != nil {
			return err
		}
		typeByte, err := ds.u8()
		if err != nil {
			return err
		}
		if err := d.visitConstant(ds, index, basicType(typeByte), visitor); err != nil {
			return err
		}
	}

	staticCount, err := ds.u16()
	if err != nil {
		return err
	}
	for i := uint16(0); i < staticCount; i++ {
		nameID, err := ds.id()
		if err != nil {
			return err
		}
		typeByte, err := ds.u8()
		if err != nil {
			return err
		}
		if err := d.visitStatic(ds, nameID, basicType(typeByte), visitor); err != nil {
			return err
		}
	}

	fieldCount, err := ds.u16()
	if err != nil {
		return err
	}
	for i := uint16(0); i < fieldCount; i++ {
		nameID, err := ds.id()
		if err != nil {
			return err
		}
		typeByte, err := ds.u8()
		if err != nil {
			return err
		}
		if _, err := basicTypeSize(basicType(typeByte), idSize); err != nil {
			return err
		}
		if err := visitor.VisitClassField(nameID, basicType(typeByte)); err != nil {
			return err
		}
	}

	return visitor.VisitClassDumpEnd()
}

func (d *Decoder) visitConstant(ds *dataStream, index uint16, t basicType, visitor Visitor) error {
	switch t {
	case typeObject:
		v, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantObject(index, v)
	case typeBoolean:
		v, err := ds.boolVal()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantBool(index, v)
	case typeChar:
		v, err := ds.charVal()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantChar(index, v)
	case typeFloat:
		v, err := ds.f32()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantFloat(index, v)
	case typeDouble:
		v, err := ds.f64()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantDouble(index, v)
	case typeByte:
		v, err := ds.i8()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantByte(index, v)
	case typeShort:
		v, err := ds.i16()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantShort(index, v)
	case typeInt:
		v, err := ds.i32()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantInt(index, v)
	case typeLong:
		v, err := ds.i64()
		if err != nil {
			return err
		}
		return visitor.VisitClassConstantLong(index, v)
	default:
		return newFormatErrorByte(byte(t), fmt.Sprintf("unrecognized basic type 0x%02x", byte(t)))
	}
}

func (d *Decoder) visitStatic(ds *dataStream, nameID uint64, t basicType, visitor Visitor) error {
	switch t {
	case typeObject:
		v, err := ds.id()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticObject(nameID, v)
	case typeBoolean:
		v, err := ds.boolVal()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticBool(nameID, v)
	case typeChar:
		v, err := ds.charVal()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticChar(nameID, v)
	case typeFloat:
		v, err := ds.f32()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticFloat(nameID, v)
	case typeDouble:
		v, err := ds.f64()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticDouble(nameID, v)
	case typeByte:
		// Byte statics are a signed byte, per field, never float: a prior
		// implementation of this decoder mistyped this branch as float32.
		v, err := ds.i8()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticByte(nameID, v)
	case typeShort:
		v, err := ds.i16()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticShort(nameID, v)
	case typeInt:
		v, err := ds.i32()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticInt(nameID, v)
	case typeLong:
		v, err := ds.i64()
		if err != nil {
			return err
		}
		return visitor.VisitClassStaticLong(nameID, v)
	default:
		return newFormatErrorByte(byte(t), fmt.Sprintf("unrecognized basic type 0x%02x", byte(t)))
	}
}

func (d *Decoder) decodeInstanceDump(ds *dataStream, framed *lengthFramedReader, visitor Visitor) error {
	objID, err := ds.id()
	if err != nil {
		return err
	}
	stackSerial, err := ds.u32()
	if err != nil {
		return err
	}
	classObjID, err := ds.id()
	if err != nil {
		return err
	}
	size, err := ds.u32()
	if err != nil {
		return err
	}
	if int64(size) > frameBudget(ds, framed) {
		return newTruncationError("instance field data", int(size), int(frameBudget(ds, framed)))
	}
	buf, err := d.instanceBuf.ensure(int(size))
	if err != nil {
		return err
	}
	if err := ds.readFull(buf); err != nil {
		return err
	}
	return visitor.VisitInstance(objID, stackSerial, classObjID, buf)
}

func (d *Decoder) decodeObjectArrayDump(ds *dataStream, framed *lengthFramedReader, idSize int, visitor Visitor) error {
	objID, err := ds.id()
	if err != nil {
		return err
	}
	stackSerial, err := ds.u32()
	if err != nil {
		return err
	}
	length, err := ds.u32()
	if err != nil {
		return err
	}
	elemClassObjID, err := ds.id()
	if err != nil {
		return err
	}
	need := int64(length) * int64(idSize)
	if need > frameBudget(ds, framed) {
		return newTruncationError("object array", int(need), int(frameBudget(ds, framed)))
	}
	elems := make([]uint64, length)
	for i := range elems {
		v, err := ds.id()
		if err != nil {
			return err
		}
		elems[i] = v
	}
	return visitor.VisitObjectArray(objID, stackSerial, elemClassObjID, elems)
}

func (d *Decoder) decodePrimitiveArrayDump(ds *dataStream, framed *lengthFramedReader, visitor Visitor) error {
	objID, err := ds.id()
	if err != nil {
		return err
	}
	stackSerial, err := ds.u32()
	if err != nil {
		return err
	}
	length, err := ds.u32()
	if err != nil {
		return err
	}
	typeByte, err := ds.u8()
	if err != nil {
		return err
	}
	t := basicType(typeByte)
	if t == typeObject {
		return newFormatErrorByte(typeByte, "OBJECT type is invalid inside a primitive array")
	}
	elemSize, err := basicTypeSize(t, ds.idSize)
	if err != nil {
		return err
	}
	need := int64(length) * int64(elemSize)
	if need > frameBudget(ds, framed) {
		return newTruncationError("primitive array", int(need), int(frameBudget(ds, framed)))
	}

	switch t {
	case typeBoolean:
		elems := make([]bool, length)
		for i := range elems {
			v, err := ds.boolVal()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitBoolArray(objID, stackSerial, elems)
	case typeChar:
		elems := make([]uint16, length)
		for i := range elems {
			v, err := ds.charVal()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitCharArray(objID, stackSerial, elems)
	case typeFloat:
		elems := make([]float32, length)
		for i := range elems {
			v, err := ds.f32()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitFloatArray(objID, stackSerial, elems)
	case typeDouble:
		elems := make([]float64, length)
		for i := range elems {
			v, err := ds.f64()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitDoubleArray(objID, stackSerial, elems)
	case typeByte:
		elems := make([]byte, length)
		for i := range elems {
			v, err := ds.u8()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitByteArray(objID, stackSerial, elems)
	case typeShort:
		elems := make([]int16, length)
		for i := range elems {
			v, err := ds.i16()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitShortArray(objID, stackSerial, elems)
	case typeInt:
		elems := make([]int32, length)
		for i := range elems {
			v, err := ds.i32()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitIntArray(objID, stackSerial, elems)
	case typeLong:
		elems := make([]int64, length)
		for i := range elems {
			v, err := ds.i64()
			if err != nil {
				return err
			}
			elems[i] = v
		}
		return visitor.VisitLongArray(objID, stackSerial, elems)
	default:
		return newFormatErrorByte(typeByte, fmt.Sprintf("unrecognized basic type 0x%02x", typeByte))
	}
}
