// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "fmt"

// outerTag identifies a top-level record in the stream, following the
// 9-byte record header (tag, time delta, payload length).
type outerTag uint8

const (
	tagString      outerTag = 0x01
	tagLoadClass   outerTag = 0x02
	tagStackFrame  outerTag = 0x04
	tagStackTrace  outerTag = 0x05
	tagHeapDump    outerTag = 0x1C
	tagHeapDumpEnd outerTag = 0x2C
)

// innerTag identifies a sub-record inside a HEAP_DUMP payload.
type innerTag uint8

const (
	tagRootUnknown        innerTag = 0xFF
	tagRootJNIGlobal      innerTag = 0x01
	tagRootJNILocal       innerTag = 0x02
	tagRootJavaFrame      innerTag = 0x03
	tagRootNativeStack    innerTag = 0x04
	tagRootStickyClass    innerTag = 0x05
	tagRootThreadBlock    innerTag = 0x06
	tagRootMonitorUsed    innerTag = 0x07
	tagRootThreadObject   innerTag = 0x08
	tagClassDump          innerTag = 0x20
	tagInstanceDump       innerTag = 0x21
	tagObjectArrayDump    innerTag = 0x22
	tagPrimitiveArrayDump innerTag = 0x23
)

// basicType is one of the nine tagged element types used inside class
// dumps and primitive arrays.
type basicType uint8

const (
	typeObject  basicType = 2
	typeBoolean basicType = 4
	typeChar    basicType = 5
	typeFloat   basicType = 6
	typeDouble  basicType = 7
	typeByte    basicType = 8
	typeShort   basicType = 9
	typeInt     basicType = 10
	typeLong    basicType = 11
)

// basicTypeSize returns the on-wire width, in bytes, of t. idSize is the
// width of an OBJECT (identifier) element, frozen from the header.
func basicTypeSize(t basicType, idSize int) (int, error) {
	switch t {
	case typeObject:
		return idSize, nil
	case typeBoolean, typeByte:
		return 1, nil
	case typeChar, typeShort:
		return 2, nil
	case typeFloat, typeInt:
		return 4, nil
	case typeDouble, typeLong:
		return 8, nil
	default:
		return 0, newFormatErrorByte(byte(t), fmt.Sprintf("unrecognized basic type 0x%02x", byte(t)))
	}
}
