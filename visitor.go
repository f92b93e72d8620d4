// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

// Visitor receives one call per logical record, in stream order, as a
// Decoder walks a heap dump. Implementations must not retain any []byte
// or string slice passed to them beyond the call that supplies it unless
// they copy it first: buffers backing those slices are reused across
// records.
type Visitor interface {
	// VisitHeader fires exactly once, before any other method.
	VisitHeader(h Header) error

	// Outer records.
	VisitString(id uint64, text string) error
	VisitLoadClass(serialNum uint32, classObjID uint64, stackTraceSerialNum uint32, classNameID uint64) error
	VisitStackFrame(frameID uint64, methodNameID, methodSigID, sourceFileNameID uint64, classSerialNum uint32, lineNumber int32) error
	VisitStackTrace(serialNum uint32, threadSerialNum uint32, frameIDs []uint64) error

	// Heap dump framing.
	VisitHeapDumpStart() error
	VisitHeapDumpEnd() error

	// GC roots.
	VisitRootUnknown(objID uint64) error
	VisitRootJNIGlobal(objID uint64, jniGlobalRefID uint64) error
	VisitRootJNILocal(objID uint64, threadSerialNum uint32, frameNum int32) error
	VisitRootJavaFrame(objID uint64, threadSerialNum uint32, frameNum int32) error
	VisitRootNativeStack(objID uint64, threadSerialNum uint32) error
	VisitRootStickyClass(objID uint64) error
	VisitRootThreadBlock(objID uint64, threadSerialNum uint32) error
	VisitRootMonitorUsed(objID uint64) error
	VisitRootThreadObject(objID uint64, threadSerialNum uint32, stackTraceSerialNum uint32) error

	// Class dump.
	VisitClassDumpStart(classObjID uint64, stackTraceSerialNum uint32, superClassObjID uint64,
		classLoaderObjID, signersObjID, protectionDomainObjID uint64,
		instanceSize uint32) error
	VisitClassConstantByte(index uint16, value int8) error
	VisitClassConstantBool(index uint16, value bool) error
	VisitClassConstantChar(index uint16, value uint16) error
	VisitClassConstantShort(index uint16, value int16) error
	VisitClassConstantInt(index uint16, value int32) error
	VisitClassConstantLong(index uint16, value int64) error
	VisitClassConstantFloat(index uint16, value float32) error
	VisitClassConstantDouble(index uint16, value float64) error
	VisitClassConstantObject(index uint16, value uint64) error
	VisitClassStaticByte(nameID uint64, value int8) error
	VisitClassStaticBool(nameID uint64, value bool) error
	VisitClassStaticChar(nameID uint64, value uint16) error
	VisitClassStaticShort(nameID uint64, value int16) error
	VisitClassStaticInt(nameID uint64, value int32) error
	VisitClassStaticLong(nameID uint64, value int64) error
	VisitClassStaticFloat(nameID uint64, value float32) error
	VisitClassStaticDouble(nameID uint64, value float64) error
	VisitClassStaticObject(nameID uint64, value uint64) error
	VisitClassField(nameID uint64, typ basicType) error
	VisitClassDumpEnd() error

	// Instance dump.
	VisitInstance(objID uint64, stackTraceSerialNum uint32, classObjID uint64, fieldData []byte) error

	// Array dumps.
	VisitObjectArray(objID uint64, stackTraceSerialNum uint32, elemClassObjID uint64, elems []uint64) error
	VisitBoolArray(objID uint64, stackTraceSerialNum uint32, elems []bool) error
	VisitCharArray(objID uint64, stackTraceSerialNum uint32, elems []uint16) error
	VisitFloatArray(objID uint64, stackTraceSerialNum uint32, elems []float32) error
	VisitDoubleArray(objID uint64, stackTraceSerialNum uint32, elems []float64) error
	VisitByteArray(objID uint64, stackTraceSerialNum uint32, elems []byte) error
	VisitShortArray(objID uint64, stackTraceSerialNum uint32, elems []int16) error
	VisitIntArray(objID uint64, stackTraceSerialNum uint32, elems []int32) error
	VisitLongArray(objID uint64, stackTraceSerialNum uint32, elems []int64) error
}

// NopVisitor implements Visitor with every method a no-op, for embedding
// by callers that only care about a handful of record kinds.
type NopVisitor struct{}

func (NopVisitor) VisitHeader(Header) error { return nil }

func (NopVisitor) VisitString(uint64, string) error                  { return nil }
func (NopVisitor) VisitLoadClass(uint32, uint64, uint32, uint64) error { return nil }
func (NopVisitor) VisitStackFrame(uint64, uint64, uint64, uint64, uint32, int32) error {
	return nil
}
func (NopVisitor) VisitStackTrace(uint32, uint32, []uint64) error { return nil }

func (NopVisitor) VisitHeapDumpStart() error { return nil }
func (NopVisitor) VisitHeapDumpEnd() error   { return nil }

func (NopVisitor) VisitRootUnknown(uint64) error                    { return nil }
func (NopVisitor) VisitRootJNIGlobal(uint64, uint64) error          { return nil }
func (NopVisitor) VisitRootJNILocal(uint64, uint32, int32) error    { return nil }
func (NopVisitor) VisitRootJavaFrame(uint64, uint32, int32) error   { return nil }
func (NopVisitor) VisitRootNativeStack(uint64, uint32) error        { return nil }
func (NopVisitor) VisitRootStickyClass(uint64) error                { return nil }
func (NopVisitor) VisitRootThreadBlock(uint64, uint32) error        { return nil }
func (NopVisitor) VisitRootMonitorUsed(uint64) error                { return nil }
func (NopVisitor) VisitRootThreadObject(uint64, uint32, uint32) error { return nil }

func (NopVisitor) VisitClassDumpStart(uint64, uint32, uint64, uint64, uint64, uint64, uint32) error {
	return nil
}
func (NopVisitor) VisitClassConstantByte(uint16, int8) error      { return nil }
func (NopVisitor) VisitClassConstantBool(uint16, bool) error      { return nil }
func (NopVisitor) VisitClassConstantChar(uint16, uint16) error    { return nil }
func (NopVisitor) VisitClassConstantShort(uint16, int16) error    { return nil }
func (NopVisitor) VisitClassConstantInt(uint16, int32) error      { return nil }
func (NopVisitor) VisitClassConstantLong(uint16, int64) error     { return nil }
func (NopVisitor) VisitClassConstantFloat(uint16, float32) error  { return nil }
func (NopVisitor) VisitClassConstantDouble(uint16, float64) error { return nil }
func (NopVisitor) VisitClassConstantObject(uint16, uint64) error  { return nil }
func (NopVisitor) VisitClassStaticByte(uint64, int8) error         { return nil }
func (NopVisitor) VisitClassStaticBool(uint64, bool) error         { return nil }
func (NopVisitor) VisitClassStaticChar(uint64, uint16) error       { return nil }
func (NopVisitor) VisitClassStaticShort(uint64, int16) error       { return nil }
func (NopVisitor) VisitClassStaticInt(uint64, int32) error         { return nil }
func (NopVisitor) VisitClassStaticLong(uint64, int64) error        { return nil }
func (NopVisitor) VisitClassStaticFloat(uint64, float32) error     { return nil }
func (NopVisitor) VisitClassStaticDouble(uint64, float64) error    { return nil }
func (NopVisitor) VisitClassStaticObject(uint64, uint64) error     { return nil }
func (NopVisitor) VisitClassField(uint64, basicType) error         { return nil }
func (NopVisitor) VisitClassDumpEnd() error                        { return nil }

func (NopVisitor) VisitInstance(uint64, uint32, uint64, []byte) error { return nil }

func (NopVisitor) VisitObjectArray(uint64, uint32, uint64, []uint64) error { return nil }
func (NopVisitor) VisitBoolArray(uint64, uint32, []bool) error             { return nil }
func (NopVisitor) VisitCharArray(uint64, uint32, []uint16) error           { return nil }
func (NopVisitor) VisitFloatArray(uint64, uint32, []float32) error         { return nil }
func (NopVisitor) VisitDoubleArray(uint64, uint32, []float64) error        { return nil }
func (NopVisitor) VisitByteArray(uint64, uint32, []byte) error             { return nil }
func (NopVisitor) VisitShortArray(uint64, uint32, []int16) error           { return nil }
func (NopVisitor) VisitIntArray(uint64, uint32, []int32) error             { return nil }
func (NopVisitor) VisitLongArray(uint64, uint32, []int64) error            { return nil }

var _ Visitor = NopVisitor{}
