// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import "code.hybscloud.com/hprof"

// summaryVisitor counts records by kind; it demonstrates driving the
// decoder with a minimal, mostly-embedded Visitor.
type summaryVisitor struct {
	hprof.NopVisitor

	magic string
	idSize int

	strings         int
	classes         int
	stackTraces     int
	roots           int
	classDumps      int
	instances       int
	objectArrays    int
	primitiveArrays int
}

func newSummaryVisitor() *summaryVisitor { return &summaryVisitor{} }

func (s *summaryVisitor) VisitHeader(h hprof.Header) error {
	s.magic = h.Magic
	s.idSize = h.IDSize
	return nil
}

func (s *summaryVisitor) VisitString(uint64, string) error { s.strings++; return nil }

func (s *summaryVisitor) VisitLoadClass(uint32, uint64, uint32, uint64) error {
	s.classes++
	return nil
}

func (s *summaryVisitor) VisitStackTrace(uint32, uint32, []uint64) error {
	s.stackTraces++
	return nil
}

func (s *summaryVisitor) VisitRootUnknown(uint64) error                    { s.roots++; return nil }
func (s *summaryVisitor) VisitRootJNIGlobal(uint64, uint64) error          { s.roots++; return nil }
func (s *summaryVisitor) VisitRootJNILocal(uint64, uint32, int32) error    { s.roots++; return nil }
func (s *summaryVisitor) VisitRootJavaFrame(uint64, uint32, int32) error   { s.roots++; return nil }
func (s *summaryVisitor) VisitRootNativeStack(uint64, uint32) error        { s.roots++; return nil }
func (s *summaryVisitor) VisitRootStickyClass(uint64) error                { s.roots++; return nil }
func (s *summaryVisitor) VisitRootThreadBlock(uint64, uint32) error        { s.roots++; return nil }
func (s *summaryVisitor) VisitRootMonitorUsed(uint64) error                { s.roots++; return nil }
func (s *summaryVisitor) VisitRootThreadObject(uint64, uint32, uint32) error {
	s.roots++
	return nil
}

func (s *summaryVisitor) VisitClassDumpStart(uint64, uint32, uint64, uint64, uint64, uint64, uint32) error {
	s.classDumps++
	return nil
}

func (s *summaryVisitor) VisitInstance(uint64, uint32, uint64, []byte) error {
	s.instances++
	return nil
}

func (s *summaryVisitor) VisitObjectArray(uint64, uint32, uint64, []uint64) error {
	s.objectArrays++
	return nil
}

func (s *summaryVisitor) VisitBoolArray(uint64, uint32, []bool) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitCharArray(uint64, uint32, []uint16) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitFloatArray(uint64, uint32, []float32) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitDoubleArray(uint64, uint32, []float64) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitByteArray(uint64, uint32, []byte) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitShortArray(uint64, uint32, []int16) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitIntArray(uint64, uint32, []int32) error {
	s.primitiveArrays++
	return nil
}
func (s *summaryVisitor) VisitLongArray(uint64, uint32, []int64) error {
	s.primitiveArrays++
	return nil
}

var _ hprof.Visitor = (*summaryVisitor)(nil)
