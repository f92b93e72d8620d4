// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError reports an unrecognized tag, an unrecognized basic-type byte,
// an illegal header identifier size, or an OBJECT element inside a
// primitive array. The offending byte is carried, in hex, where applicable.
type FormatError struct {
	Byte    byte
	HasByte bool
	Msg     string
}

func (e *FormatError) Error() string {
	if e.HasByte {
		return fmt.Sprintf("hprof: format error: %s (byte 0x%02x)", e.Msg, e.Byte)
	}
	return fmt.Sprintf("hprof: format error: %s", e.Msg)
}

func newFormatError(msg string) *FormatError {
	return &FormatError{Msg: msg}
}

func newFormatErrorByte(b byte, msg string) *FormatError {
	return &FormatError{Byte: b, HasByte: true, Msg: msg}
}

// IOError reports that the underlying channel failed, or returned fewer
// bytes than a structurally mandatory field required. A truncation
// (required > 0) states exactly how many bytes were needed versus
// available, per spec.
type IOError struct {
	Op        string
	Required  int
	Available int
	cause     error
}

func (e *IOError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("hprof: %s: truncated stream: need %d bytes, have %d", e.Op, e.Required, e.Available)
	}
	return fmt.Sprintf("hprof: %s: %v", e.Op, e.cause)
}

func (e *IOError) Unwrap() error { return e.cause }

func newIOError(op string, cause error) *IOError {
	return &IOError{Op: op, cause: errors.Wrap(cause, "hprof: "+op)}
}

func newTruncationError(op string, required, available int) *IOError {
	return &IOError{Op: op, Required: required, Available: available, cause: errors.Errorf("%s: truncated", op)}
}

// ResourceError reports that a requested scratch buffer size exceeds its
// configured maximum. It is fatal to the decoding session; the caller must
// build a new Decoder with a larger maximum to proceed.
type ResourceError struct {
	Buffer    string
	Requested int
	Max       int
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("hprof: %s buffer requires %d bytes, exceeds configured maximum %d", e.Buffer, e.Requested, e.Max)
}

func newResourceError(buffer string, requested, max int) *ResourceError {
	return &ResourceError{Buffer: buffer, Requested: requested, Max: max}
}
