// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"errors"
	"testing"
)

func TestFormatErrorMessage(t *testing.T) {
	e := newFormatErrorByte(0x31, "unrecognized heap record tag 0x31")
	if got := e.Error(); got != "hprof: format error: unrecognized heap record tag 0x31 (byte 0x31)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestIOErrorTruncationMessage(t *testing.T) {
	e := newTruncationError("ensure", 4, 2)
	want := "hprof: ensure: truncated stream: need 4 bytes, have 2"
	if got := e.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIOErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	e := newIOError("ensure", cause)
	if !errors.Is(e, cause) {
		t.Fatal("expected IOError to unwrap to its cause")
	}
}

func TestResourceErrorMessage(t *testing.T) {
	e := newResourceError("stack", 200, 64)
	want := "hprof: stack buffer requires 200 bytes, exceeds configured maximum 64"
	if got := e.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
