// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "testing"

func TestValidateHeaderMagicKnownVariants(t *testing.T) {
	for _, magic := range []string{HeaderJDK5, HeaderJDK6} {
		if err := validateHeaderMagic(magic, true); err != nil {
			t.Fatalf("%q: unexpected error under strict mode: %v", magic, err)
		}
	}
}

func TestValidateHeaderMagicUnknownLenientAccepted(t *testing.T) {
	if err := validateHeaderMagic("JAVA PROFILE 1.0.3", false); err != nil {
		t.Fatalf("unexpected error under lenient mode: %v", err)
	}
}

func TestValidateHeaderMagicUnknownStrictRejected(t *testing.T) {
	err := validateHeaderMagic("JAVA PROFILE 1.0.3", true)
	if _, ok := err.(*FormatError); !ok {
		t.Fatalf("got %T (%v), want *FormatError", err, err)
	}
}
