// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import "fmt"

// Header magic strings observed across HotSpot-family VM releases. Both
// are the "1.0.x profile" family this decoder targets; the numbers denote
// an on-wire format revision, not a JVM version.
const (
	HeaderJDK5 = "JAVA PROFILE 1.0.1"
	HeaderJDK6 = "JAVA PROFILE 1.0.2"
)

// knownHeaders is the single source of truth for which magic strings this
// decoder recognizes out of the box. Unrecognized-but-well-formed magic
// strings are still accepted unless Config.StrictHeader is set: vendors
// and older VM builds have emitted close variants, and the wire layout
// that follows the magic string (id size, timestamp) does not depend on
// which one is present.
var knownHeaders = map[string]bool{
	HeaderJDK5: true,
	HeaderJDK6: true,
}

func validateHeaderMagic(magic string, strict bool) error {
	if knownHeaders[magic] {
		return nil
	}
	if strict {
		return newFormatError(fmt.Sprintf("unrecognized header magic %q", magic))
	}
	return nil
}
