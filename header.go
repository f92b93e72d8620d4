// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"bytes"
	"io"
)

// headerProbeMax bounds the lookahead (read in 256-byte chunks) used to
// locate the NUL-terminated magic string. No real header magic approaches this size;
// it exists purely to reject a pathological or malicious stream instead of
// growing a buffer without limit.
const headerProbeMax = 4096

// Header carries the fixed preamble fields, parsed once and frozen for the
// remainder of the decode: the identifier width in particular governs
// every subsequent id() read.
type Header struct {
	Magic     string
	IDSize    int
	Timestamp uint64
}

// readHeader locates the NUL-terminated magic string, the following 4-byte
// identifier size and 8-byte timestamp, and returns the parsed Header
// along with a reader positioned exactly after those fields — any bytes
// read ahead during the probe are spliced back in front of channel via a
// prependReader.
func readHeader(channel io.Reader, cfg Config) (Header, io.Reader, error) {
	probe := make([]byte, 0, 256)
	chunk := make([]byte, 256)
	nulAt := -1
	for {
		n, err := channel.Read(chunk)
		if n > 0 {
			probe = append(probe, chunk[:n]...)
			if idx := bytes.IndexByte(probe, 0); idx >= 0 {
				nulAt = idx
			}
		}
		if nulAt >= 0 && len(probe) >= nulAt+1+4+8 {
			break
		}
		if err != nil {
			if err == io.EOF {
				return Header{}, nil, newTruncationError("header", nulAt+1+4+8, len(probe))
			}
			return Header{}, nil, newIOError("header", err)
		}
		if len(probe) > headerProbeMax {
			return Header{}, nil, newFormatError("header magic not NUL-terminated within bounds")
		}
	}

	magic := string(probe[:nulAt])
	rest := probe[nulAt+1:]
	idSize := int(cfg.ByteOrder.Uint32(rest[0:4]))
	timestamp := cfg.ByteOrder.Uint64(rest[4:12])
	leftover := rest[12:]

	if idSize != 4 && idSize != 8 {
		return Header{}, nil, newFormatError("illegal identifier size: must be 4 or 8")
	}
	if err := validateHeaderMagic(magic, cfg.StrictHeader); err != nil {
		return Header{}, nil, err
	}

	h := Header{Magic: magic, IDSize: idSize, Timestamp: timestamp}
	return h, newPrependReader(leftover, channel), nil
}
