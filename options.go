// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package hprof

import (
	"encoding/binary"

	"go.uber.org/zap"
)

// Default scratch-buffer ceilings and the pre-allocated starting capacity,
// all well below the ceilings so a Decoder never starts out paying for
// headroom it may never need.
const (
	DefaultMaxStackBuffer    = 64 * 1024
	DefaultMaxStringBuffer   = 64 * 1024
	DefaultMaxInstanceBuffer = 64 * 1024

	initialBufferCapacity = 16 * 1024
)

// Config holds the immutable-after-build settings of a Decoder.
type Config struct {
	ByteOrder binary.ByteOrder

	MaxStackBuffer    int
	MaxStringBuffer   int
	MaxInstanceBuffer int

	// StrictHeader rejects a well-formed but unrecognized header magic
	// string with a FormatError instead of accepting it verbatim.
	StrictHeader bool

	Logger *zap.Logger
}

var defaultConfig = Config{
	ByteOrder:         binary.BigEndian,
	MaxStackBuffer:    DefaultMaxStackBuffer,
	MaxStringBuffer:   DefaultMaxStringBuffer,
	MaxInstanceBuffer: DefaultMaxInstanceBuffer,
	StrictHeader:      false,
	Logger:            zap.NewNop(),
}

// Option configures a Decoder at construction time.
type Option func(*Config)

// WithByteOrder sets the wire byte order used for every multi-byte
// primitive. The JVM default, and this package's default, is big-endian.
func WithByteOrder(order binary.ByteOrder) Option {
	return func(c *Config) { c.ByteOrder = order }
}

// WithMaxStackBuffer bounds the stack-frame-id scratch buffer used by
// STACK_TRACE records.
func WithMaxStackBuffer(n int) Option {
	return func(c *Config) { c.MaxStackBuffer = n }
}

// WithMaxStringBuffer bounds the scratch buffer used by STRING records.
func WithMaxStringBuffer(n int) Option {
	return func(c *Config) { c.MaxStringBuffer = n }
}

// WithMaxInstanceBuffer bounds the scratch buffer aliased into
// Visitor.VisitInstance for INSTANCE_DUMP records.
func WithMaxInstanceBuffer(n int) Option {
	return func(c *Config) { c.MaxInstanceBuffer = n }
}

// WithStrictHeader controls whether a well-formed but unrecognized header
// magic string is rejected (true) or accepted and surfaced verbatim via
// VisitHeader (false, the default).
func WithStrictHeader(strict bool) Option {
	return func(c *Config) { c.StrictHeader = strict }
}

// WithLogger attaches a logger for low-volume structural diagnostics
// (frame boundaries, header variant acceptance). Buffer growth is not
// logged. Per-record
// visitor events are never logged here; that volume belongs to the
// visitor. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
