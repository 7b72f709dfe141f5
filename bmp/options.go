package bmp

import "github.com/apex/log"

// DefaultMaxPixels is the largest width*height accepted when Options.MaxPixels is zero.
const DefaultMaxPixels = 1 << 28

// Options specifies decoding parameters.
type Options struct {
	// Logger receives a debug record for each decoding stage and a warning
	// when run-length decoding is cut short. Defaults to the apex/log
	// package logger.
	Logger log.Interface
	// MaxPixels bounds width*height. Larger images fail with ErrFormat
	// before any pixel memory is allocated.
	MaxPixels int
	// MaxRLEOps bounds the number of byte pairs read from run-length
	// encoded data. Zero means width*height + height + 4096.
	MaxRLEOps int
	// TableSizing selects how the palette size is derived.
	TableSizing TableSizing
}

// resolveOptions returns the first non-nil options with defaults filled in.
func resolveOptions(opts []*Options) Options {
	var o Options
	if len(opts) > 0 && opts[0] != nil {
		o = *opts[0]
	}
	if o.Logger == nil {
		o.Logger = log.Log
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}
