package bmp

import (
	"errors"
	"fmt"
)

var (
	ErrStreamUnavailable      = errors.New("bmp: stream unavailable")
	ErrUnsupportedCompression = errors.New("bmp: unsupported compression")
	ErrUnrecognizedDialect    = errors.New("bmp: unrecognized dialect")
	ErrPaletteIndexOutOfRange = errors.New("bmp: palette index out of range")
	ErrCoordinateOutOfRange   = errors.New("bmp: coordinate out of range")
	ErrNeitherPalettedNorRGB  = errors.New("bmp: neither paletted nor rgb")
	ErrFormat                 = errors.New("bmp: invalid format")
	ErrNotImplemented         = errors.New("bmp: not implemented")
)

// A FormatError reports that the input is not a valid BMP image.
type FormatError string

func (e FormatError) Error() string { return "bmp: invalid format: " + string(e) }

func (e FormatError) Is(target error) bool { return target == ErrFormat }

// StreamError is returned when the named source could not be opened.
type StreamError struct {
	Name string
	Err  error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("bmp: cannot open %q: %v", e.Name, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

func (e *StreamError) Is(target error) bool { return target == ErrStreamUnavailable }

// CompressionError carries a compression code the decoder refuses to handle.
type CompressionError struct {
	Code Compression
}

func (e *CompressionError) Error() string {
	return fmt.Sprintf("bmp: unsupported compression %s (%d)", e.Code, uint32(e.Code))
}

func (e *CompressionError) Is(target error) bool { return target == ErrUnsupportedCompression }

// DialectError is returned when the signature or header size matches no
// known BMP dialect. Err is ErrNotImplemented for recognized but unsupported
// containers such as OS/2 bitmap arrays.
type DialectError struct {
	Signature uint16
	Err       error
}

func (e *DialectError) Error() string {
	sig := string([]byte{byte(e.Signature >> 8), byte(e.Signature)})
	if e.Err != nil {
		return fmt.Sprintf("bmp: unrecognized dialect %q: %v", sig, e.Err)
	}
	return fmt.Sprintf("bmp: unrecognized dialect %q", sig)
}

func (e *DialectError) Unwrap() error { return e.Err }

func (e *DialectError) Is(target error) bool { return target == ErrUnrecognizedDialect }

// PaletteIndexError reports a pixel whose color index is outside [Min, Max).
type PaletteIndexError struct {
	Index, Min, Max int
}

func (e *PaletteIndexError) Error() string {
	return fmt.Sprintf("bmp: palette index %d out of range [%d, %d)", e.Index, e.Min, e.Max)
}

func (e *PaletteIndexError) Is(target error) bool { return target == ErrPaletteIndexOutOfRange }

// CoordinateError reports a coordinate outside [Min, Max) on one axis.
type CoordinateError struct {
	Axis            string // "x" or "y"
	Value, Min, Max int
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("bmp: %s coordinate %d out of range [%d, %d)", e.Axis, e.Value, e.Min, e.Max)
}

func (e *CoordinateError) Is(target error) bool { return target == ErrCoordinateOutOfRange }

// RepresentationError is returned by pixel queries on a bitmap whose bit depth
// is neither paletted nor RGB, or whose pixels were never decoded.
type RepresentationError struct {
	BitsPerPixel int
}

func (e *RepresentationError) Error() string {
	return fmt.Sprintf("bmp: %d bits per pixel is neither paletted nor rgb", e.BitsPerPixel)
}

func (e *RepresentationError) Is(target error) bool { return target == ErrNeitherPalettedNorRGB }

func truncated(what string, err error) error {
	return fmt.Errorf("%w: truncated %s: %w", ErrFormat, what, err)
}
