package bmp

import (
	"fmt"
	"io"
	"strings"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

// VersionSet is the set of BMP dialects a stream is consistent with. Some
// headers are valid in more than one dialect (a 12-byte header is both
// Windows 2.x and OS/2 1.x); the set keeps every candidate.
type VersionSet uint16

const (
	Unknown VersionSet = 1 << iota
	Win2x              // Windows 2.x, 12-byte BITMAPCOREHEADER
	OS21x              // OS/2 1.x, 12-byte header
	OS22x              // OS/2 2.x, 16 to 64-byte header
	Win3x              // Windows 3.x, 40-byte BITMAPINFOHEADER
	WinNT              // Windows NT, 40-byte header with BI_BITFIELDS masks
	Win4x              // Windows 95/NT4, 108-byte BITMAPV4HEADER
	Win5x              // Windows 98/2000, 124-byte BITMAPV5HEADER
)

const (
	signatureBM = 0x424D // "BM"
	signatureBA = 0x4241 // "BA", OS/2 bitmap array

	coreHeaderSize = 12
	infoHeaderSize = 40
	v4HeaderSize   = 108
	v5HeaderSize   = 124
	os2MaxSize     = 64
)

var versionNames = []struct {
	v    VersionSet
	name string
}{
	{Unknown, "Unknown"},
	{Win2x, "Windows 2.x"},
	{OS21x, "OS/2 1.x"},
	{OS22x, "OS/2 2.x"},
	{Win3x, "Windows 3.x"},
	{WinNT, "Windows NT"},
	{Win4x, "Windows 4.x"},
	{Win5x, "Windows 5.x"},
}

// Has reports whether s contains any of the dialects in v.
func (s VersionSet) Has(v VersionSet) bool {
	return s&v != 0
}

// Versions returns each dialect of s as a single-element set.
func (s VersionSet) Versions() []VersionSet {
	var out []VersionSet
	for _, n := range versionNames {
		if s.Has(n.v) {
			out = append(out, n.v)
		}
	}
	return out
}

// Names returns the human-readable name of each dialect in s.
func (s VersionSet) Names() []string {
	var out []string
	for _, n := range versionNames {
		if s.Has(n.v) {
			out = append(out, n.name)
		}
	}
	return out
}

func (s VersionSet) String() string {
	return "{" + strings.Join(s.Names(), ", ") + "}"
}

// isCore reports whether the info header uses the 12-byte layout.
func (s VersionSet) isCore() bool {
	return s.Has(Win2x | OS21x)
}

// Sniff classifies the stream by its signature and info header size. The
// stream position is restored before Sniff returns. A "BA" bitmap array
// yields a *DialectError wrapping ErrNotImplemented; any other unknown
// signature yields Unknown and no error. Failing to restore the position is
// an error too.
func Sniff(rs io.ReadSeeker) (set VersionSet, err error) {
	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	defer func() {
		if _, serr := rs.Seek(start, io.SeekStart); serr != nil && err == nil {
			set, err = 0, fmt.Errorf("bmp: restoring stream position %d: %w", start, serr)
		}
	}()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	r := byteio.NewReader(rs)

	switch sig := r.Uint16BE(); sig {
	case signatureBM:
		r.SeekTo(FileHeaderSize)
		switch size := r.Uint32LE(); {
		case size == coreHeaderSize:
			set |= Win2x | OS21x
		case size == infoHeaderSize:
			set |= Win3x
			// Compression sits 12 bytes past the size field.
			r.Skip(12)
			if Compression(r.Uint32LE()) == CompressionBitfields {
				set |= WinNT
			}
		case size == v4HeaderSize:
			set |= Win4x
		case size == v5HeaderSize:
			set |= Win5x
		case size >= coreHeaderSize && size <= os2MaxSize:
			set |= OS22x
		}
	case signatureBA:
		return 0, &DialectError{Signature: sig, Err: ErrNotImplemented}
	}

	if set == 0 {
		set = Unknown
	}
	return set, nil
}
