// BMP-specific header structs and their decoders
package bmp

import (
	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

// FileHeaderSize is the size of the BITMAPFILEHEADER, which is the same in
// every dialect.
const FileHeaderSize = 14

// The FileHeader structure contains information about the type, size,
// and layout of a file that contains a DIB [device-independent bitmap].
// https://learn.microsoft.com/en-us/windows/win32/api/wingdi/ns-wingdi-bitmapfileheader
type FileHeader struct {
	Signature  uint16 // The file type, read big-endian: 0x424D (ASCII string "BM").
	Size       uint32 // The size, in bytes, of the bitmap file.
	Reserved1  uint16 // Reserved; must be zero.
	Reserved2  uint16 // Reserved; must be zero.
	DataOffset uint32 // Bitmap File Offset (In bytes) to Pixel Arrays
}

// The InfoHeader structure contains information about the dimensions and
// color format of a DIB, normalized across dialects. Fields a dialect does
// not carry are zero.
type InfoHeader struct {
	Size            uint32      // The number of bytes in the header as stored.
	Width           uint32      // The width of the bitmap, in pixels.
	Height          uint32      // The absolute height of the bitmap, in pixels.
	Planes          uint16      // The number of planes for the target device.
	BitsPerPixel    uint16      // The number of bits-per-pixel.
	Compression     Compression // The type of compression
	SizeImage       uint32      // The size of the image (in bytes), may be zero.
	XPixelsPerMeter int32       // The horizontal resolution, in pixels-per-meter.
	YPixelsPerMeter int32       // The vertical resolution, in pixels-per-meter.
	ColorsUsed      uint32      // Number of color indexes that are actually used by bitmap.
	ColorsImportant uint32      // Number of color indexes required for displaying the bitmap.

	// Channel masks stored inside V4/V5 (and 52/56-byte) headers.
	RedMask, GreenMask, BlueMask, AlphaMask uint32
	HasMasks                                bool

	// Rows are stored bottom row first (non-negative height on disk).
	BottomUp bool
}

func readFileHeader(r *byteio.Reader) FileHeader {
	var h FileHeader
	h.Signature = r.Uint16BE()
	h.Size = r.Uint32LE()
	h.Reserved1 = r.Uint16LE()
	h.Reserved2 = r.Uint16LE()
	h.DataOffset = r.Uint32LE()
	return h
}

// readInfoHeader decodes the info header that starts at the reader's
// position. It never reads past the header size recorded in the stream, so
// short OS/2 2.x headers leave their trailing fields zero.
func readInfoHeader(r *byteio.Reader, set VersionSet) InfoHeader {
	var h InfoHeader
	h.Size = r.Uint32LE()

	// Windows 2.x and OS/2 1.x: 16-bit fields, no compression
	if set.isCore() {
		h.Width = uint32(r.Uint16LE())
		setHeight(&h, int32(r.Int16LE()))
		h.Planes = r.Uint16LE()
		h.BitsPerPixel = r.Uint16LE()
		h.Compression = CompressionNone
		return h
	}

	// fits reports whether a field ending at offset end lies inside the header.
	fits := func(end uint32) bool { return h.Size >= end }

	if fits(8) {
		h.Width = r.Uint32LE()
	}
	if fits(12) {
		setHeight(&h, r.Int32LE())
	} else {
		h.BottomUp = true
	}
	if fits(14) {
		h.Planes = r.Uint16LE()
	}
	if fits(16) {
		h.BitsPerPixel = r.Uint16LE()
	}
	if fits(20) {
		h.Compression = Compression(r.Uint32LE())
	}
	if fits(24) {
		h.SizeImage = r.Uint32LE()
	}
	if fits(28) {
		h.XPixelsPerMeter = r.Int32LE()
	}
	if fits(32) {
		h.YPixelsPerMeter = r.Int32LE()
	}
	if fits(36) {
		h.ColorsUsed = r.Uint32LE()
	}
	if fits(40) {
		h.ColorsImportant = r.Uint32LE()
	}

	// OS/2 2.x uses bytes 40..64 for its own fields, not masks.
	if set.Has(Win4x|Win5x) || h.Size == 52 || h.Size == 56 {
		h.RedMask = r.Uint32LE()
		h.GreenMask = r.Uint32LE()
		h.BlueMask = r.Uint32LE()
		if fits(56) {
			h.AlphaMask = r.Uint32LE()
		}
		h.HasMasks = true
	}
	return h
}

// setHeight stores the absolute height and derives the row order from its sign.
func setHeight(h *InfoHeader, height int32) {
	h.BottomUp = height >= 0
	abs := int64(height)
	if abs < 0 {
		abs = -abs
	}
	h.Height = uint32(abs)
}

// End returns the offset of the first byte after the info header.
func (h InfoHeader) End() int64 {
	return FileHeaderSize + int64(h.Size)
}
