// Package chunk packs and unpacks pixels stored inside fixed-width chunks.
//
// A chunk is the byte-aligned unit read off the stream: 32 bits for pixels of
// 1 to 16 bits and for 32-bit pixels, 24 bits for 24-bit pixels, and 8 bits
// for run-length encoded data. Sub-byte pixels are stored with the leftmost
// pixel in the most significant bits; Decode reverses that order once so that
// pixel x of a chunk is always found at offset x.
package chunk

import (
	"fmt"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

type Layout struct {
	ChunkWidth         int    // Bits per chunk (8, 24 or 32)
	PixelWidth         int    // Bits per pixel
	PixelsPerChunk     int    // ChunkWidth / PixelWidth
	BytesPerChunk      int    // ChunkWidth / 8
	PixelMask          uint32 // Low PixelWidth bits set
	NonsignificantBits int    // Padding bits left over in a chunk
	LittleEndian       bool   // Chunk bytes are little-endian (16, 24 and 32-bit pixels)
}

// NewLayout returns the layout for pixels of pixelWidth bits in chunks of
// chunkWidth bits.
func NewLayout(chunkWidth, pixelWidth int) (Layout, error) {
	switch chunkWidth {
	case 8, 24, 32:
	default:
		return Layout{}, fmt.Errorf("chunk: invalid chunk width %d", chunkWidth)
	}
	switch pixelWidth {
	case 1, 2, 4, 8, 16, 24, 32:
	default:
		return Layout{}, fmt.Errorf("chunk: invalid pixel width %d", pixelWidth)
	}
	if pixelWidth > chunkWidth {
		return Layout{}, fmt.Errorf("chunk: %d-bit pixel does not fit a %d-bit chunk", pixelWidth, chunkWidth)
	}

	mask := uint32(0xFFFFFFFF)
	if pixelWidth < 32 {
		mask = 1<<pixelWidth - 1
	}

	return Layout{
		ChunkWidth:         chunkWidth,
		PixelWidth:         pixelWidth,
		PixelsPerChunk:     chunkWidth / pixelWidth,
		BytesPerChunk:      chunkWidth / 8,
		PixelMask:          mask,
		NonsignificantBits: chunkWidth % pixelWidth,
		LittleEndian:       pixelWidth >= 16,
	}, nil
}

// ForBitsPerPixel returns the layout used for uncompressed rows.
func ForBitsPerPixel(bpp int) (Layout, error) {
	if bpp == 24 {
		return NewLayout(24, 24)
	}
	return NewLayout(32, bpp)
}

// ForRLE returns the byte-wide layout used by run-length encoded data.
func ForRLE(bpp int) (Layout, error) {
	return NewLayout(8, bpp)
}

// ChunkCount returns the number of chunks holding a row of width pixels.
func (l Layout) ChunkCount(width int) int {
	return (width + l.PixelsPerChunk - 1) / l.PixelsPerChunk
}

// RowBytes returns the stored length of a row, padded to 4 bytes.
func (l Layout) RowBytes(width int) int {
	n := l.ChunkCount(width) * l.BytesPerChunk
	return (n + 3) &^ 3
}

// Locate returns the chunk index and the offset within it of pixel x.
func (l Layout) Locate(x int) (index, ofs int) {
	return x / l.PixelsPerChunk, x % l.PixelsPerChunk
}

// Extract returns the pixel at ofs of a decoded chunk.
func (l Layout) Extract(chunk uint32, ofs int) uint32 {
	return (chunk >> (ofs * l.PixelWidth)) & l.PixelMask
}

// Write returns chunk with the pixel at ofs replaced by v.
func (l Layout) Write(chunk uint32, ofs int, v uint32) uint32 {
	shift := ofs * l.PixelWidth
	renew := l.PixelMask << shift
	return (chunk &^ renew) | ((v << shift) & renew)
}

// Flip reverses the order of the pixels packed in chunk.
func (l Layout) Flip(chunk uint32) uint32 {
	if l.PixelsPerChunk == 1 {
		return chunk
	}
	var flipped uint32
	for j := range l.PixelsPerChunk {
		flipped = flipped<<l.PixelWidth | l.Extract(chunk, j)
	}
	return flipped
}

// Decode turns a chunk as read big-endian off the stream into the form
// Extract expects. Little-endian chunks are already in that form.
func (l Layout) Decode(raw uint32) uint32 {
	if l.LittleEndian {
		return raw
	}
	return l.Flip(raw >> l.NonsignificantBits)
}

// Read reads and decodes one chunk.
func (l Layout) Read(r *byteio.Reader) uint32 {
	if l.LittleEndian {
		return r.Bytes32LE(l.BytesPerChunk)
	}
	return l.Decode(r.Bytes32BE(l.BytesPerChunk))
}
