package bmp

import (
	"fmt"
	"math/bits"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

// ChannelMask locates one color channel inside a packed pixel.
type ChannelMask struct {
	Mask  uint32
	Shift int // Index of the lowest set bit
	Width int // Bits from the lowest to the highest set bit
}

// NewChannelMask derives shift and width from a bit mask. A zero mask has
// zero shift and width.
func NewChannelMask(mask uint32) ChannelMask {
	if mask == 0 {
		return ChannelMask{}
	}
	shift := bits.TrailingZeros32(mask)
	return ChannelMask{
		Mask:  mask,
		Shift: shift,
		Width: bits.Len32(mask) - shift,
	}
}

// Extract returns the channel value of raw scaled to 8 bits. Channels
// narrower than 8 bits fill the high bits; wider ones keep their top 8 bits.
func (m ChannelMask) Extract(raw uint32) uint8 {
	if m.Width == 0 {
		return 0
	}
	v := (uint64(raw) >> m.Shift) & (1<<m.Width - 1)
	if m.Width <= 8 {
		return uint8(v << (8 - m.Width))
	}
	return uint8(v >> (m.Width - 8))
}

func (m ChannelMask) String() string {
	return fmt.Sprintf("%#08x (shift %d, width %d)", m.Mask, m.Shift, m.Width)
}

// ChannelMasks holds the masks of all four channels.
type ChannelMasks struct {
	R, G, B, A ChannelMask
}

func newChannelMasks(r, g, b, a uint32) ChannelMasks {
	return ChannelMasks{
		R: NewChannelMask(r),
		G: NewChannelMask(g),
		B: NewChannelMask(b),
		A: NewChannelMask(a),
	}
}

// defaultMasks returns the implied masks of an RGB bit depth.
func defaultMasks(bpp int) ChannelMasks {
	switch bpp {
	case 16:
		return newChannelMasks(0x7C00, 0x03E0, 0x001F, 0)
	case 24:
		return newChannelMasks(0xFF0000, 0x00FF00, 0x0000FF, 0)
	case 32:
		return newChannelMasks(0xFF0000, 0x00FF00, 0x0000FF, 0xFF000000)
	}
	return ChannelMasks{}
}

// resolveMasks decides the channel masks. With bit-field compression the
// masks come from the info header when it carries them, otherwise from the
// 12 (or 16, with alpha) bytes that follow it. The second result is the
// number of bytes consumed after the header.
func resolveMasks(r *byteio.Reader, ih InfoHeader) (ChannelMasks, int) {
	bpp := int(ih.BitsPerPixel)
	if !ih.Compression.IsBitfields() {
		return defaultMasks(bpp), 0
	}
	if ih.HasMasks {
		return newChannelMasks(ih.RedMask, ih.GreenMask, ih.BlueMask, ih.AlphaMask), 0
	}

	red := r.Uint32LE()
	green := r.Uint32LE()
	blue := r.Uint32LE()
	if ih.Compression == CompressionAlphaBitfields {
		return newChannelMasks(red, green, blue, r.Uint32LE()), 16
	}
	return newChannelMasks(red, green, blue, 0), 12
}

// Color converts a raw packed pixel to 8-bit channels.
func (m ChannelMasks) Color(raw uint32) (r, g, b, a uint8) {
	return m.R.Extract(raw), m.G.Extract(raw), m.B.Extract(raw), m.A.Extract(raw)
}
