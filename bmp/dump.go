package bmp

import (
	"fmt"
	"strings"
)

func (h FileHeader) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Signature: \t%q\n", string([]byte{byte(h.Signature >> 8), byte(h.Signature)}))
	fmt.Fprintf(&sb, "Filesize: \t%v bytes\n", h.Size)
	fmt.Fprintf(&sb, "Reserved: \t%v, %v\n", h.Reserved1, h.Reserved2)
	fmt.Fprintf(&sb, "PixelOffset: \t%v bytes\n", h.DataOffset)
	return sb.String()
}

func (h InfoHeader) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "HeaderSize: \t%v bytes\n", h.Size)
	fmt.Fprintf(&sb, "Width: \t\t%v px\n", h.Width)
	fmt.Fprintf(&sb, "Height: \t%v px\n", h.Height)
	fmt.Fprintf(&sb, "BottomUp: \t%v\n", h.BottomUp)
	fmt.Fprintf(&sb, "Planes: \t%v\n", h.Planes)
	fmt.Fprintf(&sb, "BitCount: \t%vbits\n", h.BitsPerPixel)
	fmt.Fprintf(&sb, "Compression: \t%v\n", h.Compression)
	fmt.Fprintf(&sb, "SizeImage: \t%v bytes\n", h.SizeImage)
	fmt.Fprintf(&sb, "Density: \t%v x %v px/m\n", h.XPixelsPerMeter, h.YPixelsPerMeter)
	fmt.Fprintf(&sb, "ColorsUsed: \t%v\n", h.ColorsUsed)
	fmt.Fprintf(&sb, "Important: \t%v\n", h.ColorsImportant)
	if h.HasMasks {
		fmt.Fprintf(&sb, "Masks: \t\t%#08x %#08x %#08x %#08x\n", h.RedMask, h.GreenMask, h.BlueMask, h.AlphaMask)
	}
	return sb.String()
}

func (t *ColorTable) String() string {
	var sb strings.Builder
	for i, e := range t.Entries {
		fmt.Fprintf(&sb, "%3d: R=%3d G=%3d B=%3d\n", i, e.R, e.G, e.B)
	}
	return sb.String()
}

func (m ChannelMasks) String() string {
	return fmt.Sprintf("R: %v\nG: %v\nB: %v\nA: %v\n", m.R, m.G, m.B, m.A)
}

// String returns the metadata of the bitmap in human-readable format.
func (b *Bitmap) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Version: \t%v\n", b.version)
	sb.WriteString(b.file.String())
	sb.WriteString(b.info.String())
	fmt.Fprintf(&sb, "Paletted: \t%v\n", b.IsPaletted())
	fmt.Fprintf(&sb, "HasAlpha: \t%v\n", b.hasAlpha)
	fmt.Fprintf(&sb, "SquarePixels: \t%v\n", b.HasSquarePixels())
	if b.IsPaletted() {
		fmt.Fprintf(&sb, "Colors: \t%v\n", b.table.Len())
	} else {
		sb.WriteString(b.masks.String())
	}
	return sb.String()
}

// Metadata is a flat, serializable summary of a bitmap.
type Metadata struct {
	Versions        []string `yaml:"versions"`
	FileSize        uint32   `yaml:"file_size"`
	DataOffset      uint32   `yaml:"data_offset"`
	HeaderSize      uint32   `yaml:"header_size"`
	Width           int      `yaml:"width"`
	Height          int      `yaml:"height"`
	BottomUp        bool     `yaml:"bottom_up"`
	BitsPerPixel    int      `yaml:"bits_per_pixel"`
	Compression     string   `yaml:"compression"`
	XPixelsPerMeter int      `yaml:"x_pixels_per_meter"`
	YPixelsPerMeter int      `yaml:"y_pixels_per_meter"`
	SquarePixels    bool     `yaml:"square_pixels"`
	Paletted        bool     `yaml:"paletted"`
	HasAlpha        bool     `yaml:"has_alpha"`
	Colors          int      `yaml:"colors"`
	Masks           []uint32 `yaml:"masks,flow,omitempty"`
}

// Metadata summarizes the headers and classification of b.
func (b *Bitmap) Metadata() Metadata {
	m := Metadata{
		Versions:        b.version.Names(),
		FileSize:        b.file.Size,
		DataOffset:      b.file.DataOffset,
		HeaderSize:      b.info.Size,
		Width:           b.Width(),
		Height:          b.Height(),
		BottomUp:        b.info.BottomUp,
		BitsPerPixel:    b.BitsPerPixel(),
		Compression:     b.info.Compression.String(),
		XPixelsPerMeter: b.XPixelsPerMeter(),
		YPixelsPerMeter: b.YPixelsPerMeter(),
		SquarePixels:    b.HasSquarePixels(),
		Paletted:        b.IsPaletted(),
		HasAlpha:        b.hasAlpha,
		Colors:          b.table.Len(),
	}
	if b.IsRGB() {
		m.Masks = []uint32{b.masks.R.Mask, b.masks.G.Mask, b.masks.B.Mask, b.masks.A.Mask}
	}
	return m
}
