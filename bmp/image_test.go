package bmp

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	xbmp "golang.org/x/image/bmp"
)

// TestMatchesReferenceDecoder compares against golang.org/x/image/bmp for the
// depths it supports.
func TestMatchesReferenceDecoder(t *testing.T) {
	images := map[string]testBitmap{
		"8bpp":          {width: 13, height: 7, bpp: 8, palette: grayPalette(256), pixels: patternPixels(13, 7, 0xFF)},
		"8bpp top-down": {width: 13, height: 7, bpp: 8, topDown: true, palette: grayPalette(256), pixels: patternPixels(13, 7, 0xFF)},
		"24bpp":         {width: 11, height: 6, bpp: 24, pixels: patternPixels(11, 6, 0xFFFFFF)},
		"32bpp":         {width: 9, height: 4, bpp: 32, pixels: patternPixels(9, 4, 0xFFFFFF)},
	}

	for name, tb := range images {
		t.Run(name, func(t *testing.T) {
			data := tb.bytes(t)

			ref, err := xbmp.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("reference decoder: %v", err)
			}
			b := mustDecode(t, data)

			if ref.Bounds() != image.Rect(0, 0, b.Width(), b.Height()) {
				t.Fatalf("bounds %v, want %v", image.Rect(0, 0, b.Width(), b.Height()), ref.Bounds())
			}
			for y := range b.Height() {
				for x := range b.Width() {
					want := color.NRGBAModel.Convert(ref.At(x, y)).(color.NRGBA)
					if got := b.Get(x, y); got != want {
						t.Fatalf("(%d, %d) = %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestDecodeImage(t *testing.T) {
	tb := testBitmap{width: 3, height: 2, bpp: 4, palette: grayPalette(16), pixels: patternPixels(3, 2, 0xF)}
	data := tb.bytes(t)

	img, err := DecodeImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeImage: %v", err)
	}
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		t.Fatalf("DecodeImage returned %T, want *image.NRGBA", img)
	}
	for y := range 2 {
		for x := range 3 {
			if got, want := nrgba.NRGBAAt(x, y), expectedColor(tb, tb.pixels[y][x]); got != want {
				t.Errorf("(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	cfg, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 3 || cfg.Height != 2 || cfg.ColorModel != color.NRGBAModel {
		t.Errorf("DecodeConfig = %+v", cfg)
	}

	if _, err := DecodeConfig(bytes.NewReader([]byte("GIF89a"))); err == nil {
		t.Error("DecodeConfig accepted a GIF header")
	}
}

func TestNRGBAOfPartialBitmap(t *testing.T) {
	tb := testBitmap{width: 2, height: 2, bpp: 24, compression: CompressionPNG, pixels: patternPixels(2, 2, 0xFFFFFF)}
	p := DecodePartial(bytes.NewReader(tb.bytes(t)))
	if img := p.NRGBA(); !img.Bounds().Empty() {
		t.Errorf("bounds = %v, want empty", img.Bounds())
	}

	// Truncated pixel data keeps the full raster.
	tb = testBitmap{width: 2, height: 2, bpp: 24, pixels: patternPixels(2, 2, 0xFFFFFF)}
	data := tb.bytes(t)
	p = DecodePartial(bytes.NewReader(data[:len(data)-4]))
	img := p.NRGBA()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v, want 2x2", img.Bounds())
	}
	if c := img.NRGBAAt(1, 1); c != p.Get(1, 1) {
		t.Errorf("pixel = %v, want %v", c, p.Get(1, 1))
	}
}

func FuzzDecode(f *testing.F) {
	seeds := []testBitmap{
		{width: 3, height: 2, bpp: 1, palette: grayPalette(2), pixels: patternPixels(3, 2, 1)},
		{width: 3, height: 2, bpp: 8, palette: grayPalette(256), pixels: patternPixels(3, 2, 0xFF)},
		{width: 3, height: 2, bpp: 16, pixels: patternPixels(3, 2, 0x7FFF)},
		{width: 3, height: 2, bpp: 32, compression: CompressionBitfields, masks: []uint32{0xFF0000, 0xFF00, 0xFF}, pixels: patternPixels(3, 2, 0xFFFFFF)},
		{headerSize: 12, width: 2, height: 2, bpp: 4, palette: grayPalette(16), pixels: patternPixels(2, 2, 0xF)},
		rle8(4, 3, false, []byte{2, 5, 0, 0, 0, 2, 1, 0, 0, 3, 7, 8, 9, 0, 0, 1}),
	}
	for _, s := range seeds {
		f.Add(s.bytes(f))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		opts := &Options{MaxPixels: 1 << 16}
		b, err := Decode(bytes.NewReader(data), opts)
		if err == nil {
			for y := -1; y <= b.Height(); y++ {
				for x := -1; x <= b.Width(); x++ {
					b.Get(x, y)
					b.At(x, y)
				}
			}
		}

		p := DecodePartial(bytes.NewReader(data), opts)
		if err == nil && !p.Valid() {
			t.Fatalf("strict decode succeeded but partial is invalid: %v", p.Err())
		}
		p.Get(0, 0)
		p.NRGBA()
	})
}
