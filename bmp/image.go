package bmp

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
)

// maxHeaderBytes covers the file header and the largest info header.
const maxHeaderBytes = FileHeaderSize + v5HeaderSize

// NRGBA copies the bitmap into a new image. Pixels that cannot be resolved
// are left transparent black.
func (b *Bitmap) NRGBA() *image.NRGBA {
	if b.grid == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	img := image.NewNRGBA(image.Rect(0, 0, b.Width(), b.Height()))
	for y := range b.Height() {
		for x := range b.Width() {
			img.SetNRGBA(x, y, b.Get(x, y))
		}
	}
	return img
}

// DecodeImage reads a BMP image from r as an [image.Image]. r need not be
// seekable; it is read into memory first.
func DecodeImage(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return b.NRGBA(), nil
}

// DecodeConfig returns the color model and dimensions of a BMP image without
// decoding its pixels.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header := make([]byte, maxHeaderBytes)
	n, err := io.ReadFull(r, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return image.Config{}, err
	}

	d := newDecoder(bytes.NewReader(header[:n]), policyStrict, resolveOptions(nil))
	if err := d.decodeHeaders(); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      d.bm.Width(),
		Height:     d.bm.Height(),
	}, nil
}

// init registers the format with the standard library's image package so that
// image.Decode recognizes BMP files.
func init() {
	image.RegisterFormat("bmp", "BM", DecodeImage, DecodeConfig)
}
