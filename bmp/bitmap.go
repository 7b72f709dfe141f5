// Package bmp decodes Windows and OS/2 BMP bitmaps.
//
// Every dialect from Windows 2.x and OS/2 1.x through the Windows V5 header
// is read, at 1, 2, 4, 8, 16, 24 and 32 bits per pixel, uncompressed, with
// explicit bit-field masks, or run-length encoded (RLE4, RLE8). JPEG, PNG and
// CMYK payloads are recognized and rejected.
//
// Decode fails on the first problem. DecodePartial keeps whatever it could
// read from a truncated or corrupt stream and reports Valid() == false.
package bmp

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/apex/log"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
	"github.com/anas-shakeel/go-bmpdecode/internal/chunk"
)

// Bitmap is a decoded BMP image. It is read-only once returned and safe for
// concurrent use.
type Bitmap struct {
	file     FileHeader
	info     InfoHeader
	version  VersionSet
	table    ColorTable
	masks    ChannelMasks
	grid     *grid
	hasAlpha bool
}

// PartialBitmap is the result of lenient decoding. Its pixel data may be
// incomplete or missing; check Valid before trusting it.
type PartialBitmap struct {
	Bitmap
	err error
}

// Valid reports whether the stream decoded without any error.
func (p *PartialBitmap) Valid() bool {
	return p.err == nil
}

// Err returns the first error met while decoding, or nil.
func (p *PartialBitmap) Err() error {
	return p.err
}

// Decode reads a BMP image from r. Decoding starts at offset 0 of r.
// It accepts an optional Options struct to control decoding parameters.
func Decode(r io.ReadSeeker, opts ...*Options) (*Bitmap, error) {
	d := newDecoder(r, policyStrict, resolveOptions(opts))
	if err := d.run(); err != nil {
		return nil, err
	}
	return d.bm, nil
}

// DecodePartial reads a BMP image from r without failing. Truncated pixel
// data reads as zero; structural problems (unknown dialect, unsupported
// compression, bad bit depth) stop decoding and leave the grid empty.
func DecodePartial(r io.ReadSeeker, opts ...*Options) *PartialBitmap {
	d := newDecoder(r, policyLenient, resolveOptions(opts))
	err := d.run()
	return &PartialBitmap{Bitmap: *d.bm, err: err}
}

// Reads a Bitmap file
func ReadFile(filename string, opts ...*Options) (*Bitmap, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, &StreamError{Name: filename, Err: err}
	}
	defer file.Close()

	return Decode(file, opts...)
}

// Reads a Bitmap file leniently. An open failure yields an invalid, empty bitmap.
func ReadPartialFile(filename string, opts ...*Options) *PartialBitmap {
	file, err := os.Open(filename)
	if err != nil {
		return &PartialBitmap{err: &StreamError{Name: filename, Err: err}}
	}
	defer file.Close()

	return DecodePartial(file, opts...)
}

// policy selects what the decoder does with an error.
type policy int

const (
	policyStrict  policy = iota // Stop at the first error
	policyLenient               // Record the first error, keep going unless structural
)

type decoder struct {
	rs     io.ReadSeeker
	r      *byteio.Reader
	opts   Options
	log    log.Interface
	policy policy
	err    error // First recorded error
	bm     *Bitmap
}

func newDecoder(rs io.ReadSeeker, p policy, opts Options) *decoder {
	return &decoder{rs: rs, opts: opts, log: opts.Logger, policy: p, bm: &Bitmap{}}
}

func (d *decoder) run() error {
	err := d.decode()
	if err != nil && d.err == nil {
		d.err = err
	}
	if d.err != nil {
		d.log.WithError(d.err).Debug("bmp: decode failed")
	}
	return d.err
}

// soft records a recoverable error and reports whether decoding must stop.
func (d *decoder) soft(err error) bool {
	if err == nil {
		return false
	}
	if d.err == nil {
		d.err = err
	}
	return d.policy == policyStrict
}

// stream checks the reader after a stage.
func (d *decoder) stream(what string) error {
	if err := d.r.Err(); err != nil {
		return truncated(what, err)
	}
	return nil
}

func (d *decoder) decode() error {
	if err := d.decodeHeaders(); err != nil {
		return err
	}
	bm := d.bm
	ih := &bm.info

	// Masks and palette follow the info header, whatever its modeled size
	d.r.SeekTo(ih.End())
	var maskBytes int
	bm.masks, maskBytes = resolveMasks(d.r, *ih)

	tableStart := ih.End() + int64(maskBytes)
	count := colorTableCount(bm.file, *ih, bm.version, tableStart, d.opts.TableSizing)
	bm.table = readColorTable(d.r, bm.version, count)
	d.log.WithFields(log.Fields{
		"colors": bm.table.Len(),
		"red":    bm.masks.R.String(),
		"green":  bm.masks.G.String(),
		"blue":   bm.masks.B.String(),
		"alpha":  bm.masks.A.String(),
	}).Debug("bmp: color table and masks")
	if d.soft(d.stream("color table")) {
		return d.err
	}

	// Seek to Pixel Array (DataOffset)
	if bm.file.DataOffset != 0 {
		d.r.SeekTo(int64(bm.file.DataOffset))
	}

	if err := d.decodePixels(); err != nil {
		return err
	}

	bm.hasAlpha = bm.scanAlpha()
	d.log.WithField("has_alpha", bm.hasAlpha).Debug("bmp: decoded")
	return d.err
}

// decodeHeaders sniffs the dialect, reads both headers and validates them.
func (d *decoder) decodeHeaders() error {
	bm := d.bm

	// Classify the dialect
	version, err := Sniff(d.rs)
	if err != nil {
		return err
	}
	bm.version = version

	// Read File Header
	d.r = byteio.NewReader(d.rs)
	d.r.SeekTo(0)
	bm.file = readFileHeader(d.r)
	if version == Unknown {
		return &DialectError{Signature: bm.file.Signature}
	}

	// Read Info Header
	bm.info = readInfoHeader(d.r, version)
	ih := &bm.info
	d.log.WithFields(log.Fields{
		"version":     version.String(),
		"header_size": ih.Size,
		"width":       ih.Width,
		"height":      ih.Height,
		"bpp":         ih.BitsPerPixel,
		"compression": ih.Compression.String(),
		"bottom_up":   ih.BottomUp,
	}).Debug("bmp: headers")
	if d.soft(d.stream("header")) {
		return d.err
	}

	return d.validate()
}

// validate rejects headers that cannot be decoded at all.
func (d *decoder) validate() error {
	ih := d.bm.info
	bpp := int(ih.BitsPerPixel)

	switch bpp {
	case 1, 2, 4, 8, 16, 24, 32:
	default:
		return FormatError(fmt.Sprintf("unsupported bit depth %d", bpp))
	}

	if !ih.Compression.Supported() {
		return &CompressionError{Code: ih.Compression}
	}

	switch ih.Compression {
	case CompressionRLE8:
		if bpp != 8 {
			return FormatError(fmt.Sprintf("BI_RLE8 with %d bits per pixel", bpp))
		}
	case CompressionRLE4:
		if bpp != 4 {
			return FormatError(fmt.Sprintf("BI_RLE4 with %d bits per pixel", bpp))
		}
	case CompressionBitfields, CompressionAlphaBitfields:
		if bpp != 16 && bpp != 24 && bpp != 32 {
			return FormatError(fmt.Sprintf("%s with %d bits per pixel", ih.Compression, bpp))
		}
	}

	if uint64(ih.Width)*uint64(ih.Height) > uint64(d.opts.MaxPixels) {
		return FormatError(fmt.Sprintf("%dx%d image exceeds %d pixels", ih.Width, ih.Height, d.opts.MaxPixels))
	}
	return nil
}

// decodePixels builds the grid from uncompressed or run-length data.
func (d *decoder) decodePixels() error {
	bm := d.bm
	ih := bm.info
	width, height := int(ih.Width), int(ih.Height)
	bpp := int(ih.BitsPerPixel)

	if !ih.Compression.IsRLE() {
		layout, err := chunk.ForBitsPerPixel(bpp)
		if err != nil {
			return FormatError(err.Error())
		}

		// Refuse headers that promise more rows than the stream holds
		if d.policy == policyStrict {
			need := int64(layout.RowBytes(width)) * int64(height)
			if left, err := d.r.Remaining(); err == nil && left < need {
				return fmt.Errorf("%w: truncated pixel data: need %d bytes, %d left: %w", ErrFormat, need, left, io.ErrUnexpectedEOF)
			}
		}

		bm.grid = newGrid(layout, width, height, ih.BottomUp)
		bm.grid.readRows(d.r, func() bool {
			return d.r.Err() != nil
		})
		if d.soft(d.stream("pixel data")) {
			return d.err
		}
		return nil
	}

	layout, err := chunk.ForRLE(bpp)
	if err != nil {
		return FormatError(err.Error())
	}
	bm.grid = newGrid(layout, width, height, ih.BottomUp)

	maxOps := d.opts.MaxRLEOps
	if maxOps <= 0 {
		maxOps = defaultMaxRLEOps(width, height)
	}
	res := newRLEDecoder(d.r, bm.grid, maxOps).decode()
	d.log.WithFields(log.Fields{
		"ops":           res.ops,
		"end_of_bitmap": res.endOfBitmap,
		"rows":          bm.grid.rows(),
	}).Debug("bmp: run-length data")

	if res.limitHit {
		d.log.WithField("max_ops", maxOps).Warn("bmp: run-length operation limit reached")
		if d.soft(FormatError(fmt.Sprintf("run-length data exceeds %d operations", maxOps))) {
			return d.err
		}
	}
	if d.soft(d.stream("run-length data")) {
		return d.err
	}
	return nil
}

// scanAlpha reports whether any pixel has a nonzero alpha value. Files that
// declare an alpha channel but leave it zero everywhere are treated as opaque.
func (b *Bitmap) scanAlpha() bool {
	if b.grid == nil || !b.isRepresentableRGB() || b.masks.A.Width == 0 {
		return false
	}
	// Rows without storage are zero
	for s := range b.grid.rows() {
		for x := range b.grid.width {
			if b.masks.A.Extract(b.grid.getStream(x, s)) != 0 {
				return true
			}
		}
	}
	return false
}

// Width returns the image width in pixels.
func (b *Bitmap) Width() int { return int(b.info.Width) }

// Height returns the absolute image height in pixels.
func (b *Bitmap) Height() int { return int(b.info.Height) }

func (b *Bitmap) BitsPerPixel() int { return int(b.info.BitsPerPixel) }

func (b *Bitmap) Compression() Compression { return b.info.Compression }

// IsPaletted reports whether pixels are indexes into the color table.
func (b *Bitmap) IsPaletted() bool {
	switch b.info.BitsPerPixel {
	case 1, 2, 4, 8:
		return true
	}
	return false
}

// IsRGB reports whether pixels carry their color directly.
func (b *Bitmap) IsRGB() bool { return !b.IsPaletted() }

// HasAlpha reports whether any pixel uses the alpha channel.
func (b *Bitmap) HasAlpha() bool { return b.hasAlpha }

// BottomUp reports whether rows were stored bottom row first.
func (b *Bitmap) BottomUp() bool { return b.info.BottomUp }

func (b *Bitmap) XPixelsPerMeter() int { return int(b.info.XPixelsPerMeter) }

func (b *Bitmap) YPixelsPerMeter() int { return int(b.info.YPixelsPerMeter) }

// HasSquarePixels reports whether the horizontal and vertical densities match.
func (b *Bitmap) HasSquarePixels() bool {
	return b.info.XPixelsPerMeter == b.info.YPixelsPerMeter
}

// Version returns every dialect the stream is consistent with.
func (b *Bitmap) Version() VersionSet { return b.version }

func (b *Bitmap) FileHeader() FileHeader { return b.file }

func (b *Bitmap) InfoHeader() InfoHeader { return b.info }

func (b *Bitmap) ColorTable() *ColorTable { return &b.table }

func (b *Bitmap) Masks() ChannelMasks { return b.masks }

func (b *Bitmap) isRepresentableRGB() bool {
	switch b.info.BitsPerPixel {
	case 16, 24, 32:
		return true
	}
	return false
}

func (b *Bitmap) inBounds(x, y int) bool {
	return b.grid != nil && x >= 0 && x < b.grid.width && y >= 0 && y < b.grid.height
}

// rgb resolves a raw RGB pixel through the channel masks.
func (b *Bitmap) rgb(raw uint32) color.NRGBA {
	r, g, bl, a := b.masks.Color(raw)
	if !b.hasAlpha {
		a = 0xFF
	}
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}

// Get returns the color at (x, y), with (0, 0) the top-left pixel. Anything
// that At reports as an error yields the zero color instead.
func (b *Bitmap) Get(x, y int) color.NRGBA {
	if !b.inBounds(x, y) {
		return color.NRGBA{}
	}
	raw := b.grid.get(x, y)
	switch {
	case b.IsPaletted():
		if int(raw) < b.table.Len() {
			return b.table.Get(int(raw)).NRGBA()
		}
	case b.isRepresentableRGB():
		return b.rgb(raw)
	}
	return color.NRGBA{}
}

// At returns the color at (x, y), with (0, 0) the top-left pixel. It fails
// with a *CoordinateError for each axis out of range, a *PaletteIndexError
// for an index past the color table and a *RepresentationError when the
// pixels cannot be interpreted.
func (b *Bitmap) At(x, y int) (color.NRGBA, error) {
	if x < 0 || x >= b.Width() {
		return color.NRGBA{}, &CoordinateError{Axis: "x", Value: x, Min: 0, Max: b.Width()}
	}
	if y < 0 || y >= b.Height() {
		return color.NRGBA{}, &CoordinateError{Axis: "y", Value: y, Min: 0, Max: b.Height()}
	}
	if b.grid == nil {
		return color.NRGBA{}, &RepresentationError{BitsPerPixel: b.BitsPerPixel()}
	}

	raw := b.grid.get(x, y)
	switch {
	case b.IsPaletted():
		e, err := b.table.At(int(raw))
		if err != nil {
			return color.NRGBA{}, err
		}
		return e.NRGBA(), nil
	case b.isRepresentableRGB():
		return b.rgb(raw), nil
	}
	return color.NRGBA{}, &RepresentationError{BitsPerPixel: b.BitsPerPixel()}
}

// ColorIndex returns the palette index stored at (x, y) of a paletted image.
func (b *Bitmap) ColorIndex(x, y int) (int, error) {
	if x < 0 || x >= b.Width() {
		return 0, &CoordinateError{Axis: "x", Value: x, Min: 0, Max: b.Width()}
	}
	if y < 0 || y >= b.Height() {
		return 0, &CoordinateError{Axis: "y", Value: y, Min: 0, Max: b.Height()}
	}
	if b.grid == nil || !b.IsPaletted() {
		return 0, &RepresentationError{BitsPerPixel: b.BitsPerPixel()}
	}
	return int(b.grid.get(x, y)), nil
}
