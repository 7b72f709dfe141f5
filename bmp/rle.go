package bmp

import (
	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
	"github.com/anas-shakeel/go-bmpdecode/internal/chunk"
)

// Escape codes that follow a zero first byte.
const (
	rleEndOfLine   = 0
	rleEndOfBitmap = 1
	rleDelta       = 2
)

// rleResult describes how a run-length stream ended.
type rleResult struct {
	ops         int  // Byte pairs consumed
	endOfBitmap bool // An end-of-bitmap code was seen
	limitHit    bool // The operation ceiling stopped the loop
}

// rleDecoder expands BI_RLE4 and BI_RLE8 data into a grid of byte-wide chunks.
type rleDecoder struct {
	r      *byteio.Reader
	g      *grid
	layout chunk.Layout
	maxOps int

	x, y int // Cursor, y counted from the first row in the stream
}

func newRLEDecoder(r *byteio.Reader, g *grid, maxOps int) *rleDecoder {
	return &rleDecoder{
		r:      r,
		g:      g,
		layout: g.layout,
		maxOps: maxOps,
	}
}

// put writes one pixel at the cursor and advances it. Pixels that fall
// outside the grid are dropped.
func (d *rleDecoder) put(v uint32) {
	if d.x >= 0 && d.x < d.g.width && d.y >= 0 && d.y < d.g.height {
		d.g.setStream(d.x, d.y, v)
	}
	d.x++
}

// decode runs the state machine until end of bitmap, end of stream or the
// operation ceiling.
func (d *rleDecoder) decode() rleResult {
	var res rleResult
	ppc := d.layout.PixelsPerChunk

	for {
		if res.ops >= d.maxOps {
			res.limitHit = true
			return res
		}
		res.ops++

		first, second := d.r.Uint8(), d.r.Uint8()
		if d.r.Err() != nil {
			return res
		}

		if first > 0 {
			// Encoded mode: repeat the packed values of second.
			c := d.layout.Decode(uint32(second))
			for i := range int(first) {
				d.put(d.layout.Extract(c, i%ppc))
			}
			continue
		}

		switch second {
		case rleEndOfLine:
			d.x = 0
			d.y++
		case rleEndOfBitmap:
			res.endOfBitmap = true
			return res
		case rleDelta:
			dx, dy := d.r.Uint8(), d.r.Uint8()
			d.x += int(dx)
			d.y += int(dy)
		default:
			// Absolute mode: second literal pixels, padded to 16 bits.
			n := int(second)
			nbytes := (n + ppc - 1) / ppc
			for i := 0; i < n; {
				c := d.layout.Read(d.r)
				for j := 0; j < ppc && i < n; j, i = j+1, i+1 {
					d.put(d.layout.Extract(c, j))
				}
			}
			if nbytes%2 == 1 {
				d.r.Skip(1)
			}
		}
	}
}

// defaultMaxRLEOps bounds the byte pairs read from a run-length stream. A
// well-formed stream needs at most one pair per pixel plus one end-of-line
// per row.
func defaultMaxRLEOps(width, height int) int {
	return width*height + height + 4096
}
