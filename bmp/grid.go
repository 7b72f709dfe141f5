package bmp

import (
	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
	"github.com/anas-shakeel/go-bmpdecode/internal/chunk"
)

// grid holds decoded chunks in stream order. Storage grows as rows are
// written; rows never reached read as zero.
type grid struct {
	layout   chunk.Layout
	width    int
	height   int
	stride   int // Chunks per row
	bottomUp bool
	data     []uint32
}

func newGrid(layout chunk.Layout, width, height int, bottomUp bool) *grid {
	return &grid{
		layout:   layout,
		width:    width,
		height:   height,
		stride:   layout.ChunkCount(width),
		bottomUp: bottomUp,
	}
}

// streamRow maps an image row (0 at the top) to its position in the stream.
func (g *grid) streamRow(y int) int {
	if g.bottomUp {
		return g.height - y - 1
	}
	return y
}

// rows returns the number of stream rows with storage.
func (g *grid) rows() int {
	if g.stride == 0 {
		return 0
	}
	return len(g.data) / g.stride
}

// grow makes room for the first n stream rows.
func (g *grid) grow(n int) {
	if need := n * g.stride; need > len(g.data) {
		g.data = append(g.data, make([]uint32, need-len(g.data))...)
	}
}

// get returns the raw value of pixel (x, y). Coordinates are not checked.
func (g *grid) get(x, y int) uint32 {
	return g.getStream(x, g.streamRow(y))
}

// getStream returns the raw value of pixel x in stream row s.
func (g *grid) getStream(x, s int) uint32 {
	i, ofs := g.layout.Locate(x)
	k := s*g.stride + i
	if k >= len(g.data) {
		return 0
	}
	return g.layout.Extract(g.data[k], ofs)
}

// setStream replaces the raw value of pixel x in stream row s. Coordinates
// are not checked.
func (g *grid) setStream(x, s int, v uint32) {
	g.grow(s + 1)
	i, ofs := g.layout.Locate(x)
	k := s*g.stride + i
	g.data[k] = g.layout.Write(g.data[k], ofs, v)
}

// readRows fills the grid from uncompressed rows. stop is consulted after each
// row and ends the read early when it returns true.
func (g *grid) readRows(r *byteio.Reader, stop func() bool) {
	padding := g.layout.RowBytes(g.width) - g.stride*g.layout.BytesPerChunk

	for s := range g.height {
		g.grow(s + 1)
		row := g.data[s*g.stride : (s+1)*g.stride]
		for c := range row {
			row[c] = g.layout.Read(r)
		}

		// Skip over padding bytes
		r.Skip(int64(padding))

		if stop() {
			return
		}
	}
}
