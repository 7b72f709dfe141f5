package bmp

import (
	"image/color"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

// ColorTableEntry is one palette color, with fields in the order they are
// stored on disk.
type ColorTableEntry struct {
	B, G, R byte
}

// NRGBA returns the entry as an opaque color.
func (e ColorTableEntry) NRGBA() color.NRGBA {
	return color.NRGBA{R: e.R, G: e.G, B: e.B, A: 0xFF}
}

type ColorTable struct {
	Entries []ColorTableEntry
}

// Len returns the number of entries in the table.
func (t *ColorTable) Len() int {
	return len(t.Entries)
}

// Get returns entry i, or the zero entry when i is out of range.
func (t *ColorTable) Get(i int) ColorTableEntry {
	if i < 0 || i >= len(t.Entries) {
		return ColorTableEntry{}
	}
	return t.Entries[i]
}

// At returns entry i or a *PaletteIndexError.
func (t *ColorTable) At(i int) (ColorTableEntry, error) {
	if i < 0 || i >= len(t.Entries) {
		return ColorTableEntry{}, &PaletteIndexError{Index: i, Min: 0, Max: len(t.Entries)}
	}
	return t.Entries[i], nil
}

// TableSizing selects how the number of palette entries is derived.
type TableSizing int

const (
	// TableSizeDeclared uses biClrUsed, or the bit depth default when it is
	// zero, clamped to the space before the pixel data.
	TableSizeDeclared TableSizing = iota
	// TableSizeFromSpace uses every whole entry that fits between the headers
	// and the pixel data, ignoring biClrUsed.
	TableSizeFromSpace
)

func (s TableSizing) String() string {
	switch s {
	case TableSizeDeclared:
		return "declared"
	case TableSizeFromSpace:
		return "space"
	}
	return "unknown"
}

// defaultColorCount returns the palette size implied by a bit depth.
func defaultColorCount(bpp int) int {
	switch bpp {
	case 1, 2, 4, 8:
		return 1 << bpp
	}
	return 0
}

// colorTableEntrySize is 3 bytes for the 12-byte header dialects, 4 otherwise.
func colorTableEntrySize(set VersionSet) int {
	if set.isCore() {
		return 3
	}
	return 4
}

// colorTableCount decides how many entries to read. tableStart is the stream
// offset of the first entry.
func colorTableCount(fh FileHeader, ih InfoHeader, set VersionSet, tableStart int64, sizing TableSizing) int {
	bpp := int(ih.BitsPerPixel)
	entrySize := int64(colorTableEntrySize(set))

	// Space is only known when the data offset lies past the headers.
	space := int64(-1)
	if fh.DataOffset != 0 && int64(fh.DataOffset) >= tableStart {
		space = (int64(fh.DataOffset) - tableStart) / entrySize
	}

	var n int64
	switch {
	case sizing == TableSizeFromSpace && space >= 0:
		n = space
	case ih.ColorsUsed != 0:
		n = int64(ih.ColorsUsed)
	default:
		n = int64(defaultColorCount(bpp))
	}
	if space >= 0 {
		n = min(n, space)
	}

	// A palette never needs more entries than the pixels can address.
	limit := int64(256)
	if c := defaultColorCount(bpp); c > 0 {
		limit = int64(c)
	}
	return int(min(n, limit))
}

func readColorTable(r *byteio.Reader, set VersionSet, count int) ColorTable {
	entrySize := colorTableEntrySize(set)
	t := ColorTable{Entries: make([]ColorTableEntry, 0, count)}
	for range count {
		var e ColorTableEntry
		e.B = r.Uint8()
		e.G = r.Uint8()
		e.R = r.Uint8()
		if entrySize == 4 {
			r.Skip(1) // Reserved
		}
		if r.Err() != nil {
			break
		}
		t.Entries = append(t.Entries, e)
	}
	return t
}
