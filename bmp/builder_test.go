package bmp

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// testBitmap describes a synthetic BMP file. Pixels are raw stored values,
// top row first: palette indexes for 1 to 8 bpp, packed channels otherwise.
type testBitmap struct {
	headerSize  int // 12, 16, 40, 56, 64, 108 or 124
	width       int
	height      int
	topDown     bool
	bpp         int
	compression Compression
	colorsUsed  uint32
	palette     []ColorTableEntry
	masks       []uint32 // Bit-field masks, in the header for V4/V5, after it otherwise
	pixels      [][]uint32
	data        []byte // Raw pixel data, replaces pixels (run-length streams)
	xDensity    int32
	yDensity    int32
	signature   string // Defaults to "BM"
}

func (tb testBitmap) bytes(t testing.TB) []byte {
	t.Helper()

	if tb.headerSize == 0 {
		tb.headerSize = 40
	}
	if tb.signature == "" {
		tb.signature = "BM"
	}
	le := binary.LittleEndian

	// Info header
	var info bytes.Buffer
	height := int32(tb.height)
	if tb.topDown {
		height = -height
	}
	if tb.headerSize == 12 {
		binary.Write(&info, le, uint32(12))
		binary.Write(&info, le, uint16(tb.width))
		binary.Write(&info, le, int16(height))
		binary.Write(&info, le, uint16(1))
		binary.Write(&info, le, uint16(tb.bpp))
	} else {
		full := make([]byte, max(tb.headerSize, 56))
		le.PutUint32(full[0:], uint32(tb.headerSize))
		le.PutUint32(full[4:], uint32(int32(tb.width)))
		le.PutUint32(full[8:], uint32(height))
		le.PutUint16(full[12:], 1)
		le.PutUint16(full[14:], uint16(tb.bpp))
		le.PutUint32(full[16:], uint32(tb.compression))
		le.PutUint32(full[24:], uint32(tb.xDensity))
		le.PutUint32(full[28:], uint32(tb.yDensity))
		le.PutUint32(full[32:], tb.colorsUsed)
		if tb.headerSize >= 108 || tb.headerSize == 56 {
			for i, m := range tb.masks {
				le.PutUint32(full[40+4*i:], m)
			}
		}
		info.Write(full[:tb.headerSize])
	}

	// Bit-field masks that follow the header
	var extra bytes.Buffer
	if tb.headerSize < 56 && tb.headerSize != 12 {
		for _, m := range tb.masks {
			binary.Write(&extra, le, m)
		}
	}

	// Color table
	for _, e := range tb.palette {
		extra.Write([]byte{e.B, e.G, e.R})
		if tb.headerSize != 12 {
			extra.WriteByte(0)
		}
	}

	data := tb.data
	if data == nil {
		data = tb.packRows()
	}

	offset := FileHeaderSize + info.Len() + extra.Len()
	var out bytes.Buffer
	out.WriteString(tb.signature)
	binary.Write(&out, le, uint32(offset+len(data)))
	binary.Write(&out, le, uint16(0))
	binary.Write(&out, le, uint16(0))
	binary.Write(&out, le, uint32(offset))
	out.Write(info.Bytes())
	out.Write(extra.Bytes())
	out.Write(data)
	return out.Bytes()
}

// packRows stores pixels in file order with rows padded to 4 bytes.
func (tb testBitmap) packRows() []byte {
	var out bytes.Buffer
	stride := ((tb.width*tb.bpp + 31) / 32) * 4

	for i := range tb.height {
		y := tb.height - 1 - i
		if tb.topDown {
			y = i
		}
		row := make([]byte, stride)
		for x := range tb.width {
			v := tb.pixels[y][x]
			switch tb.bpp {
			case 1, 2, 4:
				bit := x * tb.bpp
				shift := 8 - tb.bpp - bit%8
				row[bit/8] |= byte(v << shift)
			case 8:
				row[x] = byte(v)
			case 16:
				binary.LittleEndian.PutUint16(row[2*x:], uint16(v))
			case 24:
				row[3*x] = byte(v)
				row[3*x+1] = byte(v >> 8)
				row[3*x+2] = byte(v >> 16)
			case 32:
				binary.LittleEndian.PutUint32(row[4*x:], v)
			}
		}
		out.Write(row)
	}
	return out.Bytes()
}

// grayPalette returns n entries whose channels encode the index.
func grayPalette(n int) []ColorTableEntry {
	p := make([]ColorTableEntry, n)
	for i := range p {
		p[i] = ColorTableEntry{B: byte(i), G: byte(255 - i), R: byte(i * 3)}
	}
	return p
}

// patternPixels fills a grid with values that differ across rows and columns.
func patternPixels(width, height int, mask uint32) [][]uint32 {
	pixels := make([][]uint32, height)
	for y := range pixels {
		pixels[y] = make([]uint32, width)
		for x := range pixels[y] {
			pixels[y][x] = uint32(x*7+y*13+x*y*0x10101+1) & mask
		}
	}
	return pixels
}

func mustDecode(t *testing.T, data []byte, opts ...*Options) *Bitmap {
	t.Helper()
	b, err := Decode(bytes.NewReader(data), opts...)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return b
}
