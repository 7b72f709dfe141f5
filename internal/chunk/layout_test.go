package chunk

import (
	"bytes"
	"testing"

	"github.com/anas-shakeel/go-bmpdecode/internal/byteio"
)

func TestNewLayoutInvariant(t *testing.T) {
	for _, cw := range []int{8, 24, 32} {
		for _, pw := range []int{1, 2, 4, 8, 16, 24, 32} {
			l, err := NewLayout(cw, pw)
			if pw > cw {
				if err == nil {
					t.Errorf("NewLayout(%d, %d) succeeded, want error", cw, pw)
				}
				continue
			}
			if err != nil {
				t.Fatalf("NewLayout(%d, %d): %v", cw, pw, err)
			}
			if got := l.PixelsPerChunk*l.PixelWidth + l.NonsignificantBits; got != l.ChunkWidth {
				t.Errorf("NewLayout(%d, %d): ppc*pw+ns = %d, want %d", cw, pw, got, cw)
			}
		}
	}
}

func TestNewLayoutRejects(t *testing.T) {
	tests := []struct{ cw, pw int }{{16, 8}, {32, 3}, {0, 1}, {32, 0}}
	for _, tc := range tests {
		if _, err := NewLayout(tc.cw, tc.pw); err == nil {
			t.Errorf("NewLayout(%d, %d) succeeded, want error", tc.cw, tc.pw)
		}
	}
}

func TestWriteExtractRoundTrip(t *testing.T) {
	chunks := []uint32{0, 0xFFFFFFFF, 0x12345678, 0xA5C3F00F}
	for _, pw := range []int{1, 2, 4, 8, 16, 32} {
		l, err := NewLayout(32, pw)
		if err != nil {
			t.Fatal(err)
		}
		for _, c := range chunks {
			for ofs := range l.PixelsPerChunk {
				if got := l.Write(c, ofs, l.Extract(c, ofs)); got != c {
					t.Errorf("pw=%d chunk=%#x ofs=%d: got %#x", pw, c, ofs, got)
				}
			}
		}
	}
}

func TestWriteOnlyTouchesOnePixel(t *testing.T) {
	l, _ := NewLayout(32, 4)
	got := l.Write(0x11111111, 3, 0xF)
	if got != 0x1111F111 {
		t.Errorf("got %#x, want 0x1111f111", got)
	}
	// Bits above the pixel width are discarded.
	got = l.Write(0, 0, 0xAB)
	if got != 0xB {
		t.Errorf("got %#x, want 0xb", got)
	}
}

func TestDecodeOrdersPixelsByX(t *testing.T) {
	tests := []struct {
		name string
		pw   int
		raw  []byte
		want []uint32
	}{
		{"1bpp", 1, []byte{0x80, 0x00, 0x00, 0x01}, append(append([]uint32{1}, make([]uint32, 30)...), 1)},
		{"4bpp", 4, []byte{0x12, 0x34, 0x56, 0x78}, []uint32{1, 2, 3, 4, 5, 6, 7, 8}},
		{"8bpp", 8, []byte{0x0A, 0x0B, 0x0C, 0x0D}, []uint32{0x0A, 0x0B, 0x0C, 0x0D}},
		{"16bpp", 16, []byte{0x34, 0x12, 0x78, 0x56}, []uint32{0x1234, 0x5678}},
		{"32bpp", 32, []byte{0x01, 0x02, 0x03, 0x04}, []uint32{0x04030201}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ForBitsPerPixel(tc.pw)
			if err != nil {
				t.Fatal(err)
			}
			c := l.Read(byteio.NewReader(bytes.NewReader(tc.raw)))
			for x, want := range tc.want {
				if got := l.Extract(c, x); got != want {
					t.Errorf("pixel %d: got %#x, want %#x", x, got, want)
				}
			}
		})
	}
}

func TestRead24(t *testing.T) {
	l, _ := ForBitsPerPixel(24)
	if l.BytesPerChunk != 3 || l.PixelsPerChunk != 1 {
		t.Fatalf("unexpected layout %+v", l)
	}
	r := byteio.NewReader(bytes.NewReader([]byte{0x10, 0x20, 0x30, 0x40}))
	if got := l.Read(r); got != 0x302010 {
		t.Errorf("got %#x, want 0x302010", got)
	}
	if r.Pos() != 3 {
		t.Errorf("Pos() = %d, want 3", r.Pos())
	}
}

func TestFlipIsInvolution(t *testing.T) {
	for _, pw := range []int{1, 2, 4, 8} {
		l, _ := NewLayout(32, pw)
		for _, c := range []uint32{0x01234567, 0xDEADBEEF, 1} {
			if got := l.Flip(l.Flip(c)); got != c {
				t.Errorf("pw=%d: Flip(Flip(%#x)) = %#x", pw, c, got)
			}
		}
	}
}

func TestRowBytes(t *testing.T) {
	tests := []struct{ bpp, width, want int }{
		{1, 1, 4}, {1, 33, 8}, {4, 9, 8}, {8, 5, 8}, {16, 3, 8},
		{24, 1, 4}, {24, 3, 12}, {24, 5, 16}, {32, 2, 8},
	}
	for _, tc := range tests {
		l, _ := ForBitsPerPixel(tc.bpp)
		// Matches the ((width*bpp+31)/32)*4 stride of the format.
		if got := l.RowBytes(tc.width); got != tc.want {
			t.Errorf("bpp=%d width=%d: got %d, want %d", tc.bpp, tc.width, got, tc.want)
		}
	}
}

func TestLocate(t *testing.T) {
	l, _ := ForRLE(4)
	if l.PixelsPerChunk != 2 {
		t.Fatalf("PixelsPerChunk = %d, want 2", l.PixelsPerChunk)
	}
	if i, ofs := l.Locate(5); i != 2 || ofs != 1 {
		t.Errorf("Locate(5) = %d, %d; want 2, 1", i, ofs)
	}
}
