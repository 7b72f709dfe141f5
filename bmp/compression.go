package bmp

import "fmt"

// Compression is the biCompression field of the info header.
type Compression uint32

const (
	CompressionNone           Compression = 0x0
	CompressionRLE8           Compression = 0x1
	CompressionRLE4           Compression = 0x2
	CompressionBitfields      Compression = 0x3
	CompressionJPEG           Compression = 0x4
	CompressionPNG            Compression = 0x5
	CompressionAlphaBitfields Compression = 0x6
	CompressionCMYK           Compression = 0xB
	CompressionCMYKRLE8       Compression = 0xC
	CompressionCMYKRLE4       Compression = 0xD
)

var compressionNames = map[Compression]string{
	CompressionNone:           "BI_RGB",
	CompressionRLE8:           "BI_RLE8",
	CompressionRLE4:           "BI_RLE4",
	CompressionBitfields:      "BI_BITFIELDS",
	CompressionJPEG:           "BI_JPEG",
	CompressionPNG:            "BI_PNG",
	CompressionAlphaBitfields: "BI_ALPHABITFIELDS",
	CompressionCMYK:           "BI_CMYK",
	CompressionCMYKRLE8:       "BI_CMYKRLE8",
	CompressionCMYKRLE4:       "BI_CMYKRLE4",
}

func (c Compression) String() string {
	if name, ok := compressionNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Compression(%#x)", uint32(c))
}

// Known reports whether c is a compression code defined by any BMP dialect.
func (c Compression) Known() bool {
	_, ok := compressionNames[c]
	return ok
}

// Supported reports whether the decoder can expand pixel data compressed with c.
func (c Compression) Supported() bool {
	switch c {
	case CompressionNone, CompressionRLE8, CompressionRLE4,
		CompressionBitfields, CompressionAlphaBitfields:
		return true
	}
	return false
}

// IsRLE reports whether c is one of the run-length encodings.
func (c Compression) IsRLE() bool {
	return c == CompressionRLE8 || c == CompressionRLE4
}

// IsBitfields reports whether channel masks are explicit.
func (c Compression) IsBitfields() bool {
	return c == CompressionBitfields || c == CompressionAlphaBitfields
}
