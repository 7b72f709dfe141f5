// Source opens bitmap streams from files, standard input or zstd archives.
package source

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/anas-shakeel/go-bmpdecode/bmp"
)

// Stdin is the name that selects standard input.
const Stdin = "-"

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

var zstdDecPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil)
		return dec
	},
}

// Source is a seekable stream over one input.
type Source struct {
	io.ReadSeeker
	Name       string
	Compressed bool // Inflated from zstd
	closer     io.Closer
}

// Close releases the underlying file, if any.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Open returns a stream over name. Standard input and zstd-compressed input
// (a ".zst" name or the zstd frame magic) are read into memory; plain files
// are streamed directly. Open failures are *bmp.StreamError.
func Open(name string) (*Source, error) {
	if name == Stdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, &bmp.StreamError{Name: "stdin", Err: err}
		}
		return FromBytes("stdin", data)
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, &bmp.StreamError{Name: name, Err: err}
	}

	magic := make([]byte, len(zstdMagic))
	n, err := io.ReadFull(file, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		file.Close()
		return nil, &bmp.StreamError{Name: name, Err: err}
	}

	if strings.HasSuffix(name, ".zst") || bytes.Equal(magic[:n], zstdMagic) {
		defer file.Close()
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, &bmp.StreamError{Name: name, Err: err}
		}
		data, err := decompressZstd(file)
		if err != nil {
			return nil, &bmp.StreamError{Name: name, Err: err}
		}
		return &Source{ReadSeeker: bytes.NewReader(data), Name: name, Compressed: true}, nil
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, &bmp.StreamError{Name: name, Err: err}
	}
	return &Source{ReadSeeker: file, Name: name, closer: file}, nil
}

// FromBytes wraps data, inflating it when it carries the zstd magic.
func FromBytes(name string, data []byte) (*Source, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return &Source{ReadSeeker: bytes.NewReader(data), Name: name}, nil
	}
	out, err := decompressZstd(bytes.NewReader(data))
	if err != nil {
		return nil, &bmp.StreamError{Name: name, Err: err}
	}
	return &Source{ReadSeeker: bytes.NewReader(out), Name: name, Compressed: true}, nil
}

func decompressZstd(r io.Reader) ([]byte, error) {
	dec := zstdDecPool.Get().(*zstd.Decoder)
	defer zstdDecPool.Put(dec)

	if err := dec.Reset(r); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(dec); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
