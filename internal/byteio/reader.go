// Package byteio reads little- and big-endian integers from a seekable stream.
//
// A Reader never fails a single read. The first error is kept and every later
// read yields zero bytes, so callers can decode a whole structure and check
// Err once at the end.
package byteio

import (
	"bufio"
	"errors"
	"io"
)

type Reader struct {
	rs  io.ReadSeeker
	br  *bufio.Reader
	pos int64 // Logical position in rs
	err error
}

// NewReader wraps rs. Reads start at the current position of rs.
func NewReader(rs io.ReadSeeker) *Reader {
	r := &Reader{rs: rs, br: bufio.NewReader(rs)}
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		r.err = err
	}
	r.pos = pos
	return r
}

// Err returns the first error encountered, or nil.
func (r *Reader) Err() error {
	return r.err
}

// Pos returns the offset of the next byte to be read.
func (r *Reader) Pos() int64 {
	return r.pos
}

// SeekTo moves to an absolute offset, keeping buffered data when the target
// lies inside it. It does not clear a previous error.
func (r *Reader) SeekTo(offset int64) {
	if r.err != nil {
		return
	}
	if offset == r.pos {
		return
	}
	// Short forward jumps stay inside the buffer.
	if d := offset - r.pos; d > 0 && d <= int64(r.br.Buffered()) {
		r.br.Discard(int(d))
		r.pos = offset
		return
	}
	if _, err := r.rs.Seek(offset, io.SeekStart); err != nil {
		r.err = err
		return
	}
	r.br.Reset(r.rs)
	r.pos = offset
}

// Skip discards n bytes.
func (r *Reader) Skip(n int64) {
	if r.err != nil || n <= 0 {
		return
	}
	m, err := r.br.Discard(int(n))
	r.pos += int64(m)
	if err != nil {
		r.setErr(err)
	}
}

// Mark returns the position that Restore can rewind to.
func (r *Reader) Mark() int64 {
	return r.pos
}

// Restore seeks back to a position returned by Mark.
func (r *Reader) Restore(mark int64) {
	r.SeekTo(mark)
}

// Remaining returns the number of bytes between the read position and the
// end of the stream.
func (r *Reader) Remaining() (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	cur, err := r.rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := r.rs.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := r.rs.Seek(cur, io.SeekStart); err != nil {
		r.err = err
		return 0, err
	}
	return max(end-r.pos, 0), nil
}

func (r *Reader) setErr(err error) {
	if r.err != nil {
		return
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	r.err = err
}

func (r *Reader) Uint8() uint8 {
	if r.err != nil {
		return 0
	}
	b, err := r.br.ReadByte()
	if err != nil {
		r.setErr(err)
		return 0
	}
	r.pos++
	return b
}

func (r *Reader) Uint16LE() uint16 {
	return uint16(r.Uint8()) | uint16(r.Uint8())<<8
}

func (r *Reader) Uint32LE() uint32 {
	return uint32(r.Uint16LE()) | uint32(r.Uint16LE())<<16
}

func (r *Reader) Uint64LE() uint64 {
	return uint64(r.Uint32LE()) | uint64(r.Uint32LE())<<32
}

func (r *Reader) Int16LE() int16 {
	return int16(r.Uint16LE())
}

func (r *Reader) Int32LE() int32 {
	return int32(r.Uint32LE())
}

func (r *Reader) Uint16BE() uint16 {
	return uint16(r.Uint8())<<8 | uint16(r.Uint8())
}

func (r *Reader) Uint32BE() uint32 {
	return uint32(r.Uint16BE())<<16 | uint32(r.Uint16BE())
}

func (r *Reader) Uint64BE() uint64 {
	return uint64(r.Uint32BE())<<32 | uint64(r.Uint32BE())
}

// Bytes32LE reads n (1..4) bytes into the low bits of the result, the first
// byte being the least significant.
func (r *Reader) Bytes32LE(n int) uint32 {
	return uint32(r.Bytes64LE(min(n, 4)))
}

// Bytes32BE reads n (1..4) bytes into the low bits of the result, the first
// byte being the most significant.
func (r *Reader) Bytes32BE(n int) uint32 {
	return uint32(r.Bytes64BE(min(n, 4)))
}

// Bytes64LE is Bytes32LE for up to 8 bytes.
func (r *Reader) Bytes64LE(n int) uint64 {
	var v uint64
	for i := range min(n, 8) {
		v |= uint64(r.Uint8()) << (8 * i)
	}
	return v
}

// Bytes64BE is Bytes32BE for up to 8 bytes.
func (r *Reader) Bytes64BE(n int) uint64 {
	var v uint64
	for range min(n, 8) {
		v = v<<8 | uint64(r.Uint8())
	}
	return v
}
