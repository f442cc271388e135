// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package wordstream translates between a logical bit sequence and a
// sequence of 32-bit words. Bits are ordered most-significant first within
// each word: bit offset 0 of the stream is the MSB of word 0.
package wordstream

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/icza/bitio"
)

// WordBits is the size of each output unit.
const WordBits = 32

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "wordstream: " + string(e) }

// ErrUnaligned is reported by Words when the stream does not end on a word
// boundary.
var ErrUnaligned error = Error("bit count is not a multiple of 32")

// Writer is an append-only bit sink that can be emitted as 32-bit words.
type Writer struct {
	buf bytes.Buffer
	bw  *bitio.Writer
	cnt int
}

func NewWriter() *Writer {
	w := new(Writer)
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// WriteBits appends the width low-order bits of v, most-significant bit
// first. Bits of v above width are ignored.
func (w *Writer) WriteBits(v uint64, width int) {
	if width == 0 {
		return
	}
	w.bw.TryWriteBits(v&(1<<uint(width)-1), uint8(width))
	w.cnt += width
}

// BitsWritten reports the number of bits appended so far.
func (w *Writer) BitsWritten() int { return w.cnt }

// pad reports the number of zero bits separating the current position from
// the next word boundary.
func (w *Writer) pad() int {
	return -w.cnt & (WordBits - 1)
}

// PadToWord appends zero bits up to the next word boundary.
func (w *Writer) PadToWord() {
	w.WriteBits(0, w.pad())
}

// AlignIfShort pads the rest of the current word with zeros when fewer than
// width bits remain in it, so the next write starts a fresh word. Layouts
// that forbid a slot from straddling a word boundary call this before each
// slot.
func (w *Writer) AlignIfShort(width int) {
	if p := w.pad(); p < width {
		w.WriteBits(0, p)
	}
}

// Words partitions the stream into 32-bit words. The stream must end on a
// word boundary.
func (w *Writer) Words() ([]uint32, error) {
	if w.cnt%WordBits != 0 {
		return nil, ErrUnaligned
	}
	if err := w.bw.TryError; err != nil {
		return nil, err
	}
	if err := w.bw.Close(); err != nil {
		return nil, err
	}
	b := w.buf.Bytes()
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(b[4*i:])
	}
	return words, nil
}

// Reader provides random access reads over a bit sequence ingested from
// 32-bit words. Reads past the end panic with io.ErrUnexpectedEOF; callers
// are expected to recover at their exported entry points.
type Reader struct {
	buf []byte
	pos int
}

// FromWords concatenates the 32-bit big-endian representations of each word.
// It is the inverse of Writer.Words.
func FromWords(words []uint32) *Reader {
	buf := make([]byte, 4*len(words))
	for i, v := range words {
		binary.BigEndian.PutUint32(buf[4*i:], v)
	}
	return &Reader{buf: buf}
}

// Len reports the total number of bits in the stream.
func (r *Reader) Len() int { return 8 * len(r.buf) }

// Pos reports the cursor position in bits.
func (r *Reader) Pos() int { return r.pos }

// Seek moves the cursor to the given bit offset.
func (r *Reader) Seek(pos int) { r.pos = pos }

// More reports whether any bits remain past the cursor.
func (r *Reader) More() bool { return r.pos < r.Len() }

// ReadBitsAt reads width bits starting at bit offset pos and returns the
// value along with the offset just past it. The cursor is left untouched.
func (r *Reader) ReadBitsAt(pos, width int) (uint64, int) {
	if pos < 0 || pos+width > r.Len() {
		panic(io.ErrUnexpectedEOF)
	}
	var v uint64
	for width > 0 {
		i, off := pos>>3, pos&7
		n := 8 - off
		if n > width {
			n = width
		}
		chunk := uint64(r.buf[i]>>(8-off-n)) & (1<<uint(n) - 1)
		v = v<<uint(n) | chunk
		pos += n
		width -= n
	}
	return v, pos
}

// ReadBits reads width bits at the cursor and advances it.
func (r *Reader) ReadBits(width int) uint64 {
	v, pos := r.ReadBitsAt(r.pos, width)
	r.pos = pos
	return v
}

// ReadBit reads a single bit at the cursor and advances it.
func (r *Reader) ReadBit() bool {
	return r.ReadBits(1) == 1
}
