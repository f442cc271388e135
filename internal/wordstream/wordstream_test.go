// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package wordstream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phamkyllian/kyllianPHAMbitpacker/internal/testutil"
)

func TestWriter(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0xdeadbeef, 32)
	w.WriteBits(0b101, 3)
	assert.Equal(t, 35, w.BitsWritten())
	w.PadToWord()
	assert.Equal(t, 64, w.BitsWritten())

	words, err := w.Words()
	assert.NoError(t, err)
	assert.Equal(t, []uint32{0xdeadbeef, 0xa0000000}, words)
}

func TestWriterUnaligned(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0b11111, 5)
	_, err := w.Words()
	assert.Equal(t, ErrUnaligned, err)
}

func TestAlignIfShort(t *testing.T) {
	w := NewWriter()
	w.WriteBits(0, 30)
	w.AlignIfShort(3) // only 2 bits left, closes out the word
	assert.Equal(t, 32, w.BitsWritten())
	w.AlignIfShort(3) // fresh word, no padding
	assert.Equal(t, 32, w.BitsWritten())
	w.WriteBits(0, 5)
	w.AlignIfShort(27) // 27 bits left, fits exactly
	assert.Equal(t, 37, w.BitsWritten())
}

func TestReader(t *testing.T) {
	r := FromWords([]uint32{0xdeadbeef, 0xa0000000})
	assert.Equal(t, 64, r.Len())

	assert.Equal(t, uint64(0xdead), r.ReadBits(16))
	assert.Equal(t, uint64(0xbeef), r.ReadBits(16))
	assert.True(t, r.ReadBit())
	assert.False(t, r.ReadBit())
	assert.Equal(t, 34, r.Pos())

	// Random access does not disturb the cursor.
	v, next := r.ReadBitsAt(8, 12)
	assert.Equal(t, uint64(0xadb), v)
	assert.Equal(t, 20, next)
	assert.Equal(t, 34, r.Pos())

	r.Seek(28)
	assert.Equal(t, uint64(0xfa), r.ReadBits(8))
	assert.True(t, r.More())
	r.Seek(64)
	assert.False(t, r.More())
}

func TestReaderOverrun(t *testing.T) {
	r := FromWords([]uint32{0})
	assert.Panics(t, func() { r.ReadBitsAt(24, 16) })
	assert.Panics(t, func() { r.ReadBitsAt(-1, 1) })
}

func TestRoundTrip(t *testing.T) {
	rng := testutil.NewRand(0)
	type field struct {
		v     uint64
		width int
	}
	var fields []field

	w := NewWriter()
	for i := 0; i < 1000; i++ {
		width := 1 + rng.Intn(32)
		v := uint64(rng.Int()) & (1<<uint(width) - 1)
		w.WriteBits(v, width)
		fields = append(fields, field{v, width})
	}
	w.PadToWord()
	words, err := w.Words()
	assert.NoError(t, err)

	r := FromWords(words)
	for _, f := range fields {
		assert.Equal(t, f.v, r.ReadBits(f.width))
	}
}
