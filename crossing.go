// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitpacker

import "time"
import "github.com/dsnet/golib/errs"
import "github.com/phamkyllian/kyllianPHAMbitpacker/internal/wordstream"

// Crossing packs slots back to back, letting a slot straddle 32-bit word
// boundaries. Every body slot is exactly 1+b bits: a tag bit telling inline
// values from overflow indexes apart, then the b-bit payload. The fixed slot
// width is what makes Get constant time.
type Crossing struct {
	packer
}

// NewCrossing returns a crossing packer over the given array. Pass a nil
// array for an instance that will be populated by Uncompress.
func NewCrossing(array []uint64) *Crossing {
	c := new(Crossing)
	c.init(array)
	return c
}

// Compress packs the captured array into 32-bit words, retrievable through
// Words. Values no wider than the chosen payload width are stored inline;
// wider ones are stored once in the overflow table at the tail of the stream
// and referenced by index.
func (c *Crossing) Compress() error {
	if len(c.arr) == 0 {
		return ErrEmptyInput
	}
	start := time.Now()

	w := wordstream.NewWriter()
	c.writeMeta(w)
	index, order, err := c.overflowList()
	if err != nil {
		return err
	}
	c.totalOverflow = len(order)
	w.WriteBits(uint64(c.totalOverflow), wordBits)

	for i, v := range c.arr {
		if c.lengths[i] <= c.best {
			w.WriteBits(0, 1)
			w.WriteBits(v, c.best)
		} else {
			w.WriteBits(1, 1)
			w.WriteBits(uint64(index[v]), c.best)
		}
	}
	for _, v := range order {
		w.WriteBits(v, c.maxWidth)
	}
	w.PadToWord()

	words, err := w.Words()
	if err != nil {
		return err
	}
	c.load(words)
	c.compTime = time.Since(start)
	return nil
}

// Uncompress rebuilds the original array from packed words. All codec
// parameters are recovered from the stream header, so the instance needs no
// prior state.
func (c *Crossing) Uncompress(words []uint32) (arr []uint64, err error) {
	defer errs.Recover(&err)
	start := time.Now()

	r := c.load(words)
	c.readMeta(r)
	overflowStart := headerBits + c.totalItems*(c.best+1)

	arr = make([]uint64, 0, c.totalItems)
	for i := 0; i < c.totalItems; i++ {
		overflow := r.ReadBit()
		v := r.ReadBits(c.best)
		if overflow {
			v, _ = r.ReadBitsAt(overflowStart+int(v)*c.maxWidth, c.maxWidth)
		}
		arr = append(arr, v)
	}
	c.uncompTime = time.Since(start)
	return arr, nil
}

// Get reads the i-th original value straight from the packed stream. The
// slot offset is computed directly from the header parameters.
func (c *Crossing) Get(i int) (v uint64, err error) {
	if i < 0 || i >= c.totalItems {
		return 0, ErrOutOfRange
	}
	defer errs.Recover(&err)

	tag, cursor := c.rd.ReadBitsAt(headerBits+i*(c.best+1), 1)
	v, _ = c.rd.ReadBitsAt(cursor, c.best)
	if tag == 1 {
		overflowStart := headerBits + c.totalItems*(c.best+1)
		v, _ = c.rd.ReadBitsAt(overflowStart+int(v)*c.maxWidth, c.maxWidth)
	}
	return v, nil
}
