// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitpacker

import "time"
import "github.com/dsnet/golib/errs"
import "github.com/phamkyllian/kyllianPHAMbitpacker/internal/wordstream"

// NoCrossing keeps every slot inside a single 32-bit word. Each slot opens
// with a framing one bit so the zero padding closing out a word can be
// skipped on read; the bit after it tells inline values ("10" + b-bit value)
// from overflow indexes ("11" + b-bit index) apart. Overflow table entries at
// the tail carry only the framing bit ("1" + max-width value). Two bits of
// every word are reserved for framing, which caps values at 30 bits.
type NoCrossing struct {
	packer
}

// NewNoCrossing returns a nocrossing packer over the given array. Pass a nil
// array for an instance that will be populated by Uncompress.
func NewNoCrossing(array []uint64) *NoCrossing {
	c := new(NoCrossing)
	c.init(array)
	return c
}

// Compress packs the captured array into 32-bit words, retrievable through
// Words. A slot never straddles a word boundary: whenever fewer bits remain
// in the current word than the slot needs, the word is closed out with zeros
// first.
func (c *NoCrossing) Compress() error {
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
		if c.lengths[i] > wordBits-2 {
			return ErrValueTooWideNoCross
		}
		w.AlignIfShort(c.best + 2)
		if c.lengths[i] <= c.best {
			w.WriteBits(0b10, 2)
			w.WriteBits(v, c.best)
		} else {
			w.WriteBits(0b11, 2)
			w.WriteBits(uint64(index[v]), c.best)
		}
	}
	for _, v := range order {
		w.AlignIfShort(c.maxWidth + 2)
		w.WriteBits(1, 1)
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

// Uncompress rebuilds the original array from packed words. The scan consumes
// one bit at a time: a zero is padding, a one opens a slot. It stops once the
// item count from the header has been recovered, leaving the overflow table
// suffix unread.
func (c *NoCrossing) Uncompress(words []uint32) (arr []uint64, err error) {
	defer errs.Recover(&err)
	start := time.Now()

	r := c.load(words)
	c.readMeta(r)

	arr = make([]uint64, 0, c.totalItems)
	for len(arr) < c.totalItems && r.More() {
		if !r.ReadBit() {
			continue
		}
		overflow := r.ReadBit()
		v := r.ReadBits(c.best)
		if overflow {
			if v, err = c.getOverflow(int(v)); err != nil {
				return nil, err
			}
		}
		arr = append(arr, v)
	}
	c.uncompTime = time.Since(start)
	return arr, nil
}

// Get scans the body for the i-th framed slot and resolves it like
// Uncompress does. Unlike the crossing layout the slot offset cannot be
// computed, so the cost is linear in the stream length.
func (c *NoCrossing) Get(i int) (v uint64, err error) {
	if i < 0 || i >= c.totalItems {
		return 0, ErrOutOfRange
	}
	defer errs.Recover(&err)

	cursor := headerBits
	seen := 0
	for cursor < c.rd.Len() {
		bit, next := c.rd.ReadBitsAt(cursor, 1)
		cursor = next
		if bit == 0 {
			continue
		}
		if seen == i {
			kind, next := c.rd.ReadBitsAt(cursor, 1)
			v, _ = c.rd.ReadBitsAt(next, c.best)
			if kind == 1 {
				return c.getOverflow(int(v))
			}
			return v, nil
		}
		seen++
		cursor += c.best + 1
	}
	return 0, ErrCorrupt
}

// getOverflow resolves the position-th overflow table entry by scanning the
// stream from the top: the first totalItems framed slots are body slots, the
// framed slots after them are table entries of 1+maxWidth bits each.
func (c *NoCrossing) getOverflow(position int) (uint64, error) {
	cursor := headerBits
	bodySlots, entries := 0, 0
	for cursor < c.rd.Len() {
		bit, next := c.rd.ReadBitsAt(cursor, 1)
		cursor = next
		if bit == 0 {
			continue
		}
		if bodySlots < c.totalItems {
			bodySlots++
			cursor += c.best + 1
			continue
		}
		if entries == position {
			v, _ := c.rd.ReadBitsAt(cursor, c.maxWidth)
			return v, nil
		}
		entries++
		cursor += c.maxWidth
	}
	return 0, ErrOverflowNotFound
}
