// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package bitpacker

import (
	"math/bits"
	"time"

	"github.com/phamkyllian/kyllianPHAMbitpacker/internal/wordstream"
)

// packer holds the state shared by both layouts. An encoding instance owns
// the input array; a decoding instance starts empty and recovers everything
// but the array from the stream header.
type packer struct {
	arr     []uint64
	lengths []int
	words   []uint32
	rd      *wordstream.Reader

	totalItems    int
	totalOverflow int
	maxWidth      int
	best          int

	compTime   time.Duration
	uncompTime time.Duration
}

func (p *packer) init(array []uint64) {
	p.arr = array
	if len(array) == 0 {
		return
	}
	p.lengths = make([]int, len(array))
	for i, v := range array {
		p.lengths[i] = bits.Len64(v)
		if p.lengths[i] > p.maxWidth {
			p.maxWidth = p.lengths[i]
		}
	}
	p.findBestBitLength()
	p.totalItems = len(array)
}

// findBestBitLength picks the payload width minimizing the number of 32-bit
// words spent by the crossing layout. A width is only eligible if the count
// of values wider than it still fits in that many bits, since overflow slots
// store a table index of the same width. Later candidates win ties, so the
// widest layout achieving the minimum is kept. When no candidate qualifies
// the width stays at 1.
func (p *packer) findBestBitLength() {
	best, words := 1, 0
	for nb := 1; nb < p.maxWidth; nb++ {
		overflow := 0
		for _, n := range p.lengths {
			if n > nb {
				overflow++
			}
		}
		if bits.Len(uint(overflow)) > nb {
			continue
		}
		total := 0
		for _, n := range p.lengths {
			if n > nb {
				total += nb + 1 + p.maxWidth
			} else {
				total += nb + 1
			}
		}
		if cnt := divCeil(total, wordBits); words == 0 || cnt <= words {
			best, words = nb, cnt
		}
	}
	p.best = best
}

// writeMeta emits the leading header fields. The overflow count field is
// written by the caller once the overflow table has been built.
func (p *packer) writeMeta(w *wordstream.Writer) {
	w.WriteBits(uint64(p.totalItems), wordBits)
	w.WriteBits(uint64(p.best), widthBits)
	w.WriteBits(uint64(p.maxWidth), widthBits)
}

// readMeta parses the header and leaves the reader cursor on the first body
// slot.
func (p *packer) readMeta(r *wordstream.Reader) {
	r.Seek(0)
	p.totalItems = int(r.ReadBits(wordBits))
	p.best = int(r.ReadBits(widthBits))
	p.maxWidth = int(r.ReadBits(widthBits))
	p.totalOverflow = int(r.ReadBits(wordBits))
}

// overflowList collects the distinct values wider than the chosen payload
// width. Entries are keyed by value and ordered by first appearance, so
// repeated occurrences share one table slot.
func (p *packer) overflowList() (map[uint64]int, []uint64, error) {
	index := make(map[uint64]int)
	var order []uint64
	for i, v := range p.arr {
		if p.lengths[i] > wordBits {
			return nil, nil, ErrValueTooWide
		}
		if p.lengths[i] <= p.best {
			continue
		}
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = len(order)
		order = append(order, v)
	}
	return index, order, nil
}

// load captures packed words and prepares the bit reader over them.
func (p *packer) load(words []uint32) *wordstream.Reader {
	p.words = words
	p.rd = wordstream.FromWords(words)
	return p.rd
}

func (p *packer) Words() []uint32    { return p.words }
func (p *packer) TotalItems() int    { return p.totalItems }
func (p *packer) BestBitLength() int { return p.best }
func (p *packer) MaxWidth() int      { return p.maxWidth }
func (p *packer) TotalOverflow() int { return p.totalOverflow }

// IsCompressionBetter weighs one shipment of the raw array against
// compressing, shipping the packed words, and decompressing. The compression
// and decompression terms are the durations measured on this instance and
// stay zero until the corresponding operations have run.
func (p *packer) IsCompressionBetter(bandwidth, latency float64) bool {
	rawTime := latency + float64(4*len(p.arr))/bandwidth
	packedTime := latency + p.compTime.Seconds() +
		float64(4*len(p.words))/bandwidth + p.uncompTime.Seconds()
	return packedTime < rawTime
}
