// Copyright 2024, Kyllian Pham. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

// Package bitpacker implements a compact codec for sequences of non-negative
// integers.
//
// Values are packed into a stream of 32-bit words using a payload width
// chosen to minimize the packed size. Values wider than the chosen width are
// stored once in an overflow table at the tail of the stream and referenced
// by index from the body. Two layouts are provided: the crossing layout packs
// slots back to back across word boundaries and supports constant-time random
// access, while the nocrossing layout keeps every slot inside a single word
// by framing each slot with a leading one bit and padding short word tails
// with zeros.
//
// The stream opens with a fixed 76-bit header holding the item count, the
// chosen payload width, the width of the widest value, and the overflow
// count, so decoding needs no state beyond the words themselves. The layout
// in use is not recorded in the stream; both ends must agree on it out of
// band.
package bitpacker
