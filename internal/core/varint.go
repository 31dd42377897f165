// Package core implements the low-level SIR0/MessageBin binary codec:
// the envelope, the variable-length pointer stream, and the string-table
// directory, all operating on an in-memory byte buffer rather than a
// streaming reader.
package core

import (
	"fmt"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// DecodePointerStream decodes the SIR0 relative-pointer-offset stream
// starting at the beginning of data. It returns the ordered list of
// *absolute* offsets the stream encodes (the first delta is relative to 0)
// and the number of bytes consumed, including the zero terminator.
//
// The stream is a sequence of big-endian-group 7-bit varints: each byte
// contributes 7 bits to a running accumulator, most-significant group
// first, with the continuation bit (0x80) set on every group but the
// last. A byte with the continuation bit clear ends one varint; a lone
// 0x00 with no accumulation in progress ends the stream.
func DecodePointerStream(data []byte) ([]uint64, int, error) {
	var offsets []uint64
	var acc uint64
	accumulating := false
	prev := uint64(0)

	for i, b := range data {
		acc = (acc << 7) | uint64(b&0x7F)
		accumulating = true

		if b&0x80 != 0 {
			if acc > utils.MaxPointerDelta {
				return nil, 0, utils.WrapError("decode pointer stream",
					fmt.Errorf("%w: delta %d exceeds maximum %d", utils.ErrBadVarint, acc, utils.MaxPointerDelta))
			}
			continue
		}

		if acc == 0 && len(offsets) == 0 {
			// Either the very first byte is the zero terminator (empty
			// stream) or acc genuinely accumulated to 0 with no
			// continuation bits seen yet - both read as "stream end".
			return offsets, i + 1, nil
		}

		if acc == 0 {
			// A zero delta following at least one real offset is the
			// terminator, not a legitimate repeated offset (4.A edge case).
			return offsets, i + 1, nil
		}

		next := prev + acc
		offsets = append(offsets, next)
		prev = next
		acc = 0
		accumulating = false
	}

	if accumulating || len(data) == 0 {
		return nil, 0, utils.WrapError("decode pointer stream",
			fmt.Errorf("%w: continuation sequence did not terminate before EOF", utils.ErrBadVarint))
	}

	return nil, 0, utils.WrapError("decode pointer stream",
		fmt.Errorf("%w: missing terminator", utils.ErrBadVarint))
}

// EncodePointerStream encodes a strictly-increasing list of absolute
// offsets into the SIR0 varint stream, including the trailing zero
// terminator. Passing an unsorted or non-strictly-increasing slice is a
// caller error; EncodePointerStream does not re-sort or deduplicate.
func EncodePointerStream(offsets []uint64) ([]byte, error) {
	out := make([]byte, 0, len(offsets)*2+1)
	prev := uint64(0)

	for i, off := range offsets {
		if i > 0 && off <= offsets[i-1] {
			return nil, utils.WrapError("encode pointer stream",
				fmt.Errorf("%w: offset %d is not strictly greater than previous offset %d", utils.ErrNonMonotonicPointers, off, offsets[i-1]))
		}

		delta := off - prev
		out = append(out, encodeVarintGroups(delta)...)
		prev = off
	}

	out = append(out, 0x00)
	return out, nil
}

// encodeVarintGroups splits delta into 7-bit groups, most-significant
// first, setting the continuation bit on every group but the last.
func encodeVarintGroups(delta uint64) []byte {
	if delta == 0 {
		// A delta of 0 cannot occur between two strictly-increasing
		// offsets; EncodePointerStream reaches this path only when the
		// first offset is 0. The single zero byte emitted here reads back
		// as the stream terminator.
		return []byte{0x00}
	}

	var groups []byte
	for delta > 0 {
		groups = append([]byte{byte(delta & 0x7F)}, groups...)
		delta >>= 7
	}

	for i := 0; i < len(groups)-1; i++ {
		groups[i] |= 0x80
	}

	return groups
}
