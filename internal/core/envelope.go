package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// Signature is the fixed 4-byte magic every SIR0 container begins with.
const Signature = "SIR0"

// HeaderSize is the number of bytes occupied by the fixed envelope header:
// 4-byte magic, two 4-byte offsets, and a 4-byte reserved field.
const HeaderSize = 16

// Envelope represents the fixed-size SIR0 container header. Everything
// past HeaderSize - the content header, the string-table directory, and
// the pointer stream - is addressed relative to the start of the file via
// the offsets recorded here.
type Envelope struct {
	ContentHeaderOffset uint32
	PointerListOffset   uint32
}

// ParseEnvelope reads and validates the SIR0 header from r. It does not
// interpret anything past HeaderSize; callers use ContentHeaderOffset and
// PointerListOffset to locate the directory and pointer stream.
func ParseEnvelope(r io.ReaderAt) (*Envelope, error) {
	buf := utils.GetBuffer(HeaderSize)
	defer utils.ReleaseBuffer(buf)

	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, utils.WrapError("envelope read failed", err)
	}
	if n < HeaderSize {
		return nil, utils.WrapError("envelope read failed",
			fmt.Errorf("%w: got %d bytes, need %d", utils.ErrTruncatedHeader, n, HeaderSize))
	}

	if string(buf[:4]) != Signature {
		return nil, utils.WrapError("envelope read failed",
			fmt.Errorf("%w: got %q", utils.ErrBadMagic, buf[:4]))
	}

	return &Envelope{
		ContentHeaderOffset: binary.LittleEndian.Uint32(buf[4:8]),
		PointerListOffset:   binary.LittleEndian.Uint32(buf[8:12]),
		// buf[12:16] is the reserved field; SIR0 writers are required to
		// zero it but readers must not reject a nonzero value here, since
		// some tools have been observed to leave stale bytes in it.
	}, nil
}

// WriteTo serializes the envelope header to w, including the 4 reserved
// bytes, which are always written as zero.
func (e *Envelope) WriteTo(w io.Writer) (int64, error) {
	buf := make([]byte, HeaderSize)
	copy(buf[:4], Signature)
	binary.LittleEndian.PutUint32(buf[4:8], e.ContentHeaderOffset)
	binary.LittleEndian.PutUint32(buf[8:12], e.PointerListOffset)

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), utils.WrapError("envelope write failed", err)
	}
	return int64(n), nil
}
