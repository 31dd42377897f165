package utils

import "encoding/binary"

// ReaderAt is a simplified interface for io.ReaderAt.
type ReaderAt interface {
	ReadAt(p []byte, off int64) (n int, err error)
}

// ReadUint32 reads a 32-bit value at the specified offset using order.
// Every multi-byte integer in the SIR0/MessageBin formats is 32 bits wide.
func ReadUint32(r ReaderAt, offset int64, order binary.ByteOrder) (uint32, error) {
	buf := GetBuffer(4)
	defer ReleaseBuffer(buf)

	if _, err := r.ReadAt(buf, offset); err != nil {
		return 0, err
	}
	return order.Uint32(buf), nil
}
