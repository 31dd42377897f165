package messagebin

import (
	"encoding/binary"
	"testing"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/core"
)

// fixtureEntry describes one string slot to bake into a synthetic
// SIR0/MessageBin buffer for tests.
type fixtureEntry struct {
	text     string
	slotSize int // total byte span reserved for this slot, including padding
}

// buildFixture assembles a minimal but well-formed SIR0 container
// wrapping a MessageBin directory with the given entries, laid out in
// the order given (load order == pointer order, for test simplicity).
// It returns the raw buffer.
func buildFixture(t testing.TB, entries []fixtureEntry) []byte {
	t.Helper()

	directoryOffset := uint32(core.HeaderSize)
	infoOffset := directoryOffset + core.DirectoryHeaderSize
	stringsStart := infoOffset + uint32(len(entries)*core.InfoRecordSize)

	pointers := make([]uint32, len(entries))
	cursor := stringsStart
	for i, e := range entries {
		pointers[i] = cursor
		cursor += uint32(e.slotSize)
	}
	totalSize := cursor

	buf := make([]byte, totalSize)

	// Envelope header.
	copy(buf[0:4], core.Signature)
	binary.LittleEndian.PutUint32(buf[4:8], directoryOffset)
	binary.LittleEndian.PutUint32(buf[8:12], totalSize) // pointer list offset unused by tests; points past EOF harmlessly within buffer bounds checks done elsewhere

	// Directory header.
	binary.LittleEndian.PutUint32(buf[directoryOffset:directoryOffset+4], uint32(len(entries)))
	binary.LittleEndian.PutUint32(buf[directoryOffset+4:directoryOffset+8], infoOffset)

	for i, e := range entries {
		rec := buf[infoOffset+uint32(i*core.InfoRecordSize) : infoOffset+uint32((i+1)*core.InfoRecordSize)]
		binary.LittleEndian.PutUint32(rec[0:4], pointers[i])
		binary.LittleEndian.PutUint32(rec[4:8], 0)
		binary.LittleEndian.PutUint32(rec[8:12], 0)

		encoded := core.EncodeUTF16LE(e.text)
		copy(buf[pointers[i]:], encoded)
	}

	return buf
}
