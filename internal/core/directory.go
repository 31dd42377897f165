package core

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// InfoRecordSize is the fixed width of each string_info record: three
// little-endian uint32 fields (string_pointer, hash, unknown).
const InfoRecordSize = 12

// DirectoryHeaderSize is the width of the directory's own fixed header:
// string_count followed by string_info_offset, each a uint32.
const DirectoryHeaderSize = 8

// StringEntry is one string slot in a MessageBin directory.
type StringEntry struct {
	// LoadIndex is the entry's position in the info-record array as
	// stored on disk.
	LoadIndex int

	// OriginalIndex is the entry's position when all entries are sorted
	// by ascending Pointer. Tooling built against this format tracks
	// entries by OriginalIndex because patch operations never reorder
	// slots, only rewrite their contents in place.
	OriginalIndex int

	Pointer uint32
	Hash    uint32
	Unknown uint32
	Text    string

	// AllocatedLen is the number of bytes this slot occupied at load
	// time: 2*(non-null code units + 1), derived by scanning forward
	// from Pointer for the slot's own UTF-16LE null terminator. It does
	// not depend on where any other slot's pointer falls - two slots
	// are frequently separated by a gap larger than either one's own
	// AllocatedLen. A replacement string's encoded length, plus its
	// null terminator, must not exceed this value.
	AllocatedLen int
}

// Directory is a parsed MessageBin string table.
type Directory struct {
	Entries []StringEntry
}

// ParseDirectory reads the directory header and info records starting at
// offset within data, then decodes every string payload they point to.
func ParseDirectory(data []byte, offset uint32) (*Directory, error) {
	if int(offset)+DirectoryHeaderSize > len(data) {
		return nil, utils.WrapError("parse directory",
			fmt.Errorf("%w: header at %d exceeds buffer length %d", utils.ErrTruncatedHeader, offset, len(data)))
	}

	header := data[offset : offset+DirectoryHeaderSize]
	stringCount := binary.LittleEndian.Uint32(header[0:4])
	infoOffset := binary.LittleEndian.Uint32(header[4:8])

	if err := utils.ValidateBufferSize(uint64(stringCount), utils.MaxStringCount, "directory string_count"); err != nil && stringCount != 0 {
		return nil, utils.WrapError("parse directory", err)
	}

	recordsLen, err := utils.SafeMultiply(uint64(stringCount), uint64(InfoRecordSize))
	if err != nil {
		return nil, utils.WrapError("parse directory", err)
	}
	if uint64(infoOffset)+recordsLen > uint64(len(data)) {
		return nil, utils.WrapError("parse directory",
			fmt.Errorf("%w: info records run past buffer end", utils.ErrTruncatedPayload))
	}

	entries := make([]StringEntry, stringCount)
	for i := uint32(0); i < stringCount; i++ {
		rec := data[infoOffset+i*InfoRecordSize : infoOffset+(i+1)*InfoRecordSize]
		entries[i] = StringEntry{
			LoadIndex: int(i),
			Pointer:   binary.LittleEndian.Uint32(rec[0:4]),
			Hash:      binary.LittleEndian.Uint32(rec[4:8]),
			Unknown:   binary.LittleEndian.Uint32(rec[8:12]),
		}
	}

	assignOriginalIndex(entries)

	for i := range entries {
		allocatedLen, err := scanAllocatedLen(data, entries[i].Pointer)
		if err != nil {
			return nil, utils.WrapError(fmt.Sprintf("scan string slot %d", i), err)
		}
		entries[i].AllocatedLen = allocatedLen

		text, err := DecodeUTF16LE(data[entries[i].Pointer : int(entries[i].Pointer)+allocatedLen])
		if err != nil {
			return nil, utils.WrapError(fmt.Sprintf("decode string slot %d", i), err)
		}
		entries[i].Text = strings.Trim(text, " \t\n\r\v\f")
	}

	return &Directory{Entries: entries}, nil
}

// assignOriginalIndex sorts a copy of entries by ascending Pointer to
// derive OriginalIndex, the stable pointer-ascending rank tooling uses
// to refer to a slot across load orders.
func assignOriginalIndex(entries []StringEntry) {
	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].Pointer < entries[order[b]].Pointer
	})

	for originalIdx, loadIdx := range order {
		entries[loadIdx].OriginalIndex = originalIdx
	}
}

// scanAllocatedLen scans data two bytes at a time starting at pointer
// until it finds a U+0000 code unit, and returns the byte span from
// pointer up to and including that terminator - the slot's own
// AllocatedLen, independent of where any other slot's pointer falls.
func scanAllocatedLen(data []byte, pointer uint32) (int, error) {
	i := pointer
	for {
		if int(i)+2 > len(data) {
			return 0, fmt.Errorf("%w: no null terminator found before buffer end", utils.ErrTruncatedPayload)
		}
		if data[i] == 0 && data[i+1] == 0 {
			return int(i+2-pointer), nil
		}
		i += 2
	}
}

// ByOriginalIndex returns a copy of d.Entries sorted by OriginalIndex.
func (d *Directory) ByOriginalIndex() []StringEntry {
	out := make([]StringEntry, len(d.Entries))
	copy(out, d.Entries)
	sort.Slice(out, func(a, b int) bool { return out[a].OriginalIndex < out[b].OriginalIndex })
	return out
}

// WriteHeader serializes the directory's fixed header (string_count,
// string_info_offset) for round-trip writes. String payloads are
// rewritten in place by internal/patch and info records are left as
// they are, so neither is regenerated here; slot positions never move.
func WriteHeader(stringCount, infoOffset uint32) []byte {
	buf := make([]byte, DirectoryHeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], stringCount)
	binary.LittleEndian.PutUint32(buf[4:8], infoOffset)
	return buf
}
