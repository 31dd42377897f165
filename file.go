// Package messagebin provides a pure Go implementation for reading and
// patching MessageBin string-table files wrapped in a SIR0 container. It
// loads a file fully into memory, exposes its string slots for
// inspection and in-place editing, and writes edits back without moving
// or resizing any slot.
package messagebin

import (
	"bytes"
	"fmt"
	"os"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/core"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/patch"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// File represents an open MessageBin file with its envelope, directory,
// and the full raw buffer edits are applied to.
type File struct {
	path           string
	data           []byte
	env            *core.Envelope
	dir            *core.Directory
	pointerOffsets []uint64
}

// Open reads filename fully into memory and parses its SIR0 envelope and
// MessageBin directory. It also decodes the SIR0 pointer-list stream as
// a conformance check - the stream itself plays no role in in-place
// editing, since no slot ever moves, but a malformed stream indicates
// the file is not a well-formed SIR0 container.
func Open(filename string) (*File, error) {
	//nolint:gosec // G304: caller-provided filename is the documented entry point
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, utils.WrapError("file open failed", err)
	}

	env, err := core.ParseEnvelope(bytes.NewReader(data))
	if err != nil {
		return nil, utils.WrapError("envelope parse failed", err)
	}

	dir, err := core.ParseDirectory(data, env.ContentHeaderOffset)
	if err != nil {
		return nil, utils.WrapError("directory parse failed", err)
	}

	var pointerOffsets []uint64
	if int(env.PointerListOffset) < len(data) {
		pointerOffsets, _, err = core.DecodePointerStream(data[env.PointerListOffset:])
		if err != nil {
			return nil, utils.WrapError("pointer stream parse failed", err)
		}
	}

	return &File{
		path:           filename,
		data:           data,
		env:            env,
		dir:            dir,
		pointerOffsets: pointerOffsets,
	}, nil
}

// Close releases the in-memory buffer. It is safe to call Close more
// than once.
func (f *File) Close() error {
	f.data = nil
	return nil
}

// Envelope returns the file's parsed SIR0 header.
func (f *File) Envelope() *core.Envelope {
	return f.env
}

// PointerOffsets returns the absolute offsets decoded from the SIR0
// pointer-list stream, in the order they appear in the stream.
func (f *File) PointerOffsets() []uint64 {
	return f.pointerOffsets
}

// Entries returns every string slot ordered by OriginalIndex - the
// stable pointer-ascending order tooling uses to refer to slots, as
// distinct from their on-disk load order.
func (f *File) Entries() []core.StringEntry {
	return f.dir.ByOriginalIndex()
}

// EntriesByLoadOrder returns every string slot in on-disk info-record
// order, as distinct from Entries' pointer-derived OriginalIndex order.
func (f *File) EntriesByLoadOrder() []core.StringEntry {
	out := make([]core.StringEntry, len(f.dir.Entries))
	copy(out, f.dir.Entries)
	return out
}

// Text returns the current text of the slot at originalIndex.
func (f *File) Text(originalIndex int) (string, error) {
	entry, err := f.findByOriginalIndex(originalIndex)
	if err != nil {
		return "", err
	}
	return entry.Text, nil
}

// SetText rewrites the slot at originalIndex to hold newText, patching
// the in-memory buffer immediately. The change is only persisted to
// disk when Save is called.
func (f *File) SetText(originalIndex int, newText string) error {
	entry, err := f.findByOriginalIndex(originalIndex)
	if err != nil {
		return err
	}

	edit := patch.SlotEdit{
		OriginalIndex: originalIndex,
		Pointer:       entry.Pointer,
		AllocatedLen:  entry.AllocatedLen,
		NewText:       newText,
	}
	if err := patch.ApplySlotEdits(f.data, []patch.SlotEdit{edit}); err != nil {
		return utils.WrapError("set text failed", err)
	}

	decoded, err := core.DecodeUTF16LE(f.data[entry.Pointer : int(entry.Pointer)+entry.AllocatedLen])
	if err != nil {
		return utils.WrapError("set text failed", err)
	}

	for i := range f.dir.Entries {
		if f.dir.Entries[i].OriginalIndex == originalIndex {
			f.dir.Entries[i].Text = decoded
			break
		}
	}
	return nil
}

func (f *File) findByOriginalIndex(originalIndex int) (core.StringEntry, error) {
	for _, e := range f.dir.Entries {
		if e.OriginalIndex == originalIndex {
			return e, nil
		}
	}
	return core.StringEntry{}, utils.WrapError("find entry",
		fmt.Errorf("%w: original index %d", utils.ErrIndexNotFound, originalIndex))
}
