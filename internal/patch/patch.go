// Package patch implements in-place string-slot rewriting for
// MessageBin directories: every edit overwrites bytes between a fixed
// Pointer and Pointer+AllocatedLen, never shifting any other slot.
package patch

import (
	"fmt"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/core"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// SlotEdit describes a single string replacement to apply to a buffer.
type SlotEdit struct {
	// OriginalIndex identifies which slot this edit targets, for error
	// reporting only; it plays no role in the byte arithmetic below.
	OriginalIndex int

	Pointer      uint32
	AllocatedLen int
	NewText      string
}

// ApplySlotEdits overwrites each edit's byte range in data with the
// UTF-16LE encoding of NewText, null-terminated and zero-padded to fill
// AllocatedLen exactly. A replacement that does not fit is truncated to
// the largest even byte count that fits without splitting a surrogate
// pair; ApplySlotEdits never grows or shrinks the buffer.
func ApplySlotEdits(data []byte, edits []SlotEdit) error {
	for _, e := range edits {
		if e.AllocatedLen < 2 {
			return utils.WrapError("apply slot edit",
				fmt.Errorf("slot %d: allocated length %d too small for a null terminator", e.OriginalIndex, e.AllocatedLen))
		}

		end := int(e.Pointer) + e.AllocatedLen
		if end > len(data) || int(e.Pointer) > len(data) {
			return utils.WrapError("apply slot edit",
				fmt.Errorf("slot %d: range [%d:%d] exceeds buffer length %d", e.OriginalIndex, e.Pointer, end, len(data)))
		}

		encoded := core.EncodeUTF16LE(e.NewText)
		payload := encoded[:len(encoded)-2] // drop the terminator EncodeUTF16LE appended

		if len(payload)+2 > e.AllocatedLen {
			encoded = core.TruncateUTF16LE(payload, e.AllocatedLen-2)
		}

		dst := data[e.Pointer:end]
		n := copy(dst, encoded)
		for i := n; i < len(dst); i++ {
			dst[i] = 0
		}
	}

	return nil
}
