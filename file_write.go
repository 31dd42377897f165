package messagebin

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// Save writes the current in-memory buffer to filename. The write is
// atomic: the buffer is written to a temp file in the same directory,
// then renamed over filename, so a crash or interrupted write never
// leaves a partially-written destination file.
func (f *File) Save(filename string) error {
	dir := filepath.Dir(filename)

	//nolint:gosec // G304: caller-provided destination directory is the documented entry point
	tmp, err := os.CreateTemp(dir, ".messagebin-*.tmp")
	if err != nil {
		return utils.WrapError("save failed", err)
	}
	tmpName := tmp.Name()

	cleanup := true
	defer func() {
		if cleanup {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(f.data); err != nil {
		return utils.WrapError("save failed", err)
	}
	if err := tmp.Sync(); err != nil {
		return utils.WrapError("save failed", err)
	}
	if err := tmp.Close(); err != nil {
		return utils.WrapError("save failed", err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return utils.WrapError("save failed", fmt.Errorf("rename %s to %s: %w", tmpName, filename, err))
	}

	cleanup = false
	return nil
}

// SaveInPlace writes the buffer back to the path the file was opened
// from.
func (f *File) SaveInPlace() error {
	return f.Save(f.path)
}
