// Package batch implements folder-level export and import across many
// MessageBin files at once: one adjacent CSV per .bin file, matched back
// to its sibling .bin by base filename - the directory-batch workflow
// used to hand an entire folder of files to a translator as a stack of
// spreadsheets and bring the results back.
package batch

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	messagebin "github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/tabular"
	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// DumpFolder writes an adjacent <basename>.csv next to every *.bin file
// directly under dir (case-insensitive match, sorted filename order),
// with columns Index,ID,Entry - Index is each entry's OriginalIndex, ID
// is its hash, and Entry its text - one row per entry in load order. A
// file that fails to open or decode is logged and skipped; it does not
// stop the remaining files from being exported.
func DumpFolder(dir string) error {
	names, err := filesWithExt(dir, ".bin")
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := dumpOne(dir, name); err != nil {
			log.Printf("batch: export %s failed: %v", name, err)
		}
	}
	return nil
}

func dumpOne(dir, name string) error {
	f, err := messagebin.Open(filepath.Join(dir, name))
	if err != nil {
		return utils.WrapError(fmt.Sprintf("dump folder: open %s", name), err)
	}
	defer func() { _ = f.Close() }()

	loadOrder := f.EntriesByLoadOrder()
	rows := make([]tabular.Row, len(loadOrder))
	for i, e := range loadOrder {
		rows[i] = tabular.Row{
			Index: e.OriginalIndex,
			ID:    strconv.FormatUint(uint64(e.Hash), 10),
			Entry: e.Text,
		}
	}

	csvPath := csvPathFor(dir, name)
	out, err := os.Create(csvPath)
	if err != nil {
		return utils.WrapError(fmt.Sprintf("dump folder: create %s", csvPath), err)
	}
	defer func() { _ = out.Close() }()

	if err := (tabular.CSVRowCodec{W: out}).WriteRows(rows); err != nil {
		return utils.WrapError(fmt.Sprintf("dump folder: write %s", csvPath), err)
	}
	log.Printf("batch: dumped %d strings from %s to %s", len(rows), name, filepath.Base(csvPath))
	return nil
}

// ImportFolder reads every *.csv file directly under dir, locates the
// sibling .bin file by matching base name, and for each row whose Index
// matches one of that file's entries, sets the entry's text; the file is
// then patched and saved in place. A missing sibling .bin, a malformed
// CSV, or a row with an unmatched Index is logged and skipped rather
// than aborting the walk: files are processed independently, and a row
// with an unmatched Index is not treated as fatal for its file.
func ImportFolder(dir string) error {
	names, err := filesWithExt(dir, ".csv")
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := importOne(dir, name); err != nil {
			log.Printf("batch: import %s failed: %v", name, err)
		}
	}
	return nil
}

func importOne(dir, csvName string) error {
	base := strings.TrimSuffix(csvName, filepath.Ext(csvName))
	binName := base + ".bin"
	binPath := filepath.Join(dir, binName)

	if _, err := os.Stat(binPath); err != nil {
		return utils.WrapError(fmt.Sprintf("import folder: no sibling %s for %s", binName, csvName), err)
	}

	in, err := os.Open(filepath.Join(dir, csvName))
	if err != nil {
		return utils.WrapError(fmt.Sprintf("import folder: open %s", csvName), err)
	}
	rows, err := (tabular.CSVRowCodec{R: in}).ReadRows()
	_ = in.Close()
	if err != nil {
		return utils.WrapError(fmt.Sprintf("import folder: read %s", csvName), err)
	}

	f, err := messagebin.Open(binPath)
	if err != nil {
		return utils.WrapError(fmt.Sprintf("import folder: open %s", binName), err)
	}
	defer func() { _ = f.Close() }()

	applied := 0
	for _, r := range rows {
		if err := f.SetText(r.Index, r.Entry); err != nil {
			if errors.Is(err, utils.ErrIndexNotFound) {
				log.Printf("batch: %s: row Index %d not found in %s, skipping", csvName, r.Index, binName)
				continue
			}
			return utils.WrapError(fmt.Sprintf("import folder: set text from %s", csvName), err)
		}
		applied++
	}

	if err := f.SaveInPlace(); err != nil {
		return utils.WrapError(fmt.Sprintf("import folder: save %s", binName), err)
	}
	log.Printf("batch: imported %d of %d rows from %s into %s", applied, len(rows), csvName, binName)
	return nil
}

func filesWithExt(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, utils.WrapError("list folder", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func csvPathFor(dir, binName string) string {
	base := strings.TrimSuffix(binName, filepath.Ext(binName))
	return filepath.Join(dir, base+".csv")
}
