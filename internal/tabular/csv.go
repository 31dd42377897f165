package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/FrozenMouseIV/EtrianMysteryDungeon2Translation/internal/utils"
)

// CSVColumnCodec implements ColumnReader and ColumnWriter over the
// single-column "Entry" contract using the standard library's CSV
// encoder/decoder; no third-party CSV library in the example pack
// offers a meaningfully better fit for a one-column, header-only
// contract than encoding/csv's RFC 4180 handling already does.
type CSVColumnCodec struct {
	R io.Reader
	W io.Writer
}

const entryColumnHeader = "Entry"

// ReadEntries reads a single-column CSV with an "Entry" header and
// returns its rows in file order. A blank field decodes as an Opaque
// cell rather than an empty text string, so a column mixing real text
// with a non-string sentinel round-trips through CSV without losing the
// distinction.
func (c CSVColumnCodec) ReadEntries() ([]Cell, error) {
	reader := csv.NewReader(c.R)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, utils.WrapError("read entry column", err)
	}
	if len(records) == 0 {
		return nil, utils.WrapError("read entry column",
			fmt.Errorf("%w: empty file, expected %q header", utils.ErrColumnMissing, entryColumnHeader))
	}
	if len(records[0]) == 0 || records[0][0] != entryColumnHeader {
		return nil, utils.WrapError("read entry column",
			fmt.Errorf("%w: header %v", utils.ErrColumnMissing, records[0]))
	}

	out := make([]Cell, 0, len(records)-1)
	for _, row := range records[1:] {
		if len(row) == 0 || row[0] == "" {
			out = append(out, OpaqueCell())
			continue
		}
		out = append(out, TextCell(row[0]))
	}
	return out, nil
}

// WriteEntries writes cells as a single-column CSV with an "Entry"
// header, one row per cell, in the order given. An Opaque cell writes
// as a blank field.
func (c CSVColumnCodec) WriteEntries(cells []Cell) error {
	writer := csv.NewWriter(c.W)
	if err := writer.Write([]string{entryColumnHeader}); err != nil {
		return utils.WrapError("write entry column", err)
	}
	for _, cell := range cells {
		value := ""
		if !cell.Opaque {
			value = cell.Value
		}
		if err := writer.Write([]string{value}); err != nil {
			return utils.WrapError("write entry column", err)
		}
	}
	writer.Flush()
	return utils.WrapError("write entry column", writer.Error())
}

// CSVRowCodec implements RowReader and RowWriter over the three-column
// "Index,ID,Entry" batch contract.
type CSVRowCodec struct {
	R io.Reader
	W io.Writer
}

var batchHeader = []string{"Index", "ID", "Entry"}

// ReadRows reads a three-column "Index,ID,Entry" CSV into Rows.
func (c CSVRowCodec) ReadRows() ([]Row, error) {
	reader := csv.NewReader(c.R)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, utils.WrapError("read batch rows", err)
	}
	if len(records) == 0 {
		return nil, utils.WrapError("read batch rows",
			fmt.Errorf("%w: empty file, expected header %v", utils.ErrColumnMissing, batchHeader))
	}
	if !headerMatches(records[0]) {
		return nil, utils.WrapError("read batch rows",
			fmt.Errorf("%w: header %v", utils.ErrColumnMissing, records[0]))
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 3 {
			return nil, utils.WrapError("read batch rows",
				fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(rec)))
		}
		index, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, utils.WrapError("read batch rows",
				fmt.Errorf("row %d: invalid Index %q: %w", i+1, rec[0], err))
		}
		rows = append(rows, Row{Index: index, ID: rec[1], Entry: rec[2]})
	}
	return rows, nil
}

// WriteRows writes rows as a three-column "Index,ID,Entry" CSV.
func (c CSVRowCodec) WriteRows(rows []Row) error {
	writer := csv.NewWriter(c.W)
	if err := writer.Write(batchHeader); err != nil {
		return utils.WrapError("write batch rows", err)
	}
	for _, r := range rows {
		rec := []string{strconv.Itoa(r.Index), r.ID, r.Entry}
		if err := writer.Write(rec); err != nil {
			return utils.WrapError("write batch rows", err)
		}
	}
	writer.Flush()
	return utils.WrapError("write batch rows", writer.Error())
}

func headerMatches(got []string) bool {
	if len(got) != len(batchHeader) {
		return false
	}
	for i, h := range batchHeader {
		if got[i] != h {
			return false
		}
	}
	return true
}
