// Package tabular implements the CSV exchange contracts used to move
// MessageBin string tables in and out of spreadsheet-friendly form: a
// single-column "Entry" contract for editing one file's strings, and a
// three-column "Index,ID,Entry" contract for batch directory exchange.
package tabular

// Row is one record of the three-column batch contract: Index is the
// entry's OriginalIndex in its source file, ID identifies the entry (see
// internal/batch, which populates it from the entry's hash), and Entry
// is the string text.
type Row struct {
	Index int
	ID    string
	Entry string
}

// Cell is one slot of a tabular column: either decoded text or an
// opaque non-string sentinel that passes through unchanged wherever
// cells are processed. Callers must check Opaque before reading Value -
// an Opaque cell's Value is meaningless.
type Cell struct {
	Value  string
	Opaque bool
}

// TextCell wraps a decoded string as a Cell.
func TextCell(value string) Cell {
	return Cell{Value: value}
}

// OpaqueCell returns a Cell carrying no text, for positions in a column
// that hold a non-string sentinel rather than decoded text.
func OpaqueCell() Cell {
	return Cell{Opaque: true}
}

// ColumnReader parses the single-column "Entry" contract.
type ColumnReader interface {
	ReadEntries() ([]Cell, error)
}

// ColumnWriter emits the single-column "Entry" contract.
type ColumnWriter interface {
	WriteEntries(cells []Cell) error
}

// RowReader parses the three-column "Index,ID,Entry" batch contract.
type RowReader interface {
	ReadRows() ([]Row, error)
}

// RowWriter emits the three-column "Index,ID,Entry" batch contract.
type RowWriter interface {
	WriteRows(rows []Row) error
}
