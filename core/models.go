package core

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// IdentityColumn is the database-assigned identity field dropped during ingestion.
const IdentityColumn = "_id"

// MissingSentinel is the literal cell value normalized to a missing value.
const MissingSentinel = "na"

// ID is a content-derived row identifier.
type ID uint64

// Field is a single key/value pair of a Document.
type Field struct {
	Key   string
	Value any
}

// Document is an ordered set of fields as returned by a source.
// Field order is preserved so table columns follow the source layout.
type Document []Field

// Get returns the value stored under key and whether it was present.
func (d Document) Get(key string) (any, bool) {
	for _, f := range d {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Row is one table record. Values are aligned with Table.Columns; a nil value
// marks a missing cell.
type Row []any

// Table is an in-memory, column-ordered set of rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable builds a table from documents. Columns are ordered by first
// appearance; documents lacking a column get a missing value for it.
func NewTable(docs []Document) *Table {
	index := make(map[string]int)
	var columns []string
	for _, doc := range docs {
		for _, f := range doc {
			if _, ok := index[f.Key]; !ok {
				index[f.Key] = len(columns)
				columns = append(columns, f.Key)
			}
		}
	}

	rows := make([]Row, len(docs))
	for i, doc := range docs {
		row := make(Row, len(columns))
		for _, f := range doc {
			row[index[f.Key]] = f.Value
		}
		rows[i] = row
	}

	return &Table{Columns: columns, Rows: rows}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

// Value returns the cell at row i for the named column.
func (t *Table) Value(i int, column string) (any, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i][idx], true
}

// DropColumn returns a copy of the table without the named column.
// The receiver is returned unchanged when the column does not exist.
func (t *Table) DropColumn(name string) *Table {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return t
	}

	columns := slices.Delete(slices.Clone(t.Columns), idx, idx+1)
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = slices.Delete(slices.Clone(row), idx, idx+1)
	}
	return &Table{Columns: columns, Rows: rows}
}

// ReplaceString returns a copy of the table where every cell equal to the
// string old is replaced by value.
func (t *Table) ReplaceString(old string, value any) *Table {
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		out := slices.Clone(row)
		for j, v := range out {
			if s, ok := v.(string); ok && s == old {
				out[j] = value
			}
		}
		rows[i] = out
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: rows}
}

// Subset returns a table holding the rows at the given positions, in order.
// Rows are shared with the receiver, not copied.
func (t *Table) Subset(positions []int) *Table {
	rows := make([]Row, len(positions))
	for i, p := range positions {
		rows[i] = t.Rows[p]
	}
	return &Table{Columns: slices.Clone(t.Columns), Rows: rows}
}

// Fingerprint generates a deterministic ID for a row using BLAKE2b hashing.
// Identical rows produce identical IDs.
func Fingerprint(row Row) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, v := range row {
		fmt.Fprintf(h, "%T:%v\x1f", v, v)
	}
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Checksum returns the hex-encoded BLAKE2b-256 digest of data.
func Checksum(data []byte) string {
	h, _ := blake2b.New(32, nil)
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DataIngestionArtifact records where the ingestion stage wrote its outputs.
type DataIngestionArtifact struct {
	TrainedFilePath string
	TestFilePath    string
}

// String implements fmt.Stringer.
func (a DataIngestionArtifact) String() string {
	return fmt.Sprintf("DataIngestionArtifact(trained_file_path=%s, test_file_path=%s)", a.TrainedFilePath, a.TestFilePath)
}
