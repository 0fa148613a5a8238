package featurestore

import (
	"encoding/csv"
	"fmt"

	"github.com/poiesic/netsec/core"
	"github.com/spf13/afero"
)

// ReadTable loads a CSV file written by WriteTable or any file with a header
// row. Cells are returned as strings; empty fields become nil.
func ReadTable(fs afero.Fs, path string) (*core.Table, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return &core.Table{}, nil
	}

	table := &core.Table{
		Columns: records[0],
		Rows:    make([]core.Row, 0, len(records)-1),
	}
	for _, rec := range records[1:] {
		row := make(core.Row, len(rec))
		for i, cell := range rec {
			if cell != "" {
				row[i] = cell
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
