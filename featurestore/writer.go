package featurestore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/netsec/core"
	"github.com/spf13/afero"
)

// TimeLayout is the layout used for timestamp cells.
const TimeLayout = "2006-01-02 15:04:05"

var (
	// ErrNilTable is returned when writing a nil table.
	ErrNilTable = errors.New("table is nil")

	// ErrPathRequired is returned when no output path is given.
	ErrPathRequired = errors.New("file path is required")
)

// Writer writes tables to CSV files.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a writer on fs. A nil fs uses the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// Fs returns the filesystem the writer uses.
func (w *Writer) Fs() afero.Fs {
	return w.fs
}

// WriteTable writes table to path, creating parent directories and replacing
// any existing file.
func (w *Writer) WriteTable(path string, table *core.Table) error {
	if path == "" {
		return ErrPathRequired
	}
	if table == nil {
		return ErrNilTable
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}

	f, err := w.fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := encode(f, table); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encode(f afero.File, table *core.Table) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}

	record := make([]string, len(table.Columns))
	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("row %d: %w", i, core.ErrRowWidth)
		}
		for j, v := range row {
			record[j] = FormatValue(v)
		}
		// A lone empty field would be a blank line, which readers skip.
		if len(record) == 1 && record[0] == "" {
			cw.Flush()
			if _, err := io.WriteString(f, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatValue renders a cell value as CSV text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case float32:
		return formatFloat(float64(val), 32)
	case float64:
		return formatFloat(val, 64)
	case time.Time:
		return val.Format(TimeLayout)
	default:
		return fmt.Sprint(val)
	}
}

func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, bitSize)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
