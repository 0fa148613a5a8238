package featurestore

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/netsec/core"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *core.Table {
	return &core.Table{
		Columns: []string{"having_IP_Address", "URL_Length", "Result"},
		Rows: []core.Row{
			{int64(1), nil, int64(-1)},
			{int64(-1), 0.5, int64(1)},
			{"a,b", 2.0, true},
		},
	}
}

func TestWriteTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	path := "Artifacts/01_01_2024_00_00_00/data_ingestion/feature_store/phisingData.csv"

	require.NoError(t, w.WriteTable(path, sampleTable()))

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	expected := "having_IP_Address,URL_Length,Result\n" +
		"1,,-1\n" +
		"-1,0.5,1\n" +
		"\"a,b\",2.0,True\n"
	assert.Equal(t, expected, string(data))
}

func TestWriteTable_Overwrites(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)

	require.NoError(t, w.WriteTable("out/data.csv", sampleTable()))
	require.NoError(t, w.WriteTable("out/data.csv", &core.Table{Columns: []string{"x"}, Rows: []core.Row{{int64(1)}}}))

	data, err := afero.ReadFile(fs, "out/data.csv")
	require.NoError(t, err)
	assert.Equal(t, "x\n1\n", string(data))
}

func TestWriteTable_Errors(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs())

	assert.ErrorIs(t, w.WriteTable("", sampleTable()), ErrPathRequired)
	assert.ErrorIs(t, w.WriteTable("out.csv", nil), ErrNilTable)

	ragged := &core.Table{Columns: []string{"a", "b"}, Rows: []core.Row{{int64(1)}}}
	assert.ErrorIs(t, w.WriteTable("out.csv", ragged), core.ErrRowWidth)

	ro := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	assert.Error(t, ro.WriteTable("out/data.csv", sampleTable()))
}

func TestWriteTable_OsFs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "train.csv")

	require.NoError(t, NewWriter(nil).WriteTable(path, sampleTable()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "http", "http"},
		{"true", true, "True"},
		{"false", false, "False"},
		{"int", 3, "3"},
		{"int32", int32(-4), "-4"},
		{"int64", int64(-1), "-1"},
		{"integral float", 1.0, "1.0"},
		{"fraction", 0.25, "0.25"},
		{"float32", float32(1.5), "1.5"},
		{"nan", math.NaN(), ""},
		{"inf", math.Inf(1), "inf"},
		{"time", ts, "2024-03-05 07:08:09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.in))
		})
	}
}

func TestReadTable(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, NewWriter(fs).WriteTable("data.csv", sampleTable()))

	table, err := ReadTable(fs, "data.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"having_IP_Address", "URL_Length", "Result"}, table.Columns)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, core.Row{"1", nil, "-1"}, table.Rows[0])
	assert.Equal(t, core.Row{"a,b", "2.0", "True"}, table.Rows[2])
}

func TestReadTable_Errors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := ReadTable(fs, "")
	assert.ErrorIs(t, err, ErrPathRequired)

	_, err = ReadTable(fs, "missing.csv")
	assert.ErrorContains(t, err, "open missing.csv")

	require.NoError(t, afero.WriteFile(fs, "empty.csv", nil, 0o644))
	table, err := ReadTable(fs, "empty.csv")
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestWriteTable_SingleColumnMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	table := &core.Table{
		Columns: []string{"Result"},
		Rows:    []core.Row{{int64(1)}, {nil}, {int64(3)}},
	}

	require.NoError(t, NewWriter(fs).WriteTable("single.csv", table))

	data, err := afero.ReadFile(fs, "single.csv")
	require.NoError(t, err)
	assert.Equal(t, "Result\n1\n\"\"\n3\n", string(data))

	read, err := ReadTable(fs, "single.csv")
	require.NoError(t, err)
	require.Equal(t, 3, read.Len())
	assert.Equal(t, core.Row{nil}, read.Rows[1])
}
