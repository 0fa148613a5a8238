package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	t.Run("columns follow first appearance", func(t *testing.T) {
		docs := []Document{
			{{Key: "_id", Value: "a1"}, {Key: "having_IP", Value: int64(1)}, {Key: "Result", Value: int64(-1)}},
			{{Key: "_id", Value: "a2"}, {Key: "URL_Length", Value: int64(0)}, {Key: "having_IP", Value: int64(-1)}},
		}

		table := NewTable(docs)

		assert.Equal(t, []string{"_id", "having_IP", "Result", "URL_Length"}, table.Columns)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, Row{"a1", int64(1), int64(-1), nil}, table.Rows[0])
		assert.Equal(t, Row{"a2", int64(-1), nil, int64(0)}, table.Rows[1])
	})

	t.Run("no documents", func(t *testing.T) {
		table := NewTable(nil)
		assert.Empty(t, table.Columns)
		assert.Equal(t, 0, table.Len())
	})
}

func TestTable_DropColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"_id", "a", "b"},
		Rows:    []Row{{"x", 1, 2}, {"y", 3, 4}},
	}

	dropped := table.DropColumn("_id")

	assert.Equal(t, []string{"a", "b"}, dropped.Columns)
	assert.Equal(t, []Row{{1, 2}, {3, 4}}, dropped.Rows)
	// Original is untouched
	assert.Equal(t, []string{"_id", "a", "b"}, table.Columns)
	assert.Equal(t, Row{"x", 1, 2}, table.Rows[0])

	assert.Same(t, dropped, dropped.DropColumn("missing"))
}

func TestTable_ReplaceString(t *testing.T) {
	table := &Table{
		Columns: []string{"a", "b"},
		Rows:    []Row{{"na", "NA"}, {"nan", int64(1)}},
	}

	replaced := table.ReplaceString(MissingSentinel, nil)

	assert.Equal(t, Row{nil, "NA"}, replaced.Rows[0])
	assert.Equal(t, Row{"nan", int64(1)}, replaced.Rows[1])
	assert.Equal(t, "na", table.Rows[0][0])
}

func TestTable_Value(t *testing.T) {
	table := &Table{Columns: []string{"a", "b"}, Rows: []Row{{1, 2}}}

	v, ok := table.Value(0, "b")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = table.Value(0, "c")
	assert.False(t, ok)
	_, ok = table.Value(1, "a")
	assert.False(t, ok)
}

func TestTable_Subset(t *testing.T) {
	table := &Table{Columns: []string{"a"}, Rows: []Row{{0}, {1}, {2}, {3}}}

	sub := table.Subset([]int{3, 1})

	assert.Equal(t, []Row{{3}, {1}}, sub.Rows)
	assert.Equal(t, table.Columns, sub.Columns)
}

func TestFingerprint(t *testing.T) {
	a := Row{"x", int64(1), nil}
	b := Row{"x", int64(1), nil}

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
	assert.NotEqual(t, Fingerprint(a), Fingerprint(Row{"x", int64(2), nil}))
	// Same text, different type
	assert.NotEqual(t, Fingerprint(Row{int64(1)}), Fingerprint(Row{"1"}))
}

func TestChecksum(t *testing.T) {
	sum := Checksum([]byte("a,b\n1,2\n"))
	assert.Len(t, sum, 64)
	assert.Equal(t, sum, Checksum([]byte("a,b\n1,2\n")))
	assert.NotEqual(t, sum, Checksum([]byte("a,b\n1,3\n")))
}

func TestDataIngestionArtifact_String(t *testing.T) {
	a := DataIngestionArtifact{TrainedFilePath: "x/train.csv", TestFilePath: "x/test.csv"}
	assert.Equal(t, "DataIngestionArtifact(trained_file_path=x/train.csv, test_file_path=x/test.csv)", a.String())
}
