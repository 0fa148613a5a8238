package mysql

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/poiesic/netsec/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSource(t *testing.T) {
	t.Run("valid dsn", func(t *testing.T) {
		src, err := NewSource("user:pw@tcp(127.0.0.1:3306)/networksecurity")
		require.NoError(t, err)
		defer src.Close(context.Background())
		assert.NotNil(t, src.db)
		assert.Equal(t, defaultTimeout, src.timeout)
	})

	t.Run("invalid dsn", func(t *testing.T) {
		_, err := NewSource("not a dsn")
		assert.ErrorContains(t, err, "parse mysql dsn")
	})
}

func TestSource_OpenInvalidNames(t *testing.T) {
	src, err := NewSource("user:pw@tcp(127.0.0.1:3306)/networksecurity")
	require.NoError(t, err)
	defer src.Close(context.Background())

	_, err = src.Open(context.Background(), "networksecurity", "")
	assert.ErrorIs(t, err, source.ErrInvalidName)
}

func TestConvertValue(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bytes", []byte("na"), "na"},
		{"int64", int64(-1), int64(-1)},
		{"int32", int32(5), int64(5)},
		{"uint64", uint64(9), int64(9)},
		{"uint64 above int64", uint64(math.MaxUint64), "18446744073709551615"},
		{"float32", float32(0.5), float64(0.5)},
		{"time", ts, ts},
		{"other", uint8(3), "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertValue(tt.in))
		})
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, "`networkML`", quoteIdent("networkML"))
	assert.Equal(t, "`we``ird`", quoteIdent("we`ird"))
}
