package mock

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockSource_Defaults(t *testing.T) {
	ctx := context.Background()
	coll := NewMockCollection(core.Document{{Key: "a", Value: int64(1)}})
	src := NewMockSource(coll)

	got, err := src.Open(ctx, "db", "coll")
	require.NoError(t, err)
	assert.Same(t, coll, got)

	count, err := got.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	n, err := coll.InsertDocuments(ctx, core.Document{{Key: "a", Value: int64(2)}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	docs, err := got.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	require.NoError(t, got.Close(ctx))
	require.NoError(t, src.Close(ctx))
	assert.Equal(t, 1, src.OpenCalls())
	assert.Equal(t, 1, src.CloseCalls())
	assert.Equal(t, 1, coll.FindCalls())
	assert.Equal(t, 1, coll.CloseCalls())
}

func TestMockSource_InjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	src := NewMockSource(nil)
	src.OpenFunc = func(ctx context.Context, database, collection string) (source.Collection, error) {
		return nil, boom
	}
	_, err := src.Open(ctx, "db", "coll")
	assert.ErrorIs(t, err, boom)

	coll := src.Collection()
	coll.FindAllFunc = func(ctx context.Context) ([]core.Document, error) {
		return nil, boom
	}
	_, err = coll.FindAll(ctx)
	assert.ErrorIs(t, err, boom)
}
