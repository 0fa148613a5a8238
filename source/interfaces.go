package source

import (
	"context"

	"github.com/poiesic/netsec/core"
)

// Source is a database endpoint that can open collections.
type Source interface {
	// Open connects to the named database and collection.
	// Connection problems are reported here rather than on first read.
	Open(ctx context.Context, database, collection string) (Collection, error)

	// Close releases the endpoint and any pooled connections.
	Close(ctx context.Context) error
}

// Collection is a readable set of documents.
type Collection interface {
	// CountDocuments returns the number of documents in the collection.
	CountDocuments(ctx context.Context) (int64, error)

	// FindAll returns every document in the collection, in storage order.
	// The full result set is loaded into memory.
	FindAll(ctx context.Context) ([]core.Document, error)

	// Close releases resources held by the collection handle.
	Close(ctx context.Context) error
}

// Writable is a Collection that accepts new documents.
// Implementations must be safe for concurrent use.
type Writable interface {
	Collection

	// InsertDocuments stores documents and returns how many were inserted.
	// Documents without an identity field get one assigned by the store.
	InsertDocuments(ctx context.Context, docs ...core.Document) (int, error)
}
