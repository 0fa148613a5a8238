// Package mongo implements source.Source on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ErrURIRequired is returned when no connection string is supplied.
var ErrURIRequired = errors.New("mongodb connection string is required")

// Source connects lazily to a MongoDB deployment on first Open.
type Source struct {
	uri    string
	logger *slog.Logger

	mu     sync.Mutex
	client *mongo.Client
	closed bool
}

var _ source.Source = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// NewSource creates a Source for the given connection string.
func NewSource(uri string, opts ...Option) (*Source, error) {
	if uri == "" {
		return nil, ErrURIRequired
	}
	s := &Source{
		uri:    uri,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Open connects (once per Source), pings the primary and returns the collection.
func (s *Source) Open(ctx context.Context, database, collection string) (source.Collection, error) {
	if database == "" || collection == "" {
		return nil, fmt.Errorf("%w: database=%q collection=%q", source.ErrInvalidName, database, collection)
	}

	client, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("opened mongodb collection", "database", database, "collection", collection)
	return &Collection{coll: client.Database(database).Collection(collection)}, nil
}

func (s *Source) connect(ctx context.Context) (*mongo.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, source.ErrSourceClosed
	}
	if s.client != nil {
		return s.client, nil
	}

	client, err := mongo.Connect(options.Client().ApplyURI(s.uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	s.client = client
	return client, nil
}

// Close disconnects the client if one was opened.
func (s *Source) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// Collection implements source.Writable over a MongoDB collection.
type Collection struct {
	coll *mongo.Collection
}

var _ source.Writable = (*Collection)(nil)

// CountDocuments counts all documents with an empty filter.
func (c *Collection) CountDocuments(ctx context.Context) (int64, error) {
	return c.coll.CountDocuments(ctx, bson.D{})
}

// FindAll runs an unfiltered find and loads every document.
func (c *Collection) FindAll(ctx context.Context) ([]core.Document, error) {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}

	var results []bson.D
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	docs := make([]core.Document, len(results))
	for i, d := range results {
		docs[i] = source.FromBSON(d)
	}
	return docs, nil
}

// InsertDocuments inserts docs with a single InsertMany.
// MongoDB assigns an ObjectID to documents without "_id".
func (c *Collection) InsertDocuments(ctx context.Context, docs ...core.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	batch := make([]bson.D, len(docs))
	for i, doc := range docs {
		batch[i] = source.ToBSON(doc)
	}

	res, err := c.coll.InsertMany(ctx, batch)
	if err != nil {
		return insertedBefore(err, len(docs)), err
	}
	return len(res.InsertedIDs), nil
}

// insertedBefore returns how many documents of an ordered insert were stored
// before err. Only write errors locate the failure; anything else counts as
// nothing stored.
func insertedBefore(err error, total int) int {
	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return 0
	}
	n := total
	for _, we := range bwe.WriteErrors {
		n = min(n, we.Index)
	}
	return max(n, 0)
}

// Close is a no-op; the client belongs to the Source.
func (c *Collection) Close(ctx context.Context) error {
	return nil
}
