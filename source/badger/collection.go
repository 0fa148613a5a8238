package badger

import (
	"context"
	"errors"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
)

// Source implements source.Source on an embedded BadgerDB backend.
// The backend is owned by the caller and must outlive the Source.
type Source struct {
	backend   *Backend
	mu        sync.Mutex
	sequences map[string]*badger.Sequence
	closed    bool
}

var _ source.Source = (*Source)(nil)

// NewSource creates a Source over backend.
func NewSource(backend *Backend) *Source {
	return &Source{
		backend:   backend,
		sequences: make(map[string]*badger.Sequence),
	}
}

// Open returns a handle on the named collection. Collections exist
// implicitly; an unknown collection is simply empty.
func (s *Source) Open(ctx context.Context, database, collection string) (source.Collection, error) {
	coll, err := s.OpenWritable(ctx, database, collection)
	if err != nil {
		return nil, err
	}
	return coll, nil
}

// OpenWritable is Open with the concrete writable return type.
func (s *Source) OpenWritable(ctx context.Context, database, collection string) (*Collection, error) {
	ns, err := namespace(database, collection)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.backend.IsClosed() {
		return nil, source.ErrSourceClosed
	}

	seq, ok := s.sequences[ns]
	if !ok {
		seq, err = s.backend.GetSequence(makeSequenceKey(ns))
		if err != nil {
			return nil, err
		}
		s.sequences[ns] = seq
	}

	return &Collection{
		backend: s.backend,
		ns:      ns,
		idSeq:   seq,
	}, nil
}

// Close releases the collection ID sequences. The backend stays open.
func (s *Source) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	for ns, seq := range s.sequences {
		if err := seq.Release(); err != nil {
			errs = append(errs, err)
		}
		delete(s.sequences, ns)
	}
	return errors.Join(errs...)
}

// Collection implements source.Writable for one BadgerDB namespace.
type Collection struct {
	backend *Backend
	ns      string
	idSeq   *badger.Sequence
}

var _ source.Writable = (*Collection)(nil)

// CountDocuments counts the collection's documents without reading values.
func (c *Collection) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(c.ns)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			count++
		}
		return nil
	}, false)
	return count, err
}

// FindAll returns every document in insertion order.
func (c *Collection) FindAll(ctx context.Context) ([]core.Document, error) {
	var docs []core.Document
	err := c.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeDocumentPrefix(c.ns)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var doc core.Document
			err := iter.Item().Value(func(val []byte) error {
				var err error
				doc, err = source.UnmarshalDocument(val)
				return err
			})
			if err != nil {
				return err
			}
			docs = append(docs, doc)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// InsertDocuments stores documents under fresh sequence numbers.
// A document without an "_id" field gets the sequence number as its identity.
func (c *Collection) InsertDocuments(ctx context.Context, docs ...core.Document) (int, error) {
	tx := c.backend.NewTransaction(true)
	defer func() { tx.Discard() }()

	inserted := 0
	pending := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		nextID, err := c.idSeq.Next()
		if err != nil {
			return inserted, err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = c.idSeq.Next()
			if err != nil {
				return inserted, err
			}
		}

		if _, ok := doc.Get(core.IdentityColumn); !ok {
			doc = append(core.Document{{Key: core.IdentityColumn, Value: int64(nextID)}}, doc...)
		}

		value, err := source.MarshalDocument(doc)
		if err != nil {
			return inserted, err
		}
		key := makeDocumentKey(c.ns, nextID)

		err = tx.Set(key, value)
		if errors.Is(err, badger.ErrTxnTooBig) {
			if err := tx.Commit(); err != nil {
				return inserted, err
			}
			inserted += pending
			pending = 0
			tx = c.backend.NewTransaction(true)
			err = tx.Set(key, value)
		}
		if err != nil {
			return inserted, err
		}
		pending++
	}

	if err := tx.Commit(); err != nil {
		return inserted, err
	}
	return inserted + pending, nil
}

// Close is a no-op; sequences belong to the Source.
func (c *Collection) Close(ctx context.Context) error {
	return nil
}
