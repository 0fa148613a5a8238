package mock

import (
	"context"
	"sync"

	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
)

// MockCollection is an in-memory source.Writable.
type MockCollection struct {
	// CountFunc is called by CountDocuments if set.
	CountFunc func(ctx context.Context) (int64, error)

	// FindAllFunc is called by FindAll if set.
	FindAllFunc func(ctx context.Context) ([]core.Document, error)

	// InsertFunc is called by InsertDocuments if set.
	InsertFunc func(ctx context.Context, docs ...core.Document) (int, error)

	mu         sync.Mutex
	docs       []core.Document
	findCalls  int
	closeCalls int
}

var _ source.Writable = (*MockCollection)(nil)

// NewMockCollection creates a collection holding docs.
func NewMockCollection(docs ...core.Document) *MockCollection {
	return &MockCollection{docs: docs}
}

// CountDocuments returns the number of stored documents.
func (m *MockCollection) CountDocuments(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.docs)), nil
}

// FindAll returns a copy of the stored documents in insertion order.
func (m *MockCollection) FindAll(ctx context.Context) ([]core.Document, error) {
	m.mu.Lock()
	m.findCalls++
	m.mu.Unlock()

	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]core.Document, len(m.docs))
	copy(out, m.docs)
	return out, nil
}

// InsertDocuments appends docs.
func (m *MockCollection) InsertDocuments(ctx context.Context, docs ...core.Document) (int, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, docs...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs = append(m.docs, docs...)
	return len(docs), nil
}

// Close records the call.
func (m *MockCollection) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
	return nil
}

// FindCalls returns the number of FindAll calls.
func (m *MockCollection) FindCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findCalls
}

// CloseCalls returns the number of Close calls.
func (m *MockCollection) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}
