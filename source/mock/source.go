// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mock

import (
	"context"
	"sync"

	"github.com/poiesic/netsec/source"
)

// MockSource is a test double for source.Source.
// It hands out the same collection for every Open.
type MockSource struct {
	// OpenFunc is called by Open if set.
	OpenFunc func(ctx context.Context, database, collection string) (source.Collection, error)

	// CloseFunc is called by Close if set.
	CloseFunc func(ctx context.Context) error

	collection *MockCollection

	mu         sync.Mutex
	openCalls  int
	closeCalls int
}

var _ source.Source = (*MockSource)(nil)

// NewMockSource creates a mock source serving coll.
// A nil coll serves an empty collection.
func NewMockSource(coll *MockCollection) *MockSource {
	if coll == nil {
		coll = NewMockCollection()
	}
	return &MockSource{collection: coll}
}

// Open returns the configured collection.
func (m *MockSource) Open(ctx context.Context, database, collection string) (source.Collection, error) {
	m.mu.Lock()
	m.openCalls++
	m.mu.Unlock()

	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, database, collection)
	}
	return m.collection, nil
}

// Close records the call.
func (m *MockSource) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closeCalls++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc(ctx)
	}
	return nil
}

// Collection returns the collection served by Open.
func (m *MockSource) Collection() *MockCollection {
	return m.collection
}

// OpenCalls returns the number of Open calls.
func (m *MockSource) OpenCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.openCalls
}

// CloseCalls returns the number of Close calls.
func (m *MockSource) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeCalls
}
