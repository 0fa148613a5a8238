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


package badger

import (
	"context"

	"github.com/poiesic/netsec/core"
)

// NewMemorySource creates an in-memory source for testing.
// Caller must close both the source and the backend when done.
func NewMemorySource() (*Source, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, err
	}
	return NewSource(backend), backend, nil
}

// NewSeededMemorySource creates an in-memory source whose database/collection
// already holds docs. Caller must close both the source and the backend.
func NewSeededMemorySource(ctx context.Context, database, collection string, docs []core.Document) (*Source, *Backend, error) {
	src, backend, err := NewMemorySource()
	if err != nil {
		return nil, nil, err
	}

	coll, err := src.OpenWritable(ctx, database, collection)
	if err != nil {
		src.Close(ctx)
		backend.Close()
		return nil, nil, err
	}
	if len(docs) > 0 {
		if _, err := coll.InsertDocuments(ctx, docs...); err != nil {
			src.Close(ctx)
			backend.Close()
			return nil, nil, err
		}
	}
	return src, backend, nil
}
