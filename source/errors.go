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


package source

import "errors"

var (
	// ErrNotWritable indicates a collection that cannot accept inserts.
	ErrNotWritable = errors.New("collection is not writable")

	// ErrSourceClosed indicates that the source has been closed.
	ErrSourceClosed = errors.New("source is closed")

	// ErrInvalidName indicates an empty or malformed database/collection name.
	ErrInvalidName = errors.New("invalid database or collection name")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")
)
