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


// Package source provides the document-source abstraction read by the
// ingestion stage.
//
// A Source is a database endpoint; opening a database/collection pair yields a
// Collection that can be counted and read in full. Implementations:
//
//   - mongo: MongoDB, the production source
//   - badger: an embedded BadgerDB document store for offline runs and tests
//   - mysql: a MySQL table read as a collection
//   - mock: programmable fakes for tests
//
// # Usage
//
//	src, err := mongo.NewSource(os.Getenv("MONGO_DB_URL"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer src.Close(ctx)
//
//	coll, err := src.Open(ctx, "networksecurity", "networkML")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer coll.Close(ctx)
//
//	docs, err := coll.FindAll(ctx)
//
// # Values
//
// Documents carry Go values normalized by the source: string, int64,
// float64, bool, time.Time, or nil for null. Driver-specific types are
// converted before they leave the source (see FromBSON).
//
// # Context Support
//
// All methods that touch the network or disk accept context.Context for
// cancellation and timeout support.
package source
