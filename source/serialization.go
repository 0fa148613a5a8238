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

import (
	"fmt"
	"strings"

	"github.com/poiesic/netsec/core"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// MarshalDocument serializes a Document to BSON bytes.
func MarshalDocument(doc core.Document) ([]byte, error) {
	data, err := bson.Marshal(ToBSON(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return data, nil
}

// UnmarshalDocument deserializes BSON bytes into a Document.
func UnmarshalDocument(data []byte) (core.Document, error) {
	var d bson.D
	if err := bson.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return FromBSON(d), nil
}

// ToBSON converts a Document to an ordered BSON document.
func ToBSON(doc core.Document) bson.D {
	d := make(bson.D, len(doc))
	for i, f := range doc {
		d[i] = bson.E{Key: f.Key, Value: f.Value}
	}
	return d
}

// FromBSON converts a decoded BSON document into a Document, normalizing
// driver types to plain Go values.
func FromBSON(d bson.D) core.Document {
	doc := make(core.Document, len(d))
	for i, e := range d {
		doc[i] = core.Field{Key: e.Key, Value: normalize(e.Value)}
	}
	return doc
}

// normalize maps BSON values onto the value set documented in the package:
//   - int32 -> int64
//   - ObjectID -> hex string
//   - DateTime -> time.Time (UTC)
//   - Decimal128 -> string
//   - null/undefined -> nil
//   - embedded document -> relaxed extended JSON
//   - array -> bracketed list of normalized elements
func normalize(v any) any {
	switch val := v.(type) {
	case nil, string, int64, float64, bool:
		return val
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case bson.ObjectID:
		return val.Hex()
	case bson.DateTime:
		return val.Time().UTC()
	case bson.Decimal128:
		return val.String()
	case bson.Null, bson.Undefined:
		return nil
	case bson.D:
		data, err := bson.MarshalExtJSON(val, false, false)
		if err != nil {
			return val.String()
		}
		return string(data)
	case bson.A:
		parts := make([]string, len(val))
		for i, elem := range val {
			if n := normalize(elem); n != nil {
				parts[i] = fmt.Sprint(n)
			} else {
				parts[i] = "null"
			}
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(val)
	}
}
