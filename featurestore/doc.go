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

// Package featurestore persists tables as comma-separated files.
//
// Files carry a header row followed by one line per row in table order.
// Missing values are written as empty fields. Float values always carry a
// decimal point, booleans are written as True/False and timestamps as
// "2006-01-02 15:04:05", which keeps the files readable by the downstream
// Python tooling.
//
// All file access goes through an afero.Fs so callers can write to the OS
// filesystem or to memory:
//
//	w := featurestore.NewWriter(afero.NewOsFs())
//	if err := w.WriteTable("Artifacts/feature_store/phisingData.csv", table); err != nil {
//	    return err
//	}
package featurestore
