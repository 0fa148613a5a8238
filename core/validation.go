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


package core

import "fmt"

// ValidateTable checks the shape invariants of an ingested table.
//
// Validation rules:
//   - every row has exactly len(Columns) values
//   - the identity column is absent
//   - no cell holds the "na" sentinel string
//
// NOT validated:
//   - value types (sources decide how to represent their values)
//   - row count (an empty table is rejected earlier, at the source)
func ValidateTable(table *Table) error {
	if table == nil {
		return fmt.Errorf("%w: table is nil", ErrInvalidTable)
	}

	if table.ColumnIndex(IdentityColumn) >= 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTable, ErrIdentityColumn)
	}

	for i, row := range table.Rows {
		if len(row) != len(table.Columns) {
			return fmt.Errorf("%w: %w: row %d has %d values, want %d",
				ErrInvalidTable, ErrRowWidth, i, len(row), len(table.Columns))
		}
		for j, v := range row {
			if s, ok := v.(string); ok && s == MissingSentinel {
				return fmt.Errorf("%w: %w: row %d column %q",
					ErrInvalidTable, ErrSentinelValue, i, table.Columns[j])
			}
		}
	}

	return nil
}
