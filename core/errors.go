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

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Domain errors
var (
	// ErrEmptyCollection indicates the source collection holds no documents.
	ErrEmptyCollection = errors.New("collection is empty")

	// ErrInvalidTable indicates a Table failed validation.
	ErrInvalidTable = errors.New("invalid table")

	// ErrIdentityColumn indicates the identity column survived ingestion.
	ErrIdentityColumn = errors.New("identity column present")

	// ErrRowWidth indicates a row whose width differs from the column count.
	ErrRowWidth = errors.New("row width does not match columns")

	// ErrSentinelValue indicates an un-normalized "na" cell.
	ErrSentinelValue = errors.New("missing-value sentinel present")
)

// ErrorKind classifies ingestion failures.
type ErrorKind int

const (
	// KindUnknown is reported for errors that are not *Error.
	KindUnknown ErrorKind = iota
	// KindConnectionFailure covers connecting to and reading from a source.
	KindConnectionFailure
	// KindEmptyCollection is reported when the source collection has no documents.
	KindEmptyCollection
	// KindIOFailure covers filesystem reads and writes.
	KindIOFailure
	// KindSplitFailure covers invalid train/test partitions.
	KindSplitFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindConnectionFailure:
		return "connection failure"
	case KindEmptyCollection:
		return "empty collection"
	case KindIOFailure:
		return "io failure"
	case KindSplitFailure:
		return "split failure"
	default:
		return "unknown"
	}
}

// Error is the single failure type surfaced by the ingestion stage.
// Context carries structured diagnostics such as the path or collection involved.
type Error struct {
	Kind    ErrorKind
	Op      string
	Context map[string]any
	Err     error
}

// NewError creates an Error. The cause is annotated with the caller's stack
// so that formatting with %+v shows where the failure originated.
func NewError(kind ErrorKind, op string, err error, context map[string]any) *Error {
	if err == nil {
		err = errors.New(kind.String())
	}
	return &Error{
		Kind:    kind,
		Op:      op,
		Context: context,
		Err:     pkgerrors.WithStack(err),
	}
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Context) > 0 {
		b.WriteString(" [")
		for i, k := range slices.Sorted(maps.Keys(e.Context)) {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", k, e.Context[k])
		}
		b.WriteByte(']')
	}
	return b.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Format implements fmt.Formatter. %+v appends the cause's stack trace.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			if e.Err != nil {
				fmt.Fprintf(s, "\n%+v", e.Err)
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
