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

package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
)

const (
	defaultBatchSize   = 500
	defaultMaxAttempts = 3
	defaultRetryDelay  = 100 * time.Millisecond
)

// Seeder inserts table rows into a collection in concurrent batches.
type Seeder struct {
	pool        *ants.Pool
	workers     int
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration

	progressWriter   io.Writer
	progressInterval int

	logger *slog.Logger
}

// Option configures a Seeder.
type Option func(*Seeder) error

// WithWorkers sets the number of concurrent insert workers.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(size int) Option {
	return func(s *Seeder) error {
		if size < 1 {
			size = 1
		}
		s.workers = size
		return nil
	}
}

// WithBatchSize sets the number of documents per insert.
// Default is 500.
func WithBatchSize(size int) Option {
	return func(s *Seeder) error {
		if size < 1 {
			size = 1
		}
		s.batchSize = size
		return nil
	}
}

// WithRetry sets how often a failed batch is attempted and the base delay
// between attempts. Default is 3 attempts starting at 100ms.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *Seeder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		s.maxAttempts = maxAttempts
		s.retryDelay = baseDelay
		return nil
	}
}

// WithProgress reports progress to w every interval records.
func WithProgress(w io.Writer, interval int) Option {
	return func(s *Seeder) error {
		if interval < 1 {
			interval = 1
		}
		s.progressWriter = w
		s.progressInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSeeder creates a seeder with its worker pool.
// Call Release when done.
func NewSeeder(opts ...Option) (*Seeder, error) {
	// Default pool size
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}

	s := &Seeder{
		workers:     workers,
		batchSize:   defaultBatchSize,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	// Created after options so the pool gets the final size and logger.
	pool, err := ants.NewPool(s.workers, ants.WithLogger(newPoolLogger(s.logger)))
	if err != nil {
		return nil, err
	}
	s.pool = pool

	return s, nil
}

// Workers returns the pool capacity.
func (s *Seeder) Workers() int {
	return s.pool.Cap()
}

// Release releases the worker pool.
// The seeder should not be used after calling Release.
func (s *Seeder) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Seed inserts every row of table into coll and returns the number of
// documents inserted. Missing cells are omitted from the documents. The first
// batch failure is returned after all submitted batches finish.
func (s *Seeder) Seed(ctx context.Context, coll source.Writable, table *core.Table) (int, error) {
	if coll == nil {
		return 0, ErrCollectionRequired
	}
	if table == nil {
		return 0, core.ErrInvalidTable
	}

	docs := ToDocuments(table)
	batches := batch(docs, s.batchSize)

	var progress *ProgressTracker
	if s.progressWriter != nil {
		progress = NewProgressTracker(s.progressWriter, len(docs), s.progressInterval)
		progress.Start()
	}

	var (
		wg       sync.WaitGroup
		inserted atomic.Int64
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for i, b := range batches {
		if err := ctx.Err(); err != nil {
			fail(err)
			break
		}

		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()

			err := s.insertBatch(ctx, coll, b, func(n int) {
				inserted.Add(int64(n))
				if progress != nil {
					progress.Increment(n)
				}
			})
			if err != nil {
				s.logger.Error("error inserting batch", "batch", i, "size", len(b), "err", err)
				fail(fmt.Errorf("insert batch %d: %w", i, err))
			}
		})
		if submitErr != nil {
			wg.Done()
			fail(submitErr)
			break
		}
	}
	wg.Wait()

	if progress != nil {
		progress.Finish()
	}

	total := int(inserted.Load())
	s.logger.Info("seeded collection", "records", total, "batches", len(batches))
	return total, firstErr
}

// insertBatch inserts docs with retries. Documents stored by a failed
// attempt are not sent again; landed is called with each attempt's count.
func (s *Seeder) insertBatch(ctx context.Context, coll source.Writable, docs []core.Document, landed func(n int)) error {
	offset := 0
	return RetryWithBackoff(ctx, s.logger, func() error {
		if offset == len(docs) {
			return nil
		}
		n, err := coll.InsertDocuments(ctx, docs[offset:]...)
		n = min(max(n, 0), len(docs)-offset)
		offset += n
		landed(n)
		return err
	}, s.maxAttempts, s.retryDelay)
}

// ToDocuments converts table rows into documents, parsing string cells with
// ParseValue and dropping missing cells.
func ToDocuments(table *core.Table) []core.Document {
	docs := make([]core.Document, 0, table.Len())
	for _, row := range table.Rows {
		doc := make(core.Document, 0, len(row))
		for j, v := range row {
			if s, ok := v.(string); ok {
				v = ParseValue(s)
			}
			if v == nil {
				continue
			}
			doc = append(doc, core.Field{Key: table.Columns[j], Value: v})
		}
		docs = append(docs, doc)
	}
	return docs
}

// ParseValue converts CSV text to an int64, a float64 or a string.
// Empty text yields nil.
func ParseValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func batch(docs []core.Document, size int) [][]core.Document {
	var out [][]core.Document
	for start := 0; start < len(docs); start += size {
		end := min(start+size, len(docs))
		out = append(out, docs[start:end])
	}
	return out
}
