// Package mysql reads a MySQL table as a read-only document collection.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/poiesic/netsec/core"
	"github.com/poiesic/netsec/source"
)

const defaultTimeout = 5 * time.Second

// Source implements source.Source for a MySQL server.
type Source struct {
	timeout time.Duration
	db      *sql.DB
}

var _ source.Source = (*Source)(nil)

// NewSource validates dsn and prepares a connection pool. No connection is
// made until Open.
func NewSource(dsn string) (*Source, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	// Scan DATETIME columns into time.Time.
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}

	return &Source{
		timeout: defaultTimeout,
		db:      sql.OpenDB(connector),
	}, nil
}

// Open pings the server and returns the table database.collection.
func (s *Source) Open(ctx context.Context, database, collection string) (source.Collection, error) {
	if database == "" || collection == "" {
		return nil, fmt.Errorf("%w: database=%q table=%q", source.ErrInvalidName, database, collection)
	}

	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("mysql ping failed: %w", err)
	}

	return &Table{
		db:    s.db,
		table: quoteIdent(database) + "." + quoteIdent(collection),
	}, nil
}

// Close closes the connection pool.
func (s *Source) Close(ctx context.Context) error {
	return s.db.Close()
}

// Table implements source.Collection over a single table.
type Table struct {
	db    *sql.DB
	table string
}

var _ source.Collection = (*Table)(nil)

// CountDocuments returns SELECT COUNT(*) of the table.
func (t *Table) CountDocuments(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.table)
	if err := t.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// FindAll returns every row as a document with fields in column order.
func (t *Table) FindAll(ctx context.Context) ([]core.Document, error) {
	rows, err := t.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", t.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var docs []core.Document
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		doc := make(core.Document, len(columns))
		for i, name := range columns {
			doc[i] = core.Field{Key: name, Value: convertValue(values[i])}
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Close is a no-op; the pool belongs to the Source.
func (t *Table) Close(ctx context.Context) error {
	return nil
}

// convertValue maps driver values onto the document value set.
func convertValue(v any) any {
	switch val := v.(type) {
	case nil, string, int64, float64, bool, time.Time:
		return val
	case []byte:
		return string(val)
	case int32:
		return int64(val)
	case int:
		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return strconv.FormatUint(val, 10)
		}
		return int64(val)
	case float32:
		return float64(val)
	default:
		return fmt.Sprint(val)
	}
}

// quoteIdent quotes a MySQL identifier with backticks.
func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
