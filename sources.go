package netsec

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/netsec/config"
	"github.com/poiesic/netsec/source"
	"github.com/poiesic/netsec/source/badger"
	"github.com/poiesic/netsec/source/mongo"
	"github.com/poiesic/netsec/source/mysql"
)

// OpenSource creates the source described by cfg. Closing the returned
// source also releases any storage it owns.
func OpenSource(cfg config.SourceConfig, logger *slog.Logger) (source.Source, error) {
	switch cfg.Kind {
	case config.SourceMongoDB:
		src, err := mongo.NewSource(cfg.URI, mongo.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceMySQL:
		src, err := mysql.NewSource(cfg.URI)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceBadger:
		backend, err := badger.OpenBackend(cfg.Path, false)
		if err != nil {
			return nil, fmt.Errorf("open badger at %s: %w", cfg.Path, err)
		}
		return &badgerSource{Source: badger.NewSource(backend), backend: backend}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownSourceKind, cfg.Kind)
	}
}

// OpenWritable opens database/collection on src for inserts.
func OpenWritable(ctx context.Context, src source.Source, database, collection string) (source.Writable, error) {
	coll, err := src.Open(ctx, database, collection)
	if err != nil {
		return nil, err
	}
	w, ok := coll.(source.Writable)
	if !ok {
		coll.Close(ctx)
		return nil, source.ErrNotWritable
	}
	return w, nil
}

type badgerSource struct {
	*badger.Source
	backend *badger.Backend
}

func (s *badgerSource) Close(ctx context.Context) error {
	if err := s.Source.Close(ctx); err != nil {
		s.backend.Close()
		return err
	}
	return s.backend.Close()
}
