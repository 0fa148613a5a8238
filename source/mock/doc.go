// Package mock provides test doubles for the source interfaces.
//
// MockSource and MockCollection serve fixed documents from memory and let
// tests inject failures through function fields:
//
//	coll := mock.NewMockCollection(docs...)
//	src := mock.NewMockSource(coll)
//	src.OpenFunc = func(ctx context.Context, db, name string) (source.Collection, error) {
//	    return nil, errors.New("connection refused")
//	}
//
// Call counters are exposed for assertions.
package mock
