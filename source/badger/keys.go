package badger

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/poiesic/netsec/source"
)

// Key prefixes for different data types
const (
	documentPrefix = "doc"
	sequencePrefix = "docseq"
)

// namespace joins a database and collection name into a key segment.
// Names must be non-empty and free of the key separators ':' and '/'.
func namespace(database, collection string) (string, error) {
	for _, name := range []string{database, collection} {
		if name == "" || strings.ContainsAny(name, ":/") {
			return "", fmt.Errorf("%w: %q", source.ErrInvalidName, name)
		}
	}
	return database + "/" + collection, nil
}

// makeDocumentPrefix generates the key prefix shared by a collection's documents.
// Format: doc:namespace:
func makeDocumentPrefix(ns string) []byte {
	return []byte(documentPrefix + ":" + ns + ":")
}

// makeDocumentKey generates a key for a document by sequence number.
// Format: doc:namespace:seq
func makeDocumentKey(ns string, seq uint64) []byte {
	prefix := makeDocumentPrefix(ns)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	// Write in BigEndian order so lexicographic sort follows insertion order
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeSequenceKey generates the key of a collection's ID sequence.
func makeSequenceKey(ns string) []byte {
	return []byte(sequencePrefix + ":" + ns)
}
