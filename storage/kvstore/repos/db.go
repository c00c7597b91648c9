// Package kvrepos implements the domain repositories on top of the
// collection store. Every operation follows the same cycle: read the whole
// collection, filter or mutate in memory, write the whole collection back.
package kvrepos

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
)

// DB is the shared handle all repositories operate through. The mutex
// serializes read-modify-write cycles within this process; across processes
// the last full-collection write unconditionally wins.
type DB struct {
	store  core.Store
	logger core.Logger
	mu     sync.Mutex
}

func NewDB(store core.Store, logger core.Logger) *DB {
	return &DB{store: store, logger: logger}
}

// load deserializes a collection. An unavailable or corrupt collection
// degrades to empty: the failure is logged, never propagated.
func load[T any](db *DB, collection string) []T {
	raw, err := db.store.Read(collection)
	if err != nil {
		db.logger.Error("reading collection "+collection, err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var records []T
	if err = json.Unmarshal(raw, &records); err != nil {
		db.logger.Error("corrupt collection "+collection, err)
		return nil
	}
	return records
}

// save serializes and fully overwrites a collection.
func save[T any](db *DB, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "serializing collection %s", collection)
	}
	return db.store.Write(collection, raw)
}
