// Package kvstore implements the collection store: named collections held as
// serialized arrays with full-overwrite write semantics, behind swappable
// memory, SQLite and Postgres backends.
package kvstore

import (
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
)

// Open returns the store backend selected by the configuration.
func Open(conf *core.Config) (core.Store, error) {
	switch conf.Store.Engine {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(conf.Store.Path)
	case "postgres":
		return NewPostgresStore(conf.Store.Database)
	default:
		return nil, errors.Errorf("unknown store engine %q", conf.Store.Engine)
	}
}
