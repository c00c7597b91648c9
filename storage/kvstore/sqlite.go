package kvstore

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/smarttrack/backend/core"
)

// sqliteStore persists each collection as a single row of serialized text in
// a local SQLite file; the closest server-side analogue to the browser's
// local key-value storage this store models.
type sqliteStore struct {
	db *sql.DB
}

var _ core.Store = (*sqliteStore)(nil)

func NewSQLiteStore(path string) (core.Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "opening sqlite store")
	}
	if _, err = db.Exec(`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating collections table")
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Read(collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = ?`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}
	return data, nil
}

func (s *sqliteStore) Write(collection string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, data) VALUES (?, ?)
		 ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		collection, data,
	)
	return errors.Wrapf(err, "writing collection %s", collection)
}

func (s *sqliteStore) Initialize() error {
	existing, err := s.Read(core.SchoolsCollection)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	for _, name := range core.Collections {
		if err = s.Write(name, []byte("[]")); err != nil {
			return err
		}
	}
	return nil
}

func (s *sqliteStore) Close() error { return s.db.Close() }
