package kvstore

import (
	"database/sql"
	"embed"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/smarttrack/backend/core"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// postgresStore persists each collection as a single row of serialized text;
// used when several API instances share one store.
type postgresStore struct {
	db *sqlx.DB
}

var _ core.Store = (*postgresStore)(nil)

func NewPostgresStore(conf core.DatabaseConfig) (core.Store, error) {
	sslMode := "require"
	if conf.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.User, conf.Password),
		Host:     conf.Address(),
		Path:     conf.Name,
		RawQuery: q.Encode(),
	}

	db, err := sqlx.Open("postgres", u.String())
	if err != nil {
		return nil, errors.Wrap(err, "opening postgres store")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &postgresStore{db: db}, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}
	return errors.Wrap(err, "DB ping timeout")
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting goose dialect")
	}
	return errors.Wrap(goose.Up(db, "migrations"), "migrating store")
}

func (s *postgresStore) Read(collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM collections WHERE name = $1`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading collection %s", collection)
	}
	return data, nil
}

func (s *postgresStore) Write(collection string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO collections (name, data) VALUES ($1, $2)
		 ON CONFLICT (name) DO UPDATE SET data = excluded.data`,
		collection, data,
	)
	return errors.Wrapf(err, "writing collection %s", collection)
}

func (s *postgresStore) Initialize() error {
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

func (s *postgresStore) Close() error { return s.db.Close() }
