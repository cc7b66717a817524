package cache

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// Store is the key/value collaborator the fetch client caches records in.
// Every method may fail; callers log and carry on.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Key builds the namespaced cache key for an app id.
func Key(namespace, appID string) string {
	return namespace + ":" + appID
}

// SQLite keeps entries in a single table. With the default in-memory DSN
// entries live only as long as the process, which is the session here.
type SQLite struct {
	db *sql.DB
}

func New(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// shared-cache memory databases vanish when the last connection closes
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			stored_at DATETIME NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (c *SQLite) Get(key string) (string, bool, error) {
	var value string
	err := c.db.QueryRow(`SELECT value FROM entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (c *SQLite) Set(key, value string) error {
	_, err := c.db.Exec(
		`INSERT INTO entries (key, value, stored_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(key)
		 DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at`,
		key, value, time.Now().UTC(),
	)
	return err
}

func (c *SQLite) Remove(key string) error {
	_, err := c.db.Exec(`DELETE FROM entries WHERE key = ?`, key)
	return err
}

func (c *SQLite) Close() error {
	return c.db.Close()
}
