package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB is the key catalog database connection.
type DB struct {
	*sqlx.DB
}

const keySchema = `
CREATE TABLE IF NOT EXISTS keys (
	fingerprint TEXT PRIMARY KEY,
	key_type    TEXT NOT NULL,
	algorithm   TEXT NOT NULL,
	standard    TEXT NOT NULL,
	pem_tag     TEXT NOT NULL,
	bit_length  INTEGER NOT NULL DEFAULT 0,
	curve       TEXT NOT NULL DEFAULT '',
	pem         TEXT NOT NULL,
	source      TEXT NOT NULL DEFAULT '',
	first_seen  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_keys_algorithm ON keys(algorithm);
`

// NewDB creates an in-memory key catalog. If path names an existing
// database file its contents are loaded. All operations run in memory;
// use SaveToDisk to persist.
func NewDB(path string) (*DB, error) {
	// Pin to a single connection — each :memory: connection is a
	// separate database, so connection pooling must be disabled.
	dsn := "file::memory:?_pragma=temp_store(2)&_pragma=journal_mode(off)&_pragma=synchronous(off)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	dbObj := &DB{DB: db}

	if _, err := db.Exec(keySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := dbObj.LoadFromDisk(path); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
	}

	slog.Debug("key catalog initialized", "path", path)
	return dbObj, nil
}

// UpsertKey inserts a key record, ignoring duplicates by fingerprint.
// Returns true if the record was newly inserted.
func (db *DB) UpsertKey(rec KeyRecord) (bool, error) {
	res, err := db.NamedExec(`
		INSERT OR IGNORE INTO keys
		(fingerprint, key_type, algorithm, standard, pem_tag, bit_length, curve, pem, source, first_seen)
		VALUES
		(:fingerprint, :key_type, :algorithm, :standard, :pem_tag, :bit_length, :curve, :pem, :source, :first_seen)`,
		rec)
	if err != nil {
		return false, fmt.Errorf("inserting key %s: %w", rec.Fingerprint, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting key %s: %w", rec.Fingerprint, err)
	}
	return n > 0, nil
}

// GetAllKeys returns all key records from the catalog.
func (db *DB) GetAllKeys() ([]KeyRecord, error) {
	var keys []KeyRecord
	if err := db.Select(&keys, "SELECT * FROM keys ORDER BY first_seen, fingerprint"); err != nil {
		return nil, fmt.Errorf("getting all keys: %w", err)
	}
	return keys, nil
}

// GetKeyByFingerprint returns the key record with the given
// fingerprint, or nil if absent.
func (db *DB) GetKeyByFingerprint(fingerprint string) (*KeyRecord, error) {
	var rec KeyRecord
	err := db.Get(&rec, "SELECT * FROM keys WHERE fingerprint = ?", fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting key by fingerprint: %w", err)
	}
	return &rec, nil
}

// CountByAlgorithm returns the number of cataloged keys per algorithm
// family.
func (db *DB) CountByAlgorithm() (map[string]int, error) {
	rows, err := db.Queryx("SELECT algorithm, COUNT(*) AS n FROM keys GROUP BY algorithm")
	if err != nil {
		return nil, fmt.Errorf("counting keys: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var algorithm string
		var n int
		if err := rows.Scan(&algorithm, &n); err != nil {
			return nil, fmt.Errorf("counting keys: %w", err)
		}
		counts[algorithm] = n
	}
	return counts, rows.Err()
}

// SaveToDisk writes the in-memory catalog to a file at the given path.
// Uses VACUUM INTO, which produces a clean, compact copy in a single
// operation; any existing file is replaced.
func (db *DB) SaveToDisk(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("replacing database at %s: %w", path, err)
		}
	}
	if _, err := db.Exec("VACUUM INTO ?", path); err != nil {
		return fmt.Errorf("saving database to %s: %w", path, err)
	}
	slog.Info("key catalog saved", "path", path)
	return nil
}

// LoadFromDisk loads key records from an on-disk database into the
// in-memory catalog. The file is read once and then detached.
func (db *DB) LoadFromDisk(path string) error {
	if _, err := db.Exec("ATTACH DATABASE ? AS diskdb", path); err != nil {
		return fmt.Errorf("attaching database %s: %w", path, err)
	}
	defer func() {
		if _, err := db.Exec("DETACH DATABASE diskdb"); err != nil {
			slog.Warn("detaching database", "path", path, "error", err)
		}
	}()

	if _, err := db.Exec("INSERT OR IGNORE INTO keys SELECT * FROM diskdb.keys"); err != nil {
		return fmt.Errorf("loading keys from %s: %w", path, err)
	}

	slog.Info("key catalog loaded", "path", path)
	return nil
}
