// Package index maintains the SQLite entry index for a catalog
// directory. The index is derived data: it can always be rebuilt from
// the collection document, and queries never touch the document itself.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/curiocat/curio/internal/model"
)

// Database is the SQLite index handle.
type Database struct {
	db *sql.DB
}

// ErrCollectionNotFound indicates the requested collection id is not in
// the index.
var ErrCollectionNotFound = errors.New("collection not found in index")

// Open opens or creates the index under dir/.curio/index.db.
func Open(dir string) (*Database, error) {
	dbDir := filepath.Join(dir, ".curio")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("create .curio directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dbDir, "index.db"))
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// OpenInMemory opens an in-memory index (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *Database) Close() error { return d.db.Close() }

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB { return d.db }

func (d *Database) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		id    TEXT PRIMARY KEY,
		type  INTEGER NOT NULL,
		title TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS entries (
		rowid         INTEGER PRIMARY KEY AUTOINCREMENT,
		collection_id TEXT NOT NULL REFERENCES collections(id),
		entry_id      INTEGER NOT NULL,
		title         TEXT NOT NULL,
		UNIQUE(collection_id, entry_id)
	);

	CREATE TABLE IF NOT EXISTS field_values (
		entry_rowid INTEGER NOT NULL REFERENCES entries(rowid),
		field_name  TEXT NOT NULL,
		position    INTEGER NOT NULL,
		value       TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_entries_collection ON entries(collection_id);
	CREATE INDEX IF NOT EXISTS idx_field_values_entry ON field_values(entry_rowid);
	CREATE INDEX IF NOT EXISTS idx_field_values_name_value ON field_values(field_name, value);

	PRAGMA journal_mode = WAL;
	PRAGMA synchronous = NORMAL;
	`
	if _, err := d.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize index schema: %w", err)
	}
	return nil
}

// Rebuild replaces the indexed rows for one collection. A blank id
// assigns a fresh identity; the (possibly new) id is returned.
//
// Multi-value fields are decomposed into one row per value so that
// queries match individual values, not the joined raw string.
func (d *Database) Rebuild(id string, c *model.Collection) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := d.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if err := deleteCollectionRows(tx, id); err != nil {
		return "", err
	}
	if _, err := tx.Exec(
		"INSERT INTO collections (id, type, title) VALUES (?, ?, ?)",
		id, int(c.Type()), c.Title()); err != nil {
		return "", fmt.Errorf("insert collection: %w", err)
	}

	for _, e := range c.Entries() {
		res, err := tx.Exec(
			"INSERT INTO entries (collection_id, entry_id, title) VALUES (?, ?, ?)",
			id, e.ID(), e.Title())
		if err != nil {
			return "", fmt.Errorf("insert entry %d: %w", e.ID(), err)
		}
		rowid, err := res.LastInsertId()
		if err != nil {
			return "", fmt.Errorf("entry rowid: %w", err)
		}
		if err := insertFieldValues(tx, rowid, c, e); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit rebuild: %w", err)
	}
	return id, nil
}

func insertFieldValues(tx *sql.Tx, rowid int64, c *model.Collection, e *model.Entry) error {
	for _, f := range c.Fields() {
		raw := e.Field(f.Name())
		if raw == "" {
			continue
		}
		values := []string{raw}
		if f.Type() == model.TypeTable {
			values = model.SplitTable(raw)
		} else if f.HasFlag(model.AllowMultiple) {
			values = model.SplitValues(raw)
		}
		for pos, value := range values {
			if _, err := tx.Exec(
				"INSERT INTO field_values (entry_rowid, field_name, position, value) VALUES (?, ?, ?, ?)",
				rowid, f.Name(), pos, value); err != nil {
				return fmt.Errorf("insert value for %s: %w", f.Name(), err)
			}
		}
	}
	return nil
}

// Remove drops a collection and its rows from the index.
func (d *Database) Remove(id string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("begin remove: %w", err)
	}
	defer tx.Rollback()
	if err := deleteCollectionRows(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteCollectionRows(tx *sql.Tx, id string) error {
	if _, err := tx.Exec(`
		DELETE FROM field_values WHERE entry_rowid IN
			(SELECT rowid FROM entries WHERE collection_id = ?)`, id); err != nil {
		return fmt.Errorf("delete field values: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM entries WHERE collection_id = ?", id); err != nil {
		return fmt.Errorf("delete entries: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM collections WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete collection: %w", err)
	}
	return nil
}

// Analyze refreshes the query planner statistics. Worth calling after a
// bulk rebuild.
func (d *Database) Analyze() error {
	_, err := d.db.Exec("ANALYZE")
	return err
}
