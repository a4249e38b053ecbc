package data

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"

	"github.com/jmgilman/go/errors"
)

// Collection names used by the application.
const (
	SettingsCollection    = "settings"
	LibraryCollection     = "library"
	GraphicPackCollection = "graphic_packs"
)

var collectionName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Collection is a document collection stored as JSON rows keyed by an
// identity string. Rows keep insertion order through a sequence column.
type Collection[T any] struct {
	db   *sql.DB
	name string
	key  func(T) string

	// guards seq allocation
	mu sync.Mutex
}

// NewCollection creates the backing table if needed. key extracts the
// document identity.
func NewCollection[T any](repo *Repository, name string, key func(T) string) (*Collection[T], error) {
	if !collectionName.MatchString(name) {
		return nil, errors.Newf(errors.CodeInvalidInput, "invalid collection name %q", name)
	}

	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR PRIMARY KEY,
		seq BIGINT NOT NULL,
		doc VARCHAR NOT NULL
	)`, name)
	if _, err := repo.db.Exec(query); err != nil {
		return nil, errors.Wrapf(err, errors.CodeDatabase, "failed to create collection %s", name)
	}

	return &Collection[T]{db: repo.db, name: name, key: key}, nil
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Insert adds a new document. Inserting an existing key fails.
func (c *Collection[T]) Insert(v T) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.key(v)
	var exists int
	if err := c.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, c.name), id).Scan(&exists); err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to check document")
	}
	if exists > 0 {
		return errors.Newf(errors.CodeAlreadyExists, "%s: document %s already exists", c.name, id)
	}

	var seq int64
	if err := c.db.QueryRow(fmt.Sprintf(`SELECT COALESCE(MAX(seq), 0) FROM %s`, c.name)).Scan(&seq); err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to allocate sequence")
	}

	_, err = c.db.Exec(fmt.Sprintf(`INSERT INTO %s (id, seq, doc) VALUES (?, ?, ?)`, c.name), id, seq+1, string(doc))
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to insert document")
	}
	return nil
}

// Update replaces the document stored under v's key.
func (c *Collection[T]) Update(v T) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	id := c.key(v)
	res, err := c.db.Exec(fmt.Sprintf(`UPDATE %s SET doc = ? WHERE id = ?`, c.name), string(doc), id)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabase, "failed to update document")
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return errors.Newf(errors.CodeNotFound, "%s: document %s not found", c.name, id)
	}
	return nil
}

// Upsert updates the document if present and inserts it otherwise.
func (c *Collection[T]) Upsert(v T) error {
	err := c.Update(v)
	if errors.GetCode(err) == errors.CodeNotFound {
		return c.Insert(v)
	}
	return err
}

// FindAll returns every document in insertion order.
func (c *Collection[T]) FindAll() ([]T, error) {
	return c.Find(nil)
}

// Find returns the documents matching pred in insertion order. A nil pred
// matches everything.
func (c *Collection[T]) Find(pred func(T) bool) ([]T, error) {
	rows, err := c.db.Query(fmt.Sprintf(`SELECT doc FROM %s ORDER BY seq`, c.name))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to query documents")
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabase, "failed to scan document")
		}
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("failed to decode %s document: %w", c.name, err)
		}
		if pred == nil || pred(v) {
			out = append(out, v)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to read documents")
	}
	return out, nil
}

// FindByKey returns the document stored under key, or nil if there is none.
func (c *Collection[T]) FindByKey(key string) (*T, error) {
	var raw string
	err := c.db.QueryRow(fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, c.name), key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to query document")
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("failed to decode %s document: %w", c.name, err)
	}
	return &v, nil
}

func (c *Collection[T]) Count() (int, error) {
	var n int
	if err := c.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.name)).Scan(&n); err != nil {
		return 0, errors.Wrap(err, errors.CodeDatabase, "failed to count documents")
	}
	return n, nil
}

// EnsureIndex creates an index on the identity column.
func (c *Collection[T]) EnsureIndex() error {
	query := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_id ON %s (id)`, c.name, c.name)
	if _, err := c.db.Exec(query); err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "failed to index %s", c.name)
	}
	return nil
}
