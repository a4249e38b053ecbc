package data

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/jmgilman/go/errors"
	_ "github.com/marcboeker/go-duckdb/v2"
	_ "modernc.org/sqlite"
)

// Supported database/sql drivers for the document store.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// Repository owns the database handle shared by every collection.
type Repository struct {
	db     *sql.DB
	driver string
}

func InitStore(driver, path string) (*sql.DB, error) {
	switch driver {
	case DriverDuckDB, DriverSQLite:
	default:
		return nil, errors.Newf(errors.CodeInvalidConfig, "unsupported store driver %q", driver)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabase, "failed to create store directory")
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabase, "failed to open store")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, errors.CodeDatabase, "store %s is unavailable", path)
	}
	if driver == DriverSQLite {
		// modernc sqlite serializes writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// OpenRepository opens (or creates) the store at path.
func OpenRepository(driver, path string) (*Repository, error) {
	db, err := InitStore(driver, path)
	if err != nil {
		return nil, err
	}
	return &Repository{db: db, driver: driver}, nil
}

func (r *Repository) Driver() string {
	return r.driver
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}
