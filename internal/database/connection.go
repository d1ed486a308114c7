package database

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// ErrDatabaseUnreadable is returned when the collection cannot be opened or queried
var ErrDatabaseUnreadable = errors.New("anki database unreadable")

// Open opens the collection at path read-only. The caller owns the returned handle.
func Open(path string) (*sqlx.DB, error) {
	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseUnreadable, err)
	}

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrDatabaseUnreadable, path, err)
	}

	// A single reader is all the export needs
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

// readOnlyDSN builds a sqlite URI that never creates or modifies the file.
// The driver cannot open a file whose path contains '?', so such paths are rejected.
func readOnlyDSN(path string) (string, error) {
	if strings.ContainsRune(path, '?') {
		return "", fmt.Errorf("cannot open %s: sqlite paths must not contain '?'", path)
	}

	p := filepath.ToSlash(path)
	if filepath.VolumeName(path) != "" && !strings.HasPrefix(p, "/") {
		// C:/Users/... becomes file:///C:/Users/...
		p = "/" + p
	}

	u := url.URL{Scheme: "file", RawQuery: "mode=ro&_query_only=true"}
	if strings.HasPrefix(p, "/") {
		u.Path = p
	} else {
		// relative paths stay relative: file:data/collection.anki2
		u.Opaque = (&url.URL{Path: p}).EscapedPath()
	}
	return u.String(), nil
}
