// Copyright (c) 2026 calibre-mcp contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package library

// In this file: database lifecycle, the Querier interface and error
// sentinels.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // sqlite driver
)

// Driver is the database/sql driver name registered by modernc.org/sqlite.
const Driver = "sqlite"

// DefaultDBFile is the conventional name of the Calibre metadata database
// within a library directory.
const DefaultDBFile = "metadata.db"

var (
	// ErrNotFound is returned by single-entity lookups when no row matches.
	// Collection queries with no matches return an empty slice instead.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a parameter fails validation before
	// any query is executed.
	ErrInvalidInput = errors.New("invalid input")
)

// Input length limits, matching the tool parameter contract.
const (
	maxPatternLen = 200
	maxTagLen     = 100
)

// Querier is the read-only query interface over a Calibre library.  It is
// implemented by [Library] and consumed by the MCP tool dispatch layer.
//
//go:generate mockgen -destination=mock_library/mock_library.go . Querier
type Querier interface {
	// SearchBooksByTitle returns books whose title matches the LIKE
	// pattern, ordered by title ascending.
	SearchBooksByTitle(ctx context.Context, pattern string) ([]BookMatch, error)
	// SearchAuthorsByName returns authors whose name matches the LIKE
	// pattern, ordered by name ascending.
	SearchAuthorsByName(ctx context.Context, pattern string) ([]Author, error)
	// BooksByAuthor returns books whose author name matches exactly
	// (case-insensitive), ordered by title ascending.
	BooksByAuthor(ctx context.Context, name string) ([]AuthorBook, error)
	// BooksByAuthorID returns books linked to the given author id, ordered
	// by title ascending.
	BooksByAuthorID(ctx context.Context, id int64) ([]AuthorBook, error)
	// BooksBySeries returns books in the named series ordered by series
	// index ascending, ties broken by title.
	BooksBySeries(ctx context.Context, series string) ([]SeriesBook, error)
	// BooksByTag returns books carrying the exact tag, ordered by title.
	BooksByTag(ctx context.Context, tag string) ([]TaggedBook, error)
	// SearchBooksByTagPattern returns books that have any tag matching the
	// LIKE pattern, ordered by title.
	SearchBooksByTagPattern(ctx context.Context, pattern string) ([]TaggedBook, error)
	// BookDetails returns the full record for a single book, or
	// ErrNotFound if the id does not exist.
	BookDetails(ctx context.Context, id int64) (*Book, error)
	// Stats returns aggregate counts over the whole library.
	Stats(ctx context.Context) (*Stats, error)
	// AllTags returns every distinct tag, ordered alphabetically.
	AllTags(ctx context.Context) ([]Tag, error)
	// Path returns the path of the underlying database file.
	Path() string
}

// Library is a read-only handle to a Calibre metadata database.  The
// embedded *sqlx.DB is the connection pool: each query checks a connection
// out for its duration and releases it on completion or failure.  Library
// is safe for concurrent use.
type Library struct {
	conn *sqlx.DB
	path string
}

var _ Querier = (*Library)(nil)

// Open opens the metadata database inside the given Calibre library
// directory.  dbFilename may be empty, in which case [DefaultDBFile] is
// used.  The database is opened read-only; a missing directory or database
// file is reported immediately so that the caller can fail at startup
// rather than on first query.
func Open(ctx context.Context, libraryPath, dbFilename string) (*Library, error) {
	if strings.TrimSpace(libraryPath) == "" {
		return nil, fmt.Errorf("open library: library path is empty: %w", ErrInvalidInput)
	}
	if dbFilename == "" {
		dbFilename = DefaultDBFile
	}
	fi, err := os.Stat(libraryPath)
	if err != nil {
		return nil, fmt.Errorf("open library %q: %w", libraryPath, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("open library %q: not a directory", libraryPath)
	}
	dbPath := filepath.Join(libraryPath, dbFilename)
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("open library: database file: %w", err)
	}

	conn, err := sqlx.Open(Driver, roDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", dbPath, err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping database %q: %w", dbPath, err)
	}
	return &Library{conn: conn, path: dbPath}, nil
}

// New wraps an existing connection.  It is mainly useful for tests; most
// callers should use [Open].
func New(conn *sqlx.DB, path string) *Library {
	return &Library{conn: conn, path: path}
}

// roDSN builds a read-only SQLite URI for the given file path.
func roDSN(path string) string {
	return "file:" + filepath.ToSlash(path) + "?mode=ro&immutable=1"
}

// Close closes the underlying connection pool.
func (l *Library) Close() error {
	return l.conn.Close()
}

// Path returns the path of the database file this library reads from.
func (l *Library) Path() string {
	return l.path
}

// checkPattern validates and trims a user-supplied search string.  The
// LIKE wildcard '%' passes through untouched.
func checkPattern(p string, maxLen int) (string, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return "", fmt.Errorf("pattern must not be empty: %w", ErrInvalidInput)
	}
	if len(p) > maxLen {
		return "", fmt.Errorf("pattern length %d exceeds maximum %d: %w", len(p), maxLen, ErrInvalidInput)
	}
	return p, nil
}

// checkID validates that an entity id is a positive integer.
func checkID(id int64, name string) error {
	if id <= 0 {
		return fmt.Errorf("%s must be a positive integer, got %d: %w", name, id, ErrInvalidInput)
	}
	return nil
}
