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

import (
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema is a miniature of the Calibre metadata.db schema, limited to
// the tables this package queries.
const testSchema = `
CREATE TABLE books (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	sort TEXT,
	pubdate TEXT,
	series_index REAL NOT NULL DEFAULT 1.0
);
CREATE TABLE authors (id INTEGER PRIMARY KEY, name TEXT NOT NULL, sort TEXT);
CREATE TABLE books_authors_link (id INTEGER PRIMARY KEY, book INTEGER, author INTEGER);
CREATE TABLE series (id INTEGER PRIMARY KEY, name TEXT NOT NULL, sort TEXT);
CREATE TABLE books_series_link (id INTEGER PRIMARY KEY, book INTEGER, series INTEGER);
CREATE TABLE tags (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE books_tags_link (id INTEGER PRIMARY KEY, book INTEGER, tag INTEGER);
CREATE TABLE publishers (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
CREATE TABLE books_publishers_link (id INTEGER PRIMARY KEY, book INTEGER, publisher INTEGER);
CREATE TABLE identifiers (id INTEGER PRIMARY KEY, book INTEGER, type TEXT, val TEXT);
CREATE TABLE languages (id INTEGER PRIMARY KEY, lang_code TEXT NOT NULL);
CREATE TABLE books_languages_link (id INTEGER PRIMARY KEY, book INTEGER, lang_code INTEGER);
CREATE TABLE comments (id INTEGER PRIMARY KEY, book INTEGER, text TEXT);
`

// testFixture populates a small library:
//
//	Foundation trilogy by Isaac Asimov (series "Foundation", indices 1..3),
//	Dune by Frank Herbert (no series),
//	series "Twins" with two books sharing index 1 (tie-break case),
//	author 42 with no books.
const testFixture = `
INSERT INTO authors (id, name, sort) VALUES
	(1, 'Isaac Asimov', 'Asimov, Isaac'),
	(2, 'Frank Herbert', 'Herbert, Frank'),
	(42, 'Recluse Writer', 'Writer, Recluse');
INSERT INTO series (id, name, sort) VALUES
	(1, 'Foundation', 'Foundation'),
	(2, 'Twins', 'Twins');
INSERT INTO books (id, title, sort, pubdate, series_index) VALUES
	(1, 'Foundation', 'Foundation', '1951-06-01 00:00:00+00:00', 1.0),
	(2, 'Foundation and Empire', 'Foundation and Empire', '1952-10-01 00:00:00+00:00', 2.0),
	(3, 'Second Foundation', 'Second Foundation', '1953-11-01 00:00:00+00:00', 3.0),
	(4, 'Dune', 'Dune', '1965-08-01 00:00:00+00:00', 1.0),
	(5, 'Beta Twin', 'Beta Twin', NULL, 1.0),
	(6, 'Alpha Twin', 'Alpha Twin', NULL, 1.0);
INSERT INTO books_authors_link (book, author) VALUES
	(1, 1), (2, 1), (3, 1), (4, 2), (5, 2), (6, 2);
INSERT INTO books_series_link (book, series) VALUES
	(1, 1), (2, 1), (3, 1), (5, 2), (6, 2);
INSERT INTO tags (id, name) VALUES
	(1, 'sci-fi'), (2, 'classic'), (3, 'science');
INSERT INTO books_tags_link (book, tag) VALUES
	(1, 1), (1, 2), (4, 1), (4, 3);
INSERT INTO publishers (id, name) VALUES (1, 'Gnome Press');
INSERT INTO books_publishers_link (book, publisher) VALUES (1, 1);
INSERT INTO identifiers (book, type, val) VALUES (1, 'isbn', '9780553293357');
INSERT INTO languages (id, lang_code) VALUES (1, 'eng');
INSERT INTO books_languages_link (book, lang_code) VALUES (1, 1);
INSERT INTO comments (book, text) VALUES (1, 'The fall of the Galactic Empire.');
`

// testLibrary returns a Library over a fresh in-memory database seeded with
// the test fixture.
func testLibrary(t *testing.T) *Library {
	t.Helper()
	conn, err := sqlx.Open(Driver, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	// in-memory databases vanish if the pool opens a second connection.
	conn.SetMaxOpenConns(1)
	_, err = conn.Exec(testSchema)
	require.NoError(t, err)
	_, err = conn.Exec(testFixture)
	require.NoError(t, err)
	return New(conn, ":memory:")
}

func titles[T any](items []T, title func(T) string) []string {
	s := make([]string, len(items))
	for i, it := range items {
		s[i] = title(it)
	}
	return s
}

func TestSearchBooksByTitle(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	t.Run("prefix wildcard ordered by title", func(t *testing.T) {
		got, err := lib.SearchBooksByTitle(ctx, "Foundation%")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foundation", "Foundation and Empire"},
			titles(got, func(b BookMatch) string { return b.Title }))
	})
	t.Run("substring match is case-insensitive", func(t *testing.T) {
		got, err := lib.SearchBooksByTitle(ctx, "%foundation%")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foundation", "Foundation and Empire", "Second Foundation"},
			titles(got, func(b BookMatch) string { return b.Title }))
	})
	t.Run("no match is empty, not an error", func(t *testing.T) {
		got, err := lib.SearchBooksByTitle(ctx, "Nonexistent%")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("blank pattern fails validation", func(t *testing.T) {
		_, err := lib.SearchBooksByTitle(ctx, "   ")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("overlong pattern fails validation", func(t *testing.T) {
		_, err := lib.SearchBooksByTitle(ctx, strings.Repeat("x", maxPatternLen+1))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSearchAuthorsByName(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	got, err := lib.SearchAuthorsByName(ctx, "%asimov%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Author{ID: 1, Name: "Isaac Asimov", Sort: "Asimov, Isaac"}, got[0])

	none, err := lib.SearchAuthorsByName(ctx, "Tolstoy%")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBooksByAuthor(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	t.Run("exact match is case-insensitive, ordered by title", func(t *testing.T) {
		got, err := lib.BooksByAuthor(ctx, "isaac asimov")
		require.NoError(t, err)
		assert.Equal(t, []string{"Foundation", "Foundation and Empire", "Second Foundation"},
			titles(got, func(b AuthorBook) string { return b.Title }))
		require.NotNil(t, got[0].Series)
		assert.Equal(t, "Foundation #1.0", *got[0].Series)
	})
	t.Run("book without series has nil series info", func(t *testing.T) {
		got, err := lib.BooksByAuthor(ctx, "Frank Herbert")
		require.NoError(t, err)
		require.Len(t, got, 3)
		// Alpha Twin, Beta Twin, Dune in title order; Dune has no series.
		assert.Equal(t, "Dune", got[2].Title)
		assert.Nil(t, got[2].Series)
	})
	t.Run("unknown author is empty, not an error", func(t *testing.T) {
		got, err := lib.BooksByAuthor(ctx, "Leo Tolstoy")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBooksByAuthorID(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	t.Run("author with books", func(t *testing.T) {
		got, err := lib.BooksByAuthorID(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
	t.Run("author with zero books is empty success", func(t *testing.T) {
		got, err := lib.BooksByAuthorID(ctx, 42)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
	t.Run("non-positive id fails validation", func(t *testing.T) {
		for _, id := range []int64{0, -1} {
			_, err := lib.BooksByAuthorID(ctx, id)
			assert.ErrorIs(t, err, ErrInvalidInput)
		}
	})
}

func TestBooksBySeries(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	t.Run("ordered by series index", func(t *testing.T) {
		got, err := lib.BooksBySeries(ctx, "Foundation")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"Foundation", "Foundation and Empire", "Second Foundation"},
			titles(got, func(b SeriesBook) string { return b.Title }))
		assert.Equal(t, 1.0, got[0].SeriesIndex)
		assert.Equal(t, 3.0, got[2].SeriesIndex)
	})
	t.Run("equal indices tie-break by title", func(t *testing.T) {
		got, err := lib.BooksBySeries(ctx, "Twins")
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha Twin", "Beta Twin"},
			titles(got, func(b SeriesBook) string { return b.Title }))
	})
	t.Run("unknown series is empty", func(t *testing.T) {
		got, err := lib.BooksBySeries(ctx, "Culture")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBooksByTag(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	got, err := lib.BooksByTag(ctx, "sci-fi")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Dune", "Foundation"},
		titles(got, func(b TaggedBook) string { return b.Title }))
	assert.Equal(t, "Frank Herbert", got[0].Authors)
	assert.Equal(t, "Isaac Asimov", got[1].Authors)

	none, err := lib.BooksByTag(ctx, "cooking")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchBooksByTagPattern(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	// "sci%" matches both "sci-fi" and "science"; Dune carries both, so it
	// must appear exactly once per matching tag grouping.
	got, err := lib.SearchBooksByTagPattern(ctx, "sci%")
	require.NoError(t, err)
	ts := titles(got, func(b TaggedBook) string { return b.Title })
	assert.Contains(t, ts, "Foundation")
	assert.Contains(t, ts, "Dune")
	assert.True(t, sortedStrings(ts), "results must be in title order: %v", ts)

	_, err = lib.SearchBooksByTagPattern(ctx, strings.Repeat("x", maxTagLen+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func sortedStrings(s []string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return false
		}
	}
	return true
}

func TestBookDetails(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	t.Run("full attribute set", func(t *testing.T) {
		got, err := lib.BookDetails(ctx, 1)
		require.NoError(t, err)
		want := &Book{
			ID:          1,
			Title:       "Foundation",
			TitleSort:   "Foundation",
			PubDate:     "1951-06-01 00:00:00+00:00",
			Authors:     "Isaac Asimov",
			AuthorSort:  "Asimov, Isaac",
			Series:      "Foundation",
			SeriesSort:  "Foundation",
			SeriesIndex: 1.0,
			Publisher:   "Gnome Press",
			Identifiers: "isbn:9780553293357",
			Language:    "eng",
			Synopsis:    "The fall of the Galactic Empire.",
			Tags:        "classic, sci-fi",
		}
		assert.Equal(t, want, got)
	})
	t.Run("idempotent", func(t *testing.T) {
		first, err := lib.BookDetails(ctx, 2)
		require.NoError(t, err)
		second, err := lib.BookDetails(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
	t.Run("missing id is NotFound", func(t *testing.T) {
		_, err := lib.BookDetails(ctx, 99999)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NotErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("non-positive id fails validation", func(t *testing.T) {
		_, err := lib.BookDetails(ctx, 0)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStats(t *testing.T) {
	lib := testLibrary(t)
	ctx := context.Background()

	got, err := lib.Stats(ctx)
	require.NoError(t, err)

	// Total book count must agree with a direct count over the books table.
	var direct int64
	require.NoError(t, lib.conn.GetContext(ctx, &direct, `SELECT COUNT(*) FROM books`))
	assert.Equal(t, direct, got.Books)

	assert.Equal(t, int64(3), got.Authors)
	assert.Equal(t, int64(2), got.Series)
	assert.Equal(t, int64(1), got.Publishers)
	assert.Equal(t, int64(3), got.Tags)
	assert.Equal(t, int64(1), got.Languages)
	assert.InDelta(t, 2.0, got.BooksPerAuthor, 1e-9)
	assert.Equal(t, ":memory:", got.DBPath)
}

func TestAllTags(t *testing.T) {
	lib := testLibrary(t)

	got, err := lib.AllTags(context.Background())
	require.NoError(t, err)
	names := titles(got, func(tg Tag) string { return tg.Name })
	assert.Equal(t, []string{"classic", "sci-fi", "science"}, names)
}

func TestOpen_errors(t *testing.T) {
	ctx := context.Background()

	t.Run("empty path", func(t *testing.T) {
		_, err := Open(ctx, "", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
	t.Run("missing directory", func(t *testing.T) {
		_, err := Open(ctx, "/no/such/library", "")
		assert.Error(t, err)
	})
	t.Run("directory without database file", func(t *testing.T) {
		_, err := Open(ctx, t.TempDir(), "")
		assert.Error(t, err)
	})
}
