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

// In this file: typed records returned by the query operations.  Optional
// columns in the Calibre schema map to pointer fields, never to implicit
// zero values that could be mistaken for real data.

// BookMatch is a book matched by a title search.
type BookMatch struct {
	ID    int64  `db:"id"`
	Title string `db:"title"`
}

// Author is a single author record.
type Author struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Sort string `db:"sort"`
}

// AuthorBook is a book as listed under an author.  Series carries
// "<series name> #<index>" when the book belongs to a series, nil
// otherwise.
type AuthorBook struct {
	ID      int64   `db:"id"`
	Title   string  `db:"title"`
	PubDate *string `db:"pubdate"`
	Series  *string `db:"series_info"`
}

// SeriesBook is a book within a named series.
type SeriesBook struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	SeriesIndex float64 `db:"series_index"`
}

// TaggedBook is a book matched through its tag set.  Authors is the
// ampersand-joined list of author names, empty when the book has none.
type TaggedBook struct {
	ID      int64   `db:"id"`
	Title   string  `db:"title"`
	Authors string  `db:"authors"`
	PubDate *string `db:"pubdate"`
}

// Book is the full attribute set of a single book.  Aggregated fields
// (Authors, AuthorSort, Tags, Identifiers) are joined strings in the same
// format Calibre's own interface presents them.
type Book struct {
	ID          int64
	Title       string
	TitleSort   string
	PubDate     string
	Authors     string
	AuthorSort  string
	Series      string
	SeriesSort  string
	SeriesIndex float64
	Publisher   string
	Identifiers string
	Language    string
	Synopsis    string
	Tags        string
}

// Tag is a single tag record.
type Tag struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Stats is an aggregate snapshot of the library, computed on demand.
// BooksPerAuthor is derived from the two counts and is zero for a library
// with no authors.
type Stats struct {
	DBPath         string
	Books          int64
	Authors        int64
	Series         int64
	Publishers     int64
	Tags           int64
	Languages      int64
	BooksPerAuthor float64
}
