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

// In this file: the query operations.  Every statement is parameterized;
// values are never concatenated into query text.  Multi-row results carry a
// deterministic ORDER BY so that repeated calls over unchanged data return
// identical sequences.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func (l *Library) SearchBooksByTitle(ctx context.Context, pattern string) ([]BookMatch, error) {
	pattern, err := checkPattern(pattern, maxPatternLen)
	if err != nil {
		return nil, fmt.Errorf("search books by title: %w", err)
	}
	var books []BookMatch
	const q = `SELECT id, title FROM books WHERE title LIKE ? ORDER BY title`
	if err := l.conn.SelectContext(ctx, &books, q, pattern); err != nil {
		return nil, fmt.Errorf("search books by title %q: %w", pattern, err)
	}
	return books, nil
}

func (l *Library) SearchAuthorsByName(ctx context.Context, pattern string) ([]Author, error) {
	pattern, err := checkPattern(pattern, maxPatternLen)
	if err != nil {
		return nil, fmt.Errorf("search authors by name: %w", err)
	}
	var authors []Author
	const q = `SELECT id, name, sort FROM authors WHERE name LIKE ? ORDER BY name`
	if err := l.conn.SelectContext(ctx, &authors, q, pattern); err != nil {
		return nil, fmt.Errorf("search authors by name %q: %w", pattern, err)
	}
	return authors, nil
}

// authorBooksQ is shared by the by-name and by-id author book lookups; the
// WHERE clause differs only in the bound column.
const authorBooksQ = `
SELECT DISTINCT b.id, b.title, b.pubdate,
       CASE
         WHEN s.name IS NOT NULL
         THEN s.name || ' #' || CAST(b.series_index AS TEXT)
       END AS series_info
FROM books b
JOIN books_authors_link bal ON b.id = bal.book
JOIN authors a ON bal.author = a.id
LEFT JOIN books_series_link bsl ON b.id = bsl.book
LEFT JOIN series s ON bsl.series = s.id
WHERE %s
ORDER BY b.title`

func (l *Library) BooksByAuthor(ctx context.Context, name string) ([]AuthorBook, error) {
	name, err := checkPattern(name, maxPatternLen)
	if err != nil {
		return nil, fmt.Errorf("books by author: %w", err)
	}
	var books []AuthorBook
	q := fmt.Sprintf(authorBooksQ, "a.name = ? COLLATE NOCASE")
	if err := l.conn.SelectContext(ctx, &books, q, name); err != nil {
		return nil, fmt.Errorf("books by author %q: %w", name, err)
	}
	return books, nil
}

func (l *Library) BooksByAuthorID(ctx context.Context, id int64) ([]AuthorBook, error) {
	if err := checkID(id, "author id"); err != nil {
		return nil, fmt.Errorf("books by author id: %w", err)
	}
	var books []AuthorBook
	q := fmt.Sprintf(authorBooksQ, "bal.author = ?")
	if err := l.conn.SelectContext(ctx, &books, q, id); err != nil {
		return nil, fmt.Errorf("books by author id %d: %w", id, err)
	}
	return books, nil
}

func (l *Library) BooksBySeries(ctx context.Context, series string) ([]SeriesBook, error) {
	series, err := checkPattern(series, maxPatternLen)
	if err != nil {
		return nil, fmt.Errorf("books by series: %w", err)
	}
	var books []SeriesBook
	const q = `
SELECT b.id, b.title, b.series_index
FROM books b
JOIN books_series_link bsl ON b.id = bsl.book
JOIN series s ON bsl.series = s.id
WHERE s.name = ?
ORDER BY b.series_index, b.title`
	if err := l.conn.SelectContext(ctx, &books, q, series); err != nil {
		return nil, fmt.Errorf("books by series %q: %w", series, err)
	}
	return books, nil
}

// taggedBooksQ matches books through the tag join; the bound tag name may
// be exact (=) or a LIKE pattern depending on the operator placeholder.
const taggedBooksQ = `
SELECT b.id, b.title,
       COALESCE(GROUP_CONCAT(DISTINCT a.name ORDER BY a.name), '') AS authors,
       b.pubdate
FROM books b
JOIN books_tags_link btl ON b.id = btl.book
JOIN tags t ON btl.tag = t.id
LEFT JOIN books_authors_link bal ON b.id = bal.book
LEFT JOIN authors a ON bal.author = a.id
WHERE t.name %s ?
GROUP BY b.id, b.title, b.pubdate
ORDER BY b.title`

func (l *Library) BooksByTag(ctx context.Context, tag string) ([]TaggedBook, error) {
	tag, err := checkPattern(tag, maxTagLen)
	if err != nil {
		return nil, fmt.Errorf("books by tag: %w", err)
	}
	books, err := l.selectTagged(ctx, fmt.Sprintf(taggedBooksQ, "="), tag)
	if err != nil {
		return nil, fmt.Errorf("books by tag %q: %w", tag, err)
	}
	return books, nil
}

func (l *Library) SearchBooksByTagPattern(ctx context.Context, pattern string) ([]TaggedBook, error) {
	pattern, err := checkPattern(pattern, maxTagLen)
	if err != nil {
		return nil, fmt.Errorf("search books by tag pattern: %w", err)
	}
	books, err := l.selectTagged(ctx, fmt.Sprintf(taggedBooksQ, "LIKE"), pattern)
	if err != nil {
		return nil, fmt.Errorf("search books by tag pattern %q: %w", pattern, err)
	}
	return books, nil
}

func (l *Library) selectTagged(ctx context.Context, q, arg string) ([]TaggedBook, error) {
	var books []TaggedBook
	if err := l.conn.SelectContext(ctx, &books, q, arg); err != nil {
		return nil, err
	}
	for i := range books {
		books[i].Authors = strings.ReplaceAll(books[i].Authors, ",", " & ")
	}
	return books, nil
}

// dbBook is the raw row shape of the comprehensive book details query.
type dbBook struct {
	ID          int64           `db:"id"`
	Title       string          `db:"title"`
	TitleSort   sql.NullString  `db:"title_sort"`
	PubDate     sql.NullString  `db:"pubdate"`
	SeriesIndex sql.NullFloat64 `db:"series_index"`
	Authors     sql.NullString  `db:"authors"`
	AuthorSort  sql.NullString  `db:"author_sorts"`
	Series      sql.NullString  `db:"series_name"`
	SeriesSort  sql.NullString  `db:"series_sort"`
	Publisher   sql.NullString  `db:"publishers"`
	Identifiers sql.NullString  `db:"identifiers"`
	Language    sql.NullString  `db:"language"`
	Synopsis    sql.NullString  `db:"synopsis"`
	Tags        sql.NullString  `db:"tags"`
}

func (l *Library) BookDetails(ctx context.Context, id int64) (*Book, error) {
	if err := checkID(id, "book id"); err != nil {
		return nil, fmt.Errorf("book details: %w", err)
	}
	const q = `
SELECT b.id, b.title, b.sort AS title_sort, b.pubdate, b.series_index,
       GROUP_CONCAT(DISTINCT a.name ORDER BY a.name) AS authors,
       GROUP_CONCAT(DISTINCT a.sort ORDER BY a.sort) AS author_sorts,
       s.name AS series_name,
       s.sort AS series_sort,
       GROUP_CONCAT(DISTINCT p.name ORDER BY p.name) AS publishers,
       GROUP_CONCAT(DISTINCT i.type || ':' || i.val ORDER BY i.type || ':' || i.val) AS identifiers,
       l.lang_code AS language,
       c.text AS synopsis,
       GROUP_CONCAT(DISTINCT t.name ORDER BY t.name) AS tags
FROM books b
LEFT JOIN books_authors_link bal ON b.id = bal.book
LEFT JOIN authors a ON bal.author = a.id
LEFT JOIN books_series_link bsl ON b.id = bsl.book
LEFT JOIN series s ON bsl.series = s.id
LEFT JOIN books_publishers_link bpl ON b.id = bpl.book
LEFT JOIN publishers p ON bpl.publisher = p.id
LEFT JOIN identifiers i ON b.id = i.book
LEFT JOIN books_languages_link bll ON b.id = bll.book
LEFT JOIN languages l ON bll.lang_code = l.id
LEFT JOIN comments c ON b.id = c.book
LEFT JOIN books_tags_link btl ON b.id = btl.book
LEFT JOIN tags t ON btl.tag = t.id
WHERE b.id = ?
GROUP BY b.id, b.title, b.sort, b.pubdate, b.series_index,
         s.name, s.sort, l.lang_code, c.text`
	var row dbBook
	if err := l.conn.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book details: id %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("book details: id %d: %w", id, err)
	}
	return row.book(), nil
}

// book maps the raw row to the domain record, joining aggregated name
// lists the way Calibre's own interface formats them.
func (r *dbBook) book() *Book {
	amp := func(s sql.NullString) string { return strings.ReplaceAll(s.String, ",", " & ") }
	lst := func(s sql.NullString) string { return strings.ReplaceAll(s.String, ",", ", ") }
	return &Book{
		ID:          r.ID,
		Title:       r.Title,
		TitleSort:   r.TitleSort.String,
		PubDate:     r.PubDate.String,
		SeriesIndex: r.SeriesIndex.Float64,
		Authors:     amp(r.Authors),
		AuthorSort:  amp(r.AuthorSort),
		Series:      r.Series.String,
		SeriesSort:  r.SeriesSort.String,
		Publisher:   amp(r.Publisher),
		Identifiers: lst(r.Identifiers),
		Language:    r.Language.String,
		Synopsis:    r.Synopsis.String,
		Tags:        lst(r.Tags),
	}
}

func (l *Library) Stats(ctx context.Context) (*Stats, error) {
	const q = `
SELECT (SELECT COUNT(*) FROM books)      AS books,
       (SELECT COUNT(*) FROM authors)    AS authors,
       (SELECT COUNT(*) FROM series)     AS series,
       (SELECT COUNT(*) FROM publishers) AS publishers,
       (SELECT COUNT(*) FROM tags)       AS tags,
       (SELECT COUNT(*) FROM languages)  AS languages`
	var row struct {
		Books      int64 `db:"books"`
		Authors    int64 `db:"authors"`
		Series     int64 `db:"series"`
		Publishers int64 `db:"publishers"`
		Tags       int64 `db:"tags"`
		Languages  int64 `db:"languages"`
	}
	if err := l.conn.GetContext(ctx, &row, q); err != nil {
		return nil, fmt.Errorf("library stats: %w", err)
	}
	st := &Stats{
		DBPath:     l.path,
		Books:      row.Books,
		Authors:    row.Authors,
		Series:     row.Series,
		Publishers: row.Publishers,
		Tags:       row.Tags,
		Languages:  row.Languages,
	}
	if st.Authors > 0 {
		st.BooksPerAuthor = float64(st.Books) / float64(st.Authors)
	}
	return st, nil
}

func (l *Library) AllTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	const q = `SELECT id, name FROM tags ORDER BY name`
	if err := l.conn.SelectContext(ctx, &tags, q); err != nil {
		return nil, fmt.Errorf("all tags: %w", err)
	}
	return tags, nil
}
