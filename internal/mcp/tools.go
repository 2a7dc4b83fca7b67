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

package mcp

// In this file: MCP tool definitions and handler implementations.  Tool
// names, parameter names and result field names are the public contract and
// must not change silently.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/litshelf/calibre-mcp/internal/library"
)

// deref returns the value of an optional string column, empty when absent.
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// requireString extracts a required, non-empty string argument or returns a
// validation error result.
func requireString(req mcplib.CallToolRequest, tool, name string) (string, *mcplib.CallToolResult) {
	v, ok := stringArg(req, name)
	if !ok || v == "" {
		return "", resultErr(fmt.Errorf("%s: validation: %s is required", tool, name))
	}
	return v, nil
}

// ─── search_books_by_title ────────────────────────────────────────────────────

func (s *Server) toolSearchBooksByTitle() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_books_by_title",
		mcplib.WithDescription("Search for books in the Calibre library by title pattern (supports wildcards like %)."),
		mcplib.WithString("title_pattern",
			mcplib.Description("Title pattern to search for (use % for wildcards, e.g. 'Python%' or '%Django%')"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchBooksByTitle}
}

// bookMatch is a JSON-serialisable title search hit.
type bookMatch struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (s *Server) handleSearchBooksByTitle(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pattern, errRes := requireString(req, "search_books_by_title", "title_pattern")
	if errRes != nil {
		return errRes, nil
	}

	books, err := s.lib.SearchBooksByTitle(ctx, pattern)
	if err != nil {
		return s.queryError(ctx, "search_books_by_title", err), nil
	}

	matches := make([]bookMatch, 0, len(books))
	for _, b := range books {
		matches = append(matches, bookMatch{ID: b.ID, Title: b.Title})
	}
	result, err := resultJSON(matches)
	if err != nil {
		return resultErr(fmt.Errorf("search_books_by_title: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_authors_by_name ───────────────────────────────────────────────────

func (s *Server) toolSearchAuthorsByName() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_authors_by_name",
		mcplib.WithDescription("Search for authors in the Calibre library by name pattern (supports wildcards like %)."),
		mcplib.WithString("name_pattern",
			mcplib.Description("Author name pattern to search for (use % for wildcards, e.g. 'Stephen%' or '%King%')"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchAuthorsByName}
}

// authorSummary is a JSON-serialisable author search hit.
type authorSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleSearchAuthorsByName(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pattern, errRes := requireString(req, "search_authors_by_name", "name_pattern")
	if errRes != nil {
		return errRes, nil
	}

	authors, err := s.lib.SearchAuthorsByName(ctx, pattern)
	if err != nil {
		return s.queryError(ctx, "search_authors_by_name", err), nil
	}

	summaries := make([]authorSummary, 0, len(authors))
	for _, a := range authors {
		summaries = append(summaries, authorSummary{ID: a.ID, Name: a.Name})
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("search_authors_by_name: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_books_by_author ──────────────────────────────────────────────────────

func (s *Server) toolGetBooksByAuthor() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_books_by_author",
		mcplib.WithDescription("Get all books by a specific author name (exact match, case-insensitive). An unknown author yields an empty list."),
		mcplib.WithString("author_name",
			mcplib.Description("Exact name of the author to search for"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetBooksByAuthor}
}

// authorBookSummary is a JSON-serialisable book listed under an author.
type authorBookSummary struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	PubDate    string `json:"publication_date"`
	SeriesInfo string `json:"series_info"`
	Author     string `json:"author,omitempty"`
	AuthorID   int64  `json:"author_id,omitempty"`
}

func authorBookSummaries(books []library.AuthorBook) []authorBookSummary {
	summaries := make([]authorBookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, authorBookSummary{
			ID:         b.ID,
			Title:      b.Title,
			PubDate:    deref(b.PubDate),
			SeriesInfo: deref(b.Series),
		})
	}
	return summaries
}

func (s *Server) handleGetBooksByAuthor(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, errRes := requireString(req, "get_books_by_author", "author_name")
	if errRes != nil {
		return errRes, nil
	}

	books, err := s.lib.BooksByAuthor(ctx, name)
	if err != nil {
		return s.queryError(ctx, "get_books_by_author", err), nil
	}

	summaries := authorBookSummaries(books)
	for i := range summaries {
		summaries[i].Author = name
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("get_books_by_author: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_books_by_author_id ───────────────────────────────────────────────────

func (s *Server) toolGetBooksByAuthorID() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_books_by_author_id",
		mcplib.WithDescription("Get all books by a specific author using their ID. An author with no books yields an empty list."),
		mcplib.WithNumber("author_id",
			mcplib.Description("Unique ID of the author in the Calibre database (positive integer)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetBooksByAuthorID}
}

func (s *Server) handleGetBooksByAuthorID(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := positiveIntArg(req, "author_id")
	if err != nil {
		return resultErr(fmt.Errorf("get_books_by_author_id: validation: %w", err)), nil
	}

	books, err := s.lib.BooksByAuthorID(ctx, id)
	if err != nil {
		return s.queryError(ctx, "get_books_by_author_id", err), nil
	}

	summaries := authorBookSummaries(books)
	for i := range summaries {
		summaries[i].AuthorID = id
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("get_books_by_author_id: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_books_by_series ──────────────────────────────────────────────────────

func (s *Server) toolGetBooksBySeries() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_books_by_series",
		mcplib.WithDescription("Get all books in a specific series, ordered by series index (ties broken by title)."),
		mcplib.WithString("series_name",
			mcplib.Description("Exact name of the series to search for"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetBooksBySeries}
}

// seriesBookSummary is a JSON-serialisable book within a series.
type seriesBookSummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	SeriesIndex float64 `json:"series_index"`
	SeriesName  string  `json:"series_name"`
}

func (s *Server) handleGetBooksBySeries(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, errRes := requireString(req, "get_books_by_series", "series_name")
	if errRes != nil {
		return errRes, nil
	}

	books, err := s.lib.BooksBySeries(ctx, name)
	if err != nil {
		return s.queryError(ctx, "get_books_by_series", err), nil
	}

	summaries := make([]seriesBookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, seriesBookSummary{
			ID:          b.ID,
			Title:       b.Title,
			SeriesIndex: b.SeriesIndex,
			SeriesName:  name,
		})
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("get_books_by_series: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_books_by_tag ─────────────────────────────────────────────────────────

func (s *Server) toolGetBooksByTag() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_books_by_tag",
		mcplib.WithDescription("Get all books with a specific tag (exact match)."),
		mcplib.WithString("tag_name",
			mcplib.Description("Exact name of the tag to search for"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetBooksByTag}
}

// taggedBookSummary is a JSON-serialisable book matched through its tags.
type taggedBookSummary struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Authors  string `json:"authors"`
	PubDate  string `json:"publication_date"`
	Tag      string `json:"tag,omitempty"`
	Matching string `json:"matching_tag_pattern,omitempty"`
}

func taggedBookSummaries(books []library.TaggedBook) []taggedBookSummary {
	summaries := make([]taggedBookSummary, 0, len(books))
	for _, b := range books {
		summaries = append(summaries, taggedBookSummary{
			ID:      b.ID,
			Title:   b.Title,
			Authors: b.Authors,
			PubDate: deref(b.PubDate),
		})
	}
	return summaries
}

func (s *Server) handleGetBooksByTag(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tag, errRes := requireString(req, "get_books_by_tag", "tag_name")
	if errRes != nil {
		return errRes, nil
	}

	books, err := s.lib.BooksByTag(ctx, tag)
	if err != nil {
		return s.queryError(ctx, "get_books_by_tag", err), nil
	}

	summaries := taggedBookSummaries(books)
	for i := range summaries {
		summaries[i].Tag = tag
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("get_books_by_tag: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── search_books_by_tag_pattern ──────────────────────────────────────────────

func (s *Server) toolSearchBooksByTagPattern() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_books_by_tag_pattern",
		mcplib.WithDescription("Search for books with tags matching a pattern (supports wildcards like %)."),
		mcplib.WithString("tag_pattern",
			mcplib.Description("Tag pattern to search for (use % for wildcards, e.g. 'sci%' or '%fiction%')"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchBooksByTagPattern}
}

func (s *Server) handleSearchBooksByTagPattern(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	pattern, errRes := requireString(req, "search_books_by_tag_pattern", "tag_pattern")
	if errRes != nil {
		return errRes, nil
	}

	books, err := s.lib.SearchBooksByTagPattern(ctx, pattern)
	if err != nil {
		return s.queryError(ctx, "search_books_by_tag_pattern", err), nil
	}

	summaries := taggedBookSummaries(books)
	for i := range summaries {
		summaries[i].Matching = pattern
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("search_books_by_tag_pattern: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_book_details ─────────────────────────────────────────────────────────

func (s *Server) toolGetBookDetails() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_book_details",
		mcplib.WithDescription("Get complete details for a specific book by ID."),
		mcplib.WithNumber("book_id",
			mcplib.Description("Unique ID of the book in the Calibre database (positive integer)"),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetBookDetails}
}

// bookDetail is the JSON-serialisable full book record.
type bookDetail struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	TitleSort   string  `json:"title_sort"`
	Date        string  `json:"date"`
	Author      string  `json:"author"`
	AuthorSort  string  `json:"author_sort"`
	Series      string  `json:"series"`
	SeriesSort  string  `json:"series_sort"`
	SeriesIdx   float64 `json:"series_idx"`
	Publisher   string  `json:"publisher"`
	Identifiers string  `json:"identifiers"`
	Language    string  `json:"language"`
	Tags        string  `json:"tags"`
	Synopsis    string  `json:"synopsis"`
}

func (s *Server) handleGetBookDetails(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, err := positiveIntArg(req, "book_id")
	if err != nil {
		return resultErr(fmt.Errorf("get_book_details: validation: %w", err)), nil
	}

	book, err := s.lib.BookDetails(ctx, id)
	if err != nil {
		if errors.Is(err, library.ErrNotFound) {
			return resultErr(fmt.Errorf("get_book_details: book with ID %d not found", id)), nil
		}
		return s.queryError(ctx, "get_book_details", err), nil
	}

	result, err := resultJSON(bookDetail{
		ID:          book.ID,
		Title:       book.Title,
		TitleSort:   book.TitleSort,
		Date:        book.PubDate,
		Author:      book.Authors,
		AuthorSort:  book.AuthorSort,
		Series:      book.Series,
		SeriesSort:  book.SeriesSort,
		SeriesIdx:   book.SeriesIndex,
		Publisher:   book.Publisher,
		Identifiers: book.Identifiers,
		Language:    book.Language,
		Tags:        book.Tags,
		Synopsis:    book.Synopsis,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_book_details: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_library_stats ────────────────────────────────────────────────────────

func (s *Server) toolGetLibraryStats() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_library_stats",
		mcplib.WithDescription("Get comprehensive statistics about the Calibre library."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetLibraryStats}
}

// libraryStats is the JSON-serialisable aggregate snapshot.
type libraryStats struct {
	DBPath         string  `json:"db_path"`
	Books          int64   `json:"books_count"`
	Authors        int64   `json:"authors_count"`
	Series         int64   `json:"series_count"`
	Publishers     int64   `json:"publishers_count"`
	Tags           int64   `json:"tags_count"`
	Languages      int64   `json:"languages_count"`
	BooksPerAuthor float64 `json:"books_per_author"`
}

func (s *Server) handleGetLibraryStats(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	stats, err := s.lib.Stats(ctx)
	if err != nil {
		return s.queryError(ctx, "get_library_stats", err), nil
	}

	result, err := resultJSON(libraryStats{
		DBPath:         stats.DBPath,
		Books:          stats.Books,
		Authors:        stats.Authors,
		Series:         stats.Series,
		Publishers:     stats.Publishers,
		Tags:           stats.Tags,
		Languages:      stats.Languages,
		BooksPerAuthor: stats.BooksPerAuthor,
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_library_stats: serialise: %w", err)), nil
	}
	return result, nil
}

// ─── get_all_tags ─────────────────────────────────────────────────────────────

func (s *Server) toolGetAllTags() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_all_tags",
		mcplib.WithDescription("Get all available tags in the Calibre library, ordered alphabetically."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetAllTags}
}

// tagSummary is a JSON-serialisable tag.
type tagSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s *Server) handleGetAllTags(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	tags, err := s.lib.AllTags(ctx)
	if err != nil {
		return s.queryError(ctx, "get_all_tags", err), nil
	}

	summaries := make([]tagSummary, 0, len(tags))
	for _, tg := range tags {
		summaries = append(summaries, tagSummary{ID: tg.ID, Name: tg.Name})
	}
	result, err := resultJSON(summaries)
	if err != nil {
		return resultErr(fmt.Errorf("get_all_tags: serialise: %w", err)), nil
	}
	return result, nil
}
