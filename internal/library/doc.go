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

// Package library provides read-only access to a Calibre e-book library's
// metadata.db SQLite database.  It translates each logical operation (title
// search, author lookup, series listing and so on) into a parameterized
// query against the schema owned by the Calibre application and maps the
// result rows into typed records.
//
// The package never writes to the library: the database is opened in
// read-only mode and all operations go through a pooled connection handle
// that is checked out per query and released unconditionally.
//
// Text searches accept SQLite LIKE patterns verbatim: '%' matches any run
// of characters and matching is case-insensitive.  The wildcard token is
// part of the public contract and is never reinterpreted or escaped.
package library
