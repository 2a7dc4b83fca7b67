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

// Package mcp implements a Model Context Protocol (MCP) server over a
// Calibre e-book library.  It exposes the library's metadata through ten
// read-only tools that AI agents can call to search books, authors, series
// and tags, retrieve full book records and compute library statistics.
//
// Tool parameters are validated before any query executes: a missing
// required parameter or a non-positive id never reaches the query layer.
// Query failures map to three distinguishable error classes in tool
// results: validation errors, not-found errors (single-entity lookups
// only; empty collections are successful empty arrays) and data source
// errors.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio  – standard MCP stdio transport (default); suitable for local
//     agent integration (e.g. Claude Desktop, VS Code Copilot).
//   - http   – Streamable HTTP transport; suitable for remote agents or
//     when multiple concurrent clients are needed.
package mcp
