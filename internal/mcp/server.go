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

// In this file: MCP server construction and transport management.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/litshelf/calibre-mcp/internal/library"
)

const (
	defServerName = "calibre-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Server wraps an MCP server and the underlying Calibre library.
type Server struct {
	mcp    *mcpsrv.MCPServer
	lib    library.Querier
	name   string
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithName overrides the advertised server name.
func WithName(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.name = name
		}
	}
}

// New creates a new MCP server backed by the given library.  The server is
// populated with all available tools but does not start listening until one
// of the Serve* methods is called.
func New(lib library.Querier, opts ...Option) *Server {
	s := &Server{
		lib:    lib,
		name:   defServerName,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		s.name,
		serverVersion,
		mcpsrv.WithInstructions(instructions(lib)),
	)

	// Register all tools.
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

// instructions returns the server instructions that describe the library to
// the connecting agent.
func instructions(lib library.Querier) string {
	path := ""
	if lib != nil {
		path = lib.Path()
	}
	return fmt.Sprintf(`You are connected to a Calibre MCP server.

The library database %q holds e-book metadata managed by Calibre.

Available tools allow you to:
- Search books by title and authors by name (LIKE patterns, %% wildcard)
- List books by author (name or id), series, or tag
- Search books by tag pattern
- Get the full metadata record of a single book
- Get library-wide statistics and the list of all tags

All data is read-only.  Text searches are case-insensitive; '%%' matches
any run of characters.  Collection results are deterministically ordered
(title or series index ascending).
`, path)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a Streamable HTTP server on addr until
// ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:9001".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.InfoContext(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// tools returns all MCP tools that this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolSearchBooksByTitle(),
		s.toolSearchAuthorsByName(),
		s.toolGetBooksByAuthor(),
		s.toolGetBooksByAuthorID(),
		s.toolGetBooksBySeries(),
		s.toolGetBooksByTag(),
		s.toolSearchBooksByTagPattern(),
		s.toolGetBookDetails(),
		s.toolGetLibraryStats(),
		s.toolGetAllTags(),
	}
}

// resultText is a helper that wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr is a helper that wraps an error in a CallToolResult with
// IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON is a helper that serialises v to JSON and returns a
// CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// queryError translates a query layer failure into a tool result,
// preserving the error class: validation and not-found errors pass through
// with their message, anything else is reported as a data source error and
// logged.
func (s *Server) queryError(ctx context.Context, tool string, err error) *mcplib.CallToolResult {
	switch {
	case errors.Is(err, library.ErrInvalidInput):
		return resultErr(fmt.Errorf("%s: validation: %w", tool, err))
	case errors.Is(err, library.ErrNotFound):
		return resultErr(fmt.Errorf("%s: %w", tool, err))
	default:
		s.logger.ErrorContext(ctx, "mcp: query failed", "tool", tool, "error", err)
		return resultErr(fmt.Errorf("%s: data source error: %w", tool, err))
	}
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// positiveIntArg extracts a named integer argument.  The MCP protocol
// serialises numbers as float64, so integral float values are accepted; a
// missing, non-numeric, fractional or non-positive value is a validation
// error.
func positiveIntArg(req mcplib.CallToolRequest, name string) (int64, error) {
	args := req.GetArguments()
	v, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	var n int64
	switch x := v.(type) {
	case float64:
		n = int64(x)
		if float64(n) != x {
			return 0, fmt.Errorf("%s must be an integer, got %v", name, x)
		}
	case int:
		n = int64(x)
	case int64:
		n = x
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", name, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %d", name, n)
	}
	return n, nil
}
