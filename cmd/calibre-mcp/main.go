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

// Command calibre-mcp starts a read-only Model Context Protocol server
// over a Calibre e-book library.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/litshelf/calibre-mcp/internal/config"
	"github.com/litshelf/calibre-mcp/internal/library"
	"github.com/litshelf/calibre-mcp/internal/mcp"
)

var build = "dev"

// params are the command line parameters.  Flags override the environment
// and the config file.
type params struct {
	configFile   string
	libraryPath  string
	dbFilename   string
	transport    string
	listenAddr   string
	verbose      bool
	jsonLog      bool
	printVersion bool
}

func main() {
	config.LoadSecrets()

	var p params
	flag.StringVar(&p.configFile, "config", "", "TOML configuration `file` (optional)")
	flag.StringVar(&p.libraryPath, "library", "", "Calibre library `directory` (environment: CALIBRE_LIBRARY_PATH)")
	flag.StringVar(&p.dbFilename, "db", "", "database `file` name within the library (default: "+library.DefaultDBFile+")")
	flag.StringVar(&p.transport, "transport", "", "MCP transport: \"stdio\" or \"http\"")
	flag.StringVar(&p.listenAddr, "listen", "", "`address` to listen on when -transport=http")
	flag.BoolVar(&p.verbose, "v", false, "verbose (debug) logging")
	flag.BoolVar(&p.jsonLog, "log-json", false, "log in JSON format")
	flag.BoolVar(&p.printVersion, "version", false, "print version and exit")
	flag.Parse()

	if p.printVersion {
		fmt.Println(build)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, p); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, p params) error {
	cfg, err := config.Load(p.configFile)
	if err != nil {
		return err
	}
	applyFlags(&cfg, p)

	lg := initLog(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	lib, err := library.Open(ctx, cfg.LibraryPath, cfg.DBFilename)
	if err != nil {
		return fmt.Errorf("open library: %w", err)
	}
	defer lib.Close()

	lg.InfoContext(ctx, "library opened", "db", lib.Path())

	srv := mcp.New(lib, mcp.WithLogger(lg), mcp.WithName(cfg.ServerName))

	switch mcp.Transport(cfg.Transport) {
	case mcp.TransportStdio:
		return srv.ServeStdio(ctx)
	case mcp.TransportHTTP:
		return srv.ServeHTTP(ctx, cfg.HTTPAddr)
	default:
		return fmt.Errorf("unknown transport %q (use \"stdio\" or \"http\")", cfg.Transport)
	}
}

// applyFlags overrides configuration fields from explicitly set flags.
func applyFlags(cfg *config.Config, p params) {
	if p.libraryPath != "" {
		cfg.LibraryPath = p.libraryPath
	}
	if p.dbFilename != "" {
		cfg.DBFilename = p.dbFilename
	}
	if p.transport != "" {
		cfg.Transport = p.transport
	}
	if p.listenAddr != "" {
		cfg.HTTPAddr = p.listenAddr
	}
	if p.verbose {
		cfg.LogLevel = "debug"
	}
	if p.jsonLog {
		cfg.LogJSON = true
	}
}

// initLog initialises logging on stderr (stdout belongs to the stdio
// transport) and installs the logger as the slog default.
func initLog(cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.LogJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	lg := slog.New(h)
	slog.SetDefault(lg)
	return lg
}
