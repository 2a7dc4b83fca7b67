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

// Package config holds the startup configuration of the calibre-mcp server.
//
// Configuration is assembled from three sources, later ones winning: an
// optional TOML file, the process environment (optionally seeded from a
// .env file) and command line flags applied by the caller.  A configuration
// that fails validation is a fatal startup error: the server must not start
// against a missing library.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"

	"github.com/litshelf/calibre-mcp/internal/library"
)

// ErrConfigInvalid is returned when the assembled configuration fails
// validation.
var ErrConfigInvalid = errors.New("config validation failed")

// secrets are the candidate .env file names, tried in order.  The
// alternative names accommodate editors that insist on a .txt extension.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

// Config is the startup configuration.
type Config struct {
	// LibraryPath is the Calibre library directory (the one containing
	// metadata.db).  Required.
	LibraryPath string `toml:"library_path" validate:"required"`
	// DBFilename is the database file name within the library directory.
	DBFilename string `toml:"db_filename" validate:"required"`
	// ServerName is the name the MCP server advertises to clients.
	ServerName string `toml:"server_name" validate:"required"`
	// Transport selects the serving transport.
	Transport string `toml:"transport" validate:"oneof=stdio http"`
	// HTTPAddr is the host:port to listen on when Transport is "http".
	HTTPAddr string `toml:"http_addr" validate:"required_if=Transport http"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level" validate:"oneof=debug info warn error"`
	// LogJSON switches the log handler to JSON output.
	LogJSON bool `toml:"log_json"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		DBFilename: library.DefaultDBFile,
		ServerName: "calibre-mcp",
		Transport:  "stdio",
		HTTPAddr:   "127.0.0.1:9001",
		LogLevel:   "info",
	}
}

// LoadSecrets loads environment variables from the first secrets file
// found in the current directory.  Absence of a secrets file is not an
// error.
func LoadSecrets() {
	for _, f := range secrets {
		if err := godotenv.Load(f); err == nil {
			return
		}
	}
}

// Load assembles the configuration: defaults, then the TOML file (when
// file is non-empty), then the environment.
func Load(file string) (Config, error) {
	c := Default()
	if file != "" {
		if _, err := toml.DecodeFile(file, &c); err != nil {
			return c, fmt.Errorf("config file %q: %w", file, err)
		}
	}
	c.applyEnv()
	return c, nil
}

// applyEnv overrides fields from the environment.  Unset variables leave
// the current values untouched.
func (c *Config) applyEnv() {
	c.LibraryPath = osenv.Value("CALIBRE_LIBRARY_PATH", c.LibraryPath)
	c.DBFilename = osenv.Value("CALIBRE_DB_FILENAME", c.DBFilename)
	c.ServerName = osenv.Value("MCP_SERVER_NAME", c.ServerName)
	c.Transport = strings.ToLower(osenv.Value("TRANSPORT_MODE", c.Transport))
	c.HTTPAddr = osenv.Value("HTTP_ADDR", c.HTTPAddr)
	c.LogLevel = strings.ToLower(osenv.Value("LOG_LEVEL", c.LogLevel))
	c.LogJSON = osenv.Value("LOG_JSON", c.LogJSON)
}

// Validate checks the configuration, including the existence of the
// library directory and the database file.  It returns an error wrapping
// [ErrConfigInvalid] so that the caller can treat any failure as fatal.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			return fmt.Errorf("%w: %s", ErrConfigInvalid, vErr)
		}
		return fmt.Errorf("%w: %s", ErrConfigInvalid, err)
	}
	fi, err := os.Stat(c.LibraryPath)
	if err != nil {
		return fmt.Errorf("%w: library path: %s", ErrConfigInvalid, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: library path %q is not a directory", ErrConfigInvalid, c.LibraryPath)
	}
	if _, err := os.Stat(c.DBPath()); err != nil {
		return fmt.Errorf("%w: database file: %s", ErrConfigInvalid, err)
	}
	return nil
}

// DBPath returns the full path of the database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.LibraryPath, c.DBFilename)
}

// Level returns the slog level for the configured LogLevel string.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
