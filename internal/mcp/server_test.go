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

import (
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/litshelf/calibre-mcp/internal/library/mock_library"
)

// newTestServer creates a *Server backed by a MockQuerier with the Path
// expectation pre-set (New calls it while building the instructions).
func newTestServer(t *testing.T, ctrl *gomock.Controller) (*Server, *mock_library.MockQuerier) {
	t.Helper()
	m := mock_library.NewMockQuerier(ctrl)
	m.EXPECT().Path().Return("/books/metadata.db").AnyTimes()
	srv := New(m)
	require.NotNil(t, srv)
	return srv, m
}

// toolReq builds a CallToolRequest with the given argument map.
func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.lib)
	assert.NotNil(t, srv.logger)
	assert.Equal(t, defServerName, srv.name)
}

func TestNew_options(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_library.NewMockQuerier(ctrl)
	m.EXPECT().Path().Return("x").AnyTimes()

	t.Run("nil logger falls back to default", func(t *testing.T) {
		assert.NotPanics(t, func() {
			srv := New(m, WithLogger(nil))
			assert.NotNil(t, srv.logger)
		})
	})
	t.Run("custom name", func(t *testing.T) {
		srv := New(m, WithName("bookshelf"))
		assert.Equal(t, "bookshelf", srv.name)
	})
	t.Run("empty name keeps default", func(t *testing.T) {
		srv := New(m, WithName(""))
		assert.Equal(t, defServerName, srv.name)
	})
}

func TestTools_complete(t *testing.T) {
	ctrl := gomock.NewController(t)
	srv, _ := newTestServer(t, ctrl)

	want := []string{
		"search_books_by_title",
		"search_authors_by_name",
		"get_books_by_author",
		"get_books_by_author_id",
		"get_books_by_series",
		"get_books_by_tag",
		"search_books_by_tag_pattern",
		"get_book_details",
		"get_library_stats",
		"get_all_tags",
	}
	var got []string
	for _, st := range srv.tools() {
		got = append(got, st.Tool.Name)
		require.NotNil(t, st.Handler, "tool %s has no handler", st.Tool.Name)
	}
	assert.Equal(t, want, got)
}

func TestInstructions(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mock_library.NewMockQuerier(ctrl)
	m.EXPECT().Path().Return("/books/metadata.db").AnyTimes()

	got := instructions(m)
	assert.Contains(t, got, "/books/metadata.db")
	assert.Contains(t, got, "read-only")

	// nil library must not panic.
	assert.NotPanics(t, func() { _ = instructions(nil) })
}

func TestPositiveIntArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		want    int64
		wantErr bool
	}{
		{"integral float", map[string]any{"n": float64(42)}, 42, false},
		{"int", map[string]any{"n": 7}, 7, false},
		{"missing", map[string]any{}, 0, true},
		{"zero", map[string]any{"n": float64(0)}, 0, true},
		{"negative", map[string]any{"n": float64(-3)}, 0, true},
		{"fractional", map[string]any{"n": 3.5}, 0, true},
		{"string", map[string]any{"n": "42"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := positiveIntArg(toolReq(tt.args), "n")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
