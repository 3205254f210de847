// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubConn is a minimal Conn used only to confirm the interfaces in this
// package are implementable without pulling in a real wire protocol.
type stubConn struct {
	tables []TableShape
}

func (c *stubConn) Reflect(context.Context) ([]TableShape, error) { return c.tables, nil }
func (c *stubConn) Prepare(context.Context, string) (Stmt, error) { return nil, nil }
func (c *stubConn) Close() error                                  { return nil }

type stubProvider struct{ conn *stubConn }

func (p *stubProvider) Connect(context.Context, string) (Conn, error) { return p.conn, nil }

func TestProviderAndConnSatisfyContract(t *testing.T) {
	require := require.New(t)

	p := &stubProvider{conn: &stubConn{
		tables: []TableShape{{Name: "person", Columns: []string{"person_id", "state"}}},
	}}

	var _ Provider = p
	conn, err := p.Connect(context.Background(), "mem://")
	require.NoError(err)
	defer conn.Close()

	tables, err := conn.Reflect(context.Background())
	require.NoError(err)
	require.Len(tables, 1)
	require.Equal("person", tables[0].Name)
}

func TestToCatalogCopiesReflectedTables(t *testing.T) {
	require := require.New(t)

	cat := ToCatalog("default", []TableShape{
		{Name: "person", Columns: []string{"person_id", "state"}},
		{Schema: "reporting", Name: "visit", Columns: []string{"person_id", "visit_date"}},
	})

	tbl, ok := cat.Lookup("", "person")
	require.True(ok)
	require.Equal([]string{"person_id", "state"}, tbl.Columns)

	tbl, ok = cat.Lookup("reporting", "visit")
	require.True(ok)
	require.Equal([]string{"person_id", "visit_date"}, tbl.Columns)

	require.Equal("default", cat.DialectName())
}
