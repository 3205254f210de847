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

package queryplan

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/node"
)

func personCatalog() *catalog.Catalog {
	cat := catalog.New("default")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id", "year_of_birth", "state"}})
	return cat
}

func TestCompileRendersSelectOverTable(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	out, err := Compile(root, Options{Catalog: personCatalog()})
	require.NoError(err)
	require.Contains(out.SQL, `SELECT "person_1"."person_id" AS "id"`)
	require.Contains(out.SQL, `FROM "person" AS "person_1"`)
}

func TestCompileZeroValueOptionsFallsBackToDefaultDialect(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	cat := catalog.New("")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id", "year_of_birth", "state"}})
	out, err := Compile(root, Options{Catalog: cat})
	require.NoError(err)
	require.Contains(out.SQL, `FROM "person"`)

	_, err = Compile(node.NewFromTable("", "person"), Options{})
	require.Error(err)
}

func TestCompileUnknownCatalogDialectErrors(t *testing.T) {
	require := require.New(t)

	cat := catalog.New("not-a-real-dialect")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id"}})
	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	_, err := Compile(root, Options{Catalog: cat})
	require.Error(err)
}

func TestCompileCachesByStructuralHashAndDialect(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	cache := catalog.NewCache()
	opts := Options{Catalog: personCatalog(), Cache: cache}

	first, err := Compile(root, opts)
	require.NoError(err)
	require.Equal(1, cache.Len())

	second, err := Compile(root, opts)
	require.NoError(err)
	require.Equal(first.SQL, second.SQL)
	require.Equal(1, cache.Len())
}

func TestCompileCanceledBetweenPassesReturnsErrCanceled(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	var stop atomic.Bool
	stop.Store(true)

	_, err := Compile(root, Options{Catalog: personCatalog(), Stop: &stop})
	require.ErrorIs(err, ErrCanceled)
}

func TestPackOrdersValuesByPositionalIndex(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewWhere(
			node.NewFromTable("", "person"),
			node.NewFun("and",
				node.NewFun("=", node.NewGet("person_id"), node.NewParam("id")),
				node.NewFun("=", node.NewGet("state"), node.NewParam("state")))),
		node.L("id", node.NewGet("person_id")),
	)

	out, err := Compile(root, Options{Catalog: personCatalog()})
	require.NoError(err)
	require.Equal(2, out.ParameterCount)

	packed := Pack(out, map[string]interface{}{
		"id":    7,
		"state": "WA",
		"extra": "ignored",
	})
	require.Len(packed, 2)
	require.Equal(7, packed[out.NamedToPositional["id"]])
	require.Equal("WA", packed[out.NamedToPositional["state"]])
}
