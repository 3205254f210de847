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

package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queryplan/queryplan/assemble"
	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/dialect"
	"github.com/queryplan/queryplan/node"
	"github.com/queryplan/queryplan/resolve"
	"github.com/queryplan/queryplan/translate"
)

func personCatalog() *catalog.Catalog {
	cat := catalog.New("default")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id", "year_of_birth", "state"}})
	cat.Add(catalog.Table{Name: "visit", Columns: []string{"person_id", "visit_date"}})
	return cat
}

func mustRender(t *testing.T, root node.Dataset) *Result {
	t.Helper()
	res, err := resolve.Resolve(root, personCatalog())
	require.NoError(t, err)
	lowered, err := translate.Translate(root, res)
	require.NoError(t, err)
	assembled := assemble.Assemble(lowered)
	out, err := Render(assembled, dialect.Default)
	require.NoError(t, err)
	return out
}

func TestRenderSelectOverTable(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	out := mustRender(t, root)
	require.Contains(out.SQL, `SELECT "person_1"."person_id" AS "id"`)
	require.Contains(out.SQL, `FROM "person" AS "person_1"`)
}

func TestRenderStackedGroupMaterializesDistinctSubquery(t *testing.T) {
	require := require.New(t)

	inner := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("year_of_birth", node.NewGet("year_of_birth")),
	)
	outer := node.NewGroup(inner)
	root := node.NewSelect(outer, node.L("n", node.NewAgg("count")))

	out := mustRender(t, root)
	require.Contains(out.SQL, "count(")
	require.NotContains(out.SQL, "GROUP BY")
	require.Contains(out.SQL, "SELECT DISTINCT")
	require.Contains(out.SQL, `"year_of_birth"`)

	distinctIdx := strings.Index(out.SQL, "SELECT DISTINCT")
	fromIdx := strings.Index(out.SQL, `FROM "person"`)
	require.True(distinctIdx >= 0 && fromIdx >= 0 && distinctIdx < fromIdx)
}

func TestRenderIsDeterministic(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
		node.L("yob", node.NewGet("year_of_birth")),
	)

	first := mustRender(t, root)
	second := mustRender(t, root)
	require.Equal(first.SQL, second.SQL)
}

func TestRenderColumnPruningVisible(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	out := mustRender(t, root)
	require.NotContains(out.SQL, "year_of_birth")
	require.NotContains(out.SQL, "state")
}

func TestRenderAppendPreservesBranchOrderAndColumns(t *testing.T) {
	require := require.New(t)

	a := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	b := node.NewSelect(node.NewFromTable("", "visit"), node.L("id", node.NewGet("person_id")))
	root := node.NewAppend(a, b)

	out := mustRender(t, root)
	firstIdx := strings.Index(out.SQL, `FROM "person"`)
	secondIdx := strings.Index(out.SQL, `FROM "visit"`)
	require.True(firstIdx >= 0 && secondIdx >= 0 && firstIdx < secondIdx)
	require.Contains(out.SQL, "UNION ALL")
}

func TestRenderIterateEmitsRecursiveCteWithAliasAndColumns(t *testing.T) {
	require := require.New(t)

	base := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	step := node.NewSelect(node.NewFromPrevIteration(), node.L("id", node.NewGet("id")))
	root := node.NewIterate(base, step)

	res, err := resolve.Resolve(root, personCatalog())
	require.NoError(err)
	lowered, err := translate.Translate(root, res)
	require.NoError(err)
	assembled := assemble.Assemble(lowered)
	out, err := Render(assembled, dialect.Default)
	require.NoError(err)

	require.Contains(out.SQL, "WITH RECURSIVE")
	require.Contains(out.SQL, "UNION ALL")
}

func TestRenderGroupWithNoAggregateBecomesDistinctNoGroupBy(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	root := node.NewSelect(group, node.L("state", node.NewGet("state")))

	out := mustRender(t, root)
	require.Contains(out.SQL, "SELECT DISTINCT")
	require.NotContains(out.SQL, "GROUP BY")
}

func TestRenderDefineExpressionAppearsOnce(t *testing.T) {
	require := require.New(t)

	defined := node.NewDefine(
		node.NewFromTable("", "person"),
		node.L("decade", node.NewFun("/", node.NewGet("year_of_birth"), node.NewLit(10))),
	)

	out := mustRender(t, defined)
	require.Equal(1, strings.Count(out.SQL, `"year_of_birth"/10`))
}

func TestRenderDuplicateAggregateDedupAppearsOnce(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	root := node.NewSelect(group,
		node.L("state", node.NewGet("state")),
		node.L("n1", node.NewAgg("count", node.NewGet("person_id"))),
		node.L("n2", node.NewAgg("count", node.NewGet("person_id"))),
	)

	out := mustRender(t, root)
	require.Equal(1, strings.Count(out.SQL, "count("))
}

func TestRenderPlaceholderOrderingMatchesOccurrence(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewWhere(
			node.NewFromTable("", "visit"),
			node.NewFun("and",
				node.NewFun("=", node.NewGet("person_id"), node.NewParam("first")),
				node.NewFun("=", node.NewGet("person_id"), node.NewParam("second")))),
		node.L("id", node.NewGet("person_id")),
	)

	res, err := resolve.Resolve(root, personCatalog())
	require.NoError(err)
	lowered, err := translate.Translate(root, res)
	require.NoError(err)
	assembled := assemble.Assemble(lowered)
	out, err := Render(assembled, dialect.Default)
	require.NoError(err)

	require.Equal(0, out.NamedToPositional["first"])
	require.Equal(1, out.NamedToPositional["second"])
	require.Equal(2, out.ParameterCount)

	firstIdx := strings.Index(out.SQL, "?")
	require.True(firstIdx >= 0)
}

func TestRenderRepeatedNamedParameterReusesIndex(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewWhere(
			node.NewFromTable("", "visit"),
			node.NewFun("or",
				node.NewFun("=", node.NewGet("person_id"), node.NewParam("x")),
				node.NewFun("=", node.NewGet("person_id"), node.NewParam("x")))),
		node.L("id", node.NewGet("person_id")),
	)

	res, err := resolve.Resolve(root, personCatalog())
	require.NoError(err)
	lowered, err := translate.Translate(root, res)
	require.NoError(err)
	assembled := assemble.Assemble(lowered)
	out, err := Render(assembled, dialect.Default)
	require.NoError(err)

	require.Equal(1, out.ParameterCount)
	require.Equal(0, out.NamedToPositional["x"])
}
