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

package assemble

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/clause"
	"github.com/queryplan/queryplan/node"
	"github.com/queryplan/queryplan/resolve"
	"github.com/queryplan/queryplan/translate"
)

func personCatalog() *catalog.Catalog {
	cat := catalog.New("postgresql")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id", "year_of_birth", "state"}})
	cat.Add(catalog.Table{Name: "visit", Columns: []string{"person_id", "visit_date"}})
	return cat
}

func mustAssemble(t *testing.T, root node.Dataset) clause.Node {
	t.Helper()
	res, err := resolve.Resolve(root, personCatalog())
	require.NoError(t, err)
	lowered, err := translate.Translate(root, res)
	require.NoError(t, err)
	return Assemble(lowered)
}

func TestWhereAfterGroupBecomesHaving(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	having := node.NewWhere(group, node.NewFun(">", node.NewAgg("count", node.NewGet("person_id")), node.NewLit(1)))
	root := node.NewSelect(having,
		node.L("state", node.NewGet("state")),
		node.L("n", node.NewAgg("count", node.NewGet("person_id"))),
	)

	out := mustAssemble(t, root)
	sel, ok := out.(*clause.Select)
	require.True(ok)

	_, isHaving := sel.Over.(*clause.Having)
	require.True(isHaving, "Where directly atop Group must fold into Having, got %T", sel.Over)
}

func TestGroupWithNoAggregateBecomesDistinct(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	root := node.NewSelect(group, node.L("state", node.NewGet("state")))

	out := mustAssemble(t, root)
	sel, ok := out.(*clause.Select)
	require.True(ok)
	require.True(sel.Distinct)
	_, isGroup := sel.Over.(*clause.Group)
	require.False(isGroup, "GROUP BY should have been replaced by DISTINCT")
}

func TestGroupWithAggregateKeepsGroupBy(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	root := node.NewSelect(group,
		node.L("state", node.NewGet("state")),
		node.L("n", node.NewAgg("count", node.NewGet("person_id"))))

	out := mustAssemble(t, root)
	sel, ok := out.(*clause.Select)
	require.True(ok)
	require.False(sel.Distinct)
	_, isGroup := sel.Over.(*clause.Group)
	require.True(isGroup)
}

func TestUnreferencedCteIsDropped(t *testing.T) {
	require := require.New(t)

	unused := node.NewSelect(node.NewFromTable("", "visit"), node.L("id", node.NewGet("person_id")))
	root := node.NewWith(
		node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id"))),
		node.Binding{Name: "unused", Sub: unused},
	)

	out := mustAssemble(t, root)
	// no binding is ever referenced, so With collapses away entirely.
	_, isWith := out.(*clause.With)
	require.False(isWith)
	_, isSelect := out.(*clause.Select)
	require.True(isSelect)
}

func TestReferencedCteIsKept(t *testing.T) {
	require := require.New(t)

	cte := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	root := node.NewWith(
		node.NewSelect(node.NewFromSymbol("recent"), node.L("id", node.NewGet("id"))),
		node.Binding{Name: "recent", Sub: cte},
	)

	out := mustAssemble(t, root)
	with, ok := out.(*clause.With)
	require.True(ok)
	require.Len(with.Ctes, 1)
	require.Equal("recent", with.Ctes[0].Name)
}

func TestDedupProjectionsDropsStructuralDuplicate(t *testing.T) {
	require := require.New(t)

	projections := []clause.Projection{
		{Expr: clause.NewID("n1", "", "state"), Label: "a"},
		{Expr: clause.NewID("n2", "", "state"), Label: "b"},
	}
	out := dedupProjections(projections)
	require.Len(out, 1)
	require.Equal("a", out[0].Label)
}

func TestAssignAliasesRenamesJoinBranchesDeterministically(t *testing.T) {
	require := require.New(t)

	left := node.NewFromTable("", "person")
	right := node.NewAs(node.NewFromTable("", "visit"), "v")
	join := node.NewJoin(left, right,
		node.NewFun("=", node.NewGet("person_id"), node.NewGet("v", "person_id")))
	root := node.NewSelect(join,
		node.L("pid", node.NewGet("person_id")),
		node.L("vdate", node.NewGet("v", "visit_date")))

	out := mustAssemble(t, root)
	sel, ok := out.(*clause.Select)
	require.True(ok)
	j, ok := sel.Over.(*clause.Join)
	require.True(ok)

	leftAs, ok := j.Left.(*clause.As)
	require.True(ok)
	require.Equal("person_1", leftAs.Alias)

	rightAs, ok := j.Right.(*clause.As)
	require.True(ok)
	require.Equal("visit_1", rightAs.Alias)

	qualified, ok := sel.Projections[1].Expr.(*clause.ID)
	require.True(ok)
	require.Equal("visit_1", qualified.Schema)
}
