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

package resolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
)

func personCatalog() *catalog.Catalog {
	cat := catalog.New("postgresql")
	cat.Add(catalog.Table{Name: "person", Columns: []string{"person_id", "year_of_birth", "state"}})
	cat.Add(catalog.Table{Name: "visit", Columns: []string{"person_id", "visit_date"}})
	return cat
}

func asCompileError(t *testing.T, err error) cerr.CompileError {
	t.Helper()
	ce, ok := err.(cerr.CompileError)
	require.True(t, ok, "expected a cerr.CompileError, got %T", err)
	return ce
}

func TestResolveSimpleGetPath(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
	)

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"id"}, res.ExposedOf(root).Labels())
}

func TestResolveUnknownColumnIsUnresolved(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewGet("nope")),
	)

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.Unresolved.Is(asCompileError(t, err)))
}

func TestResolveAmbiguousBareGetAcrossJoinBranches(t *testing.T) {
	require := require.New(t)

	left := node.NewFromTable("", "person")
	right := node.NewFromTable("", "visit")
	join := node.NewJoin(left, right, node.NewFun("=", node.NewGet("visit_date"), node.NewGet("visit_date")))

	root := node.NewSelect(join, node.L("pid", node.NewGet("person_id")))

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.AmbiguousColumn.Is(asCompileError(t, err)))
}

func TestResolveJoinDisambiguatedByAs(t *testing.T) {
	require := require.New(t)

	left := node.NewFromTable("", "person")
	right := node.NewAs(node.NewFromTable("", "visit"), "v")
	join := node.NewJoin(left, right,
		node.NewFun("=", node.NewGet("person_id"), node.NewGet("v", "person_id")))

	root := node.NewSelect(join,
		node.L("pid", node.NewGet("person_id")),
		node.L("vdate", node.NewGet("v", "visit_date")))

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"pid", "vdate"}, res.ExposedOf(root).Labels())
}

func TestResolveAggWithoutGroupIsError(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("n", node.NewAgg("count", node.NewGet("person_id"))),
	)

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.AggWithoutGroup.Is(asCompileError(t, err)))
}

func TestResolveAggUnderGroupResolvesAgainstPreAggregationInput(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(
		node.NewFromTable("", "person"),
		node.L("state", node.NewGet("state")),
	)
	root := node.NewSelect(group,
		node.L("state", node.NewGet("state")),
		node.L("n", node.NewAgg("count", node.NewGet("person_id"))),
	)

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"state", "n"}, res.ExposedOf(root).Labels())
}

func TestResolveWholeDatasetAggregationWithNoKeys(t *testing.T) {
	require := require.New(t)

	group := node.NewGroup(node.NewFromTable("", "person"))
	root := node.NewSelect(group, node.L("n", node.NewAgg("count", node.NewGet("person_id"))))

	_, err := Resolve(root, personCatalog())
	require.NoError(err)
}

func TestResolveUnboundVarIsInvalidBind(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(
		node.NewFromTable("", "person"),
		node.L("id", node.NewFun("=", node.NewGet("person_id"), node.NewVar("target"))),
	)

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.InvalidBind.Is(asCompileError(t, err)))
}

func TestResolveBindBindsVarFromOuterScope(t *testing.T) {
	require := require.New(t)

	sub := node.NewWhere(
		node.NewFromTable("", "visit"),
		node.NewFun("=", node.NewGet("person_id"), node.NewVar("target")),
	)
	bind := node.NewBind(sub, map[string]node.Scalar{
		"target": node.NewGet("person_id"),
	})
	join := node.NewJoin(node.NewFromTable("", "person"), node.NewAs(bind, "v"), node.NewLit(true))
	root := node.NewSelect(join, node.L("pid", node.NewGet("person_id")))

	_, err := Resolve(root, personCatalog())
	require.NoError(err)
}

func TestResolveAppendIntersectionDropsNonCommonColumns(t *testing.T) {
	require := require.New(t)

	a := node.NewSelect(node.NewFromTable("", "person"),
		node.L("id", node.NewGet("person_id")),
		node.L("yob", node.NewGet("year_of_birth")))
	b := node.NewSelect(node.NewFromTable("", "visit"),
		node.L("id", node.NewGet("person_id")),
		node.L("vdate", node.NewGet("visit_date")))

	root := node.NewAppend(a, b)

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"id"}, res.ExposedOf(root).Labels())
}

func TestResolveIterateRejectsNonSupersetStep(t *testing.T) {
	require := require.New(t)

	base := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	step := node.NewSelect(node.NewFromPrevIteration(), node.L("other", node.NewLit(1)))
	root := node.NewIterate(base, step)

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.CyclicIteration.Is(asCompileError(t, err)))
}

func TestResolveIterateAcceptsSupersetStep(t *testing.T) {
	require := require.New(t)

	base := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	step := node.NewSelect(node.NewFromPrevIteration(),
		node.L("id", node.NewGet("id")),
		node.L("extra", node.NewLit(1)))
	root := node.NewIterate(base, step)

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"id"}, res.ExposedOf(root).Labels())
}

func TestResolveFromPrevIterationOutsideIterateIsCyclic(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(node.NewFromPrevIteration(), node.L("x", node.NewLit(1)))

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.CyclicIteration.Is(asCompileError(t, err)))
}

func TestResolveWithBindingVisibleToSymbolReference(t *testing.T) {
	require := require.New(t)

	cte := node.NewSelect(node.NewFromTable("", "person"), node.L("id", node.NewGet("person_id")))
	root := node.NewWith(
		node.NewSelect(node.NewFromSymbol("recent"), node.L("id", node.NewGet("id"))),
		node.Binding{Name: "recent", Sub: cte},
	)

	res, err := Resolve(root, personCatalog())
	require.NoError(err)
	require.Equal([]string{"id"}, res.ExposedOf(root).Labels())
}

func TestResolveRequiredColumnsPrunesUnusedDefineOutput(t *testing.T) {
	require := require.New(t)

	defined := node.NewDefine(
		node.NewFromTable("", "person"),
		node.L("decade", node.NewFun("/", node.NewGet("year_of_birth"), node.NewLit(10))),
	)
	root := node.NewSelect(defined, node.L("id", node.NewGet("person_id")))

	res, err := Resolve(root, personCatalog())
	require.NoError(err)

	need := res.RequiredOf(defined)
	require.True(need["person_id"])
	require.False(need["decade"], "decade is never read downstream of Select")
}

func TestResolveUnknownTable(t *testing.T) {
	require := require.New(t)

	root := node.NewSelect(node.NewFromTable("", "nope"), node.L("x", node.NewLit(1)))

	_, err := Resolve(root, personCatalog())
	require.Error(err)
	require.True(cerr.UnknownTable.Is(asCompileError(t, err)))
}
