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

import "github.com/queryplan/queryplan/clause"

// rebuildChildren applies f to every direct child of n and reconstructs
// n around the results, leaving leaves (ID, Literal, Placeholder, Note)
// untouched. Every rewrite rule in this package composes with every
// other by going through this one function, rather than each rule
// re-implementing its own tree walk.
func rebuildChildren(n clause.Node, f func(clause.Node) clause.Node) clause.Node {
	switch v := n.(type) {
	case *clause.ID, *clause.Literal, *clause.Placeholder, *clause.Note:
		return n

	case *clause.As:
		return clause.NewAs(v.From(), f(v.Over), v.Alias).WithColumnAliases(v.ColumnAliases)

	case *clause.Values:
		rows := make([][]clause.Node, len(v.Rows))
		for i, row := range v.Rows {
			cells := make([]clause.Node, len(row))
			for j, c := range row {
				cells[j] = f(c)
			}
			rows[i] = cells
		}
		return clause.NewValues(v.From(), rows)

	case *clause.Operator:
		args := make([]clause.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = f(a)
		}
		return clause.NewOperator(v.From(), v.Name, args...)

	case *clause.Function:
		args := make([]clause.Node, len(v.Args))
		for i, a := range v.Args {
			args[i] = f(a)
		}
		fn := clause.NewFunction(v.From(), v.Name, args...)
		if v.Filter != nil {
			fn = fn.WithFilter(f(v.Filter))
		}
		if v.Over != nil {
			w := &clause.Window{Frame: v.Over.Frame}
			w.Keys = make([]clause.Node, len(v.Over.Keys))
			for i, k := range v.Over.Keys {
				w.Keys[i] = f(k)
			}
			w.Order = make([]clause.OrderKey, len(v.Over.Order))
			for i, ok := range v.Over.Order {
				w.Order[i] = clause.OrderKey{Expr: f(ok.Expr), Desc: ok.Desc, Nulls: ok.Nulls}
			}
			fn = fn.WithOver(w)
		}
		return fn

	case *clause.From:
		return clause.NewFrom(v.From(), f(v.Over))

	case *clause.Where:
		return clause.NewWhere(v.From(), f(v.Over), f(v.Cond))

	case *clause.Select:
		projections := make([]clause.Projection, len(v.Projections))
		for i, p := range v.Projections {
			projections[i] = clause.Projection{Expr: f(p.Expr), Label: p.Label}
		}
		sel := clause.NewSelect(v.From(), f(v.Over), projections...)
		if v.Distinct {
			sel = sel.WithDistinct()
		}
		return sel

	case *clause.Join:
		return clause.NewJoin(v.From(), f(v.Left), f(v.Right), f(v.On), v.Kind)

	case *clause.Group:
		keys := make([]clause.Node, len(v.Keys))
		for i, k := range v.Keys {
			keys[i] = f(k)
		}
		g := clause.NewGroup(v.From(), f(v.Over), keys...)
		g.Sets = v.Sets
		return g

	case *clause.Having:
		return clause.NewHaving(v.From(), f(v.Over), f(v.Cond))

	case *clause.Order:
		keys := make([]clause.OrderKey, len(v.Keys))
		for i, k := range v.Keys {
			keys[i] = clause.OrderKey{Expr: f(k.Expr), Desc: k.Desc, Nulls: k.Nulls}
		}
		return clause.NewOrder(v.From(), f(v.Over), keys...)

	case *clause.Limit:
		return clause.NewLimit(v.From(), f(v.Over), v.Offset, v.Count)

	case *clause.UnionAll:
		overs := make([]clause.Node, len(v.Overs))
		for i, o := range v.Overs {
			overs[i] = f(o)
		}
		return clause.NewUnionAll(v.From(), overs...)

	case *clause.With:
		ctes := make([]clause.CTE, len(v.Ctes))
		for i, c := range v.Ctes {
			ctes[i] = clause.CTE{Name: c.Name, Body: f(c.Body), Materialized: c.Materialized, Columns: c.Columns}
		}
		return clause.NewWith(v.From(), f(v.Over), v.Recursive, ctes...)

	default:
		return n
	}
}

// childrenOf returns n's direct children for read-only traversal (name
// collection, reference counting) without reconstructing anything.
func childrenOf(n clause.Node) []clause.Node {
	var out []clause.Node
	rebuildChildren(n, func(c clause.Node) clause.Node {
		out = append(out, c)
		return c
	})
	return out
}
