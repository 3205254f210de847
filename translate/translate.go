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

// Package translate implements the Translation pass (spec.md §4.4): a
// node-for-node lowering of the semantic query-algebra tree into the
// lower-level clause tree render eventually serializes. Translation does
// not merge or flatten anything — a chain of Select(Where(Group(...)))
// lowers to the same chain of clause nodes, naively nested. The Assembly
// pass then folds a Where that sits directly atop a Group into a HAVING
// and turns an aggregate-free Select over a Group into SELECT DISTINCT;
// it does not merge subqueries into their parent SELECT or move WITH
// clauses.
package translate

import (
	"strconv"

	"github.com/queryplan/queryplan/clause"
	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
	"github.com/queryplan/queryplan/resolve"
)

// ctx carries the state threaded through one Translate call.
type ctx struct {
	res *resolve.Result

	aliasCounter int
	// iterName is the CTE name assigned to the nearest enclosing Iterate,
	// substituted in place of From(^) while lowering its Step.
	iterName string
	// tableAlias maps a base-table From's NodeID to the placeholder alias
	// its clause.As wrapper was given, so a Get that traces back to that
	// table (via resolve.Result's Slot.Source) can be qualified with the
	// same placeholder. assemble.assignAliases renumbers the placeholder
	// to its final tablename_N form afterward; translate only needs both
	// sides — the As and the qualifying ID — to agree on one string.
	tableAlias map[node.ID]string
}

func (c *ctx) freshAlias(hint string) string {
	c.aliasCounter++
	return hint + "_t" + strconv.Itoa(c.aliasCounter)
}

// qualifierFor returns the placeholder alias tracked for slot's producing
// table, or "" if slot is nil or does not trace back to one (a computed
// column, a CTE/symbol reference, or a Values literal never gets qualified).
func (c *ctx) qualifierFor(slot *node.Slot) string {
	if slot == nil {
		return ""
	}
	return c.tableAlias[slot.Source]
}

// Translate lowers root into a clause tree, using res (the output of
// resolve.Resolve run over the same root) to turn Get paths into concrete
// column references and to expand Define's passthrough columns.
func Translate(root node.Dataset, res *resolve.Result) (clause.Node, error) {
	c := &ctx{res: res, tableAlias: map[node.ID]string{}}
	return c.translate(root, nil)
}

func from(ds node.Dataset) cerr.NodeID { return cerr.NodeID(ds.NodeID()) }

// translate lowers ds. subst holds the already-translated values bound by
// every enclosing Bind, keyed by parameter name; a Var(name) scalar
// resolves by direct lookup rather than re-translating anything.
func (c *ctx) translate(ds node.Dataset, subst map[string]clause.Node) (clause.Node, error) {
	switch d := ds.(type) {
	case *node.From:
		return c.translateFrom(d, subst)

	case *node.Select:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		scope := c.res.ExposedOf(d.Over)
		projections := make([]clause.Projection, len(d.List))
		for i, l := range d.List {
			expr, err := c.translateScalar(l.Expr, subst, scope)
			if err != nil {
				return nil, err
			}
			projections[i] = clause.Projection{Expr: expr, Label: l.Label}
		}
		return clause.NewSelect(from(d), over, projections...), nil

	case *node.Define:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		overridden := make(map[string]bool, len(d.List))
		for _, l := range d.List {
			overridden[l.Label] = true
		}
		scope := c.res.ExposedOf(d.Over)
		var projections []clause.Projection
		for _, f := range scope.Fields() {
			if f.AggHdl || overridden[f.Label] {
				continue
			}
			projections = append(projections, clause.Projection{
				Expr:  clause.NewID(from(d), c.qualifierFor(f.Slot), f.Label),
				Label: f.Label,
			})
		}
		for _, l := range d.List {
			expr, err := c.translateScalar(l.Expr, subst, scope)
			if err != nil {
				return nil, err
			}
			projections = append(projections, clause.Projection{Expr: expr, Label: l.Label})
		}
		return clause.NewSelect(from(d), over, projections...), nil

	case *node.Where:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		cond, err := c.translateScalar(d.Pred, subst, c.res.ExposedOf(d.Over))
		if err != nil {
			return nil, err
		}
		return clause.NewWhere(from(d), over, cond), nil

	case *node.Join:
		return c.translateJoin(d, subst)

	case *node.Group:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		scope := c.res.ExposedOf(d.Over)
		keys := make([]clause.Node, len(d.Keys))
		for i, k := range d.Keys {
			expr, err := c.translateScalar(k.Expr, subst, scope)
			if err != nil {
				return nil, err
			}
			keys[i] = expr
		}
		return clause.NewGroup(from(d), over, keys...), nil

	case *node.Partition:
		// Partition introduces no clause of its own; it is consumed by
		// sibling window Aggs through translateAgg, keyed by its NodeID.
		return c.translate(d.Over, subst)

	case *node.Order:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		scope := c.res.ExposedOf(d.Over)
		keys := make([]clause.OrderKey, len(d.Keys))
		for i, k := range d.Keys {
			ok, err := c.translateOrderKey(k, subst, scope)
			if err != nil {
				return nil, err
			}
			keys[i] = ok
		}
		return clause.NewOrder(from(d), over, keys...), nil

	case *node.Limit:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		return clause.NewLimit(from(d), over, d.Offset, d.Count), nil

	case *node.Append:
		overs := make([]clause.Node, len(d.Branches))
		for i, b := range d.Branches {
			over, err := c.translate(b, subst)
			if err != nil {
				return nil, err
			}
			overs[i] = over
		}
		return clause.NewUnionAll(from(d), overs...), nil

	case *node.As:
		over, err := c.translate(d.Over, subst)
		if err != nil {
			return nil, err
		}
		// d.Over may be a base From, already wrapped in a placeholder
		// clause.As by translateFrom; collapse that wrapper instead of
		// nesting two As layers, so the user-chosen name becomes the one
		// and only alias (and aliasHint still sees straight through to the
		// real source when assignAliases renumbers everything else).
		if inner, ok := over.(*clause.As); ok {
			if _, isFrom := d.Over.(*node.From); isFrom {
				named := clause.NewAs(from(d), inner.Over, d.Name)
				if len(inner.ColumnAliases) > 0 {
					named = named.WithColumnAliases(inner.ColumnAliases)
				}
				return named, nil
			}
		}
		return clause.NewAs(from(d), over, d.Name), nil

	case *node.With:
		return c.translateWith(d, subst)

	case *node.WithExternal:
		// Bindings already exist server-side; translate only the body,
		// referring to them by name via whatever From(symbol) emits.
		return c.translate(d.Over, subst)

	case *node.Iterate:
		return c.translateIterate(d, subst)

	case *node.Bind:
		nested := make(map[string]clause.Node, len(subst)+len(d.Params))
		for k, v := range subst {
			nested[k] = v
		}
		for name, val := range d.Params {
			// Params are evaluated against the Bind's enclosing scope, which
			// has no single producing dataset of its own here; they fall
			// back to unqualified columns, same as before this table's Get
			// qualification existed.
			expr, err := c.translateScalar(val, subst, nil)
			if err != nil {
				return nil, err
			}
			nested[name] = expr
		}
		return c.translate(d.Sub, nested)

	default:
		return nil, cerr.At(from(ds), cerr.Unresolved, "translate: unknown node kind")
	}
}

func (c *ctx) translateFrom(f *node.From, subst map[string]clause.Node) (clause.Node, error) {
	switch f.Kind {
	case node.FromNothing:
		return clause.NewValues(from(f), [][]clause.Node{{}}), nil
	case node.FromRows:
		rows := make([][]clause.Node, len(f.Rows))
		for i, row := range f.Rows {
			cells := make([]clause.Node, len(row))
			for j, cell := range row {
				expr, err := c.translateScalar(cell, subst, nil)
				if err != nil {
					return nil, err
				}
				cells[j] = expr
			}
			rows[i] = cells
		}
		return clause.NewAs(from(f), clause.NewValues(from(f), rows), c.freshAlias("values")).
			WithColumnAliases(f.Columns), nil
	case node.FromPrevIteration:
		return clause.NewID(from(f), "", c.iterName), nil
	case node.FromSymbol:
		return clause.NewID(from(f), "", f.Symbol), nil
	default: // FromTable
		// spec.md §4.4/invariant 6: every base table gets a deterministic
		// tablename_N alias, even standing alone. The placeholder here is
		// just a consistent key shared with qualifierFor; assemble's
		// assignAliases renumbers it (by the same table-name hint) to its
		// final form in one tree-order pass.
		alias := c.freshAlias(f.Table)
		c.tableAlias[f.NodeID()] = alias
		return clause.NewAs(from(f), clause.NewID(from(f), f.Schema, f.Table), alias), nil
	}
}

// translateJoin lowers a Join, eliding it entirely when it is marked
// Optional and nothing downstream actually needs a column the right
// branch exposes (spec.md §4.4, §7 — the one non-error recovery the core
// performs).
func (c *ctx) translateJoin(j *node.Join, subst map[string]clause.Node) (clause.Node, error) {
	if j.Optional {
		needed := c.res.RequiredOf(j)
		rightExposed := c.res.ExposedOf(j.Right)
		used := false
		for _, label := range rightExposed.Labels() {
			if needed[label] {
				used = true
				break
			}
		}
		if !used {
			return c.translate(j.Over, subst)
		}
	}

	left, err := c.translateJoinSide(j.Over, subst)
	if err != nil {
		return nil, err
	}
	right, err := c.translateJoinSide(j.Right, subst)
	if err != nil {
		return nil, err
	}
	on, err := c.translateScalar(j.On, subst, c.res.ExposedOf(j))
	if err != nil {
		return nil, err
	}

	kind := clause.InnerJoin
	if j.LeftOuter {
		kind = clause.LeftJoin
	}
	return clause.NewJoin(from(j), left, right, on, kind), nil
}

// translateJoinSide always gives a join branch a stable alias, so
// self-joins and correlated references never collide (spec.md §4.3's
// Join-branch disambiguation carried through to generated SQL).
func (c *ctx) translateJoinSide(ds node.Dataset, subst map[string]clause.Node) (clause.Node, error) {
	lowered, err := c.translate(ds, subst)
	if err != nil {
		return nil, err
	}
	if _, already := lowered.(*clause.As); already {
		return lowered, nil
	}
	return clause.NewAs(from(ds), lowered, c.freshAlias("j")), nil
}

func (c *ctx) translateWith(w *node.With, subst map[string]clause.Node) (clause.Node, error) {
	ctes := make([]clause.CTE, len(w.Bindings))
	for i, b := range w.Bindings {
		body, err := c.translate(b.Sub, subst)
		if err != nil {
			return nil, err
		}
		ctes[i] = clause.CTE{Name: b.Name, Body: body, Materialized: int(b.Materialized)}
	}
	over, err := c.translate(w.Over, subst)
	if err != nil {
		return nil, err
	}
	return clause.NewWith(from(w), over, false, ctes...), nil
}

func (c *ctx) translateIterate(it *node.Iterate, subst map[string]clause.Node) (clause.Node, error) {
	name := c.freshAlias("iter")

	base, err := c.translate(it.Base, subst)
	if err != nil {
		return nil, err
	}

	savedName := c.iterName
	c.iterName = name
	step, err := c.translate(it.Step, subst)
	c.iterName = savedName
	if err != nil {
		return nil, err
	}

	body := clause.NewUnionAll(from(it), base, step)
	ref := clause.NewID(from(it), "", name)
	return clause.NewWith(from(it), ref, true, clause.CTE{Name: name, Body: body}), nil
}
