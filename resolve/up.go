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
	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
)

// up derives ds's exposed row-type bottom-up, recording it (and every
// descendant's) in exposed, and validates every scalar reachable from ds
// along the way. outer, when non-nil, is the row-type a correlated Bind
// embedded anywhere under ds may reference (spec.md §4.4). bound is the
// set of Var names legally referenceable at this point, accumulated by
// every enclosing Bind; it is threaded down unchanged except where a
// nested Bind extends it.
func (c *ctx) up(ds node.Dataset, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	var rt *node.RowType
	var err error

	switch d := ds.(type) {
	case *node.From:
		rt, err = c.upFrom(d)
	case *node.Select:
		rt, err = c.upSelect(d, outer, bound, exposed)
	case *node.Define:
		rt, err = c.upDefine(d, outer, bound, exposed)
	case *node.Where:
		rt, err = c.upWhere(d, outer, bound, exposed)
	case *node.Join:
		rt, err = c.upJoin(d, outer, bound, exposed)
	case *node.Group:
		rt, err = c.upGroup(d, outer, bound, exposed)
	case *node.Partition:
		rt, err = c.upPartition(d, outer, bound, exposed)
	case *node.Order:
		rt, err = c.upOrder(d, outer, bound, exposed)
	case *node.Limit:
		rt, err = c.up(d.Over, outer, bound, exposed)
	case *node.Append:
		rt, err = c.upAppend(d, outer, bound, exposed)
	case *node.As:
		rt, err = c.upAs(d, outer, bound, exposed)
	case *node.With:
		rt, err = c.upWith(d, outer, bound, exposed)
	case *node.WithExternal:
		rt, err = c.upWithExternal(d, outer, bound, exposed)
	case *node.Iterate:
		rt, err = c.upIterate(d, outer, bound, exposed)
	case *node.Bind:
		rt, err = c.upBind(d, outer, bound, exposed)
	default:
		return nil, cerr.At(cerr.NodeID(ds.NodeID()), cerr.Unresolved, "unknown node kind")
	}
	if err != nil {
		return nil, err
	}
	exposed[ds.NodeID()] = rt
	return rt, nil
}

func (c *ctx) upFrom(f *node.From) (*node.RowType, error) {
	switch f.Kind {
	case node.FromNothing:
		return node.NewRowType(), nil
	case node.FromRows:
		fields := make([]node.Field, len(f.Columns))
		for i, name := range f.Columns {
			fields[i] = node.Field{Label: name, Slot: &node.Slot{Label: name, Source: f.NodeID()}}
		}
		return node.NewRowType(fields...), nil
	case node.FromPrevIteration:
		if c.iterBase == nil {
			return nil, cerr.At(cerr.NodeID(f.NodeID()), cerr.CyclicIteration, "From(^) used outside Iterate")
		}
		c.prevIterSeen++
		if c.prevIterSeen > 1 {
			return nil, cerr.At(cerr.NodeID(f.NodeID()), cerr.CyclicIteration, "From(^) referenced more than once")
		}
		return c.iterBase, nil
	case node.FromSymbol:
		if rt, ok := c.lookupWith(f.Symbol); ok {
			return rt, nil
		}
		tbl, ok, err := c.cat.LookupSymbol(f.Symbol)
		if err != nil {
			return nil, cerr.At(cerr.NodeID(f.NodeID()), cerr.UnknownTable, f.Symbol)
		}
		if !ok {
			return nil, cerr.At(cerr.NodeID(f.NodeID()), cerr.UnknownTable, f.Symbol)
		}
		return rowTypeForColumns(f.NodeID(), tbl.Columns), nil
	default: // FromTable
		tbl, ok := c.cat.Lookup(f.Schema, f.Table)
		if !ok {
			return nil, cerr.At(cerr.NodeID(f.NodeID()), cerr.UnknownTable, f.Table)
		}
		return rowTypeForColumns(f.NodeID(), tbl.Columns), nil
	}
}

func rowTypeForColumns(owner node.ID, columns []string) *node.RowType {
	fields := make([]node.Field, len(columns))
	for i, name := range columns {
		fields[i] = node.Field{Label: name, Slot: &node.Slot{Label: name, Source: owner}}
	}
	return node.NewRowType(fields...)
}

func (c *ctx) upSelect(s *node.Select, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(s.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	fields := make([]node.Field, len(s.List))
	for i, l := range s.List {
		if err := c.resolveScalar(in, bound, l.Expr); err != nil {
			return nil, err
		}
		fields[i] = node.Field{Label: l.Label, Slot: &node.Slot{Label: l.Label, Source: s.NodeID()}}
	}
	return node.NewRowType(fields...), nil
}

func (c *ctx) upDefine(d *node.Define, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(d.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	var fields []node.Field
	for _, f := range in.Fields() {
		if f.AggHdl {
			continue
		}
		fields = append(fields, f)
	}
	for _, l := range d.List {
		if err := c.resolveScalar(in, bound, l.Expr); err != nil {
			return nil, err
		}
		newField := node.Field{Label: l.Label, Slot: &node.Slot{Label: l.Label, Source: d.NodeID()}}
		replaced := false
		for i, f := range fields {
			if f.Label == l.Label {
				fields[i] = newField
				replaced = true
				break
			}
		}
		if !replaced {
			fields = append(fields, newField)
		}
	}
	return node.NewRowType(fields...), nil
}

func (c *ctx) upWhere(w *node.Where, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(w.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	if err := c.resolveScalar(in, bound, w.Pred); err != nil {
		return nil, err
	}
	return in, nil
}

func (c *ctx) upJoin(j *node.Join, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	left, err := c.up(j.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	// The right branch may correlate back to the left branch (a LATERAL
	// join); extend outer with left's columns while resolving it.
	rightOuter := left
	if outer != nil {
		rightOuter = outer.Concat(left)
	}
	right, err := c.up(j.Right, rightOuter, bound, exposed)
	if err != nil {
		return nil, err
	}

	// When the right branch is As(name), upAs already wraps its columns
	// into a single nested field; Concat here just appends that one field
	// alongside left's, giving exactly the disambiguated scope described
	// by spec.md §4.3 without any extra casing.
	combined := left.Concat(right)

	if err := c.resolveScalar(combined, bound, j.On); err != nil {
		return nil, err
	}
	return combined, nil
}

func (c *ctx) upGroup(g *node.Group, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(g.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	c.recordGroupInput(g.NodeID(), in)
	fields := make([]node.Field, 0, len(g.Keys)+1)
	for _, k := range g.Keys {
		if err := c.resolveScalar(in, bound, k.Expr); err != nil {
			return nil, err
		}
		fields = append(fields, node.Field{Label: k.Label, Slot: &node.Slot{Label: k.Label, Source: g.NodeID()}})
	}
	// Hidden aggregation-handle sentinel: carries the Group's NodeID even
	// when Keys is empty (whole-dataset aggregation), so a later Agg can
	// still find this producer by scanning the scope's fields.
	fields = append(fields, node.Field{AggHdl: true, Slot: &node.Slot{Source: g.NodeID()}})
	return node.NewRowType(fields...), nil
}

func (c *ctx) upPartition(p *node.Partition, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(p.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	c.recordPartitionInput(p.NodeID(), in)
	for _, k := range p.Keys {
		if err := c.resolveScalar(in, bound, k); err != nil {
			return nil, err
		}
	}
	for _, s := range p.Sort {
		if err := c.resolveScalar(in, bound, s); err != nil {
			return nil, err
		}
	}
	// Partition does not introduce a subquery boundary; it only stands
	// ready as an aggregation handle for downstream window aggregates,
	// looked up later by the Partition's own NodeID (see resolveAgg),
	// not through the scope-scanning path Group uses.
	return in, nil
}

func (c *ctx) upOrder(o *node.Order, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(o.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	for _, k := range o.Keys {
		if err := c.resolveScalar(in, bound, k); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func (c *ctx) upAppend(a *node.Append, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	if len(a.Branches) == 0 {
		return node.NewRowType(), nil
	}
	first, err := c.up(a.Branches[0], outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	result := first
	for _, b := range a.Branches[1:] {
		rt, err := c.up(b, outer, bound, exposed)
		if err != nil {
			return nil, err
		}
		result = result.Intersect(rt)
	}
	if len(result.Labels()) == 0 {
		return nil, cerr.At(cerr.NodeID(a.NodeID()), cerr.Unresolved, "Append branches share no common column")
	}
	return result, nil
}

func (c *ctx) upAs(a *node.As, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	in, err := c.up(a.Over, outer, bound, exposed)
	if err != nil {
		return nil, err
	}
	return node.NewRowType(node.Field{Label: a.Name, Nested: in}), nil
}

func (c *ctx) upWith(w *node.With, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	var pops []func()
	defer func() {
		for i := len(pops) - 1; i >= 0; i-- {
			pops[i]()
		}
	}()
	for _, b := range w.Bindings {
		rt, err := c.up(b.Sub, outer, bound, exposed)
		if err != nil {
			return nil, err
		}
		pops = append(pops, c.pushWith(b.Name, rt))
	}
	return c.up(w.Over, outer, bound, exposed)
}

func (c *ctx) upWithExternal(w *node.WithExternal, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	var pops []func()
	defer func() {
		for i := len(pops) - 1; i >= 0; i-- {
			pops[i]()
		}
	}()
	for _, b := range w.Bindings {
		rt, err := c.up(b.Sub, outer, bound, exposed)
		if err != nil {
			return nil, err
		}
		pops = append(pops, c.pushWith(b.Name, rt))
	}
	return c.up(w.Over, outer, bound, exposed)
}

func (c *ctx) upIterate(it *node.Iterate, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	base, err := c.up(it.Base, outer, bound, exposed)
	if err != nil {
		return nil, err
	}

	savedBase, savedSeen := c.iterBase, c.prevIterSeen
	c.iterBase, c.prevIterSeen = base, 0
	step, err := c.up(it.Step, outer, bound, exposed)
	c.iterBase, c.prevIterSeen = savedBase, savedSeen
	if err != nil {
		return nil, err
	}

	for _, label := range base.Labels() {
		if step.Matches(label) == 0 {
			return nil, cerr.At(cerr.NodeID(it.NodeID()), cerr.CyclicIteration,
				"step row-type is not a superset of the base's: missing "+label)
		}
	}
	return base, nil
}

func (c *ctx) upBind(b *node.Bind, outer *node.RowType, bound map[string]bool, exposed map[node.ID]*node.RowType) (*node.RowType, error) {
	nested := make(map[string]bool, len(bound)+len(b.Params))
	for name := range bound {
		nested[name] = true
	}
	for name, val := range b.Params {
		nested[name] = true
		if outer == nil {
			continue
		}
		if err := c.resolveScalar(outer, bound, val); err != nil {
			return nil, err
		}
	}
	return c.up(b.Sub, outer, nested, exposed)
}
