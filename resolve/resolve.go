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
	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/node"
)

// Result is the output of the Resolution pass: every node's exposed
// row-type, keyed by NodeID, plus the set of top-level columns each node
// actually needs to produce for the rest of the tree (spec.md §4.3, used
// by translate/assemble to prune unread table columns).
type Result struct {
	Exposed  map[node.ID]*node.RowType
	Required map[node.ID]map[string]bool
}

// ExposedOf is a convenience lookup; it panics if ds was not part of the
// tree Resolve was called on, since that indicates a caller bug rather
// than a recoverable condition.
func (r *Result) ExposedOf(ds node.Dataset) *node.RowType {
	rt, ok := r.Exposed[ds.NodeID()]
	if !ok {
		panic("resolve: node not present in this Result")
	}
	return rt
}

// RequiredOf reports the column labels ds must produce. A nil/absent
// entry (possible for nodes never reached by the downward sweep, which
// should not happen for any node reachable from the root) is treated as
// "everything", the conservative default.
func (r *Result) RequiredOf(ds node.Dataset) map[string]bool {
	if need, ok := r.Required[ds.NodeID()]; ok {
		return need
	}
	return allLabels(r.ExposedOf(ds))
}

// Resolve runs the upward exposed-row-type sweep followed by the downward
// required-columns sweep over root, against cat.
func Resolve(root node.Dataset, cat *catalog.Catalog) (*Result, error) {
	c := &ctx{cat: cat}
	exposed := map[node.ID]*node.RowType{}
	rt, err := c.up(root, nil, nil, exposed)
	if err != nil {
		return nil, err
	}

	required := map[node.ID]map[string]bool{}
	c.down(root, allLabels(rt), exposed, required)

	return &Result{Exposed: exposed, Required: required}, nil
}

func allLabels(rt *node.RowType) map[string]bool {
	out := map[string]bool{}
	for _, l := range rt.Labels() {
		out[l] = true
	}
	return out
}

// collectGetLabels walks s and records the top-level label of every Get
// it finds (the first path segment; a dotted Get still requires its
// whole root column from the producing node, since nested-field pruning
// is not attempted). Agg/Fun/Sort arguments are walked recursively; Var
// is a Bind parameter reference and contributes nothing (it resolves in
// the outer scope, already accounted for when the Bind itself was
// resolved).
func collectGetLabels(s node.Scalar, out map[string]bool) {
	switch s := s.(type) {
	case nil:
	case *node.Get:
		if len(s.Path) > 0 {
			out[s.Path[0]] = true
		}
	case *node.Fun:
		for _, a := range s.Args {
			collectGetLabels(a, out)
		}
	case *node.Agg:
		for _, a := range s.Args {
			collectGetLabels(a, out)
		}
		if s.Filter != nil {
			collectGetLabels(s.Filter, out)
		}
	case *node.Sort:
		collectGetLabels(s.Expr, out)
	}
}

// down propagates need, the set of columns ds must expose, to ds's
// upstream input(s), recording ds's own requirement along the way.
func (c *ctx) down(ds node.Dataset, need map[string]bool, exposed map[node.ID]*node.RowType, required map[node.ID]map[string]bool) {
	required[ds.NodeID()] = need

	switch d := ds.(type) {
	case *node.From:
		// leaf: nothing further to propagate.

	case *node.Select:
		childNeed := map[string]bool{}
		for _, l := range d.List {
			collectGetLabels(l.Expr, childNeed)
		}
		c.down(d.Over, childNeed, exposed, required)

	case *node.Define:
		overridden := map[string]bool{}
		referenced := map[string]bool{}
		for _, l := range d.List {
			overridden[l.Label] = true
			collectGetLabels(l.Expr, referenced)
		}
		childNeed := map[string]bool{}
		for label := range need {
			if !overridden[label] {
				childNeed[label] = true
			}
		}
		for label := range referenced {
			childNeed[label] = true
		}
		c.down(d.Over, childNeed, exposed, required)

	case *node.Where:
		childNeed := map[string]bool{}
		for label := range need {
			childNeed[label] = true
		}
		collectGetLabels(d.Pred, childNeed)
		c.down(d.Over, childNeed, exposed, required)

	case *node.Join:
		combined := map[string]bool{}
		for label := range need {
			combined[label] = true
		}
		collectGetLabels(d.On, combined)

		left := exposed[d.Over.NodeID()]
		right := exposed[d.Right.NodeID()]
		leftNeed := map[string]bool{}
		rightNeed := map[string]bool{}
		for label := range combined {
			if _, ok := left.Field(label); ok {
				leftNeed[label] = true
			}
			if _, ok := right.Field(label); ok {
				rightNeed[label] = true
			}
		}
		c.down(d.Over, leftNeed, exposed, required)
		c.down(d.Right, rightNeed, exposed, required)

	case *node.Group:
		// Aggregates referencing this Group live in a sibling/descendant
		// scalar position, not on the Group node itself, so precise
		// pruning of the pre-aggregation input would require a separate
		// whole-tree Agg collection pass keyed by producer. As a
		// conservative simplification every column of the input is kept
		// (never wrong, just a missed optimization) alongside whatever
		// the Keys expressions touch.
		childNeed := allLabels(exposed[d.Over.NodeID()])
		c.down(d.Over, childNeed, exposed, required)

	case *node.Partition:
		childNeed := allLabels(exposed[d.Over.NodeID()])
		c.down(d.Over, childNeed, exposed, required)

	case *node.Order:
		childNeed := map[string]bool{}
		for label := range need {
			childNeed[label] = true
		}
		for _, k := range d.Keys {
			collectGetLabels(k, childNeed)
		}
		c.down(d.Over, childNeed, exposed, required)

	case *node.Limit:
		c.down(d.Over, need, exposed, required)

	case *node.Append:
		for _, b := range d.Branches {
			c.down(b, need, exposed, required)
		}

	case *node.As:
		if need[d.Name] {
			c.down(d.Over, allLabels(exposed[d.Over.NodeID()]), exposed, required)
		} else {
			c.down(d.Over, map[string]bool{}, exposed, required)
		}

	case *node.With:
		c.down(d.Over, need, exposed, required)
		for _, b := range d.Bindings {
			// A binding may be referenced more than once with different
			// column needs; tracking the precise union would require
			// visiting Over first to discover every reference. As a
			// conservative simplification every binding is fully
			// materialized.
			c.down(b.Sub, allLabels(exposed[b.Sub.NodeID()]), exposed, required)
		}

	case *node.WithExternal:
		c.down(d.Over, need, exposed, required)
		for _, b := range d.Bindings {
			c.down(b.Sub, allLabels(exposed[b.Sub.NodeID()]), exposed, required)
		}

	case *node.Iterate:
		c.down(d.Base, allLabels(exposed[d.Base.NodeID()]), exposed, required)
		c.down(d.Step, allLabels(exposed[d.Step.NodeID()]), exposed, required)

	case *node.Bind:
		c.down(d.Sub, allLabels(exposed[d.Sub.NodeID()]), exposed, required)
	}
}
