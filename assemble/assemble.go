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

// Package assemble implements the Assembly pass (spec.md §4.5): it
// rewrites the naively-nested clause tree translation produces into
// valid, minimal SQL shape — folding a Where sitting directly atop a
// Group into a Having, collapsing a keys-only Group with no downstream
// aggregate into SELECT DISTINCT, deduplicating structurally identical
// projections, dropping never-referenced WITH bindings, and assigning
// every subquery/join-branch alias its final, deterministic name.
package assemble

import (
	"fmt"

	"github.com/mitchellh/hashstructure"

	"github.com/queryplan/queryplan/clause"
)

// Assemble runs every rewrite rule until the tree stops changing, for at
// most 8 passes, and returns the result.
// It never fails: every rule is total over any tree translate can
// produce, so there is nothing left to validate that resolve/translate
// did not already guarantee.
func Assemble(root clause.Node) clause.Node {
	prev := root
	for i := 0; i < 8; i++ {
		next := rewrite(prev)
		if sameShape(next, prev) {
			prev = next
			break
		}
		prev = next
	}
	return assignAliases(prev)
}

// rewrite performs one bottom-up pass applying every structural rule.
func rewrite(n clause.Node) clause.Node {
	n = rebuildChildren(n, rewrite)

	switch v := n.(type) {
	case *clause.Where:
		if isGroupLike(v.Over) {
			return clause.NewHaving(v.From(), v.Over, v.Cond)
		}
		return v

	case *clause.Select:
		if g, ok := v.Over.(*clause.Group); ok && !anyAggregate(v.Projections) {
			return clause.NewSelect(v.From(), g.Over, dedupProjections(v.Projections)...).WithDistinct()
		}
		return clause.NewSelect(v.From(), v.Over, dedupProjections(v.Projections)...)

	case *clause.With:
		kept := dropUnreferencedCTEs(v)
		if len(kept) == 0 {
			return v.Over
		}
		return clause.NewWith(v.From(), v.Over, v.Recursive, kept...)

	default:
		return n
	}
}

// isGroupLike reports whether n is itself a Group clause. A Group wrapped
// in any other clause does not match; Where always lowers directly atop
// its Over, so a Where over a Group sees the Group as its immediate child.
func isGroupLike(n clause.Node) bool {
	_, ok := n.(*clause.Group)
	return ok
}

// anyAggregate reports whether any projection is, or contains, a window
// or grouped aggregate — i.e. whether the enclosing Select still needs
// its GROUP BY, as opposed to only ever projecting the grouping keys
// (spec.md §9 Open Question 1).
func anyAggregate(projections []clause.Projection) bool {
	for _, p := range projections {
		if containsFunction(p.Expr) {
			return true
		}
	}
	return false
}

func containsFunction(n clause.Node) bool {
	switch v := n.(type) {
	case *clause.Function:
		return true
	case *clause.Operator:
		for _, a := range v.Args {
			if containsFunction(a) {
				return true
			}
		}
	}
	return false
}

// dedupProjections drops a later projection whose expression is
// structurally identical to an earlier one in the same list, keeping the
// first label (spec.md §4.5 "duplicate projection/aggregate dedup").
func dedupProjections(projections []clause.Projection) []clause.Projection {
	seen := map[uint64]bool{}
	out := make([]clause.Projection, 0, len(projections))
	for _, p := range projections {
		h, err := hashstructure.Hash(p.Expr, nil)
		if err != nil || !seen[h] {
			if err == nil {
				seen[h] = true
			}
			out = append(out, p)
		}
	}
	return out
}

// dropUnreferencedCTEs keeps only the bindings whose name is referenced
// somewhere in w.Over or in another kept binding's own body (clause/query.go:
// "Assembly drops entries from Ctes that are never referenced from Over").
func dropUnreferencedCTEs(w *clause.With) []clause.CTE {
	referenced := map[string]bool{}
	collectIDNames(w.Over, referenced)

	kept := make([]clause.CTE, 0, len(w.Ctes))
	changed := true
	remaining := append([]clause.CTE{}, w.Ctes...)
	for changed {
		changed = false
		next := remaining[:0:0]
		for _, c := range remaining {
			if referenced[c.Name] {
				kept = append(kept, c)
				collectIDNames(c.Body, referenced)
				changed = true
				continue
			}
			next = append(next, c)
		}
		remaining = next
	}
	return kept
}

func collectIDNames(n clause.Node, out map[string]bool) {
	if n == nil {
		return
	}
	if id, ok := n.(*clause.ID); ok && id.Schema == "" {
		out[id.Name] = true
	}
	for _, child := range childrenOf(n) {
		collectIDNames(child, out)
	}
}

// sameShape is a cheap, conservative equality check used to detect a
// rewrite fixpoint: identical structural hash of the whole tree.
func sameShape(a, b clause.Node) bool {
	ha, errA := hashstructure.Hash(a, nil)
	hb, errB := hashstructure.Hash(b, nil)
	if errA != nil || errB != nil {
		return false
	}
	return ha == hb
}

// assignAliases walks the finished tree and replaces every As's
// placeholder alias (assigned by translate) with a deterministic
// "<hint>_<n>" name, renumbered in tree order, and rewrites every bare
// column-qualifier ID that referenced the old name.
func assignAliases(root clause.Node) clause.Node {
	counters := map[string]int{}
	renames := map[string]string{}

	var assign func(clause.Node) clause.Node
	assign = func(n clause.Node) clause.Node {
		n = rebuildChildren(n, assign)
		as, ok := n.(*clause.As)
		if !ok {
			return n
		}
		hint := aliasHint(as.Over)
		counters[hint]++
		newAlias := fmt.Sprintf("%s_%d", hint, counters[hint])
		renames[as.Alias] = newAlias
		return clause.NewAs(as.From(), as.Over, newAlias).WithColumnAliases(as.ColumnAliases)
	}
	renamed := assign(root)

	var substitute func(clause.Node) clause.Node
	substitute = func(n clause.Node) clause.Node {
		n = rebuildChildren(n, substitute)
		if id, ok := n.(*clause.ID); ok {
			if newName, found := renames[id.Schema]; found {
				return clause.NewID(id.From(), newName, id.Name)
			}
		}
		return n
	}
	return substitute(renamed)
}

func aliasHint(n clause.Node) string {
	switch v := n.(type) {
	case *clause.ID:
		return v.Name
	case *clause.Values:
		return "values"
	default:
		return "sub"
	}
}
