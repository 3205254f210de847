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

package clause

import "github.com/queryplan/queryplan/internal/cerr"

// OrderKey is a rendered sort key: expression, direction, null placement.
type OrderKey struct {
	Expr  Node
	Desc  bool
	Nulls string // "", "NULLS FIRST", "NULLS LAST"
}

// Projection is one labeled output column of a SELECT.
type Projection struct {
	Expr  Node
	Label string
}

// From wraps a table/subquery source, optionally aliased.
type From struct {
	envelope
	Over Node // *As, *ID, *Values, or a reference produced by With/Iterate
}

func (*From) clauseNode() {}

// NewFrom builds a FROM clause.
func NewFrom(from cerr.NodeID, over Node) *From {
	return &From{envelope: newEnvelope(from), Over: over}
}

// Where filters rows of Over by Cond.
type Where struct {
	envelope
	Over Node
	Cond Node
}

func (*Where) clauseNode() {}

// NewWhere builds a WHERE clause.
func NewWhere(from cerr.NodeID, over Node, cond Node) *Where {
	return &Where{envelope: newEnvelope(from), Over: over, Cond: cond}
}

// Select fixes Over's output columns to Projections, optionally
// deduplicated (DISTINCT).
type Select struct {
	envelope
	Over        Node
	Distinct    bool
	Projections []Projection
}

func (*Select) clauseNode() {}

// NewSelect builds a SELECT clause.
func NewSelect(from cerr.NodeID, over Node, projections ...Projection) *Select {
	return &Select{envelope: newEnvelope(from), Over: over, Projections: projections}
}

// WithDistinct returns a copy marked DISTINCT.
func (s *Select) WithDistinct() *Select {
	cp := *s
	cp.Distinct = true
	return &cp
}

// JoinKind selects the join type emitted.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	CrossJoin
	LateralJoin
	LeftLateralJoin
)

// Join correlates Left and Right by On (empty for CROSS JOIN).
type Join struct {
	envelope
	Left  Node
	Right Node
	On    Node
	Kind  JoinKind
}

func (*Join) clauseNode() {}

// NewJoin builds a join clause.
func NewJoin(from cerr.NodeID, left, right Node, on Node, kind JoinKind) *Join {
	return &Join{envelope: newEnvelope(from), Left: left, Right: right, On: on, Kind: kind}
}

// Group partitions Over by Keys. Sets holds GROUPING SETS/ROLLUP/CUBE
// key-subsets when non-nil; nil means a plain GROUP BY Keys.
type Group struct {
	envelope
	Over Node
	Keys []Node
	Sets [][]Node
}

func (*Group) clauseNode() {}

// NewGroup builds a GROUP BY clause.
func NewGroup(from cerr.NodeID, over Node, keys ...Node) *Group {
	return &Group{envelope: newEnvelope(from), Over: over, Keys: keys}
}

// Having filters grouped rows of Over by Cond.
type Having struct {
	envelope
	Over Node
	Cond Node
}

func (*Having) clauseNode() {}

// NewHaving builds a HAVING clause.
func NewHaving(from cerr.NodeID, over Node, cond Node) *Having {
	return &Having{envelope: newEnvelope(from), Over: over, Cond: cond}
}

// Order sorts Over's rows by Keys.
type Order struct {
	envelope
	Over Node
	Keys []OrderKey
}

func (*Order) clauseNode() {}

// NewOrder builds an ORDER BY clause.
func NewOrder(from cerr.NodeID, over Node, keys ...OrderKey) *Order {
	return &Order{envelope: newEnvelope(from), Over: over, Keys: keys}
}

// Limit bounds Over's rows starting at Offset.
type Limit struct {
	envelope
	Over   Node
	Offset int
	Count  int
	HasOffset bool
}

func (*Limit) clauseNode() {}

// NewLimit builds a LIMIT/OFFSET clause.
func NewLimit(from cerr.NodeID, over Node, offset, count int) *Limit {
	return &Limit{envelope: newEnvelope(from), Over: over, Offset: offset, Count: count, HasOffset: offset > 0}
}

// UnionAll concatenates Overs as UNION ALL, in order.
type UnionAll struct {
	envelope
	Overs []Node
}

func (*UnionAll) clauseNode() {}

// NewUnionAll builds a UNION ALL clause.
func NewUnionAll(from cerr.NodeID, overs ...Node) *UnionAll {
	return &UnionAll{envelope: newEnvelope(from), Overs: overs}
}

// CTE is one named binding of a With clause.
type CTE struct {
	Name         string
	Body         Node
	Materialized int // mirrors node.Materialized without importing node
	Columns      []string
}

// With attaches Ctes (optionally WITH RECURSIVE) ahead of Over. Assembly
// drops entries from Ctes that are never referenced from Over (spec.md §6).
type With struct {
	envelope
	Over      Node
	Ctes      []CTE
	Recursive bool
}

func (*With) clauseNode() {}

// NewWith builds a WITH clause.
func NewWith(from cerr.NodeID, over Node, recursive bool, ctes ...CTE) *With {
	return &With{envelope: newEnvelope(from), Over: over, Ctes: ctes, Recursive: recursive}
}
