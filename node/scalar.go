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

package node

// Scalar is the marker interface for expression-position nodes: Lit, Get,
// Var, Fun, Agg, and Sort.
type Scalar interface {
	scalarNode()
	// NodeID returns the scalar's identity, carried onto the clause it
	// lowers to so errors can name it. Duplicate detection in the
	// assembly pass hashes clause structure and does not use it.
	NodeID() ID
}

type scalarEnvelope struct {
	id ID
}

func newScalarEnvelope() scalarEnvelope { return scalarEnvelope{id: NewID()} }
func (s scalarEnvelope) NodeID() ID     { return s.id }

// Lit is a literal value.
type Lit struct {
	scalarEnvelope
	Value interface{}
}

func (*Lit) scalarNode() {}

// NewLit builds a literal scalar.
func NewLit(v interface{}) *Lit {
	return &Lit{scalarEnvelope: newScalarEnvelope(), Value: v}
}

// Get is a reference to a column reachable by a dotted path from the
// current scope (e.g. Get.location.state). A single-element path is a
// bare reference resolved against the flattest available scope.
type Get struct {
	scalarEnvelope
	Path []string
}

func (*Get) scalarNode() {}

// NewGet builds a Get scalar from a dotted path.
func NewGet(path ...string) *Get {
	return &Get{scalarEnvelope: newScalarEnvelope(), Path: append([]string{}, path...)}
}

// Var is a correlated-subquery parameter reference, bound by the nearest
// enclosing Bind (spec.md §3, §4.4). Unlike Param, a Var is resolved at
// compile time: translation replaces it with the bound scalar itself, not
// a runtime placeholder.
type Var struct {
	scalarEnvelope
	Name string
}

func (*Var) scalarNode() {}

// NewVar builds a Var scalar referencing a Bind parameter by name.
func NewVar(name string) *Var {
	return &Var{scalarEnvelope: newScalarEnvelope(), Name: name}
}

// Param is a named external bound parameter: translation lowers it to a
// PLACEHOLDER clause, and its value is supplied later by pack against the
// named-to-positional map render returns (spec.md §6). Unlike Var, a
// Param is never substituted away at compile time.
type Param struct {
	scalarEnvelope
	Name string
}

func (*Param) scalarNode() {}

// NewParam builds a named bound-parameter scalar.
func NewParam(name string) *Param {
	return &Param{scalarEnvelope: newScalarEnvelope(), Name: name}
}

// Fun is a scalar function or operator application. Unknown names are
// emitted verbatim by the serializer (Non-goal: no signature validation).
type Fun struct {
	scalarEnvelope
	Name string
	Args []Scalar
}

func (*Fun) scalarNode() {}

// NewFun builds a function-application scalar.
func NewFun(name string, args ...Scalar) *Fun {
	return &Fun{scalarEnvelope: newScalarEnvelope(), Name: name, Args: args}
}

// Agg is an aggregate function application, optionally filtered by a
// predicate (FILTER (WHERE ...)). It must appear in a scope whose nearest
// enclosing producer is a Group or Partition (invariant 2).
type Agg struct {
	scalarEnvelope
	Name   string
	Args   []Scalar
	Filter Scalar // optional
	// Over is set when this Agg is a window aggregate: it names the
	// Partition it aggregates over. nil means an ordinary Group aggregate.
	Over *Partition
}

func (*Agg) scalarNode() {}

// NewAgg builds an aggregate scalar.
func NewAgg(name string, args ...Scalar) *Agg {
	return &Agg{scalarEnvelope: newScalarEnvelope(), Name: name, Args: args}
}

// WithFilter returns a copy of the Agg carrying a FILTER predicate.
func (a *Agg) WithFilter(pred Scalar) *Agg {
	cp := *a
	cp.scalarEnvelope = newScalarEnvelope()
	cp.Filter = pred
	return &cp
}

// WithOver returns a copy of the Agg marked as a window aggregate over p.
func (a *Agg) WithOver(p *Partition) *Agg {
	cp := *a
	cp.scalarEnvelope = newScalarEnvelope()
	cp.Over = p
	return &cp
}

// SortDir selects ascending or descending order.
type SortDir int

const (
	Asc SortDir = iota
	Desc
)

// NullsPos selects where NULLs sort relative to non-null values.
type NullsPos int

const (
	NullsDefault NullsPos = iota
	NullsFirst
	NullsLast
)

// Sort wraps a scalar with its ordering direction and null placement, for
// use inside Order and Partition's sort-key list.
type Sort struct {
	scalarEnvelope
	Expr  Scalar
	Dir   SortDir
	Nulls NullsPos
}

func (*Sort) scalarNode() {}

// NewSort wraps expr in ascending order with default null placement.
func NewSort(expr Scalar) *Sort {
	return &Sort{scalarEnvelope: newScalarEnvelope(), Expr: expr, Dir: Asc}
}

// Desc returns a copy of the sort key in descending order.
func (s *Sort) Desc() *Sort {
	cp := *s
	cp.Dir = Desc
	return &cp
}

// WithNulls returns a copy of the sort key with the given null placement.
func (s *Sort) WithNulls(pos NullsPos) *Sort {
	cp := *s
	cp.Nulls = pos
	return &cp
}
