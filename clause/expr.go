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

// Operator is an infix/adfix operator application (e.g. a symbol-only
// canonical name per spec.md §4.6 cascade step 3).
type Operator struct {
	envelope
	Name string
	Args []Node
}

func (*Operator) clauseNode() {}

// NewOperator builds an operator-application clause.
func NewOperator(from cerr.NodeID, name string, args ...Node) *Operator {
	return &Operator{envelope: newEnvelope(from), Name: name, Args: args}
}

// Function is a canonical-name function/aggregate/window application.
// Window aggregates carry a non-nil Over.
type Function struct {
	envelope
	Name   string
	Args   []Node
	Filter Node   // optional FILTER (WHERE ...) predicate
	Over   *Window // optional OVER (...) window spec
}

func (*Function) clauseNode() {}

// NewFunction builds a function-application clause.
func NewFunction(from cerr.NodeID, name string, args ...Node) *Function {
	return &Function{envelope: newEnvelope(from), Name: name, Args: args}
}

// WithFilter returns a copy carrying a FILTER predicate.
func (f *Function) WithFilter(pred Node) *Function {
	cp := *f
	cp.Filter = pred
	return &cp
}

// WithOver returns a copy carrying a window specification.
func (f *Function) WithOver(w *Window) *Function {
	cp := *f
	cp.Over = w
	return &cp
}

// Window is the OVER (...) specification attached to a window Function.
type Window struct {
	Keys  []Node
	Order []OrderKey
	Frame *FrameSpec
}

// FrameMode mirrors node.FrameMode without importing the node package
// (clause is downstream of node, never the reverse).
type FrameMode int

const (
	FrameRows FrameMode = iota
	FrameRange
	FrameGroups
)

// FrameSpec is the rendered form of a Partition's window frame.
type FrameSpec struct {
	Mode   FrameMode
	Start  string // pre-rendered bound, e.g. "UNBOUNDED PRECEDING"
	Finish string
}
