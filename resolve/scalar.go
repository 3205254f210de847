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
	"strings"

	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
)

// resolveScalar validates a scalar expression against scope, the row-type
// visible at the point it appears. bound, when non-nil, is the set of
// names a Var may legally reference (populated while descending into a
// Bind's Sub).
func (c *ctx) resolveScalar(scope *node.RowType, bound map[string]bool, s node.Scalar) error {
	switch s := s.(type) {
	case nil:
		return nil
	case *node.Lit:
		return nil
	case *node.Get:
		return c.resolveGet(scope, s)
	case *node.Var:
		if bound == nil || !bound[s.Name] {
			return cerr.At(cerr.NodeID(s.NodeID()), cerr.InvalidBind, s.Name)
		}
		return nil
	case *node.Fun:
		for _, a := range s.Args {
			if err := c.resolveScalar(scope, bound, a); err != nil {
				return err
			}
		}
		return nil
	case *node.Agg:
		return c.resolveAgg(scope, bound, s)
	case *node.Sort:
		return c.resolveScalar(scope, bound, s.Expr)
	default:
		return nil
	}
}

func (c *ctx) resolveGet(scope *node.RowType, g *node.Get) error {
	if len(g.Path) == 0 {
		return cerr.At(cerr.NodeID(g.NodeID()), cerr.Unresolved, "<empty path>")
	}
	if len(g.Path) == 1 {
		label := g.Path[0]
		n := scope.Matches(label)
		if n == 0 {
			return cerr.At(cerr.NodeID(g.NodeID()), cerr.Unresolved, label)
		}
		if n > 1 {
			return cerr.At(cerr.NodeID(g.NodeID()), cerr.AmbiguousColumn, label)
		}
		return nil
	}
	if _, ok := scope.Walk(g.Path); !ok {
		return cerr.At(cerr.NodeID(g.NodeID()), cerr.Unresolved, strings.Join(g.Path, "."))
	}
	return nil
}

// resolveAgg validates an aggregate's arguments against the nearest
// enclosing Group/Partition's pre-aggregation input row-type (invariant
// 2: "Agg used without Group" is an error when the Agg's Over partition,
// or else the scope it is evaluated in, traces back to no Group/Partition
// producer).
func (c *ctx) resolveAgg(scope *node.RowType, bound map[string]bool, a *node.Agg) error {
	var input *node.RowType
	if a.Over != nil {
		rt, ok := c.partitionInput(a.Over.NodeID())
		if !ok {
			return cerr.At(cerr.NodeID(a.NodeID()), cerr.AggWithoutGroup, a.Name)
		}
		input = rt
	} else {
		rt, ok := c.producerFor(scope)
		if !ok {
			return cerr.At(cerr.NodeID(a.NodeID()), cerr.AggWithoutGroup, a.Name)
		}
		input = rt
	}
	for _, arg := range a.Args {
		if err := c.resolveScalar(input, bound, arg); err != nil {
			return err
		}
	}
	if a.Filter != nil {
		if err := c.resolveScalar(input, bound, a.Filter); err != nil {
			return err
		}
	}
	return nil
}
