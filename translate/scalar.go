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

package translate

import (
	"fmt"

	"github.com/queryplan/queryplan/clause"
	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
)

func sfrom(s node.Scalar) cerr.NodeID { return cerr.NodeID(s.NodeID()) }

// translateScalar lowers a scalar expression. subst substitutes any Var
// reference with the clause already produced for it by the nearest
// enclosing Bind. scope is the row-type s is evaluated against — used only
// to qualify a single-segment Get that traces back to a tracked base table
// (spec.md §4.4, invariant 6); it may be nil where no such scope applies.
func (c *ctx) translateScalar(s node.Scalar, subst map[string]clause.Node, scope *node.RowType) (clause.Node, error) {
	switch s := s.(type) {
	case *node.Lit:
		return clause.NewLiteral(sfrom(s), s.Value), nil

	case *node.Get:
		if len(s.Path) == 0 {
			return nil, cerr.At(sfrom(s), cerr.Unresolved, "empty Get path")
		}
		if len(s.Path) == 1 {
			qualifier := ""
			if slot, ok := scope.Walk(s.Path); ok {
				qualifier = c.qualifierFor(&slot)
			}
			return clause.NewID(sfrom(s), qualifier, s.Path[0]), nil
		}
		// A multi-segment path qualifies the column by its first segment
		// (the disambiguating As name); deeper nesting beyond that is
		// flattened to the final segment, a documented simplification.
		return clause.NewID(sfrom(s), s.Path[0], s.Path[len(s.Path)-1]), nil

	case *node.Var:
		expr, ok := subst[s.Name]
		if !ok {
			return nil, cerr.At(sfrom(s), cerr.InvalidBind, s.Name)
		}
		return expr, nil

	case *node.Param:
		return clause.NewPlaceholder(sfrom(s), s.Name), nil

	case *node.Fun:
		args := make([]clause.Node, len(s.Args))
		for i, a := range s.Args {
			expr, err := c.translateScalar(a, subst, scope)
			if err != nil {
				return nil, err
			}
			args[i] = expr
		}
		return clause.NewOperator(sfrom(s), s.Name, args...), nil

	case *node.Agg:
		return c.translateAgg(s, subst, scope)

	default:
		return nil, cerr.At(sfrom(s), cerr.Unresolved, fmt.Sprintf("translate: unknown scalar kind %T", s))
	}
}

func (c *ctx) translateAgg(a *node.Agg, subst map[string]clause.Node, scope *node.RowType) (clause.Node, error) {
	args := make([]clause.Node, len(a.Args))
	for i, arg := range a.Args {
		expr, err := c.translateScalar(arg, subst, scope)
		if err != nil {
			return nil, err
		}
		args[i] = expr
	}
	fn := clause.NewFunction(sfrom(a), a.Name, args...)

	if a.Filter != nil {
		filter, err := c.translateScalar(a.Filter, subst, scope)
		if err != nil {
			return nil, err
		}
		fn = fn.WithFilter(filter)
	}

	if a.Over != nil {
		window, err := c.translateWindow(a.Over, subst, scope)
		if err != nil {
			return nil, err
		}
		fn = fn.WithOver(window)
	}

	return fn, nil
}

func (c *ctx) translateWindow(p *node.Partition, subst map[string]clause.Node, scope *node.RowType) (*clause.Window, error) {
	keys := make([]clause.Node, len(p.Keys))
	for i, k := range p.Keys {
		expr, err := c.translateScalar(k, subst, scope)
		if err != nil {
			return nil, err
		}
		keys[i] = expr
	}

	order := make([]clause.OrderKey, len(p.Sort))
	for i, s := range p.Sort {
		ok, err := c.translateOrderKey(s, subst, scope)
		if err != nil {
			return nil, err
		}
		order[i] = ok
	}

	w := &clause.Window{Keys: keys, Order: order}
	if p.Frame != nil {
		w.Frame = &clause.FrameSpec{
			Mode:   clause.FrameMode(p.Frame.Mode),
			Start:  frameBoundText(p.Frame.Start),
			Finish: frameBoundText(p.Frame.Finish),
		}
	}
	return w, nil
}

func (c *ctx) translateOrderKey(s *node.Sort, subst map[string]clause.Node, scope *node.RowType) (clause.OrderKey, error) {
	expr, err := c.translateScalar(s.Expr, subst, scope)
	if err != nil {
		return clause.OrderKey{}, err
	}
	ok := clause.OrderKey{Expr: expr, Desc: s.Dir == node.Desc}
	switch s.Nulls {
	case node.NullsFirst:
		ok.Nulls = "NULLS FIRST"
	case node.NullsLast:
		ok.Nulls = "NULLS LAST"
	}
	return ok, nil
}

func frameBoundText(b node.FrameBound) string {
	switch {
	case b.Current:
		return "CURRENT ROW"
	case b.Unbounded:
		if b.Following {
			return "UNBOUNDED FOLLOWING"
		}
		return "UNBOUNDED PRECEDING"
	case b.Following:
		return fmt.Sprintf("%d FOLLOWING", b.Offset)
	default:
		return fmt.Sprintf("%d PRECEDING", b.Offset)
	}
}
