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

// Package render implements the Serialization pass (spec.md §4.6): it
// walks the assembled clause tree once and emits SQL text plus the
// ordered parameter list a driver needs to execute it. It never mutates
// or rewrites the tree — that is translate's and assemble's job — it only
// prints what it is given, through the dialect's quoting, placeholder and
// operator/function override tables.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/queryplan/queryplan/clause"
	"github.com/queryplan/queryplan/dialect"
	"github.com/queryplan/queryplan/internal/cerr"
)

const indentUnit = "  "

// Result is the output of a single Render call.
type Result struct {
	SQL string
	// NamedToPositional maps each named parameter to its 0-based index in
	// the ordered parameter list, in left-to-right order of first
	// occurrence in the emitted SQL (spec.md §8).
	NamedToPositional map[string]int
	ParameterCount    int
}

type printer struct {
	d *dialect.Dialect

	names map[string]int
	count int
}

// Render serializes root against d, returning the emitted SQL and the
// parameter bookkeeping a driver needs to pack bound values.
func Render(root clause.Node, d *dialect.Dialect) (*Result, error) {
	p := &printer{d: d, names: map[string]int{}}
	sql, err := p.statement(root, 0)
	if err != nil {
		return nil, err
	}
	return &Result{SQL: sql, NamedToPositional: p.names, ParameterCount: p.count}, nil
}

func ind(level int) string { return strings.Repeat(indentUnit, level) }

// statement renders a clause that stands on its own as a full query or
// subquery: a WITH, a UNION ALL, a SELECT, or (rarely) a bare FROM-position
// node used without a SELECT wrapper.
func (p *printer) statement(n clause.Node, level int) (string, error) {
	switch v := n.(type) {
	case *clause.With:
		return p.renderWith(v, level)
	case *clause.UnionAll:
		return p.renderUnionAll(v, level)
	case *clause.Select:
		return p.renderSelect(v, level)
	default:
		from, err := p.fromTarget(n, level)
		if err != nil {
			return "", err
		}
		return ind(level) + "SELECT *\n" + ind(level) + "FROM " + from, nil
	}
}

func (p *printer) renderWith(w *clause.With, level int) (string, error) {
	if w.Recursive && !p.d.Supports(dialect.WithRecursive) {
		return "", cerr.At(w.From(), cerr.UnsupportedDialectFeature, p.d.Name(), "WITH RECURSIVE")
	}
	if !w.Recursive && !p.d.Supports(dialect.With) {
		return "", cerr.At(w.From(), cerr.UnsupportedDialectFeature, p.d.Name(), "WITH")
	}

	var b strings.Builder
	b.WriteString(ind(level))
	b.WriteString("WITH ")
	if w.Recursive {
		b.WriteString("RECURSIVE ")
	}
	for i, c := range w.Ctes {
		if i > 0 {
			b.WriteString(",\n" + ind(level) + "     ")
		}
		b.WriteString(p.d.QuoteIdent(c.Name))
		if len(c.Columns) > 0 {
			quoted := make([]string, len(c.Columns))
			for j, col := range c.Columns {
				quoted[j] = p.d.QuoteIdent(col)
			}
			b.WriteString(" (" + strings.Join(quoted, ", ") + ")")
		}
		if c.Materialized != 0 && !p.d.Supports(dialect.MaterializedHint) {
			return "", cerr.At(w.From(), cerr.UnsupportedDialectFeature, p.d.Name(), "MATERIALIZED")
		}
		b.WriteString(" AS")
		if c.Materialized == 1 {
			b.WriteString(" MATERIALIZED")
		} else if c.Materialized == 2 {
			b.WriteString(" NOT MATERIALIZED")
		}
		b.WriteString(" (\n")
		body, err := p.statement(c.Body, level+1)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString("\n" + ind(level) + ")")
	}
	b.WriteString("\n")
	over, err := p.statement(w.Over, level)
	if err != nil {
		return "", err
	}
	b.WriteString(over)
	return b.String(), nil
}

func (p *printer) renderUnionAll(u *clause.UnionAll, level int) (string, error) {
	parts := make([]string, len(u.Overs))
	for i, o := range u.Overs {
		s, err := p.statement(o, level)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, "\n"+ind(level)+"UNION ALL\n"), nil
}

// collected is the set of clauses found while peeling a Select's Over
// chain down to its FROM-position target.
type collected struct {
	where *clause.Where
	having *clause.Having
	group *clause.Group
	order []clause.OrderKey
	limit *clause.Limit
	from  clause.Node
}

func collect(n clause.Node) collected {
	var c collected
	cur := n
	for {
		switch v := cur.(type) {
		case *clause.Limit:
			c.limit = v
			cur = v.Over
		case *clause.Order:
			c.order = v.Keys
			cur = v.Over
		case *clause.Having:
			c.having = v
			cur = v.Over
		case *clause.Where:
			c.where = v
			cur = v.Over
		case *clause.Group:
			if c.group != nil {
				// A second Group stacked directly on the one already
				// peeled (Group(keys) |> Group()): the inner one doesn't
				// fold into this SELECT, it stands as its own DISTINCT
				// subquery boundary underneath it (spec.md §3, §8 scenario
				// 4). Stop peeling here and let fromTarget materialize it.
				c.from = cur
				return c
			}
			c.group = v
			cur = v.Over
		default:
			c.from = cur
			return c
		}
	}
}

func (p *printer) renderSelect(sel *clause.Select, level int) (string, error) {
	c := collect(sel.Over)

	var b strings.Builder
	b.WriteString(ind(level))
	b.WriteString("SELECT ")
	if sel.Distinct {
		b.WriteString("DISTINCT ")
	}
	if p.d.LimitStyle() == dialect.TopN && c.limit != nil && !c.limit.HasOffset {
		b.WriteString("TOP " + itoa(c.limit.Count) + " ")
	}
	projs := make([]string, len(sel.Projections))
	for i, proj := range sel.Projections {
		expr, err := p.expr(proj.Expr)
		if err != nil {
			return "", err
		}
		label := p.d.QuoteIdent(proj.Label)
		projs[i] = expr + " AS " + label
	}
	b.WriteString(joinList(projs, level+1))

	b.WriteString("\n" + ind(level) + "FROM ")
	from, err := p.fromTarget(c.from, level)
	if err != nil {
		return "", err
	}
	b.WriteString(from)

	if c.where != nil {
		cond, err := p.topLevelAnd(c.where.Cond, level+1)
		if err != nil {
			return "", err
		}
		b.WriteString("\n" + ind(level) + "WHERE " + cond)
	}
	if c.group != nil && len(c.group.Keys) > 0 {
		keys := make([]string, len(c.group.Keys))
		for i, k := range c.group.Keys {
			s, err := p.expr(k)
			if err != nil {
				return "", err
			}
			keys[i] = s
		}
		b.WriteString("\n" + ind(level) + "GROUP BY " + joinList(keys, level+1))
	}
	if c.having != nil {
		cond, err := p.topLevelAnd(c.having.Cond, level+1)
		if err != nil {
			return "", err
		}
		b.WriteString("\n" + ind(level) + "HAVING " + cond)
	}
	if len(c.order) > 0 {
		keys := make([]string, len(c.order))
		for i, k := range c.order {
			s, err := p.orderKey(k)
			if err != nil {
				return "", err
			}
			keys[i] = s
		}
		b.WriteString("\n" + ind(level) + "ORDER BY " + joinList(keys, level+1))
	}
	if c.limit != nil {
		switch p.d.LimitStyle() {
		case dialect.TopN:
			// already folded into the SELECT line above.
		case dialect.FetchFirst:
			if c.limit.HasOffset {
				b.WriteString("\n" + ind(level) + "OFFSET " + itoa(c.limit.Offset) + " ROWS")
			}
			b.WriteString("\n" + ind(level) + "FETCH FIRST " + itoa(c.limit.Count) + " ROWS ONLY")
		default:
			b.WriteString("\n" + ind(level) + "LIMIT " + itoa(c.limit.Count))
			if c.limit.HasOffset {
				b.WriteString(" OFFSET " + itoa(c.limit.Offset))
			}
		}
	}

	return b.String(), nil
}

// fromTarget renders a FROM-position node: an atomic source stays inline,
// anything else (a nested statement) is wrapped and indented as a
// subquery (spec.md §4.6 "two-space indent per nesting level").
func (p *printer) fromTarget(n clause.Node, level int) (string, error) {
	switch v := n.(type) {
	case *clause.ID:
		return p.id(v), nil
	case *clause.Values:
		return p.values(v)
	case *clause.As:
		return p.renderAs(v, level)
	case *clause.Join:
		return p.renderJoin(v, level)
	case *clause.Group:
		return p.renderGroupSubquery(v, level)
	default:
		inner, err := p.statement(n, level+1)
		if err != nil {
			return "", err
		}
		return "(\n" + inner + "\n" + ind(level) + ")", nil
	}
}

// renderGroupSubquery materializes a Group found directly in FROM position
// — the shape collect leaves behind when a Group stacks directly atop
// another Group — as a SELECT DISTINCT over its own keys (spec.md §3 Group
// semantics, §8 scenario 4). It builds a synthetic Select so the normal
// WHERE/HAVING/ORDER/LIMIT handling in renderSelect applies unchanged.
func (p *printer) renderGroupSubquery(g *clause.Group, level int) (string, error) {
	projections := make([]clause.Projection, len(g.Keys))
	for i, k := range g.Keys {
		projections[i] = clause.Projection{Expr: k, Label: groupKeyLabel(k, i)}
	}
	synthetic := clause.NewSelect(g.From(), g.Over, projections...).WithDistinct()
	inner, err := p.renderSelect(synthetic, level+1)
	if err != nil {
		return "", err
	}
	return "(\n" + inner + "\n" + ind(level) + ")", nil
}

// groupKeyLabel names the projected column for a Group key materialized by
// renderGroupSubquery. A bare column reference keeps its own name; any
// other expression falls back to a positional label.
func groupKeyLabel(k clause.Node, i int) string {
	if id, ok := k.(*clause.ID); ok {
		return id.Name
	}
	return fmt.Sprintf("key_%d", i+1)
}

func (p *printer) renderAs(a *clause.As, level int) (string, error) {
	inner, err := p.fromTarget(a.Over, level)
	if err != nil {
		return "", err
	}
	s := inner + " AS " + p.d.QuoteIdent(a.Alias)
	if len(a.ColumnAliases) > 0 {
		if !p.d.Supports(dialect.ValuesColumnAliases) {
			return "", cerr.At(a.From(), cerr.UnsupportedDialectFeature, p.d.Name(), "column aliases")
		}
		cols := make([]string, len(a.ColumnAliases))
		for i, c := range a.ColumnAliases {
			cols[i] = p.d.QuoteIdent(c)
		}
		s += " (" + strings.Join(cols, ", ") + ")"
	}
	return s, nil
}

func (p *printer) renderJoin(j *clause.Join, level int) (string, error) {
	left, err := p.fromTarget(j.Left, level)
	if err != nil {
		return "", err
	}
	right, err := p.fromTarget(j.Right, level)
	if err != nil {
		return "", err
	}

	kw := "JOIN"
	switch j.Kind {
	case clause.LeftJoin:
		kw = "LEFT JOIN"
	case clause.CrossJoin:
		kw = "CROSS JOIN"
	case clause.LateralJoin:
		kw = "JOIN LATERAL"
	case clause.LeftLateralJoin:
		kw = "LEFT JOIN LATERAL"
	}
	if (j.Kind == clause.LateralJoin || j.Kind == clause.LeftLateralJoin) && !p.d.Supports(dialect.Lateral) {
		return "", cerr.At(j.From(), cerr.UnsupportedDialectFeature, p.d.Name(), "LATERAL")
	}

	s := left + "\n" + ind(level+1) + kw + " " + right
	if j.Kind != clause.CrossJoin {
		on, err := p.expr(j.On)
		if err != nil {
			return "", err
		}
		s += " ON " + on
	}
	return s, nil
}

func (p *printer) values(v *clause.Values) (string, error) {
	rows := make([]string, len(v.Rows))
	for i, row := range v.Rows {
		cells := make([]string, len(row))
		for j, c := range row {
			s, err := p.expr(c)
			if err != nil {
				return "", err
			}
			cells[j] = s
		}
		rows[i] = "(" + strings.Join(cells, ", ") + ")"
	}
	return "(VALUES " + strings.Join(rows, ", ") + ")", nil
}

func (p *printer) id(v *clause.ID) string {
	if v.Schema == "" {
		return p.d.QuoteIdent(v.Name)
	}
	return p.d.QuoteIdent(v.Schema) + "." + p.d.QuoteIdent(v.Name)
}

func (p *printer) orderKey(k clause.OrderKey) (string, error) {
	s, err := p.expr(k.Expr)
	if err != nil {
		return "", err
	}
	if k.Desc {
		s += " DESC"
	}
	if k.Nulls != "" {
		s += " " + k.Nulls
	}
	return s, nil
}

// topLevelAnd splits a top-level "and" conjunction across lines, one
// operand per line, rather than delegating to the dialect's AND printer
// (spec.md §4.6 layout policy).
func (p *printer) topLevelAnd(cond clause.Node, level int) (string, error) {
	op, ok := cond.(*clause.Operator)
	if !ok || strings.ToLower(op.Name) != dialect.And || len(op.Args) < 2 {
		return p.expr(cond)
	}
	parts := make([]string, len(op.Args))
	for i, a := range op.Args {
		s, err := p.expr(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		b.WriteString("\n" + ind(level) + "AND " + part)
	}
	return b.String(), nil
}

// joinList lays out a comma-separated list on one line when it has a
// single element, and one element per line otherwise (spec.md §4.6
// "multi-argument SELECT/GROUP BY/ORDER BY lists, one per line").
func joinList(parts []string, level int) string {
	if len(parts) <= 1 {
		return strings.Join(parts, ", ")
	}
	return strings.Join(parts, ",\n"+ind(level))
}

func itoa(n int) string { return strconv.Itoa(n) }
