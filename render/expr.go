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

package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/queryplan/queryplan/clause"
	"github.com/queryplan/queryplan/dialect"
	"github.com/queryplan/queryplan/internal/cerr"
)

// expr renders any scalar clause to a single self-contained SQL fragment.
func (p *printer) expr(n clause.Node) (string, error) {
	switch v := n.(type) {
	case *clause.Literal:
		return p.literal(v.Value), nil
	case *clause.ID:
		return p.id(v), nil
	case *clause.Placeholder:
		return p.placeholder(v), nil
	case *clause.Note:
		return "/* " + v.Text + " */", nil
	case *clause.Operator:
		return p.cascade(v.Name, v.Args, nil, nil, v.From())
	case *clause.Function:
		return p.cascade(v.Name, v.Args, v.Filter, v.Over, v.From())
	case *clause.Select, *clause.UnionAll, *clause.With:
		inner, err := p.statement(n, 1)
		if err != nil {
			return "", err
		}
		return "(\n" + inner + "\n)", nil
	default:
		return "", fmt.Errorf("render: cannot render %T as an expression", n)
	}
}

// cascade implements spec.md §4.6's four-step operator/function rendering:
// a dialect override, then a literal "?" template embedded in the name
// itself, then symbol/adfix infix, then the generic name(args) form.
func (p *printer) cascade(name string, args []clause.Node, filter clause.Node, win *clause.Window, from cerr.NodeID) (string, error) {
	argStrs := make([]string, len(args))
	for i, a := range args {
		s, err := p.expr(a)
		if err != nil {
			return "", err
		}
		argStrs[i] = s
	}

	canonical := name
	if canonical == "||" {
		canonical = dialect.Concat
	}
	canonical = p.d.ResolveName(canonical)

	var base string
	if printer, ok := p.d.Printer(canonical); ok {
		base = printer(argStrs)
	} else if strings.Contains(name, "?") {
		base = renderTemplate(name, argStrs)
	} else if isInfixName(name) {
		base = renderInfix(name, argStrs)
	} else {
		base = canonical + "(" + strings.Join(argStrs, ", ") + ")"
	}

	if filter != nil {
		cond, err := p.expr(filter)
		if err != nil {
			return "", err
		}
		base += " FILTER (WHERE " + cond + ")"
	}
	if win != nil {
		w, err := p.window(win, from)
		if err != nil {
			return "", err
		}
		base += " OVER (" + w + ")"
	}
	return base, nil
}

// renderTemplate substitutes each "?" in name with the next argument in
// order; "??" escapes to a literal "?".
func renderTemplate(name string, args []string) string {
	var b strings.Builder
	i := 0
	runes := []rune(name)
	for j := 0; j < len(runes); j++ {
		if runes[j] == '?' {
			if j+1 < len(runes) && runes[j+1] == '?' {
				b.WriteByte('?')
				j++
				continue
			}
			if i < len(args) {
				b.WriteString(args[i])
				i++
			}
			continue
		}
		b.WriteRune(runes[j])
	}
	return b.String()
}

// isInfixName reports whether name is made entirely of symbol runes (e.g.
// "=", "+", "||") or begins/ends with a space (a word-operator meant to
// sit beside a single operand, e.g. " IS NULL" or "NOT ").
func isInfixName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, " ") || strings.HasSuffix(name, " ") {
		return true
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return false
		}
	}
	return true
}

// renderInfix joins args by name when there are two or more, or attaches
// name as a prefix/postfix to the single operand otherwise, always
// parenthesized (spec.md §4.6 cascade step 3).
func renderInfix(name string, args []string) string {
	if len(args) == 0 {
		return "(" + name + ")"
	}
	if len(args) == 1 {
		switch {
		case strings.HasPrefix(name, " "):
			return "(" + args[0] + name + ")"
		case strings.HasSuffix(name, " "):
			return "(" + name + args[0] + ")"
		default:
			return "(" + name + args[0] + ")"
		}
	}
	return "(" + strings.Join(args, name) + ")"
}

func (p *printer) window(w *clause.Window, from cerr.NodeID) (string, error) {
	if w.Frame != nil && !p.d.Supports(dialect.WindowFrames) {
		return "", cerr.At(from, cerr.UnsupportedDialectFeature, p.d.Name(), "window frames")
	}
	var parts []string
	if len(w.Keys) > 0 {
		keys := make([]string, len(w.Keys))
		for i, k := range w.Keys {
			s, err := p.expr(k)
			if err != nil {
				return "", err
			}
			keys[i] = s
		}
		parts = append(parts, "PARTITION BY "+strings.Join(keys, ", "))
	}
	if len(w.Order) > 0 {
		keys := make([]string, len(w.Order))
		for i, k := range w.Order {
			s, err := p.orderKey(k)
			if err != nil {
				return "", err
			}
			keys[i] = s
		}
		parts = append(parts, "ORDER BY "+strings.Join(keys, ", "))
	}
	if w.Frame != nil {
		parts = append(parts, frameKeyword(w.Frame.Mode)+" BETWEEN "+w.Frame.Start+" AND "+w.Frame.Finish)
	}
	return strings.Join(parts, " "), nil
}

func frameKeyword(m clause.FrameMode) string {
	switch m {
	case clause.FrameRange:
		return "RANGE"
	case clause.FrameGroups:
		return "GROUPS"
	default:
		return "ROWS"
	}
}

// literal renders a constant: numbers pass through verbatim, strings are
// quoted and escaped per-dialect, nil becomes NULL (spec.md §4.6).
func (p *printer) literal(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case bool:
		return p.d.BoolLiteral(x)
	case string:
		return p.d.QuoteString(x)
	case int:
		return strconv.Itoa(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return p.d.QuoteString(fmt.Sprint(x))
	}
}

// placeholder assigns (or reuses, for a repeated named parameter) this
// placeholder's position in the ordered parameter list, left to right in
// textual occurrence order (spec.md §8).
func (p *printer) placeholder(v *clause.Placeholder) string {
	if v.Name != "" {
		if idx, ok := p.names[v.Name]; ok {
			return p.d.Placeholder(idx, v.Name)
		}
		idx := p.count
		p.names[v.Name] = idx
		p.count++
		return p.d.Placeholder(idx, v.Name)
	}
	idx := p.count
	p.count++
	return p.d.Placeholder(idx, "")
}
