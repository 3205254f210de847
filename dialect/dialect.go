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

// Package dialect holds the per-backend rendering table the serializer
// reads from: quoting, placeholders, LIMIT syntax, and operator/function
// overrides. It never reasons about query semantics.
package dialect

import (
	"strconv"
	"strings"
)

// LimitStyle selects how a Dialect renders LIMIT/OFFSET.
type LimitStyle int

const (
	// LimitOffset renders "LIMIT n OFFSET m".
	LimitOffset LimitStyle = iota
	// FetchFirst renders "OFFSET m ROWS FETCH FIRST n ROWS ONLY".
	FetchFirst
	// TopN renders "SELECT TOP n" in place of a trailing LIMIT clause.
	TopN
)

// Features is a bitset of dialect-optional capabilities the render pass
// consults before emitting a construct.
type Features uint32

const (
	With Features = 1 << iota
	WithRecursive
	MaterializedHint
	WindowFrames
	Lateral
	ValuesColumnAliases
	TableValuedFunctions
)

// Has reports whether every bit in want is set in f.
func (f Features) Has(want Features) bool { return f&want == want }

// Printer renders a canonical function/operator name applied to already-
// rendered argument strings. Implementations never re-render arguments;
// they only arrange the supplied strings.
type Printer func(args []string) string

// Dialect is an immutable, read-only-after-Build table of rendering rules
// for one SQL backend. The zero value is not valid; construct with New.
type Dialect struct {
	name string

	quoteOpen  string
	quoteClose string
	quoteEsc   string
	foldCase   CaseFold

	placeholder PlaceholderStyle
	maxIdentLen int

	limitStyle LimitStyle

	boolTrue  string
	boolFalse string

	features Features

	overrides map[string]Printer
	aliases   map[string]string
}

// CaseFold describes how an unquoted identifier is normalized before
// catalog lookup.
type CaseFold int

const (
	FoldNone CaseFold = iota
	FoldLower
	FoldUpper
)

// PlaceholderStyle selects how bound parameters are rendered.
type PlaceholderStyle int

const (
	// Question renders "?" for every parameter.
	Question PlaceholderStyle = iota
	// QuestionNumbered renders "?1", "?2", ...
	QuestionNumbered
	// Dollar renders "$1", "$2", ...
	Dollar
	// Named renders ":name".
	Named
)

// Name returns the dialect's registered name (e.g. "postgresql").
func (d *Dialect) Name() string { return d.name }

// Supports reports whether the dialect declares the given feature set.
func (d *Dialect) Supports(f Features) bool { return d.features.Has(f) }

// LimitStyle reports how LIMIT/OFFSET should be rendered.
func (d *Dialect) LimitStyle() LimitStyle { return d.limitStyle }

// BoolLiteral renders a boolean literal in the dialect's representation.
func (d *Dialect) BoolLiteral(v bool) string {
	if v {
		return d.boolTrue
	}
	return d.boolFalse
}

// Fold applies the dialect's case-folding policy to an unquoted identifier.
func (d *Dialect) Fold(ident string) string {
	switch d.foldCase {
	case FoldLower:
		return strings.ToLower(ident)
	case FoldUpper:
		return strings.ToUpper(ident)
	default:
		return ident
	}
}

// QuoteIdent quotes and escapes an identifier for inclusion in emitted SQL.
// Identifiers are always quoted, even when they happen not to collide with
// a keyword (spec.md §6 SQL output rules).
func (d *Dialect) QuoteIdent(ident string) string {
	escaped := strings.ReplaceAll(ident, d.quoteClose, d.quoteEsc)
	return d.quoteOpen + escaped + d.quoteClose
}

// QuoteString escapes a string literal by doubling the delimiter.
func (d *Dialect) QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Placeholder renders the positional placeholder for parameter index i
// (0-based) or named parameter name.
func (d *Dialect) Placeholder(i int, name string) string {
	switch d.placeholder {
	case QuestionNumbered:
		return "?" + strconv.Itoa(i+1)
	case Dollar:
		return "$" + strconv.Itoa(i+1)
	case Named:
		return ":" + name
	default:
		return "?"
	}
}

// Printer looks up a specialized printer for a canonical operator/function
// name (spec.md §4.6 cascade step 1). The bool reports whether one was
// registered.
func (d *Dialect) Printer(canonical string) (Printer, bool) {
	p, ok := d.overrides[canonical]
	return p, ok
}

// ResolveName applies the dialect's function-name alias table (e.g.
// sqlite's IFNULL -> COALESCE) and returns the name unchanged if no alias
// applies.
func (d *Dialect) ResolveName(name string) string {
	if alias, ok := d.aliases[strings.ToUpper(name)]; ok {
		return alias
	}
	return name
}
