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

package dialect

// Builder assembles a Dialect through a fluent chain, mirroring the shape
// used across the example dialect tables in this codebase's sibling
// packages: one call per concern, terminated by Build.
type Builder struct {
	d *Dialect
}

// New starts building a dialect with sane ANSI-ish defaults: double-quote
// identifiers, "?" placeholders, LIMIT/OFFSET, no optional features.
func New(name string) *Builder {
	return &Builder{d: &Dialect{
		name:        name,
		quoteOpen:   `"`,
		quoteClose:  `"`,
		quoteEsc:    `""`,
		foldCase:    FoldNone,
		placeholder: Question,
		maxIdentLen: 63,
		limitStyle:  LimitOffset,
		boolTrue:    "TRUE",
		boolFalse:   "FALSE",
		overrides:   map[string]Printer{},
		aliases:     map[string]string{},
	}}
}

// Quote sets the identifier quote characters, escape sequence, and
// case-folding policy applied to unquoted identifiers before lookup.
func (b *Builder) Quote(open, close_, escape string, fold CaseFold) *Builder {
	b.d.quoteOpen, b.d.quoteClose, b.d.quoteEsc, b.d.foldCase = open, close_, escape, fold
	return b
}

// Placeholder sets the bound-parameter rendering style.
func (b *Builder) Placeholder(style PlaceholderStyle) *Builder {
	b.d.placeholder = style
	return b
}

// MaxIdentLen sets the maximum identifier length the dialect tolerates.
func (b *Builder) MaxIdentLen(n int) *Builder {
	b.d.maxIdentLen = n
	return b
}

// Limit sets the LIMIT/OFFSET rendering style.
func (b *Builder) Limit(style LimitStyle) *Builder {
	b.d.limitStyle = style
	return b
}

// Booleans sets the literal spellings used for TRUE/FALSE. Dialects that
// lack a boolean type (e.g. older SQL Server) spell these "1"/"0".
func (b *Builder) Booleans(trueLit, falseLit string) *Builder {
	b.d.boolTrue, b.d.boolFalse = trueLit, falseLit
	return b
}

// Supports ORs the given feature flags into the dialect's feature set.
func (b *Builder) Supports(f Features) *Builder {
	b.d.features |= f
	return b
}

// Function registers a specialized printer for a canonical function or
// operator name (spec.md §4.6 cascade step 1).
func (b *Builder) Function(canonical string, p Printer) *Builder {
	b.d.overrides[canonical] = p
	return b
}

// Template registers a "?"-templated printer for a canonical name, per
// spec.md §4.6 cascade step 2: each "?" in the template is replaced by the
// next argument's rendering, "??" renders a literal "?".
func (b *Builder) Template(canonical, template string) *Builder {
	b.d.overrides[canonical] = templatePrinter(template)
	return b
}

// Alias registers a function-name alias (e.g. sqlite's IFNULL -> COALESCE).
func (b *Builder) Alias(from, to string) *Builder {
	b.d.aliases[from] = to
	return b
}

// Build finalizes and returns the Dialect.
func (b *Builder) Build() *Dialect {
	return b.d
}

func templatePrinter(template string) Printer {
	return func(args []string) string {
		var out []byte
		argi := 0
		for i := 0; i < len(template); i++ {
			c := template[i]
			if c != '?' {
				out = append(out, c)
				continue
			}
			if i+1 < len(template) && template[i+1] == '?' {
				out = append(out, '?')
				i++
				continue
			}
			if argi < len(args) {
				out = append(out, args[argi]...)
				argi++
			}
		}
		rendered := string(out)
		if len(rendered) == 0 || rendered[len(rendered)-1] == ')' {
			return rendered
		}
		return "(" + rendered + ")"
	}
}
