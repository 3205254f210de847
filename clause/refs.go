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

// ID names a table or column, optionally schema-qualified.
type ID struct {
	envelope
	Schema string
	Name   string
}

func (*ID) clauseNode() {}

// NewID builds a table/column identifier clause.
func NewID(from cerr.NodeID, schema, name string) *ID {
	return &ID{envelope: newEnvelope(from), Schema: schema, Name: name}
}

// As aliases Over under Alias, optionally renaming its columns to
// ColumnAliases (used by VALUES and table-valued sources).
type As struct {
	envelope
	Over          Node
	Alias         string
	ColumnAliases []string
}

func (*As) clauseNode() {}

// NewAs aliases over under alias.
func NewAs(from cerr.NodeID, over Node, alias string) *As {
	return &As{envelope: newEnvelope(from), Over: over, Alias: alias}
}

// WithColumnAliases returns a copy of the alias clause naming its columns.
func (a *As) WithColumnAliases(cols []string) *As {
	cp := *a
	cp.ColumnAliases = cols
	return &cp
}

// Literal is a constant value, rendered per-dialect by the serializer
// (numbers pass through, strings are quoted and escaped, nil becomes
// NULL).
type Literal struct {
	envelope
	Value interface{}
}

func (*Literal) clauseNode() {}

// NewLiteral builds a literal clause.
func NewLiteral(from cerr.NodeID, v interface{}) *Literal {
	return &Literal{envelope: newEnvelope(from), Value: v}
}

// Values is an inline row constructor (a VALUES clause).
type Values struct {
	envelope
	Rows [][]Node
}

func (*Values) clauseNode() {}

// NewValues builds a VALUES clause from the given rows of rendered
// scalar clauses.
func NewValues(from cerr.NodeID, rows [][]Node) *Values {
	return &Values{envelope: newEnvelope(from), Rows: rows}
}

// Placeholder marks a bound-parameter position. The serializer does not
// write Index: it numbers parameters left to right in its own
// name-to-position table, which the render Result reports (spec.md §8).
type Placeholder struct {
	envelope
	Index int
	Name  string // optional, set when the parameter was bound by name
}

func (*Placeholder) clauseNode() {}

// NewPlaceholder builds a placeholder clause for a named parameter; Index
// is left at zero.
func NewPlaceholder(from cerr.NodeID, name string) *Placeholder {
	return &Placeholder{envelope: newEnvelope(from), Name: name}
}

// Note is a comment passthrough, emitted verbatim by the serializer and
// otherwise inert.
type Note struct {
	envelope
	Text string
}

func (*Note) clauseNode() {}

// NewNote builds a comment-passthrough clause.
func NewNote(from cerr.NodeID, text string) *Note {
	return &Note{envelope: newEnvelope(from), Text: text}
}
