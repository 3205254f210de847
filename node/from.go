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

// FromKind distinguishes the four shapes a From leaf may take.
type FromKind int

const (
	// FromTable materializes a named catalog table, optionally schema
	// qualified.
	FromTable FromKind = iota
	// FromNothing yields a single-row, column-less unit set.
	FromNothing
	// FromRows materializes an inline literal table (a VALUES source).
	FromRows
	// FromSymbol references a CTE binding or catalog table by name,
	// resolved against the enclosing With scope first, then the
	// catalog (spec.md §4.2).
	FromSymbol
	// FromPrevIteration is the distinguished "^" back-reference that may
	// only appear inside an Iterate step (spec.md §9 "back-references").
	FromPrevIteration
)

// From is the leaf node that materializes a source dataset.
type From struct {
	envelope
	Kind FromKind

	// Schema and Table are set for FromTable.
	Schema string
	Table  string

	// Columns names the inline row's columns for FromRows; Rows holds
	// one Scalar slice per row.
	Columns []string
	Rows    [][]Scalar

	// Symbol is set for FromSymbol.
	Symbol string
}

func (*From) datasetNode() {}

// Input returns nil: From is always a leaf.
func (*From) Input() []Dataset { return nil }

// NewFromTable builds a From(table-name) leaf, optionally schema-qualified.
func NewFromTable(schema, table string) *From {
	return &From{envelope: newEnvelope(), Kind: FromTable, Schema: schema, Table: table}
}

// NewFromNothing builds the From(nothing) unit-set leaf.
func NewFromNothing() *From {
	return &From{envelope: newEnvelope(), Kind: FromNothing}
}

// NewFromRows builds an inline-rows leaf equivalent to a VALUES clause.
func NewFromRows(columns []string, rows [][]Scalar) *From {
	return &From{envelope: newEnvelope(), Kind: FromRows, Columns: columns, Rows: rows}
}

// NewFromSymbol builds a From(symbol) reference to a CTE or catalog table.
func NewFromSymbol(name string) *From {
	return &From{envelope: newEnvelope(), Kind: FromSymbol, Symbol: name}
}

// NewFromPrevIteration builds the From(^) back-reference used inside an
// Iterate step.
func NewFromPrevIteration() *From {
	return &From{envelope: newEnvelope(), Kind: FromPrevIteration}
}
