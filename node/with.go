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

// Materialized selects the CTE materialization hint a With binding
// carries through to dialects that support it (spec.md §4.1 feature
// flag "MATERIALIZED hint").
type Materialized int

const (
	MaterializeDefault Materialized = iota
	Materialize
	NotMaterialized
)

// Binding names one sub-pipeline attached to a With scope.
type Binding struct {
	Name         string
	Sub          Dataset
	Materialized Materialized
}

// With attaches one or more named CTEs to a scope; a later From(name)
// inside the scope resolves to a reference to the binding (spec.md §4.4).
// Bindings never referenced downstream are dropped by the assembly pass
// (spec.md §6 "A WITH clause is emitted only if at least one binding is
// referenced").
type With struct {
	envelope
	Over     Dataset
	Bindings []Binding
}

func (*With) datasetNode() {}

// Input returns the scope body plus every binding's sub-pipeline, so
// resolution visits them all.
func (w *With) Input() []Dataset {
	out := make([]Dataset, 0, len(w.Bindings)+1)
	out = append(out, w.Over)
	for _, b := range w.Bindings {
		out = append(out, b.Sub)
	}
	return out
}

// NewWith attaches bindings to over.
func NewWith(over Dataset, bindings ...Binding) *With {
	return &With{envelope: newEnvelope(), Over: over, Bindings: bindings}
}

// WithExternal is identical to With except its bindings are declared to
// already exist in the target connection (e.g. views created out of
// band); translation emits a reference without a WITH clause entry.
type WithExternal struct {
	envelope
	Over     Dataset
	Bindings []Binding
}

func (*WithExternal) datasetNode() {}

// Input returns the scope body; external bindings are not part of this
// compilation's own tree.
func (w *WithExternal) Input() []Dataset { return []Dataset{w.Over} }

// NewWithExternal attaches externally-materialized bindings to over.
func NewWithExternal(over Dataset, bindings ...Binding) *WithExternal {
	return &WithExternal{envelope: newEnvelope(), Over: over, Bindings: bindings}
}
