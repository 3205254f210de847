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

// Bind materializes Sub as a correlated subquery: every Var(name) inside
// Sub is replaced at translation time by the bound scalar from Params,
// evaluated in the enclosing scope (spec.md §4.4 — bound by value, not by
// a placeholder).
type Bind struct {
	envelope
	Sub    Dataset
	Params map[string]Scalar
}

func (*Bind) datasetNode() {}

// Input returns the bound sub-pipeline.
func (b *Bind) Input() []Dataset { return []Dataset{b.Sub} }

// NewBind materializes sub with the given parameter bindings.
func NewBind(sub Dataset, params map[string]Scalar) *Bind {
	return &Bind{envelope: newEnvelope(), Sub: sub, Params: params}
}
