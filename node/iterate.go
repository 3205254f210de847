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

// Iterate computes a WITH RECURSIVE fixpoint: Step is a parameterized
// sub-pipeline containing at most one From(^) reference to the previous
// iteration (invariant 4), applied repeatedly to Base until it produces
// no new rows. Step's row-type must be a superset of Base's (spec.md §7
// "Invalid iteration").
type Iterate struct {
	envelope
	Base Dataset
	Step Dataset
}

func (*Iterate) datasetNode() {}

// Input returns Base and Step, in that order.
func (it *Iterate) Input() []Dataset { return []Dataset{it.Base, it.Step} }

// NewIterate builds an Iterate fixpoint over base with the given step.
func NewIterate(base, step Dataset) *Iterate {
	return &Iterate{envelope: newEnvelope(), Base: base, Step: step}
}
