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

// Order sorts rows by an ordered list of sort keys.
type Order struct {
	envelope
	Over Dataset
	Keys []*Sort
}

func (*Order) datasetNode()      {}
func (o *Order) Input() []Dataset { return []Dataset{o.Over} }

// NewOrder builds an Order over the given sort keys.
func NewOrder(over Dataset, keys ...*Sort) *Order {
	return &Order{envelope: newEnvelope(), Over: over, Keys: keys}
}

// Limit bounds the output to Count rows starting at Offset. A Limit
// without an immediately preceding Order produces nondeterministic
// output; no pass checks for this, and neither a warning nor an error is
// raised.
type Limit struct {
	envelope
	Over   Dataset
	Offset int
	Count  int
}

func (*Limit) datasetNode()      {}
func (l *Limit) Input() []Dataset { return []Dataset{l.Over} }

// NewLimit builds a Limit over the given dataset.
func NewLimit(over Dataset, offset, count int) *Limit {
	return &Limit{envelope: newEnvelope(), Over: over, Offset: offset, Count: count}
}

// Append concatenates sibling trees as UNION ALL. The output row-type is
// the positional intersection by name, ordered by the first branch
// (invariant 3).
type Append struct {
	envelope
	Branches []Dataset
}

func (*Append) datasetNode() {}

// Input returns every branch, in order.
func (a *Append) Input() []Dataset { return a.Branches }

// NewAppend builds an Append of the given branches. At least one branch
// is required.
func NewAppend(branches ...Dataset) *Append {
	return &Append{envelope: newEnvelope(), Branches: branches}
}
