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

// Where filters rows by a scalar predicate. When the nearest upstream
// producer on the same subquery boundary is a Group, translation lowers
// this to HAVING instead of WHERE (spec.md §4.4).
type Where struct {
	envelope
	Over Dataset
	Pred Scalar
}

func (*Where) datasetNode() {}

// Input returns the filtered dataset.
func (w *Where) Input() []Dataset { return []Dataset{w.Over} }

// NewWhere wraps over with a row filter.
func NewWhere(over Dataset, pred Scalar) *Where {
	return &Where{envelope: newEnvelope(), Over: over, Pred: pred}
}
