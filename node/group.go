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

// Group partitions its input for aggregation. An empty Keys list means
// whole-dataset aggregation. A Group with no keys and no preceding Group
// is ordinary GROUP BY (); a Group() immediately following an existing
// Group that exposes only its keys downstream (no Agg) is the DISTINCT
// idiom, which the render pass emits as a SELECT DISTINCT subquery
// (spec.md §4.4, §9 Open Question 1).
type Group struct {
	envelope
	Over Dataset
	Keys []Labeled
}

func (*Group) datasetNode() {}

// Input returns the grouped dataset.
func (g *Group) Input() []Dataset { return []Dataset{g.Over} }

// NewGroup builds a Group over the given key list.
func NewGroup(over Dataset, keys ...Labeled) *Group {
	return &Group{envelope: newEnvelope(), Over: over, Keys: keys}
}
