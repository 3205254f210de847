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

// Join correlates its input with a right-side tree by an on-predicate.
// When Optional is true and the right side's columns are not required
// downstream, translation silently prunes the JOIN instead of emitting it
// (spec.md §4.4, §7 — this is the one non-error recovery the core
// performs).
type Join struct {
	envelope
	Over      Dataset
	Right     Dataset
	On        Scalar
	LeftOuter bool
	Optional  bool
}

func (*Join) datasetNode() {}

// Input returns the join's two branches, left first.
func (j *Join) Input() []Dataset { return []Dataset{j.Over, j.Right} }

// NewJoin builds an inner join of over and right on the given predicate.
func NewJoin(over, right Dataset, on Scalar) *Join {
	return &Join{envelope: newEnvelope(), Over: over, Right: right, On: on}
}

// LeftOuterJoin returns a copy of the join marked LEFT OUTER.
func (j *Join) LeftOuterJoin() *Join {
	cp := *j
	cp.LeftOuter = true
	return &cp
}

// MarkOptional returns a copy of the join marked optional-prune eligible.
func (j *Join) MarkOptional() *Join {
	cp := *j
	cp.Optional = true
	return &cp
}
