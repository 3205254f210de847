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

// FrameMode selects the unit a window Frame is measured in.
type FrameMode int

const (
	FrameRows FrameMode = iota
	FrameRange
	FrameGroups
)

// FrameBound is a symbolic window-frame endpoint. Unbounded is
// represented by math.Inf-like sentinels UnboundedPreceding /
// UnboundedFollowing; CurrentRow and an integer offset cover the rest.
type FrameBound struct {
	Unbounded bool
	Following bool // direction of an unbounded or offset bound; false = PRECEDING
	Current   bool
	Offset    int // rows/range/groups before or after the current row when not unbounded/current
}

// CurrentRow is the CURRENT ROW frame bound.
var CurrentRow = FrameBound{Current: true}

// UnboundedPreceding is the UNBOUNDED PRECEDING frame bound.
var UnboundedPreceding = FrameBound{Unbounded: true}

// UnboundedFollowing is the UNBOUNDED FOLLOWING frame bound.
var UnboundedFollowing = FrameBound{Unbounded: true, Following: true}

// Preceding builds an "n PRECEDING" bound.
func Preceding(n int) FrameBound { return FrameBound{Offset: n} }

// Following builds an "n FOLLOWING" bound.
func Following(n int) FrameBound { return FrameBound{Offset: n, Following: true} }

// Frame is a window frame specification attached to a Partition.
type Frame struct {
	Mode   FrameMode
	Start  FrameBound
	Finish FrameBound
}

// Partition is a window specification: aggregates downstream reference it
// via OVER (...). Unlike Group, Partition does not introduce a subquery
// boundary (spec.md §4.4).
type Partition struct {
	envelope
	Over  Dataset
	Keys  []Scalar
	Sort  []*Sort
	Frame *Frame // optional
}

func (*Partition) datasetNode() {}

// Input returns the partitioned dataset.
func (p *Partition) Input() []Dataset { return []Dataset{p.Over} }

// NewPartition builds a window specification over the given dataset,
// partitioned by keys and ordered by sort.
func NewPartition(over Dataset, keys []Scalar, sort []*Sort) *Partition {
	return &Partition{envelope: newEnvelope(), Over: over, Keys: keys, Sort: sort}
}

// WithFrame returns a copy of the partition carrying the given frame.
func (p *Partition) WithFrame(f Frame) *Partition {
	cp := *p
	cp.Frame = &f
	return &cp
}
