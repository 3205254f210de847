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

// Package resolve implements the Resolution pass (spec.md §4.3): an
// upward sweep deriving each node's exposed row-type, and a downward
// sweep computing which columns are actually required so translation can
// prune unused table columns.
package resolve

import (
	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/node"
)

// withFrame records one With/WithExternal binding so From(symbol) can
// resolve against it before falling back to the catalog (spec.md §4.2).
type withFrame struct {
	name    string
	exposed *node.RowType
}

// ctx carries the mutable traversal state of the upward sweep. It is not
// exported: callers only see the Resolve entry point and its Result.
type ctx struct {
	cat *catalog.Catalog

	withScopes []withFrame

	// iterBase is non-nil while resolving an Iterate step, holding the
	// base's exposed row-type for From(^) to return.
	iterBase *node.RowType
	// prevIterSeen counts From(^) occurrences within the current step;
	// more than one trips invariant 4.
	prevIterSeen int

	// groupInputs records, for every Group visited so far, the
	// pre-aggregation row-type it was computed over, keyed by the Group's
	// own NodeID. A plain (non-window) Agg resolves by looking at the
	// Slot.Source of the scope it appears in: every field Group exposes
	// (including its hidden aggregation-handle sentinel, present even for
	// a whole-dataset aggregation with no keys) carries the Group's own
	// NodeID as its Source, so any scope derived from a Group — directly
	// or through a chain of passthrough nodes like Where/Order/Limit —
	// still resolves to the right producer (spec.md §4.3 "virtual
	// aggregation handle child-scope").
	groupInputs map[node.ID]*node.RowType

	// partitionInputs is the same idea for window aggregates: Partition
	// does not introduce a subquery boundary, so its exposed row-type is
	// its input's row-type unchanged and cannot itself carry a Source
	// sentinel. A window Agg's Over field names the Partition directly,
	// so lookup is by that Partition's NodeID rather than by scanning scope.
	partitionInputs map[node.ID]*node.RowType
}

func (c *ctx) pushWith(name string, rt *node.RowType) func() {
	c.withScopes = append(c.withScopes, withFrame{name: name, exposed: rt})
	return func() { c.withScopes = c.withScopes[:len(c.withScopes)-1] }
}

func (c *ctx) lookupWith(name string) (*node.RowType, bool) {
	for i := len(c.withScopes) - 1; i >= 0; i-- {
		if c.withScopes[i].name == name {
			return c.withScopes[i].exposed, true
		}
	}
	return nil, false
}

func (c *ctx) recordGroupInput(owner node.ID, input *node.RowType) {
	if c.groupInputs == nil {
		c.groupInputs = map[node.ID]*node.RowType{}
	}
	c.groupInputs[owner] = input
}

// producerFor scans scope's fields for a Source this ctx recognizes as a
// Group boundary, returning that Group's pre-aggregation input.
func (c *ctx) producerFor(scope *node.RowType) (*node.RowType, bool) {
	for _, f := range scope.Fields() {
		if f.Slot == nil {
			continue
		}
		if in, ok := c.groupInputs[f.Slot.Source]; ok {
			return in, true
		}
	}
	return nil, false
}

func (c *ctx) recordPartitionInput(owner node.ID, input *node.RowType) {
	if c.partitionInputs == nil {
		c.partitionInputs = map[node.ID]*node.RowType{}
	}
	c.partitionInputs[owner] = input
}

func (c *ctx) partitionInput(owner node.ID) (*node.RowType, bool) {
	rt, ok := c.partitionInputs[owner]
	return rt, ok
}
