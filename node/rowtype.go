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

// Slot is a single resolvable column exposed by a dataset's row-type.
// Source identifies which upstream branch (by NodeID) the column
// ultimately comes from, used to detect Join-branch ambiguity.
type Slot struct {
	Label  string
	Source ID
}

// Field is one entry of a RowType: either a Slot (a column) or a nested
// RowType (produced by As(name) wrapping a dataset's columns into a
// labeled record).
type Field struct {
	Label  string
	Slot   *Slot
	Nested *RowType
	AggHdl bool // true for the virtual "aggregation handle" child-scope
}

// RowType is the ordered, immutable mapping from label to slot or nested
// record exposed by a dataset node after resolution (spec.md §3).
type RowType struct {
	fields []Field
}

// NewRowType builds a RowType from an ordered field list.
func NewRowType(fields ...Field) *RowType {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return &RowType{fields: cp}
}

// Fields returns the ordered field list. Callers must not mutate it.
func (r *RowType) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// Labels returns the ordered list of top-level labels.
func (r *RowType) Labels() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.Label
	}
	return out
}

// Field looks up a top-level field by label.
func (r *RowType) Field(label string) (Field, bool) {
	if r == nil {
		return Field{}, false
	}
	for _, f := range r.fields {
		if f.Label == label {
			return f, true
		}
	}
	return Field{}, false
}

// Walk resolves a dotted Get path against the row-type, descending into
// nested records produced by As(name) (spec.md §4.3 "Get paths are
// resolved statically"). It returns the terminal Slot and ok=true on
// success.
func (r *RowType) Walk(path []string) (Slot, bool) {
	cur := r
	for i, label := range path {
		f, ok := cur.Field(label)
		if !ok {
			return Slot{}, false
		}
		if i == len(path)-1 {
			if f.Slot == nil {
				return Slot{}, false
			}
			return *f.Slot, true
		}
		if f.Nested == nil {
			return Slot{}, false
		}
		cur = f.Nested
	}
	return Slot{}, false
}

// Matches counts how many top-level fields carry the given label. A bare
// Get with path length 1 that matches more than one field is ambiguous
// (spec.md invariant 1, §4.3).
func (r *RowType) Matches(label string) int {
	n := 0
	for _, f := range r.Fields() {
		if f.Label == label {
			n++
		}
	}
	return n
}

// Concat appends another RowType's fields after this one's, used by Join
// to build the combined left+right scope (spec.md §4.3).
func (r *RowType) Concat(other *RowType) *RowType {
	out := append(append([]Field{}, r.Fields()...), other.Fields()...)
	return NewRowType(out...)
}

// Project returns a new RowType containing only the named top-level
// fields, in the order requested. Fields not found are silently skipped;
// callers that need strict matching should use Field first.
func (r *RowType) Project(labels []string) *RowType {
	out := make([]Field, 0, len(labels))
	for _, l := range labels {
		if f, ok := r.Field(l); ok {
			out = append(out, f)
		}
	}
	return NewRowType(out...)
}

// Intersect returns the fields of r also present by label in other,
// ordered as they appear in r. Used by Append to compute the
// positional-by-name intersection of branch row-types (spec.md invariant 3).
func (r *RowType) Intersect(other *RowType) *RowType {
	out := make([]Field, 0, len(r.Fields()))
	for _, f := range r.Fields() {
		if _, ok := other.Field(f.Label); ok {
			out = append(out, f)
		}
	}
	return NewRowType(out...)
}
