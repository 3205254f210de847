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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowTypeWalkFlat(t *testing.T) {
	require := require.New(t)

	rt := NewRowType(
		Field{Label: "person_id", Slot: &Slot{Label: "person_id"}},
		Field{Label: "year_of_birth", Slot: &Slot{Label: "year_of_birth"}},
	)

	slot, ok := rt.Walk([]string{"person_id"})
	require.True(ok)
	require.Equal("person_id", slot.Label)

	_, ok = rt.Walk([]string{"nope"})
	require.False(ok)
}

func TestRowTypeWalkNested(t *testing.T) {
	require := require.New(t)

	inner := NewRowType(Field{Label: "state", Slot: &Slot{Label: "state"}})
	rt := NewRowType(Field{Label: "location", Nested: inner})

	slot, ok := rt.Walk([]string{"location", "state"})
	require.True(ok)
	require.Equal("state", slot.Label)

	_, ok = rt.Walk([]string{"location"})
	require.False(ok, "a nested record itself is not a terminal slot")
}

func TestRowTypeIntersectPreservesFirstBranchOrder(t *testing.T) {
	require := require.New(t)

	a := NewRowType(
		Field{Label: "b", Slot: &Slot{Label: "b"}},
		Field{Label: "a", Slot: &Slot{Label: "a"}},
		Field{Label: "c", Slot: &Slot{Label: "c"}},
	)
	b := NewRowType(
		Field{Label: "a", Slot: &Slot{Label: "a"}},
		Field{Label: "c", Slot: &Slot{Label: "c"}},
	)

	got := a.Intersect(b)
	require.Equal([]string{"b", "a", "c"}, got.Labels())
}

func TestRowTypeConcat(t *testing.T) {
	require := require.New(t)

	a := NewRowType(Field{Label: "x", Slot: &Slot{Label: "x"}})
	b := NewRowType(Field{Label: "y", Slot: &Slot{Label: "y"}})

	require.Equal([]string{"x", "y"}, a.Concat(b).Labels())
}

func TestNodeIDsAreUniqueAndStable(t *testing.T) {
	require := require.New(t)

	f1 := NewFromTable("", "person")
	f2 := NewFromTable("", "person")
	require.NotEqual(f1.NodeID(), f2.NodeID())
	require.Equal(f1.NodeID(), f1.NodeID())
}
