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

// As renames the current dataset, or wraps all of its exposed columns
// inside a nested record labeled Name. Join uses this to disambiguate a
// right branch's columns (spec.md §4.3).
type As struct {
	envelope
	Over Dataset
	Name string
}

func (*As) datasetNode() {}

// Input returns the wrapped dataset.
func (a *As) Input() []Dataset { return []Dataset{a.Over} }

// NewAs wraps over under the given name.
func NewAs(over Dataset, name string) *As {
	return &As{envelope: newEnvelope(), Over: over, Name: name}
}
