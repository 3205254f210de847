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

// Select fixes the output columns of its input to exactly the given
// labeled scalar list, discarding everything else.
type Select struct {
	envelope
	Over Dataset
	List []Labeled
}

func (*Select) datasetNode()     {}
func (s *Select) Input() []Dataset { return []Dataset{s.Over} }

// NewSelect wraps over with a projection to list.
func NewSelect(over Dataset, list ...Labeled) *Select {
	return &Select{envelope: newEnvelope(), Over: over, List: list}
}

// Define adds or replaces columns named in list while carrying the rest
// of the input's row-type through unchanged.
type Define struct {
	envelope
	Over Dataset
	List []Labeled
}

func (*Define) datasetNode()     {}
func (d *Define) Input() []Dataset { return []Dataset{d.Over} }

// NewDefine wraps over, adding/overriding the named columns.
func NewDefine(over Dataset, list ...Labeled) *Define {
	return &Define{envelope: newEnvelope(), Over: over, List: list}
}
