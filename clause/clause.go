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

// Package clause defines the lower-level, SQL-shaped tree translation
// produces and assembly rewrites: SELECT / FROM / WHERE / GROUP BY /
// HAVING / ORDER BY / LIMIT / JOIN / UNION ALL / WITH / WITH RECURSIVE
// (spec.md §3 "Clause node"). Unlike the semantic tree, clause trees are
// rebuilt (not mutated in place) by every assembly rule, so each rule is a
// pure function from tree to tree.
package clause

import (
	"github.com/queryplan/queryplan/internal/cerr"
	uuid "github.com/satori/go.uuid"
)

// Node is the marker interface implemented by every clause. The
// unexported method keeps the interface closed to this package, the same
// tagged-interface convention the semantic node model uses.
type Node interface {
	clauseNode()
	// ID returns the clause's own identity.
	ID() cerr.NodeID
	// From returns the semantic node this clause was lowered from, for
	// error attribution back to user-authored source.
	From() cerr.NodeID
}

type envelope struct {
	id   cerr.NodeID
	from cerr.NodeID
}

func newEnvelope(from cerr.NodeID) envelope {
	return envelope{id: cerr.NodeID(uuid.Must(uuid.NewV4()).String()), from: from}
}

func (e envelope) ID() cerr.NodeID   { return e.id }
func (e envelope) From() cerr.NodeID { return e.from }
