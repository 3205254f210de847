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

// Package node defines the semantic query-algebra tree: the high-level,
// language-neutral nodes (From, Select, Where, Join, Group, Partition,
// Append, Iterate, With, ...) that a frontend builds and the compiler
// pipeline consumes. Nodes are immutable after construction; resolution
// annotations live in a side table keyed by NodeID, never on the node
// itself (§3 Lifecycle).
package node

import uuid "github.com/satori/go.uuid"

// ID identifies a node for error reporting and annotation lookup. It is
// assigned once at construction and never changes.
type ID string

// NewID mints a fresh node identity.
func NewID() ID {
	return ID(uuid.Must(uuid.NewV4()).String())
}

// Dataset is the marker interface implemented by every node that
// produces rows: From, Select, Define, Where, Join, Group, Partition,
// Order, Limit, Append, As, With, Iterate, Bind. The unexported method
// keeps the interface closed to this package, mirroring the tagged-
// interface convention used for the SQL AST this model is patterned on.
type Dataset interface {
	datasetNode()
	// NodeID returns the node's identity.
	NodeID() ID
	// Input returns the node's upstream dataset(s), if any. Leaf nodes
	// (From) return nil.
	Input() []Dataset
}

// envelope is embedded by every Dataset implementation. It carries the
// node's identity and optional source location, mirroring the "over"
// parent-link envelope described in spec.md §3.
type envelope struct {
	id  ID
	loc *Location
}

// Location is an optional source-position annotation a frontend may
// attach to a node for error messages. The core never interprets it.
type Location struct {
	File string
	Line int
	Col  int
}

func newEnvelope() envelope {
	return envelope{id: NewID()}
}

// NodeID returns the node's identity.
func (e envelope) NodeID() ID { return e.id }

// WithLocation returns a copy of the envelope carrying loc. Used by
// frontends that want to annotate a node after construction without
// mutating the original (nodes are immutable).
func (e envelope) WithLocation(loc *Location) envelope {
	e.loc = loc
	return e
}

// Loc returns the node's source location, or nil if none was attached.
func (e envelope) Loc() *Location { return e.loc }
