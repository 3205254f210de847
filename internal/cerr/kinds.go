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

// Package cerr defines the single error type shared by every compiler pass.
package cerr

import (
	errorkit "gopkg.in/src-d/go-errors.v1"
)

// Kind identifies the category of a compile error so that callers can
// switch on failure class without string matching.
var (
	// Unresolved is raised when a Get path does not match any column
	// visible in the current scope.
	Unresolved = errorkit.NewKind("unresolved reference: %s")

	// AmbiguousColumn is raised when a bare Get matches more than one
	// column exposed by sibling Join branches.
	AmbiguousColumn = errorkit.NewKind("ambiguous reference: %s matches columns from more than one branch")

	// AggWithoutGroup is raised when an Agg has no enclosing Group or
	// Partition to aggregate within.
	AggWithoutGroup = errorkit.NewKind("aggregate %s used without an enclosing group or partition")

	// UnknownTable is raised when From(symbol) matches neither a With
	// binding nor a catalog entry.
	UnknownTable = errorkit.NewKind("unknown table: %s")

	// CyclicIteration is raised when From(^) appears outside an Iterate
	// step, or more than once along a branch.
	CyclicIteration = errorkit.NewKind("invalid iteration: %s")

	// UnsupportedDialectFeature is raised when the tree requires a
	// dialect feature (WITH RECURSIVE, window frames, LATERAL, ...) that
	// the active dialect does not support.
	UnsupportedDialectFeature = errorkit.NewKind("dialect %s does not support %s")

	// InvalidFrame is raised when a Partition's frame start/finish are
	// inconsistent with its mode.
	InvalidFrame = errorkit.NewKind("invalid window frame: %s")

	// InvalidBind is raised when a Var name is not bound by any
	// enclosing Bind.
	InvalidBind = errorkit.NewKind("unbound variable: %s")

	// UnknownDialect is raised when render is asked to compile against a
	// dialect name that is not registered.
	UnknownDialect = errorkit.NewKind("unknown dialect: %s")
)
