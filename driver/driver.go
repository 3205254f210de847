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

// Package driver names the contract between a compiled query and an
// external database driver, without implementing either side of it.
// Sending a rendered statement to a live connection, and reflecting a
// live connection's schema back into a catalog, are both declared out of
// scope for the compiler core (spec.md §1); this package exists only so
// the core can describe the shape of that boundary without importing a
// concrete driver.
package driver

import "context"

// Provider resolves a data source name to a Conn, the way database/sql's
// own Driver.Open resolves a DSN to a connection. A real implementation
// lives outside this module, in whatever package owns the wire protocol
// for a given backend.
type Provider interface {
	// Connect opens a connection against dsn. The returned Conn is owned
	// by the caller and must be closed when no longer needed.
	Connect(ctx context.Context, dsn string) (Conn, error)
}

// Conn is a single connection to a database: the "connect" half of the
// driver-bridge contract. Nothing in this module calls these methods;
// they exist so a caller gluing the compiler to a real driver has a
// named shape to implement against.
type Conn interface {
	// Reflect returns the tables and columns visible on this connection,
	// for building a catalog.Catalog. This is the "reflect" half of the
	// contract; the core never calls it, it only defines it.
	Reflect(ctx context.Context) ([]TableShape, error)

	// Prepare readies sql for repeated execution with bound parameters.
	Prepare(ctx context.Context, sql string) (Stmt, error)

	// Close releases the connection.
	Close() error
}

// TableShape is the minimal reflected-table shape a Conn.Reflect call
// returns: enough to populate a catalog.Table without this package
// importing the catalog package back (it would invert the dependency
// direction the core relies on: catalog is a leaf, driver is an optional
// outer layer built on top of it).
type TableShape struct {
	Schema  string
	Name    string
	Columns []string
}

// Stmt is a prepared statement: the "prepare"/"execute" half of the
// contract. args is the positional vector Pack produces from a Result's
// NamedToPositional map.
type Stmt interface {
	// Exec runs a statement that does not return rows (INSERT/UPDATE/DELETE).
	Exec(ctx context.Context, args []interface{}) (Result, error)

	// Query runs a statement that returns rows (SELECT).
	Query(ctx context.Context, args []interface{}) (Rows, error)

	// Close releases the statement.
	Close() error
}

// Result is the outcome of a non-row-returning Stmt.Exec call.
type Result interface {
	LastInsertID() (int64, error)
	RowsAffected() (int64, error)
}

// Rows iterates the outcome of a row-returning Stmt.Query call.
type Rows interface {
	Columns() []string
	// Next advances to the next row and reports whether one was found.
	Next(ctx context.Context) ([]interface{}, bool, error)
	Close() error
}
