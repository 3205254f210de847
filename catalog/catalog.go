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

// Package catalog holds named tables and their column lists, keyed by
// optional schema and table name (spec.md §4.2). A Catalog is read-mostly
// after setup; concurrent compilations against the same Catalog must not
// mutate it (spec.md §5).
package catalog

import (
	"fmt"
	"sync"
)

// Table describes one catalog entry: an ordered column list.
type Table struct {
	Schema  string
	Name    string
	Columns []string
}

func key(schema, name string) string {
	if schema == "" {
		return name
	}
	return schema + "." + name
}

// Catalog is a mapping from (schema, table) to its column list, plus the
// dialect the tables were declared against.
type Catalog struct {
	mu      sync.RWMutex
	tables  map[string]Table
	dialect string

	cache *Cache
}

// New builds an empty catalog for the named dialect (spec.md §4.2 "plus
// the active dialect").
func New(dialectName string) *Catalog {
	return &Catalog{
		tables:  map[string]Table{},
		dialect: dialectName,
		cache:   NewCache(),
	}
}

// DialectName reports the dialect this catalog's tables were declared
// against.
func (c *Catalog) DialectName() string { return c.dialect }

// Add registers a table, overwriting any prior entry with the same
// (schema, name).
func (c *Catalog) Add(t Table) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tables[key(t.Schema, t.Name)] = t
}

// Lookup resolves a possibly schema-qualified table name. Unknown names
// return ok=false; callers raise cerr.UnknownTable.
func (c *Catalog) Lookup(schema, name string) (Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[key(schema, name)]
	return t, ok
}

// LookupSymbol resolves a bare symbolic name against every schema,
// erroring if more than one schema declares a table with that name. It is
// used by From(symbol) once the With scope chain has been exhausted.
func (c *Catalog) LookupSymbol(name string) (Table, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t, ok := c.tables[name]; ok {
		return t, true, nil
	}
	var found []Table
	for k, t := range c.tables {
		if t.Name == name && k != name {
			found = append(found, t)
		}
	}
	switch len(found) {
	case 0:
		return Table{}, false, nil
	case 1:
		return found[0], true, nil
	default:
		return Table{}, false, fmt.Errorf("table %q is ambiguous across %d schemas", name, len(found))
	}
}

// Cache returns the catalog's compiled-query cache (spec.md §5).
func (c *Catalog) Cache() *Cache { return c.cache }
