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

package catalog

import (
	"strconv"
	"sync"

	"github.com/mitchellh/hashstructure"
)

// Entry is whatever the caller wants to cache against a (root, dialect)
// pair; the core stores *queryplan.Result values here, left as interface{}
// so this package does not need to import the root module.
type Entry interface{}

// Cache is a read-mostly map keyed by the structural hash of a query
// tree's root node plus the dialect id (spec.md §5). It is safe for
// concurrent use by multiple compilations.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewCache builds an empty compiled-query cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]Entry{}}
}

// Hash computes the structural hash of a query tree's root node. Two
// structurally-equal trees (same shape, same field values, regardless of
// NodeID) hash identically, since hashstructure only walks exported
// struct fields.
func Hash(root interface{}) (uint64, error) {
	return hashstructure.Hash(root, nil)
}

// Key combines a root hash and dialect name into a single cache key.
func Key(rootHash uint64, dialectName string) string {
	return strconv.FormatUint(rootHash, 36) + "/" + dialectName
}

// Get returns the cached entry for key, if present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Put stores an entry under key, overwriting any prior value.
func (c *Cache) Put(key string, e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = e
}

// Len reports the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
