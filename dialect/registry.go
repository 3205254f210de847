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

package dialect

import "sync"

var (
	registryMu sync.RWMutex
	registry   = map[string]*Dialect{}
)

// Register adds a dialect to the package-level registry under its own
// name. Dialect files call this from init() the way each per-backend file
// in this package registers itself.
func Register(d *Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Name()] = d
}

// Lookup returns a registered dialect by name, or nil, ok=false.
func Lookup(name string) (*Dialect, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[name]
	return d, ok
}

// Default is the ANSI-ish fallback dialect used when render() is called
// with neither a catalog nor a dialect (spec.md §6).
var Default = func() *Dialect {
	d := withCommonFunctions(New("default").
		Quote(`"`, `"`, `""`, FoldNone).
		Placeholder(Question).
		Limit(LimitOffset).
		Booleans("TRUE", "FALSE").
		Supports(With | WithRecursive)).
		Build()
	Register(d)
	return d
}()
