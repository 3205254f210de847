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

// Package queryplan wires the four compiler passes — resolve, translate,
// assemble, render — into the single entry point described by spec.md §6:
// a query-algebra tree goes in, a SQL string and parameter-packing vector
// come out. The package itself holds no query-execution logic; sending
// the emitted SQL to a database is the driver bridge's job, not this
// package's (spec.md §1 Non-goals).
package queryplan

import (
	"errors"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/queryplan/queryplan/assemble"
	"github.com/queryplan/queryplan/catalog"
	"github.com/queryplan/queryplan/dialect"
	"github.com/queryplan/queryplan/internal/cerr"
	"github.com/queryplan/queryplan/node"
	"github.com/queryplan/queryplan/render"
	"github.com/queryplan/queryplan/resolve"
	"github.com/queryplan/queryplan/translate"
)

// ErrCanceled is returned when Options.Stop is observed set between
// passes (spec.md §5).
var ErrCanceled = errors.New("queryplan: compilation canceled")

// Result is the output of a single Compile call: the rendered SQL plus
// everything pack needs to turn a named-values mapping into an ordered
// parameter vector (spec.md §6).
type Result struct {
	SQL               string
	NamedToPositional map[string]int
	ParameterCount    int
}

// Options configures a single Compile call. The zero value compiles
// against the default ANSI dialect, an empty catalog, and a discarding
// logger, matching spec.md §6 "when neither is supplied, the default
// ANSI dialect with an empty catalog applies".
type Options struct {
	// Catalog supplies table/column metadata for name resolution
	// (spec.md §4.2). Nil means an empty catalog: every table reference
	// then fails to resolve with cerr.UnknownTable.
	Catalog *catalog.Catalog
	// Dialect overrides the rendering table. If nil, Compile falls back
	// to Catalog.DialectName() when a Catalog is given, then to
	// dialect.Default.
	Dialect *dialect.Dialect
	// Log receives one entry per pass for diagnostics; nil discards.
	Log *logrus.Entry
	// Pretty is not read by Compile: the rendered SQL is always
	// newline-indented, whatever its value.
	Pretty bool
	// Cache, if set, is consulted before compiling and populated after,
	// keyed by the structural hash of root plus the dialect name
	// (spec.md §5). Safe to share across concurrent Compile calls.
	Cache *catalog.Cache
	// Stop is polled between passes; a true value aborts the compilation
	// with ErrCanceled before the next pass starts (spec.md §5
	// "cancellation is cooperative via a stop flag checked between
	// passes").
	Stop *atomic.Bool
}

func (o Options) logger() *logrus.Entry {
	if o.Log != nil {
		return o.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func (o Options) catalog() *catalog.Catalog {
	if o.Catalog != nil {
		return o.Catalog
	}
	return catalog.New("")
}

func (o Options) resolveDialect(root node.Dataset) (*dialect.Dialect, error) {
	if o.Dialect != nil {
		return o.Dialect, nil
	}
	if o.Catalog != nil {
		if d, ok := dialect.Lookup(o.Catalog.DialectName()); ok {
			return d, nil
		}
		if o.Catalog.DialectName() != "" {
			return nil, cerr.At(cerr.NodeID(root.NodeID()), cerr.UnknownDialect, o.Catalog.DialectName())
		}
	}
	return dialect.Default, nil
}

func (o Options) canceled() bool {
	return o.Stop != nil && o.Stop.Load()
}

// Compile runs Resolution, Translation, Assembly and Serialization over
// root in order, returning the rendered SQL and parameter bookkeeping
// (spec.md §4, §6 "primary entry point"). It is pure and single-threaded
// per call: distinct calls may run concurrently provided they do not
// share a mutable Catalog (spec.md §5).
func Compile(root node.Dataset, opts Options) (*Result, error) {
	log := opts.logger()
	cat := opts.catalog()

	d, err := opts.resolveDialect(root)
	if err != nil {
		return nil, err
	}

	var cacheKey string
	if opts.Cache != nil {
		h, herr := catalog.Hash(root)
		if herr == nil {
			cacheKey = catalog.Key(h, d.Name())
			if cached, ok := opts.Cache.Get(cacheKey); ok {
				if result, ok := cached.(*Result); ok {
					log.Debug("compile: cache hit")
					return result, nil
				}
			}
		}
	}

	log.Debug("compile: resolve pass")
	res, err := resolve.Resolve(root, cat)
	if err != nil {
		return nil, err
	}
	if opts.canceled() {
		return nil, ErrCanceled
	}

	log.Debug("compile: translate pass")
	lowered, err := translate.Translate(root, res)
	if err != nil {
		return nil, err
	}
	if opts.canceled() {
		return nil, ErrCanceled
	}

	log.Debug("compile: assemble pass")
	assembled := assemble.Assemble(lowered)
	if opts.canceled() {
		return nil, ErrCanceled
	}

	log.Debug("compile: render pass")
	rendered, err := render.Render(assembled, d)
	if err != nil {
		return nil, err
	}

	result := &Result{
		SQL:               rendered.SQL,
		NamedToPositional: rendered.NamedToPositional,
		ParameterCount:    rendered.ParameterCount,
	}

	if opts.Cache != nil && cacheKey != "" {
		opts.Cache.Put(cacheKey, result)
	}

	return result, nil
}

// Pack turns a named-values mapping into the ordered positional vector a
// driver's prepared-statement call expects, using the mapping Compile
// returned (spec.md §6 "packing parameters"). A name present in values
// but absent from r.NamedToPositional is silently ignored: it was never
// referenced by a Param in the compiled tree.
func Pack(r *Result, values map[string]interface{}) []interface{} {
	out := make([]interface{}, r.ParameterCount)
	for name, idx := range r.NamedToPositional {
		if idx < 0 || idx >= len(out) {
			continue
		}
		out[idx] = values[name]
	}
	return out
}
