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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupAndSchemaQualification(t *testing.T) {
	require := require.New(t)

	c := New("postgresql")
	c.Add(Table{Schema: "public", Name: "person", Columns: []string{"person_id", "year_of_birth"}})

	_, ok := c.Lookup("", "person")
	require.False(ok, "unqualified lookup must not match a schema-qualified table")

	tbl, ok := c.Lookup("public", "person")
	require.True(ok)
	require.Equal([]string{"person_id", "year_of_birth"}, tbl.Columns)
}

func TestLookupSymbolAmbiguity(t *testing.T) {
	require := require.New(t)

	c := New("postgresql")
	c.Add(Table{Schema: "a", Name: "t", Columns: []string{"x"}})
	c.Add(Table{Schema: "b", Name: "t", Columns: []string{"x"}})

	_, _, err := c.LookupSymbol("t")
	require.Error(err)
}

func TestLookupSymbolUnique(t *testing.T) {
	require := require.New(t)

	c := New("postgresql")
	c.Add(Table{Schema: "a", Name: "t", Columns: []string{"x"}})

	tbl, ok, err := c.LookupSymbol("t")
	require.NoError(err)
	require.True(ok)
	require.Equal("a", tbl.Schema)
}

func TestCacheRoundTripsAndHashesStructurally(t *testing.T) {
	require := require.New(t)

	type tree struct {
		Name string
		Kids []int
	}

	a := tree{Name: "root", Kids: []int{1, 2, 3}}
	b := tree{Name: "root", Kids: []int{1, 2, 3}}
	c := tree{Name: "root", Kids: []int{1, 2, 4}}

	ha, err := Hash(a)
	require.NoError(err)
	hb, err := Hash(b)
	require.NoError(err)
	hc, err := Hash(c)
	require.NoError(err)

	require.Equal(ha, hb)
	require.NotEqual(ha, hc)

	cache := NewCache()
	key := Key(ha, "postgresql")
	_, ok := cache.Get(key)
	require.False(ok)

	cache.Put(key, "compiled-sql")
	got, ok := cache.Get(key)
	require.True(ok)
	require.Equal("compiled-sql", got)
}

func TestCacheConcurrentAccess(t *testing.T) {
	require := require.New(t)
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key(uint64(i), "postgresql")
			cache.Put(key, i)
			_, _ = cache.Get(key)
		}(i)
	}
	wg.Wait()
	require.Equal(50, cache.Len())
}
