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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupRegistersBuiltins(t *testing.T) {
	require := require.New(t)

	for _, name := range []string{"default", "sqlite", "postgresql", "mysql", "sqlserver", "redshift", "spark"} {
		d, ok := Lookup(name)
		require.True(ok, "expected %s to be registered", name)
		require.Equal(name, d.Name())
	}
}

func TestQuoteIdentAlwaysQuotes(t *testing.T) {
	require := require.New(t)

	require.Equal(`"select"`, PostgreSQL.QuoteIdent("select"))
	require.Equal("`select`", MySQL.QuoteIdent("select"))
	require.Equal("[select]", SQLServer.QuoteIdent("select"))
}

func TestQuoteIdentEscapesEmbeddedQuote(t *testing.T) {
	require := require.New(t)
	require.Equal(`"a""b"`, PostgreSQL.QuoteIdent(`a"b`))
}

func TestPlaceholderStyles(t *testing.T) {
	require := require.New(t)

	require.Equal("$1", PostgreSQL.Placeholder(0, ""))
	require.Equal("$2", PostgreSQL.Placeholder(1, ""))
	require.Equal("?", MySQL.Placeholder(0, ""))
	require.Equal(":age", SQLServer.Placeholder(0, "age"))
}

func TestCommonFunctionCascade(t *testing.T) {
	require := require.New(t)

	p, ok := Default.Printer(Between)
	require.True(ok)
	require.Equal(`("x" BETWEEN 1 AND 2)`, p([]string{`"x"`, "1", "2"}))

	p, ok = Default.Printer(Case)
	require.True(ok)
	require.Equal("CASE WHEN a THEN b ELSE c END", p([]string{"a", "b", "c"}))
}

func TestConcatIsDialectSpecific(t *testing.T) {
	require := require.New(t)

	p, ok := PostgreSQL.Printer(Concat)
	require.True(ok)
	require.Equal(`("a" || "b")`, p([]string{`"a"`, `"b"`}))

	p, ok = MySQL.Printer(Concat)
	require.True(ok)
	require.Equal(`CONCAT("a", "b")`, p([]string{`"a"`, `"b"`}))
}

func TestTemplatePrinterSubstitutesPlaceholders(t *testing.T) {
	require := require.New(t)

	b := New("tpl")
	b.Template("jsonb_path", "?::jsonb -> ?")
	d := b.Build()

	p, ok := d.Printer("jsonb_path")
	require.True(ok)
	require.Equal(`("col"::jsonb -> 'k')`, p([]string{`"col"`, `'k'`}))
}

func TestFeatureFlags(t *testing.T) {
	require := require.New(t)

	require.True(PostgreSQL.Supports(WithRecursive))
	require.False(MySQL.Supports(Lateral))
	require.True(MySQL.Supports(With | WindowFrames))
}
