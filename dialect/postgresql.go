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

func init() {
	Register(PostgreSQL)
}

// PostgreSQL is the PostgreSQL dialect: "$N" placeholders, full WITH
// RECURSIVE and window-frame support, MATERIALIZED hints (PG12+), LATERAL
// joins, and "||" concatenation.
var PostgreSQL = withCommonFunctions(New("postgresql").
	Quote(`"`, `"`, `""`, FoldLower).
	Placeholder(Dollar).
	Limit(LimitOffset).
	Booleans("TRUE", "FALSE").
	Supports(With|WithRecursive|MaterializedHint|WindowFrames|Lateral|ValuesColumnAliases).
	Alias("IFNULL", "COALESCE").
	Function(Concat, func(a []string) string {
		out := "(" + a[0]
		for _, x := range a[1:] {
			out += " || " + x
		}
		return out + ")"
	})).
	Build()
