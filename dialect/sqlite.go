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
	Register(SQLite)
}

// SQLite is the SQLite dialect: "?" placeholders, no RIGHT/FULL join, no
// native boolean type (0/1), WITH RECURSIVE supported since 3.8.3.
var SQLite = withCommonFunctions(New("sqlite").
	Quote(`"`, `"`, `""`, FoldNone).
	Placeholder(Question).
	Limit(LimitOffset).
	Booleans("1", "0").
	Supports(With | WithRecursive).
	Alias("IFNULL", "COALESCE").
	Function(Concat, func(a []string) string {
		out := "(" + a[0]
		for _, x := range a[1:] {
			out += " || " + x
		}
		return out + ")"
	})).
	Build()
