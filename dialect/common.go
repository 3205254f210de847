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

import "strings"

// The canonical operator/function names the serializer knows about by
// construction (spec.md §4.6). A dialect may override any of these with
// Function/Template; withCommonFunctions installs the ANSI-ish defaults so
// every dialect built with New already renders them sensibly.
const (
	And           = "and"
	Or            = "or"
	Not           = "not"
	In            = "in"
	NotIn         = "not_in"
	IsNull        = "is_null"
	IsNotNull     = "is_not_null"
	Between       = "between"
	NotBetween    = "not_between"
	Like          = "like"
	NotLike       = "not_like"
	Exists        = "exists"
	NotExists     = "not_exists"
	Case          = "case"
	Cast          = "cast"
	Extract       = "extract"
	CurrentDate   = "current_date"
	CurrentTstamp = "current_timestamp"
	Concat        = "concat"
	Count         = "count"
	CountDistinct = "count_distinct"
)

func infix(op string) Printer {
	return func(args []string) string {
		return "(" + strings.Join(args, " "+op+" ") + ")"
	}
}

func withCommonFunctions(b *Builder) *Builder {
	return b.
		Function(And, infix("AND")).
		Function(Or, infix("OR")).
		Function(Not, func(a []string) string { return "(NOT " + a[0] + ")" }).
		Function(In, func(a []string) string {
			return "(" + a[0] + " IN (" + strings.Join(a[1:], ", ") + "))"
		}).
		Function(NotIn, func(a []string) string {
			return "(" + a[0] + " NOT IN (" + strings.Join(a[1:], ", ") + "))"
		}).
		Function(IsNull, func(a []string) string { return "(" + a[0] + " IS NULL)" }).
		Function(IsNotNull, func(a []string) string { return "(" + a[0] + " IS NOT NULL)" }).
		Function(Between, func(a []string) string {
			return "(" + a[0] + " BETWEEN " + a[1] + " AND " + a[2] + ")"
		}).
		Function(NotBetween, func(a []string) string {
			return "(" + a[0] + " NOT BETWEEN " + a[1] + " AND " + a[2] + ")"
		}).
		Function(Like, func(a []string) string { return "(" + a[0] + " LIKE " + a[1] + ")" }).
		Function(NotLike, func(a []string) string { return "(" + a[0] + " NOT LIKE " + a[1] + ")" }).
		Function(Exists, func(a []string) string { return "EXISTS (" + a[0] + ")" }).
		Function(NotExists, func(a []string) string { return "NOT EXISTS (" + a[0] + ")" }).
		Function(Case, printCase).
		Function(Cast, func(a []string) string { return "CAST(" + a[0] + " AS " + a[1] + ")" }).
		Function(Extract, func(a []string) string { return "EXTRACT(" + a[0] + " FROM " + a[1] + ")" }).
		Function(CurrentDate, func(a []string) string { return "CURRENT_DATE" }).
		Function(CurrentTstamp, func(a []string) string { return "CURRENT_TIMESTAMP" }).
		Function(Concat, func(a []string) string { return "concat(" + strings.Join(a, ", ") + ")" }).
		Function(Count, func(a []string) string { return "count(" + strings.Join(a, ", ") + ")" }).
		Function(CountDistinct, func(a []string) string {
			return "count(DISTINCT " + strings.Join(a, ", ") + ")"
		})
}

// printCase renders a CASE expression. Arguments arrive as pairs of
// (when, then) followed by an optional trailing else.
func printCase(args []string) string {
	var b strings.Builder
	b.WriteString("CASE")
	i := 0
	for ; i+1 < len(args); i += 2 {
		b.WriteString(" WHEN ")
		b.WriteString(args[i])
		b.WriteString(" THEN ")
		b.WriteString(args[i+1])
	}
	if i < len(args) {
		b.WriteString(" ELSE ")
		b.WriteString(args[i])
	}
	b.WriteString(" END")
	return b.String()
}
