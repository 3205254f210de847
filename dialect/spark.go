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

func init() {
	Register(Spark)
}

// Spark is the Spark SQL / Databricks dialect: backtick identifiers,
// positional "?" placeholders, full window-frame support, WITH but not
// WITH RECURSIVE, no LATERAL join keyword support in the classic
// sense (LATERAL VIEW is a different construct and out of scope here).
var Spark = withCommonFunctions(New("spark").
	Quote("`", "`", "``", FoldNone).
	Placeholder(Question).
	Limit(LimitOffset).
	Booleans("true", "false").
	Supports(With|WindowFrames).
	Alias("NVL", "IFNULL").
	Function(Concat, func(a []string) string {
		return "concat(" + strings.Join(a, ", ") + ")"
	})).
	Build()
