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
	Register(MySQL)
}

// MySQL is the MySQL/MariaDB dialect: backtick identifiers, "?"
// placeholders, no "||" concatenation (CONCAT only), WITH RECURSIVE since
// 8.0, window frames since 8.0, no MATERIALIZED hint, no LATERAL keyword
// (CROSS JOIN LATERAL is the closest analogue and is out of scope here).
var MySQL = withCommonFunctions(New("mysql").
	Quote("`", "`", "``", FoldNone).
	Placeholder(Question).
	Limit(LimitOffset).
	Booleans("TRUE", "FALSE").
	Supports(With|WithRecursive|WindowFrames).
	Alias("NVL", "IFNULL").
	Function(Concat, func(a []string) string {
		return "CONCAT(" + strings.Join(a, ", ") + ")"
	})).
	Build()
