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
	Register(SQLServer)
}

// SQLServer is the Microsoft SQL Server / T-SQL dialect: bracket
// identifiers, ":name" named placeholders, TOP N instead of LIMIT, bit
// (0/1) booleans, "+" string concatenation. WITH RECURSIVE is not
// declared, so rendering a recursive WITH fails with
// UnsupportedDialectFeature.
var SQLServer = withCommonFunctions(New("sqlserver").
	Quote("[", "]", "]]", FoldNone).
	Placeholder(Named).
	Limit(TopN).
	Booleans("1", "0").
	Supports(With|WindowFrames).
	Alias("LEN", "LENGTH").
	Function(Concat, func(a []string) string {
		return "(" + strings.Join(a, " + ") + ")"
	})).
	Build()
