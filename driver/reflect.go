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

package driver

import "github.com/queryplan/queryplan/catalog"

// ToCatalog builds a catalog.Catalog from a Conn.Reflect result, the way
// the teacher's Driver.OpenConnector built a *sql.Catalog from its
// Provider.Resolve call. The core never calls this: it is a convenience
// for whatever caller owns a real Conn and wants to feed its reflected
// schema into the compiler.
func ToCatalog(dialectName string, tables []TableShape) *catalog.Catalog {
	cat := catalog.New(dialectName)
	for _, t := range tables {
		cat.Add(catalog.Table{Schema: t.Schema, Name: t.Name, Columns: t.Columns})
	}
	return cat
}
