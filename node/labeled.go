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

package node

// Labeled pairs a scalar with its output column label. Select, Define,
// and Group key lists are all ordered []Labeled.
type Labeled struct {
	Label string
	Expr  Scalar
}

// L is shorthand for constructing a Labeled pair.
func L(label string, expr Scalar) Labeled {
	return Labeled{Label: label, Expr: expr}
}
