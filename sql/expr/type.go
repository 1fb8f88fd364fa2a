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

// Package expr is the immutable expression tree the rewrite engine
// manipulates: attribute references, literals, casts, comparisons,
// arithmetic and aggregate calls, plus semantic equality over them.
package expr

// Kind enumerates the data types the engine understands. Unlike a full
// SQL type system this only distinguishes the classes that matter to
// range algebra and comparison: the five numeric kinds order by value,
// String orders lexicographically, and Other is anything else (opaque
// to range comparison, fatal if it reaches one).
type Kind int

const (
	Short Kind = iota
	Int
	Long
	Float
	Double
	String
	Other
)

// Numeric reports whether k is one of the five numeric kinds ordered by
// value rather than lexicographically.
func (k Kind) Numeric() bool {
	switch k {
	case Short, Int, Long, Float, Double:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case Short:
		return "SHORT"
	case Int:
		return "INT"
	case Long:
		return "LONG"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case String:
		return "STRING"
	default:
		return "OTHER"
	}
}
