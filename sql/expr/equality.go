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

package expr

import "reflect"

// SemanticEquals compares two expressions ignoring AttributeRef
// qualifiers and optional Cast wrappers around Literals — the "equality
// modulo cosmetic wrapping" the spec calls semantic equality. It does
// not attempt any deeper algebraic normalization: "a+b=c" and "c=a+b"
// are NOT semantically equal under this definition (spec.md §9, a
// documented source ambiguity carried forward unchanged).
func SemanticEquals(a, b Expression) bool {
	a, b = stripCast(a), stripCast(b)

	switch x := a.(type) {
	case *AttributeRef:
		y, ok := b.(*AttributeRef)
		return ok && x.Name == y.Name
	case *Literal:
		y, ok := b.(*Literal)
		return ok && x.DataType == y.DataType && reflect.DeepEqual(x.Value, y.Value)
	case *Cast:
		y, ok := b.(*Cast)
		return ok && x.DataType == y.DataType && SemanticEquals(x.Child, y.Child)
	case *Alias:
		y, ok := b.(*Alias)
		return ok && x.Name == y.Name && SemanticEquals(x.Child, y.Child)
	case *BinaryComparison:
		y, ok := b.(*BinaryComparison)
		return ok && x.Op == y.Op && SemanticEquals(x.Left, y.Left) && SemanticEquals(x.Right, y.Right)
	case *And:
		y, ok := b.(*And)
		return ok && SemanticEquals(x.Left, y.Left) && SemanticEquals(x.Right, y.Right)
	case *Or:
		y, ok := b.(*Or)
		return ok && SemanticEquals(x.Left, y.Left) && SemanticEquals(x.Right, y.Right)
	case *Arithmetic:
		y, ok := b.(*Arithmetic)
		return ok && x.Op == y.Op && SemanticEquals(x.Left, y.Left) && SemanticEquals(x.Right, y.Right)
	case *Sum:
		y, ok := b.(*Sum)
		return ok && SemanticEquals(x.Arg, y.Arg)
	case *Count:
		y, ok := b.(*Count)
		return ok && SemanticEquals(x.Arg, y.Arg)
	case *Average:
		y, ok := b.(*Average)
		return ok && SemanticEquals(x.Arg, y.Arg)
	default:
		return reflect.DeepEqual(a, b)
	}
}

// stripCast unwraps a Cast whose child is a Literal, treating the cast
// as cosmetic. A Cast over a non-literal child (e.g. CAST(a AS INT)) is
// semantically meaningful and is left intact.
func stripCast(e Expression) Expression {
	if c, ok := e.(*Cast); ok {
		if _, isLit := c.Child.(*Literal); isLit {
			return c.Child
		}
	}
	return e
}

// AsAttributeRef returns e (stripped of a cosmetic Cast) as an
// AttributeRef if it is one.
func AsAttributeRef(e Expression) (*AttributeRef, bool) {
	ref, ok := stripCast(e).(*AttributeRef)
	return ref, ok
}

// AsLiteral returns e (stripped of a cosmetic Cast wrapping a Literal)
// as a Literal if it is one.
func AsLiteral(e Expression) (*Literal, bool) {
	lit, ok := stripCast(e).(*Literal)
	return lit, ok
}

// ExtractAttributeRefs walks e and collects every AttributeRef it
// references, in encounter order (duplicates included).
func ExtractAttributeRefs(e Expression) []*AttributeRef {
	var out []*AttributeRef
	var walk func(Expression)
	walk = func(x Expression) {
		if x == nil {
			return
		}
		if ref, ok := x.(*AttributeRef); ok {
			out = append(out, ref)
			return
		}
		for _, c := range x.Children() {
			walk(c)
		}
	}
	walk(e)
	return out
}
