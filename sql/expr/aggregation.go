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

import "fmt"

// Sum, Count and Average are the only aggregate calls the engine needs
// to reason about (spec: "aggregate calls Sum/Count/Average").
// COUNT(*) is represented, per the source convention, as Count wrapping
// a Literal(1) argument — see IsCountStar.

type Sum struct{ Arg Expression }
type Count struct{ Arg Expression }
type Average struct{ Arg Expression }

func NewSum(arg Expression) *Sum         { return &Sum{Arg: arg} }
func NewCount(arg Expression) *Count     { return &Count{Arg: arg} }
func NewCountStar() *Count               { return &Count{Arg: NewLiteral(int64(1), Long)} }
func NewAverage(arg Expression) *Average { return &Average{Arg: arg} }

func (s *Sum) Resolved() bool         { return s.Arg.Resolved() }
func (s *Sum) Type() Kind             { return s.Arg.Type() }
func (s *Sum) Children() []Expression { return []Expression{s.Arg} }
func (s *Sum) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Sum takes exactly 1 child, got %d", len(children))
	}
	return &Sum{Arg: children[0]}, nil
}
func (s *Sum) String() string { return fmt.Sprintf("SUM(%s)", s.Arg) }

func (c *Count) Resolved() bool         { return c.Arg.Resolved() }
func (c *Count) Type() Kind             { return Long }
func (c *Count) Children() []Expression { return []Expression{c.Arg} }
func (c *Count) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Count takes exactly 1 child, got %d", len(children))
	}
	return &Count{Arg: children[0]}, nil
}
func (c *Count) String() string {
	if IsCountStar(c) {
		return "COUNT(*)"
	}
	return fmt.Sprintf("COUNT(%s)", c.Arg)
}

func (av *Average) Resolved() bool         { return av.Arg.Resolved() }
func (av *Average) Type() Kind             { return Double }
func (av *Average) Children() []Expression { return []Expression{av.Arg} }
func (av *Average) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Average takes exactly 1 child, got %d", len(children))
	}
	return &Average{Arg: children[0]}, nil
}
func (av *Average) String() string { return fmt.Sprintf("AVG(%s)", av.Arg) }

// IsCountStar reports whether e is a COUNT(1)-shaped COUNT(*).
func IsCountStar(e Expression) bool {
	c, ok := Unalias(e).(*Count)
	if !ok {
		return false
	}
	lit, ok := c.Arg.(*Literal)
	if !ok {
		return false
	}
	n, ok := asInt64(lit.Value)
	return ok && n == 1
}

func asInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// AggregateName returns the output name an aggregate call is known by:
// its Alias name if wrapped, else its rendered form.
func AggregateName(e Expression) string {
	if a, ok := e.(*Alias); ok {
		return a.Name
	}
	return e.String()
}
