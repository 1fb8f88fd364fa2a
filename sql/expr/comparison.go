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

// ComparisonOp is the operator of a BinaryComparison.
type ComparisonOp int

const (
	Eq ComparisonOp = iota
	NullSafeEq
	Lt
	Lte
	Gt
	Gte
)

func (op ComparisonOp) String() string {
	switch op {
	case Eq:
		return "="
	case NullSafeEq:
		return "<=>"
	case Lt:
		return "<"
	case Lte:
		return "<="
	case Gt:
		return ">"
	case Gte:
		return ">="
	default:
		return "?"
	}
}

// Flip returns the operator obtained by swapping the operands of a
// comparison ("L > k" becomes "k < L" with op Lt).
func (op ComparisonOp) Flip() ComparisonOp {
	switch op {
	case Lt:
		return Gt
	case Lte:
		return Gte
	case Gt:
		return Lt
	case Gte:
		return Lte
	default:
		return op
	}
}

// BinaryComparison is a two-operand comparison predicate.
type BinaryComparison struct {
	Op    ComparisonOp
	Left  Expression
	Right Expression
}

func NewComparison(op ComparisonOp, left, right Expression) *BinaryComparison {
	return &BinaryComparison{Op: op, Left: left, Right: right}
}

func NewEquals(left, right Expression) *BinaryComparison {
	return NewComparison(Eq, left, right)
}

func NewNullSafeEquals(left, right Expression) *BinaryComparison {
	return NewComparison(NullSafeEq, left, right)
}

func NewLessThan(left, right Expression) *BinaryComparison { return NewComparison(Lt, left, right) }
func NewLessThanOrEqual(left, right Expression) *BinaryComparison {
	return NewComparison(Lte, left, right)
}
func NewGreaterThan(left, right Expression) *BinaryComparison {
	return NewComparison(Gt, left, right)
}
func NewGreaterThanOrEqual(left, right Expression) *BinaryComparison {
	return NewComparison(Gte, left, right)
}

func (c *BinaryComparison) Resolved() bool { return c.Left.Resolved() && c.Right.Resolved() }
func (c *BinaryComparison) Type() Kind     { return Other }
func (c *BinaryComparison) Children() []Expression {
	return []Expression{c.Left, c.Right}
}

func (c *BinaryComparison) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expr: BinaryComparison takes exactly 2 children, got %d", len(children))
	}
	return &BinaryComparison{Op: c.Op, Left: children[0], Right: children[1]}, nil
}

func (c *BinaryComparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// And and Or split/join conjunctive and disjunctive predicates.
type And struct{ Left, Right Expression }
type Or struct{ Left, Right Expression }

func NewAnd(left, right Expression) *And { return &And{Left: left, Right: right} }
func NewOr(left, right Expression) *Or   { return &Or{Left: left, Right: right} }

func (a *And) Resolved() bool         { return a.Left.Resolved() && a.Right.Resolved() }
func (a *And) Type() Kind             { return Other }
func (a *And) Children() []Expression { return []Expression{a.Left, a.Right} }
func (a *And) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expr: And takes exactly 2 children, got %d", len(children))
	}
	return &And{Left: children[0], Right: children[1]}, nil
}
func (a *And) String() string { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

func (o *Or) Resolved() bool         { return o.Left.Resolved() && o.Right.Resolved() }
func (o *Or) Type() Kind             { return Other }
func (o *Or) Children() []Expression { return []Expression{o.Left, o.Right} }
func (o *Or) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expr: Or takes exactly 2 children, got %d", len(children))
	}
	return &Or{Left: children[0], Right: children[1]}, nil
}
func (o *Or) String() string { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// SplitConjunctivePredicates flattens a top-level AND-chain into its
// list of conjuncts. A non-And expression is returned as a
// single-element list.
func SplitConjunctivePredicates(e Expression) []Expression {
	if e == nil {
		return nil
	}
	if a, ok := e.(*And); ok {
		return append(SplitConjunctivePredicates(a.Left), SplitConjunctivePredicates(a.Right)...)
	}
	return []Expression{e}
}

// JoinConjunctivePredicates folds a list of conjuncts back into a single
// AND-chain. Returns nil for an empty list.
func JoinConjunctivePredicates(exprs []Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}
	joined := exprs[0]
	for _, e := range exprs[1:] {
		joined = NewAnd(joined, e)
	}
	return joined
}
