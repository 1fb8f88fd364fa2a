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

// ArithOp is the operator of an Arithmetic expression. The engine only
// ever constructs Div (for AVG desugaring into SUM/COUNT).
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	default:
		return "/"
	}
}

// Arithmetic is a binary arithmetic expression over two operands of
// compatible numeric kind.
type Arithmetic struct {
	Op    ArithOp
	Left  Expression
	Right Expression
}

func NewArithmetic(op ArithOp, left, right Expression) *Arithmetic {
	return &Arithmetic{Op: op, Left: left, Right: right}
}

func NewDiv(left, right Expression) *Arithmetic { return NewArithmetic(Div, left, right) }

func (a *Arithmetic) Resolved() bool { return a.Left.Resolved() && a.Right.Resolved() }
func (a *Arithmetic) Type() Kind     { return a.Left.Type() }
func (a *Arithmetic) Children() []Expression {
	return []Expression{a.Left, a.Right}
}
func (a *Arithmetic) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expr: Arithmetic takes exactly 2 children, got %d", len(children))
	}
	return &Arithmetic{Op: a.Op, Left: children[0], Right: children[1]}, nil
}
func (a *Arithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", a.Left, a.Op, a.Right)
}
