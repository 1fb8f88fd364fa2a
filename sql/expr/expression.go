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

// Expression is the interface every node in the expression tree
// implements. Generic walks (transforms, attribute extraction) go
// through this interface; the matchers also switch on the concrete
// types (comparisons, aggregates, literals) they know how to reason
// about, so a new expression shape is treated by them as opaque.
type Expression interface {
	// Resolved reports whether every child of this expression is
	// resolved. Literals and attribute references are always resolved;
	// the engine never sees unresolved expressions in practice since
	// plan resolution is an out-of-scope collaborator, but the method
	// is kept for symmetry with plan.Node.
	Resolved() bool
	// Type returns the expression's data kind.
	Type() Kind
	// Children returns the expression's direct children, in a stable
	// order.
	Children() []Expression
	// WithChildren returns a copy of this expression with its children
	// replaced. len(children) must equal len(e.Children()).
	WithChildren(children ...Expression) (Expression, error)
	String() string
}

// AttributeRef is a reference to a single output column, optionally
// qualified by a table/alias name. Qualifier is stripped by
// SemanticEquals so that "t.a" and "a" compare equal once resolved to
// the same column.
type AttributeRef struct {
	Name      string
	DataType  Kind
	Qualifier string
}

func NewAttributeRef(name string, dataType Kind) *AttributeRef {
	return &AttributeRef{Name: name, DataType: dataType}
}

func NewQualifiedAttributeRef(qualifier, name string, dataType Kind) *AttributeRef {
	return &AttributeRef{Name: name, DataType: dataType, Qualifier: qualifier}
}

func (a *AttributeRef) Resolved() bool        { return true }
func (a *AttributeRef) Type() Kind            { return a.DataType }
func (a *AttributeRef) Children() []Expression { return nil }

func (a *AttributeRef) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expr: AttributeRef takes no children, got %d", len(children))
	}
	return a, nil
}

func (a *AttributeRef) String() string {
	if a.Qualifier == "" {
		return a.Name
	}
	return a.Qualifier + "." + a.Name
}

// Literal is a constant value of a known kind.
type Literal struct {
	Value    interface{}
	DataType Kind
}

func NewLiteral(value interface{}, dataType Kind) *Literal {
	return &Literal{Value: value, DataType: dataType}
}

func (l *Literal) Resolved() bool         { return true }
func (l *Literal) Type() Kind             { return l.DataType }
func (l *Literal) Children() []Expression { return nil }

func (l *Literal) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expr: Literal takes no children, got %d", len(children))
	}
	return l, nil
}

func (l *Literal) String() string {
	if l.DataType == String {
		return fmt.Sprintf("%q", l.Value)
	}
	return fmt.Sprintf("%v", l.Value)
}

// Cast wraps Child to coerce it to DataType. The rewrite engine treats a
// Cast wrapping a Literal as cosmetic for the purposes of range
// classification and semantic equality (spec'd "optional Cast wrappers
// around literals").
type Cast struct {
	Child    Expression
	DataType Kind
}

func NewCast(child Expression, dataType Kind) *Cast {
	return &Cast{Child: child, DataType: dataType}
}

func (c *Cast) Resolved() bool         { return c.Child.Resolved() }
func (c *Cast) Type() Kind             { return c.DataType }
func (c *Cast) Children() []Expression { return []Expression{c.Child} }

func (c *Cast) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Cast takes exactly 1 child, got %d", len(children))
	}
	return &Cast{Child: children[0], DataType: c.DataType}, nil
}

func (c *Cast) String() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Child, c.DataType)
}

// Alias names an expression, as in "SELECT a+b AS total".
type Alias struct {
	Child Expression
	Name  string
}

func NewAlias(name string, child Expression) *Alias {
	return &Alias{Child: child, Name: name}
}

func (a *Alias) Resolved() bool         { return a.Child.Resolved() }
func (a *Alias) Type() Kind             { return a.Child.Type() }
func (a *Alias) Children() []Expression { return []Expression{a.Child} }

func (a *Alias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expr: Alias takes exactly 1 child, got %d", len(children))
	}
	return &Alias{Child: children[0], Name: a.Name}, nil
}

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child, a.Name)
}

// Unalias strips any outer Alias wrapper, returning e unchanged
// otherwise. Matchers compare expressions modulo their own aliasing but
// not modulo the other side's, so this is used selectively.
func Unalias(e Expression) Expression {
	if a, ok := e.(*Alias); ok {
		return a.Child
	}
	return e
}
