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

package transform

import (
	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
)

// ExprFunc is applied to every expression visited by ExprUp.
type ExprFunc func(e expr.Expression) (expr.Expression, TreeIdentity, error)

// ExprUp applies f bottom-up over e's expression tree, same contract as
// NodeUp but for Expression.
func ExprUp(e expr.Expression, f ExprFunc) (expr.Expression, TreeIdentity, error) {
	if e == nil {
		return e, SameTree, nil
	}
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	newChildren := make([]expr.Expression, len(children))
	identity := SameTree
	for i, c := range children {
		newChild, same, err := ExprUp(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = newChild
		if same == NewTree {
			identity = NewTree
		}
	}

	cur := e
	if identity == NewTree {
		replaced, err := e.WithChildren(newChildren...)
		if err != nil {
			return nil, SameTree, err
		}
		cur = replaced
	}

	out, same, err := f(cur)
	if err != nil {
		return nil, SameTree, err
	}
	if same == NewTree {
		identity = NewTree
	}
	return out, identity, nil
}

// NodeExprs applies f to every top-level expression attached directly
// to n (Project's Exprs, Filter's Cond, Aggregate's Grouping and
// Aggregates), rebuilding n if any changed. It does not descend into
// n's children plans.
func NodeExprs(n plan.Node, f ExprFunc) (plan.Node, TreeIdentity, error) {
	switch x := n.(type) {
	case *plan.Project:
		newExprs, identity, err := exprSliceUp(x.Exprs, f)
		if err != nil || identity == SameTree {
			return n, SameTree, err
		}
		return &plan.Project{UnaryNode: x.UnaryNode, Exprs: newExprs}, NewTree, nil
	case *plan.Filter:
		newCond, identity, err := ExprUp(x.Cond, f)
		if err != nil || identity == SameTree {
			return n, SameTree, err
		}
		return &plan.Filter{UnaryNode: x.UnaryNode, Cond: newCond}, NewTree, nil
	case *plan.Aggregate:
		newGrouping, gSame, err := exprSliceUp(x.Grouping, f)
		if err != nil {
			return nil, SameTree, err
		}
		newAggs, aSame, err := exprSliceUp(x.Aggregates, f)
		if err != nil {
			return nil, SameTree, err
		}
		if gSame == SameTree && aSame == SameTree {
			return n, SameTree, nil
		}
		return &plan.Aggregate{UnaryNode: x.UnaryNode, Grouping: newGrouping, Aggregates: newAggs}, NewTree, nil
	default:
		return n, SameTree, nil
	}
}

func exprSliceUp(exprs []expr.Expression, f ExprFunc) ([]expr.Expression, TreeIdentity, error) {
	identity := SameTree
	out := make([]expr.Expression, len(exprs))
	for i, e := range exprs {
		newE, same, err := ExprUp(e, f)
		if err != nil {
			return nil, SameTree, err
		}
		out[i] = newE
		if same == NewTree {
			identity = NewTree
		}
	}
	if identity == SameTree {
		return exprs, SameTree, nil
	}
	return out, NewTree, nil
}
