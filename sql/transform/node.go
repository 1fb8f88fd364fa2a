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

// Package transform provides generic tree-transform combinators over
// plan.Node and expr.Expression, so matchers and rewriters never hand-
// roll their own recursion (spec.md §9: "model both Expression and
// LogicalPlan as tagged variants with a transform_down combinator").
package transform

import "github.com/dolthub/mv-rewrite/sql/plan"

// TreeIdentity reports whether a transform produced a structurally new
// tree (NewTree) or left it untouched (SameTree), so callers can avoid
// rebuilding parents unnecessarily.
type TreeIdentity bool

const (
	SameTree TreeIdentity = false
	NewTree  TreeIdentity = true
)

func (t TreeIdentity) IsSame() bool { return t == SameTree }

// NodeFunc is applied to every node visited by NodeUp/NodeDown.
type NodeFunc func(n plan.Node) (plan.Node, TreeIdentity, error)

// NodeUp applies f bottom-up: children are transformed first, then f is
// applied to the node with its (possibly replaced) children.
func NodeUp(n plan.Node, f NodeFunc) (plan.Node, TreeIdentity, error) {
	if n == nil {
		return n, SameTree, nil
	}
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]plan.Node, len(children))
	identity := SameTree
	for i, c := range children {
		newChild, same, err := NodeUp(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = newChild
		if same == NewTree {
			identity = NewTree
		}
	}

	cur := n
	if identity == NewTree {
		replaced, err := n.WithChildren(newChildren...)
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

// NodeDown applies f top-down: f is applied to the node first, and
// recursion continues into whatever children the result has.
func NodeDown(n plan.Node, f NodeFunc) (plan.Node, TreeIdentity, error) {
	if n == nil {
		return n, SameTree, nil
	}
	cur, identity, err := f(n)
	if err != nil {
		return nil, SameTree, err
	}

	children := cur.Children()
	if len(children) == 0 {
		return cur, identity, nil
	}

	newChildren := make([]plan.Node, len(children))
	changed := false
	for i, c := range children {
		newChild, same, err := NodeDown(c, f)
		if err != nil {
			return nil, SameTree, err
		}
		newChildren[i] = newChild
		if same == NewTree {
			changed = true
		}
	}
	if !changed {
		return cur, identity, nil
	}
	out, err := cur.WithChildren(newChildren...)
	if err != nil {
		return nil, SameTree, err
	}
	return out, NewTree, nil
}

// Inspect walks n and every descendant, calling f on each and stopping
// early if f returns false.
func Inspect(n plan.Node, f func(plan.Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range n.Children() {
		Inspect(c, f)
	}
}
