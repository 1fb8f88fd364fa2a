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

package plan

import (
	"fmt"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// RewrittenPlan wraps a plan produced (or left untouched) by a pipeline
// run. Stopped marks that the pipeline bailed out on a typed failure,
// in which case Inner is the original, unmodified plan. Both wrappers
// are stripped before a plan is returned to a caller — see StripWrappers.
type RewrittenPlan struct {
	Inner   Node
	Stopped bool
}

func NewRewrittenPlan(inner Node, stopped bool) *RewrittenPlan {
	return &RewrittenPlan{Inner: inner, Stopped: stopped}
}

func (r *RewrittenPlan) Resolved() bool               { return r.Inner.Resolved() }
func (r *RewrittenPlan) Schema() []*expr.AttributeRef { return r.Inner.Schema() }
func (r *RewrittenPlan) Children() []Node             { return []Node{r.Inner} }
func (r *RewrittenPlan) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: RewrittenPlan takes exactly 1 child, got %d", len(children))
	}
	return &RewrittenPlan{Inner: children[0], Stopped: r.Stopped}, nil
}
func (r *RewrittenPlan) String() string { return fmt.Sprintf("RewrittenPlan\n  %s", r.Inner) }

// RewrittenLeaf marks a subtree an outer transform should not recurse
// into: the view-table scan a TableOrViewRewrite just substituted in.
type RewrittenLeaf struct {
	Inner Node
}

func NewRewrittenLeaf(inner Node) *RewrittenLeaf {
	return &RewrittenLeaf{Inner: inner}
}

func (r *RewrittenLeaf) Resolved() bool               { return r.Inner.Resolved() }
func (r *RewrittenLeaf) Schema() []*expr.AttributeRef { return r.Inner.Schema() }
func (r *RewrittenLeaf) Children() []Node             { return []Node{r.Inner} }
func (r *RewrittenLeaf) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: RewrittenLeaf takes exactly 1 child, got %d", len(children))
	}
	return &RewrittenLeaf{Inner: children[0]}, nil
}
func (r *RewrittenLeaf) String() string { return fmt.Sprintf("RewrittenLeaf\n  %s", r.Inner) }

// StripWrappers removes every RewrittenPlan/RewrittenLeaf wrapper from
// n's subtree, returning the plain plan a caller expects. The rewrite
// pipeline and the engine run this as a final normalization pass over
// their output; the individual rewriters do not.
func StripWrappers(n Node) Node {
	if n == nil {
		return nil
	}
	switch x := n.(type) {
	case *RewrittenPlan:
		return StripWrappers(x.Inner)
	case *RewrittenLeaf:
		return StripWrappers(x.Inner)
	}
	children := n.Children()
	if len(children) == 0 {
		return n
	}
	newChildren := make([]Node, len(children))
	changed := false
	for i, c := range children {
		newChildren[i] = StripWrappers(c)
		if newChildren[i] != c {
			changed = true
		}
	}
	if !changed {
		return n
	}
	out, err := n.WithChildren(newChildren...)
	if err != nil {
		// WithChildren only fails on arity mismatch, which cannot
		// happen here since newChildren has the same length as
		// children.
		panic(err)
	}
	return out
}
