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

// JoinKind identifies the kind of a Join node. No rule in this release
// matches through a Join (spec: "No support for joins in this
// release"); the node exists so that HasJoin can detect one and decline
// to attempt a rewrite.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
)

// Join is a two-child node. It is never produced by a rewrite and is
// only ever observed in an input plan or a view definition.
type Join struct {
	Kind  JoinKind
	Left  Node
	Right Node
	Cond  expr.Expression
}

func NewJoin(kind JoinKind, left, right Node, cond expr.Expression) *Join {
	return &Join{Kind: kind, Left: left, Right: right, Cond: cond}
}

func (j *Join) Resolved() bool { return j.Left.Resolved() && j.Right.Resolved() }
func (j *Join) Schema() []*expr.AttributeRef {
	return append(append([]*expr.AttributeRef{}, j.Left.Schema()...), j.Right.Schema()...)
}
func (j *Join) Children() []Node { return []Node{j.Left, j.Right} }
func (j *Join) WithChildren(children ...Node) (Node, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("plan: Join takes exactly 2 children, got %d", len(children))
	}
	return &Join{Kind: j.Kind, Left: children[0], Right: children[1], Cond: j.Cond}, nil
}
func (j *Join) String() string {
	return fmt.Sprintf("Join(%s)\n  %s\n  %s", j.Cond, j.Left, j.Right)
}

// HasJoin reports whether n contains a Join anywhere in its subtree.
func HasJoin(n Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*Join); ok {
		return true
	}
	for _, c := range n.Children() {
		if HasJoin(c) {
			return true
		}
	}
	return false
}

// HasAggregate reports whether n contains an Aggregate anywhere in its
// subtree.
func HasAggregate(n Node) bool {
	if n == nil {
		return false
	}
	if _, ok := n.(*Aggregate); ok {
		return true
	}
	for _, c := range n.Children() {
		if HasAggregate(c) {
			return true
		}
	}
	return false
}

// ExtractTablesFromPlan collects the names of every TableScan reachable
// from n.
func ExtractTablesFromPlan(n Node) []string {
	var names []string
	var walk func(Node)
	walk = func(x Node) {
		if x == nil {
			return
		}
		if ts, ok := x.(*TableScan); ok {
			names = append(names, ts.Name)
			return
		}
		for _, c := range x.Children() {
			walk(c)
		}
	}
	walk(n)
	return names
}
