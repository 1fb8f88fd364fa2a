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

// Package plan is the immutable logical-plan tree the rewrite engine
// reads and rebuilds: projects, filters, aggregates, table scans and
// joins, plus the RewrittenPlan/RewrittenLeaf wrapper nodes the
// pipeline uses to mark progress.
package plan

import "github.com/dolthub/mv-rewrite/sql/expr"

// Node is the interface every logical plan node implements.
type Node interface {
	Resolved() bool
	// Schema returns the node's output columns.
	Schema() []*expr.AttributeRef
	Children() []Node
	WithChildren(children ...Node) (Node, error)
	String() string
}

// UnaryNode is embedded by every Node with exactly one child, to avoid
// repeating the Children()/boilerplate across Project/Filter/Aggregate.
type UnaryNode struct {
	Child Node
}

func (n UnaryNode) Children() []Node { return []Node{n.Child} }
func (n UnaryNode) Resolved() bool   { return n.Child == nil || n.Child.Resolved() }
