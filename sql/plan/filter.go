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

// Filter keeps rows from Child matching Cond.
type Filter struct {
	UnaryNode
	Cond expr.Expression
}

func NewFilter(cond expr.Expression, child Node) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Cond: cond}
}

func (f *Filter) Schema() []*expr.AttributeRef { return f.Child.Schema() }

func (f *Filter) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Filter takes exactly 1 child, got %d", len(children))
	}
	return &Filter{UnaryNode: UnaryNode{Child: children[0]}, Cond: f.Cond}, nil
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)\n  %s", f.Cond, f.Child)
}
