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
	"strings"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// Project evaluates Exprs over Child's rows.
type Project struct {
	UnaryNode
	Exprs []expr.Expression
}

func NewProject(exprs []expr.Expression, child Node) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, Exprs: exprs}
}

func (p *Project) Schema() []*expr.AttributeRef {
	schema := make([]*expr.AttributeRef, len(p.Exprs))
	for i, e := range p.Exprs {
		schema[i] = outputAttribute(e)
	}
	return schema
}

func (p *Project) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Project takes exactly 1 child, got %d", len(children))
	}
	return &Project{UnaryNode: UnaryNode{Child: children[0]}, Exprs: p.Exprs}, nil
}

func (p *Project) String() string {
	parts := make([]string, len(p.Exprs))
	for i, e := range p.Exprs {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)\n  %s", strings.Join(parts, ", "), p.Child)
}

// outputAttribute derives the output AttributeRef an expression
// produces: its Alias name if aliased, its own name if already an
// AttributeRef, or its rendered form otherwise.
func outputAttribute(e expr.Expression) *expr.AttributeRef {
	switch x := e.(type) {
	case *expr.AttributeRef:
		return x
	case *expr.Alias:
		return expr.NewAttributeRef(x.Name, x.Type())
	default:
		return expr.NewAttributeRef(e.String(), e.Type())
	}
}
