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

// Aggregate groups Child's rows by Grouping and evaluates Aggregates
// (and any grouping expressions re-projected) per group.
type Aggregate struct {
	UnaryNode
	Grouping   []expr.Expression
	Aggregates []expr.Expression
}

func NewAggregate(grouping, aggregates []expr.Expression, child Node) *Aggregate {
	return &Aggregate{UnaryNode: UnaryNode{Child: child}, Grouping: grouping, Aggregates: aggregates}
}

func (a *Aggregate) Schema() []*expr.AttributeRef {
	schema := make([]*expr.AttributeRef, 0, len(a.Grouping)+len(a.Aggregates))
	for _, g := range a.Grouping {
		schema = append(schema, outputAttribute(g))
	}
	for _, agg := range a.Aggregates {
		schema = append(schema, outputAttribute(agg))
	}
	return schema
}

func (a *Aggregate) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Aggregate takes exactly 1 child, got %d", len(children))
	}
	return &Aggregate{UnaryNode: UnaryNode{Child: children[0]}, Grouping: a.Grouping, Aggregates: a.Aggregates}, nil
}

func (a *Aggregate) String() string {
	g := make([]string, len(a.Grouping))
	for i, e := range a.Grouping {
		g[i] = e.String()
	}
	agg := make([]string, len(a.Aggregates))
	for i, e := range a.Aggregates {
		agg[i] = e.String()
	}
	return fmt.Sprintf("Aggregate(group: [%s], agg: [%s])\n  %s", strings.Join(g, ", "), strings.Join(agg, ", "), a.Child)
}
