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

package rewrite

import (
	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
)

// shape is what a Rule finds by walking down from a candidate root: the
// project list, the conjunctive predicates below it (if any Filter is
// present), and — for an aggregating query — the grouping and aggregate
// expressions, drawn from the Aggregate node between the Project and
// the Filter/TableScan.
type shape struct {
	Project    []expr.Expression
	Conjuncts  []expr.Expression
	Grouping   []expr.Expression
	Aggregates []expr.Expression
	HasAgg     bool
}

// decomposeNonAgg matches Project(Filter(TableScan)) or
// Project(TableScan) — spec.md §4.8's "without-join, without-group"
// shape.
func decomposeNonAgg(n plan.Node) (shape, bool) {
	proj, ok := n.(*plan.Project)
	if !ok {
		return shape{}, false
	}
	s := shape{Project: proj.Exprs}
	child := proj.Child
	if f, ok := child.(*plan.Filter); ok {
		s.Conjuncts = expr.SplitConjunctivePredicates(f.Cond)
		child = f.Child
	}
	if _, ok := child.(*plan.TableScan); !ok {
		return shape{}, false
	}
	return s, true
}

// decomposeAgg matches Project(Aggregate(Filter(TableScan))) or
// Project(Aggregate(TableScan)) — spec.md §4.8's aggregate-without-join
// shape.
func decomposeAgg(n plan.Node) (shape, bool) {
	proj, ok := n.(*plan.Project)
	if !ok {
		return shape{}, false
	}
	agg, ok := proj.Child.(*plan.Aggregate)
	if !ok {
		return shape{}, false
	}
	s := shape{
		Project:    proj.Exprs,
		Grouping:   agg.Grouping,
		Aggregates: agg.Aggregates,
		HasAgg:     true,
	}
	child := agg.Child
	if f, ok := child.(*plan.Filter); ok {
		s.Conjuncts = expr.SplitConjunctivePredicates(f.Cond)
		child = f.Child
	}
	if _, ok := child.(*plan.TableScan); !ok {
		return shape{}, false
	}
	return s, true
}

func newProcessedComponent(query, view shape) *ProcessedComponent {
	return &ProcessedComponent{
		QueryConjuncts:  query.Conjuncts,
		ViewConjuncts:   view.Conjuncts,
		QueryProject:    query.Project,
		ViewProject:     view.Project,
		QueryGrouping:   query.Grouping,
		ViewGrouping:    view.Grouping,
		QueryAggregates: query.Aggregates,
		ViewAggregates:  view.Aggregates,
	}
}
