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
	"context"

	"github.com/dolthub/mv-rewrite/sql/plan"
)

// Rule is one plan shape the engine knows how to match against a
// Catalog's candidate views. spec.md §4.8 names two: a rule for plans
// without a join or a group-by, and one for plans with a group-by (but
// still no join) — SPEC_FULL.md §4 builds the latter out in full.
type Rule interface {
	Name() string
	// Applies reports whether n has the shape this rule knows how to
	// decompose, without yet looking at any candidate view.
	Applies(n plan.Node) bool
	// TryRewrite attempts every candidate view the catalog offers for
	// the table n reads, in the catalog's order, returning the first
	// one whose full pipeline succeeds. memo lets repeated attempts at
	// an identical (view, ProcessedComponent) pair within one Rewrite
	// call short-circuit without re-running the pipeline.
	TryRewrite(ctx context.Context, catalog Catalog, n plan.Node, opts Options, memo *componentMemo) PlanWithStop
}

// WithoutJoinGroupRule matches Project(Filter?(TableScan)) with no
// Aggregate in between: spec.md §4.8's base case.
type WithoutJoinGroupRule struct{}

func (WithoutJoinGroupRule) Name() string { return "WithoutJoinGroupRule" }

func (WithoutJoinGroupRule) Applies(n plan.Node) bool {
	if plan.HasJoin(n) || plan.HasAggregate(n) {
		return false
	}
	_, ok := decomposeNonAgg(n)
	return ok
}

func (r WithoutJoinGroupRule) TryRewrite(ctx context.Context, catalog Catalog, n plan.Node, opts Options, memo *componentMemo) PlanWithStop {
	return tryCandidates(ctx, r.Name(), catalog, n, decomposeNonAgg, func(_ *RewriteContext) *Pipeline {
		return NewPipeline(
			// Depth is rewrite nesting order, not match priority: the
			// residual filter must sit below the final Project, since
			// ProjectRewrite only carries the query's own project list
			// forward and a filter above it could reference a view column
			// the query never selected. The rewritten tree is always
			// shaped Project(Filter(view)).
			Stage{Name: "predicate", Depth: 1, Match: PredicateMatcher, Rewrite: PredicateRewrite},
			Stage{Name: "project", Depth: 2, Match: ProjectMatcher, Rewrite: ProjectRewrite},
			Stage{Name: "table", Depth: 0, Match: TableNonOpMatcher(n), Rewrite: TableOrViewRewrite},
		)
	}, opts, memo)
}

// AggregateWithoutJoinRule matches Project(Aggregate(Filter?(TableScan)))
// with no Join: spec.md §4.8's group-by case, built out in full by
// SPEC_FULL.md §4. Matchers run in the order spec.md §4.8 describes
// ("adds AggMatcher/GroupByRewrite before the Project steps": predicate,
// then group-by, then project, then table), which is independent of the
// rewrite nesting order below: the residual filter's Depth places it
// inside the project layer regardless of match order, for the same
// reason as WithoutJoinGroupRule — ProjectRewrite only carries the
// query's own project list forward, so a filter sitting above the final
// Project could reference a view column the query never selected.
type AggregateWithoutJoinRule struct{}

func (AggregateWithoutJoinRule) Name() string { return "AggregateWithoutJoinRule" }

func (AggregateWithoutJoinRule) Applies(n plan.Node) bool {
	if plan.HasJoin(n) {
		return false
	}
	_, ok := decomposeAgg(n)
	return ok
}

func (r AggregateWithoutJoinRule) TryRewrite(ctx context.Context, catalog Catalog, n plan.Node, opts Options, memo *componentMemo) PlanWithStop {
	return tryCandidates(ctx, r.Name(), catalog, n, decomposeAgg, func(_ *RewriteContext) *Pipeline {
		return NewPipeline(
			// Array order is match priority, per spec.md §4.8: predicate,
			// then group-by, then project, then table. Depth is rewrite
			// nesting order, which differs: table < group-by < predicate
			// < project, since the rewritten tree is always shaped
			// Project(Filter(Aggregate(view))) — the residual filter
			// nests directly inside the final Project, over columns the
			// Aggregate layer (grouping keys and aggregate results)
			// already exposes.
			Stage{Name: "predicate", Depth: 2, Match: PredicateMatcher, Rewrite: PredicateRewrite},
			Stage{Name: "groupby", Depth: 1, Match: AggMatcher, Rewrite: GroupByRewrite},
			Stage{Name: "project", Depth: 3, Match: ProjectMatcher, Rewrite: ProjectRewrite},
			Stage{Name: "table", Depth: 0, Match: TableNonOpMatcher(n), Rewrite: TableOrViewRewrite},
		)
	}, opts, memo)
}
