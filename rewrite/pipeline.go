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
	"sort"

	"github.com/dolthub/mv-rewrite/sql/plan"
)

// MatchFunc checks one dimension of containment (predicates, project
// list, grouping, tables) and returns the compensation the paired
// RewriteFunc must apply, or a typed error from failure.go.
type MatchFunc func(ctx *RewriteContext) (CompensationExpressions, error)

// RewriteFunc builds the plan layer for one pipeline stage. child is
// the node assembled by every stage nested inside this one — nil for
// the innermost stage, which is always the table/view substitution.
type RewriteFunc func(ctx *RewriteContext, comp CompensationExpressions, child plan.Node) (plan.Node, error)

// Stage pairs one Matcher with its Rewriter, named for diagnostics and
// tracing (spec.md §4.7: "Matchers and rewriters are paired in order").
//
// Depth places the stage's plan layer in the rewritten tree: 0 is the
// innermost (the table/view substitution), increasing outward. This is
// independent of the position in Pipeline.Stages, which instead encodes
// match priority (spec.md §4.7/§4.8). A residual filter always has to
// sit below the final Project, since ProjectRewrite only carries the
// query's own project list forward and a filter sitting above a Project
// that dropped one of its columns would be invalid: the non-aggregate
// rule nests Project(Filter(view)), and the aggregate rule nests
// Project(Filter(Aggregate(view))).
type Stage struct {
	Name    string
	Depth   int
	Match   MatchFunc
	Rewrite RewriteFunc
}

// PlanWithStop is a pipeline run's outcome: either the rewritten plan,
// or the original plan annotated with why the pipeline gave up.
type PlanWithStop struct {
	Plan    plan.Node
	Stopped bool
	Stage   string
	Err     error
}

// Pipeline runs an ordered sequence of Stages against one candidate.
//
// Stages are matched in the order given — spec.md §4.7's listed
// priority of which typed failure is reported first when more than one
// dimension would fail to match. Once every stage's Match succeeds,
// Pipeline composes Rewrites in Depth order, innermost (the table/view
// substitution) first, so the resulting tree nests correctly regardless
// of match order.
type Pipeline struct {
	Stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{Stages: stages}
}

func (p *Pipeline) Run(ctx *RewriteContext, original plan.Node) PlanWithStop {
	comps := make([]CompensationExpressions, len(p.Stages))
	for i, st := range p.Stages {
		comp, err := st.Match(ctx)
		if err != nil {
			return PlanWithStop{Plan: original, Stopped: true, Stage: st.Name, Err: err}
		}
		comps[i] = comp
	}

	order := make([]int, len(p.Stages))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return p.Stages[order[a]].Depth < p.Stages[order[b]].Depth })

	var cur plan.Node
	for _, i := range order {
		built, err := p.Stages[i].Rewrite(ctx, comps[i], cur)
		if err != nil {
			return PlanWithStop{Plan: original, Stopped: true, Stage: p.Stages[i].Name, Err: err}
		}
		cur = built
	}
	return PlanWithStop{Plan: plan.StripWrappers(cur), Stopped: false}
}
