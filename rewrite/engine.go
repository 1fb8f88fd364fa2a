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

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/mv-rewrite/sql/plan"
	"github.com/dolthub/mv-rewrite/sql/transform"
)

// Options configures an Engine. The zero value is a usable, silent,
// untraced, unbounded configuration.
type Options struct {
	Logger *logrus.Logger
	Tracer opentracing.Tracer
	// MaxCandidates caps how many candidate views a single Rule will try
	// for a single plan node before giving up, in catalog order. Zero
	// means unbounded.
	MaxCandidates int
}

// Engine owns a Catalog and the ordered list of Rules it tries against
// every eligible node of an input plan.
type Engine struct {
	catalog Catalog
	rules   []Rule
	opts    Options
}

// NewEngine builds an Engine with the default rule set: spec.md §4.8's
// WithoutJoinGroupRule and AggregateWithoutJoinRule, in that order, so
// that a non-aggregating candidate is preferred over an aggregate
// rollup when a plan shape happens to satisfy both (which it cannot,
// since one requires an Aggregate node and the other's Applies rejects
// plans containing one).
func NewEngine(catalog Catalog, opts Options) *Engine {
	return &Engine{
		catalog: catalog,
		rules:   []Rule{WithoutJoinGroupRule{}, AggregateWithoutJoinRule{}},
		opts:    opts,
	}
}

// Rewrite is the engine's top-level entry point: it walks plan
// bottom-up, and at every node where some Rule Applies, tries that
// rule's candidate views in catalog order, substituting the first
// successful rewrite. A node already wrapped in RewrittenPlan or
// RewrittenLeaf by an inner substitution is left alone — the engine
// runs its rules exactly once per node, never recursing into its own
// output.
func (e *Engine) Rewrite(ctx context.Context, queryPlan plan.Node) plan.Node {
	span, spanCtx := startRewriteSpan(ctx, e.opts.Tracer)
	defer span.Finish()

	memo := newComponentMemo()

	out, _, err := transform.NodeUp(queryPlan, func(n plan.Node) (plan.Node, transform.TreeIdentity, error) {
		switch n.(type) {
		case *plan.RewrittenPlan, *plan.RewrittenLeaf:
			return n, transform.SameTree, nil
		}
		for _, rule := range e.rules {
			if !rule.Applies(n) {
				continue
			}
			ruleSpan, ruleCtx := startRuleSpan(spanCtx, rule.Name())
			result := rule.TryRewrite(ruleCtx, e.catalog, n, e.opts, memo)
			ruleSpan.Finish()
			if !result.Stopped {
				return plan.NewRewrittenPlan(result.Plan, false), transform.NewTree, nil
			}
		}
		return n, transform.SameTree, nil
	})
	if err != nil {
		// Matchers and rewriters never return non-typed errors except
		// through Go's own machinery (none of this package's code paths
		// do); a typed rejection is CompensationExpressions{}, err and
		// is handled inside TryRewrite, not surfaced here.
		invariantViolation("unexpected error walking plan: %v", err)
	}
	return plan.StripWrappers(out)
}

// tryCandidates is shared by every Rule: decompose n and each candidate
// view's definition the same way, run the rule's pipeline against each,
// and return the first success.
func tryCandidates(
	ctx context.Context,
	ruleName string,
	catalog Catalog,
	n plan.Node,
	decompose func(plan.Node) (shape, bool),
	pipelineFor func(*RewriteContext) *Pipeline,
	opts Options,
	memo *componentMemo,
) PlanWithStop {
	if plan.HasJoin(n) {
		return PlanWithStop{Plan: n, Stopped: true, Stage: "join", Err: ErrJoinUnmatch.New("query")}
	}

	querySh, ok := decompose(n)
	if !ok {
		return PlanWithStop{Plan: n, Stopped: true, Stage: "decompose"}
	}

	tables := plan.ExtractTablesFromPlan(n)
	if len(tables) != 1 {
		return PlanWithStop{Plan: n, Stopped: true, Stage: "decompose"}
	}

	candidates := catalog.CandidateViewsByTable(tables[0])
	last := PlanWithStop{Plan: n, Stopped: true, Stage: "no-candidate"}

	for i, name := range candidates {
		if opts.MaxCandidates > 0 && i >= opts.MaxCandidates {
			break
		}
		viewDefPlan, ok := catalog.ViewDefinitionPlan(name)
		if !ok {
			continue
		}
		if plan.HasJoin(viewDefPlan) {
			last = PlanWithStop{Plan: n, Stopped: true, Stage: "join", Err: ErrJoinUnmatch.New("view")}
			continue
		}
		viewTablePlan, ok := catalog.ViewTablePlan(name)
		if !ok {
			continue
		}
		viewSh, ok := decompose(viewDefPlan)
		if !ok {
			continue
		}

		component := newProcessedComponent(querySh, viewSh)
		if memo.SeenBefore(name, component) {
			continue
		}
		rctx := newRewriteContext(name, viewDefPlan, viewTablePlan, component)

		candSpan, _ := startCandidateSpan(ctx, name)

		result := pipelineFor(rctx).Run(rctx, n)
		candSpan.Finish()
		if result.Stopped {
			logStageFailure(opts.Logger, rctx, ruleName, result.Stage, result.Err)
			last = result
			continue
		}
		logRewritten(opts.Logger, rctx, ruleName)
		return result
	}
	return last
}
