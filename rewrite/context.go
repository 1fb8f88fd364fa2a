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
	uuid "github.com/satori/go.uuid"

	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
)

// ProcessedComponent is the per-candidate working set a Rule populates
// once and every Matcher in the pipeline reads from. Splitting this out
// of RewriteContext keeps "what this candidate looks like" separate
// from "what we've done about it so far".
type ProcessedComponent struct {
	QueryConjuncts []expr.Expression
	ViewConjuncts  []expr.Expression

	QueryProject []expr.Expression
	ViewProject  []expr.Expression

	QueryGrouping []expr.Expression
	ViewGrouping  []expr.Expression

	QueryAggregates []expr.Expression
	ViewAggregates  []expr.Expression
}

// CompensationExpressions is what a Matcher hands to its paired
// Rewriter: either OK with the residue to re-apply above the view, or
// not OK (the caller should treat this as a rejected candidate; the
// accompanying error carries the typed reason).
type CompensationExpressions struct {
	OK    bool
	Exprs []expr.Expression
}

func compensate(exprs ...expr.Expression) CompensationExpressions {
	return CompensationExpressions{OK: true, Exprs: exprs}
}

// RewriteContext is the mutable state shared by every matcher/rewriter
// within one pipeline run. Per spec.md §5, a RewriteContext must never
// be shared between concurrent rewrites; callers get a fresh one per
// candidate via newRewriteContext.
type RewriteContext struct {
	// TraceID correlates every log line emitted while evaluating one
	// candidate. It is not attached to trace spans.
	TraceID uuid.UUID

	// ViewName is the candidate view's catalog name.
	ViewName string
	// ViewDefinitionPlan is the view's "CREATE MATERIALIZED VIEW AS …"
	// plan — the query ProcessedComponent's View* fields were derived
	// from.
	ViewDefinitionPlan plan.Node
	// ViewTablePlan is a plan that scans the view as if it were a base
	// table; TableOrViewRewrite substitutes this in for the matched
	// base-table scan.
	ViewTablePlan plan.Node

	Component *ProcessedComponent

	// ReplacedAttrs maps a query output column name to the view-output
	// expression ProjectRewrite substituted for it. It is
	// filled during the rewrite phase, after every matcher has already
	// run, and nothing in this package reads it back.
	ReplacedAttrs map[string]expr.Expression
}

func newRewriteContext(viewName string, viewDefinitionPlan, viewTablePlan plan.Node, component *ProcessedComponent) *RewriteContext {
	traceID, err := uuid.NewV4()
	if err != nil {
		traceID = uuid.Nil
	}
	return &RewriteContext{
		TraceID:            traceID,
		ViewName:           viewName,
		ViewDefinitionPlan: viewDefinitionPlan,
		ViewTablePlan:      viewTablePlan,
		Component:          component,
		ReplacedAttrs:      make(map[string]expr.Expression),
	}
}

// viewOutputAttributes returns the set of attributes the view's
// definition plan projects at its first level — the set every
// compensation expression's columns must be drawn from.
func (c *RewriteContext) viewOutputAttributes() []*expr.AttributeRef {
	return c.ViewDefinitionPlan.Schema()
}
