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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
)

func customerIDEq5() expr.Expression {
	return expr.NewEquals(expr.NewAttributeRef("customer_id", expr.Long), expr.NewLiteral(int64(5), expr.Long))
}

// SELECT id, customer_id FROM orders WHERE status = 'paid' AND customer_id = 5
func equalitySubsetQuery() plan.Node {
	return plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
		expr.NewAttributeRef("customer_id", expr.Long),
	}, plan.NewFilter(
		expr.NewAnd(statusEqPaid(), customerIDEq5()),
		ordersTableScan(),
	))
}

func TestEngineRewrite_EqualitySubsetSuccess(t *testing.T) {
	e := NewEngine(newOrdersCatalog(), Options{})
	out := e.Rewrite(context.Background(), equalitySubsetQuery())

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected Project at the root, got %T", out)
	require.Len(t, proj.Exprs, 2)
	assert.Equal(t, "id", proj.Exprs[0].(*expr.AttributeRef).Name)
	assert.Equal(t, "customer_id", proj.Exprs[1].(*expr.AttributeRef).Name)

	filter, ok := proj.Child.(*plan.Filter)
	require.True(t, ok, "expected the compensation filter under the project, got %T", proj.Child)
	assert.True(t, expr.SemanticEquals(filter.Cond, customerIDEq5()))

	scan, ok := filter.Child.(*plan.TableScan)
	require.True(t, ok, "expected TableScan under the filter, got %T", filter.Child)
	assert.Equal(t, "paid_orders", scan.Name)
}

// SELECT status FROM orders WHERE status = 'paid' — "status" is not
// projected by either candidate view, so the rewrite should decline and
// leave the original plan untouched.
func TestEngineRewrite_ProjectColumnNotInViewLeavesOriginal(t *testing.T) {
	original := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("status", expr.String),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))

	e := NewEngine(newOrdersCatalog(), Options{})
	out := e.Rewrite(context.Background(), original)

	assert.Equal(t, original.String(), out.String())
}

// SELECT customer_id, COUNT(*) AS cnt FROM orders WHERE status = 'paid'
// GROUP BY customer_id — exact match against orders_by_customer's own
// COUNT(*), re-summed.
func countStarRollupQuery() plan.Node {
	agg := plan.NewAggregate(
		[]expr.Expression{expr.NewAttributeRef("customer_id", expr.Long)},
		[]expr.Expression{expr.NewAlias("cnt", expr.NewCountStar())},
		plan.NewFilter(statusEqPaid(), ordersTableScan()),
	)
	return plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("cnt", expr.Long),
	}, agg)
}

func TestEngineRewrite_CountStarRollupSuccess(t *testing.T) {
	e := NewEngine(newOrdersCatalog(), Options{})
	out := e.Rewrite(context.Background(), countStarRollupQuery())

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected Project at the root, got %T", out)
	require.Len(t, proj.Exprs, 2)
	assert.Equal(t, "customer_id", proj.Exprs[0].(*expr.AttributeRef).Name)
	assert.Equal(t, "cnt", proj.Exprs[1].(*expr.AttributeRef).Name)

	agg, ok := proj.Child.(*plan.Aggregate)
	require.True(t, ok, "expected Aggregate under the project, got %T", proj.Child)
	require.Len(t, agg.Aggregates, 1)
	alias, ok := agg.Aggregates[0].(*expr.Alias)
	require.True(t, ok)
	assert.Equal(t, "cnt", alias.Name)
	sum, ok := alias.Child.(*expr.Sum)
	require.True(t, ok, "expected the roll-up to re-sum the view's COUNT(*), got %T", alias.Child)
	assert.Equal(t, "cnt", sum.Arg.(*expr.AttributeRef).Name)

	scan, ok := agg.Child.(*plan.TableScan)
	require.True(t, ok, "expected TableScan under the aggregate, got %T", agg.Child)
	assert.Equal(t, "orders_by_customer", scan.Name)
}

// SELECT customer_id, AVG(amount) AS avg_amount FROM orders
// WHERE status = 'paid' GROUP BY customer_id — derived from the view's
// SUM(amount)/COUNT(*).
func avgRollupQuery() plan.Node {
	agg := plan.NewAggregate(
		[]expr.Expression{expr.NewAttributeRef("customer_id", expr.Long)},
		[]expr.Expression{expr.NewAlias("avg_amount", expr.NewAverage(expr.NewAttributeRef("amount", expr.Double)))},
		plan.NewFilter(statusEqPaid(), ordersTableScan()),
	)
	return plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("avg_amount", expr.Double),
	}, agg)
}

func TestEngineRewrite_AverageRollupSuccess(t *testing.T) {
	e := NewEngine(newOrdersCatalog(), Options{})
	out := e.Rewrite(context.Background(), avgRollupQuery())

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected Project at the root, got %T", out)
	require.Len(t, proj.Exprs, 2)
	assert.Equal(t, "avg_amount", proj.Exprs[1].(*expr.AttributeRef).Name)

	agg, ok := proj.Child.(*plan.Aggregate)
	require.True(t, ok, "expected Aggregate under the project, got %T", proj.Child)
	require.Len(t, agg.Aggregates, 1)
	alias, ok := agg.Aggregates[0].(*expr.Alias)
	require.True(t, ok)
	assert.Equal(t, "avg_amount", alias.Name)

	div, ok := alias.Child.(*expr.Arithmetic)
	require.True(t, ok, "expected the roll-up to divide SUM(total) by SUM(cnt), got %T", alias.Child)
	assert.Equal(t, expr.Div, div.Op)

	sumTotal, ok := div.Left.(*expr.Sum)
	require.True(t, ok)
	assert.Equal(t, "total", sumTotal.Arg.(*expr.AttributeRef).Name)
	sumCnt, ok := div.Right.(*expr.Sum)
	require.True(t, ok)
	assert.Equal(t, "cnt", sumCnt.Arg.(*expr.AttributeRef).Name)
}

// AVG over a view with no COUNT(*) cannot be derived; the query should
// be left untouched rather than rewritten against a view that happens
// to carry a matching SUM.
func TestEngineRewrite_AverageWithoutViewCountStarFails(t *testing.T) {
	catalog := NewMemoryCatalog()
	viewDef := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("total", expr.Double),
	}, plan.NewAggregate(
		[]expr.Expression{expr.NewAttributeRef("customer_id", expr.Long)},
		[]expr.Expression{expr.NewAlias("total", expr.NewSum(expr.NewAttributeRef("amount", expr.Double)))},
		plan.NewFilter(statusEqPaid(), ordersTableScan()),
	))
	viewTable := plan.NewTableScan("orders_sum_by_customer", []*expr.AttributeRef{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("total", expr.Double),
	})
	catalog.Register("orders_sum_by_customer", "orders", viewDef, viewTable)

	original := avgRollupQuery()
	e := NewEngine(catalog, Options{})
	out := e.Rewrite(context.Background(), original)

	assert.Equal(t, original.String(), out.String())
}

// A query with a Join is declined outright by every rule's Applies,
// regardless of what the catalog holds.
func TestEngineRewrite_JoinDeclined(t *testing.T) {
	original := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewJoin(plan.InnerJoin, ordersTableScan(), ordersTableScan(), statusEqPaid()))

	e := NewEngine(newOrdersCatalog(), Options{})
	out := e.Rewrite(context.Background(), original)

	assert.Equal(t, original.String(), out.String())
}

// tryCandidates' own plan.HasJoin guard is independently reachable even
// though every Rule.Applies already filters joins out first: a rule
// given to TryRewrite directly, bypassing Applies, still rejects a
// joined plan with the typed ErrJoinUnmatch failure.
func TestTryCandidates_JoinGuardIsReachable(t *testing.T) {
	joined := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewJoin(plan.InnerJoin, ordersTableScan(), ordersTableScan(), statusEqPaid()))

	rule := WithoutJoinGroupRule{}
	result := rule.TryRewrite(context.Background(), newOrdersCatalog(), joined, Options{}, newComponentMemo())
	require.True(t, result.Stopped)
	assert.True(t, ErrJoinUnmatch.Is(result.Err))
}

func TestEngineRewrite_Idempotent(t *testing.T) {
	e := NewEngine(newOrdersCatalog(), Options{})
	first := e.Rewrite(context.Background(), equalitySubsetQuery())
	second := e.Rewrite(context.Background(), first)
	assertPlansEqualWithDiff(t, first, second)
}
