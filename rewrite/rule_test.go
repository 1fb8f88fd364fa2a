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

func TestWithoutJoinGroupRule_Applies(t *testing.T) {
	nonAgg := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))
	assert.True(t, WithoutJoinGroupRule{}.Applies(nonAgg))

	withAgg := countStarRollupQuery()
	assert.False(t, WithoutJoinGroupRule{}.Applies(withAgg), "an Aggregate-bearing plan belongs to the other rule")

	withJoin := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewJoin(plan.InnerJoin, ordersTableScan(), ordersTableScan(), statusEqPaid()))
	assert.False(t, WithoutJoinGroupRule{}.Applies(withJoin))

	assert.False(t, WithoutJoinGroupRule{}.Applies(ordersTableScan()), "a bare TableScan has no Project to decompose")
}

func TestAggregateWithoutJoinRule_Applies(t *testing.T) {
	assert.True(t, AggregateWithoutJoinRule{}.Applies(countStarRollupQuery()))

	nonAgg := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))
	assert.False(t, AggregateWithoutJoinRule{}.Applies(nonAgg))
}

func TestWithoutJoinGroupRule_TryRewriteNoCandidates(t *testing.T) {
	nonAgg := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))

	result := WithoutJoinGroupRule{}.TryRewrite(context.Background(), NewMemoryCatalog(), nonAgg, Options{}, newComponentMemo())
	require.True(t, result.Stopped)
	assert.Equal(t, "no-candidate", result.Stage)
}

func TestAggregateWithoutJoinRule_TryRewriteSuccess(t *testing.T) {
	result := AggregateWithoutJoinRule{}.TryRewrite(context.Background(), newOrdersCatalog(), countStarRollupQuery(), Options{}, newComponentMemo())
	require.False(t, result.Stopped)
	_, ok := result.Plan.(*plan.Project)
	assert.True(t, ok)
}

// MaxCandidates bounds how many candidates a rule will try, in catalog
// order, before giving up even if a later candidate would have
// succeeded.
func TestTryRewrite_MaxCandidatesBound(t *testing.T) {
	nonAgg := plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
		expr.NewAttributeRef("customer_id", expr.Long),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))

	// Catalog order is lexicographic: "orders_by_customer" sorts before
	// "paid_orders". orders_by_customer can never satisfy a non-agg
	// rule (it decomposes as an aggregate shape), so capping at 1
	// candidate must leave the query unrewritten even though
	// paid_orders would have matched.
	result := WithoutJoinGroupRule{}.TryRewrite(context.Background(), newOrdersCatalog(), nonAgg, Options{MaxCandidates: 1}, newComponentMemo())
	assert.True(t, result.Stopped)
}
