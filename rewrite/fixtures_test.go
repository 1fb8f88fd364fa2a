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

// Shared fixture: a base table "orders" and a materialized view
// "orders_by_customer" that pre-aggregates paid orders by customer.
// Individual tests build different query shapes over the same catalog.

func ordersSchema() []*expr.AttributeRef {
	return []*expr.AttributeRef{
		expr.NewAttributeRef("id", expr.Long),
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("amount", expr.Double),
		expr.NewAttributeRef("status", expr.String),
	}
}

func ordersTableScan() *plan.TableScan {
	return plan.NewTableScan("orders", ordersSchema())
}

func statusEqPaid() expr.Expression {
	return expr.NewEquals(expr.NewAttributeRef("status", expr.String), expr.NewLiteral("paid", expr.String))
}

// ordersByCustomerViewDefinition is:
//
//	SELECT customer_id, SUM(amount) AS total, COUNT(*) AS cnt
//	FROM orders WHERE status = 'paid' GROUP BY customer_id
func ordersByCustomerViewDefinition() plan.Node {
	agg := plan.NewAggregate(
		[]expr.Expression{expr.NewAttributeRef("customer_id", expr.Long)},
		[]expr.Expression{
			expr.NewAlias("total", expr.NewSum(expr.NewAttributeRef("amount", expr.Double))),
			expr.NewAlias("cnt", expr.NewCountStar()),
		},
		plan.NewFilter(statusEqPaid(), ordersTableScan()),
	)
	return plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("total", expr.Double),
		expr.NewAttributeRef("cnt", expr.Long),
	}, agg)
}

func ordersByCustomerTablePlan() plan.Node {
	return plan.NewTableScan("orders_by_customer", []*expr.AttributeRef{
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("total", expr.Double),
		expr.NewAttributeRef("cnt", expr.Long),
	})
}

// paidOrdersViewDefinition is:
//
//	SELECT id, customer_id, amount FROM orders WHERE status = 'paid'
func paidOrdersViewDefinition() plan.Node {
	return plan.NewProject([]expr.Expression{
		expr.NewAttributeRef("id", expr.Long),
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("amount", expr.Double),
	}, plan.NewFilter(statusEqPaid(), ordersTableScan()))
}

func paidOrdersTablePlan() plan.Node {
	return plan.NewTableScan("paid_orders", []*expr.AttributeRef{
		expr.NewAttributeRef("id", expr.Long),
		expr.NewAttributeRef("customer_id", expr.Long),
		expr.NewAttributeRef("amount", expr.Double),
	})
}

func newOrdersCatalog() *MemoryCatalog {
	c := NewMemoryCatalog()
	c.Register("orders_by_customer", "orders", ordersByCustomerViewDefinition(), ordersByCustomerTablePlan())
	c.Register("paid_orders", "orders", paidOrdersViewDefinition(), paidOrdersTablePlan())
	return c
}
