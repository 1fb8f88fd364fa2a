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

import "github.com/dolthub/mv-rewrite/sql/plan"

// TableNonOpMatcher implements spec.md §4.5: confirms the single base
// table the query reads from is the same table the view's definition
// plan reads from. It produces no compensation.
func TableNonOpMatcher(queryPlan plan.Node) func(*RewriteContext) (CompensationExpressions, error) {
	return func(ctx *RewriteContext) (CompensationExpressions, error) {
		queryTables := plan.ExtractTablesFromPlan(queryPlan)
		viewTables := plan.ExtractTablesFromPlan(ctx.ViewDefinitionPlan)

		if len(queryTables) != 1 || len(viewTables) != 1 || queryTables[0] != viewTables[0] {
			// The owning Rule is responsible for only ever selecting a
			// candidate view whose definition reads the same single
			// base table the query does (spec.md §4.8); reaching here
			// means that invariant was violated upstream.
			invariantViolation("query tables %v do not match view tables %v", queryTables, viewTables)
		}
		return CompensationExpressions{OK: true}, nil
	}
}
