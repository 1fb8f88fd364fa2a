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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

func TestComponentMemo_SeenBefore(t *testing.T) {
	m := newComponentMemo()

	c1 := &ProcessedComponent{QueryProject: []expr.Expression{expr.NewAttributeRef("id", expr.Long)}}
	c2 := &ProcessedComponent{QueryProject: []expr.Expression{expr.NewAttributeRef("id", expr.Long)}}
	c3 := &ProcessedComponent{QueryProject: []expr.Expression{expr.NewAttributeRef("customer_id", expr.Long)}}

	assert.False(t, m.SeenBefore("paid_orders", c1), "first sighting of c1 must not be reported as seen")
	assert.True(t, m.SeenBefore("paid_orders", c2), "c2 is structurally identical to c1")
	assert.False(t, m.SeenBefore("paid_orders", c3), "c3 differs from c1/c2")

	// The same component shape is novel again under a different view
	// name — the memo is keyed per view.
	assert.False(t, m.SeenBefore("orders_by_customer", c1))
}
