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

package plan

import (
	"fmt"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

// TableScan is a leaf node reading all rows of a named base table or
// materialized view.
type TableScan struct {
	Name   string
	Output []*expr.AttributeRef
}

func NewTableScan(name string, output []*expr.AttributeRef) *TableScan {
	return &TableScan{Name: name, Output: output}
}

func (t *TableScan) Resolved() bool                 { return true }
func (t *TableScan) Schema() []*expr.AttributeRef   { return t.Output }
func (t *TableScan) Children() []Node               { return nil }
func (t *TableScan) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: TableScan takes no children, got %d", len(children))
	}
	return t, nil
}
func (t *TableScan) String() string { return fmt.Sprintf("TableScan(%s)", t.Name) }
