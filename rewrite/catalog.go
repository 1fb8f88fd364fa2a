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
	"sync"

	"github.com/dolthub/mv-rewrite/sql/plan"
)

// Catalog answers "which materialized views could stand in for reads
// of this base table" and hands back each candidate's two plans: its
// definition (what it computes from the base table) and its table plan
// (how to scan it as if it were itself a base table). The engine treats
// a Catalog purely as a lookup; populating it is out of scope the same
// way the SQL parser and analyzer are (spec.md "Out of scope").
type Catalog interface {
	CandidateViewsByTable(table string) []string
	ViewDefinitionPlan(name string) (plan.Node, bool)
	ViewTablePlan(name string) (plan.Node, bool)
}

type viewEntry struct {
	table          string
	definitionPlan plan.Node
	tablePlan      plan.Node
}

// MemoryCatalog is a simple in-memory Catalog implementation, safe for
// concurrent registration and lookup. Real deployments back this with
// whatever tracks materialized views already (a metadata store, a
// config file); MemoryCatalog exists so the engine and its tests don't
// need one.
type MemoryCatalog struct {
	mu    sync.RWMutex
	views map[string]viewEntry
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{views: make(map[string]viewEntry)}
}

// Register adds or replaces a candidate view over table.
func (c *MemoryCatalog) Register(name, table string, definitionPlan, tablePlan plan.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.views[name] = viewEntry{table: table, definitionPlan: definitionPlan, tablePlan: tablePlan}
}

// Remove drops a view from the catalog, if present.
func (c *MemoryCatalog) Remove(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.views, name)
}

// CandidateViewsByTable returns candidate view names in a fixed,
// deterministic order (lexicographic) rather than Go's randomized map
// iteration order — TryRewrite's "first success wins" semantics need a
// stable "catalog order" to mean anything across repeated runs.
func (c *MemoryCatalog) CandidateViewsByTable(table string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var names []string
	for name, e := range c.views {
		if e.table == table {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (c *MemoryCatalog) ViewDefinitionPlan(name string) (plan.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.views[name]
	if !ok {
		return nil, false
	}
	return e.definitionPlan, true
}

func (c *MemoryCatalog) ViewTablePlan(name string) (plan.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.views[name]
	if !ok {
		return nil, false
	}
	return e.tablePlan, true
}
