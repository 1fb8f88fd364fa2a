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

import "github.com/mitchellh/hashstructure"

// componentMemo remembers which (view, ProcessedComponent) pairs have
// already been tried during one Engine.Rewrite call, so that two rules
// matching the same candidate root against the same view (e.g. both the
// aggregate and non-aggregate rule triggering, one of them spuriously)
// don't run the matcher pipeline twice for identical input.
type componentMemo struct {
	seen map[string]map[uint64]struct{}
}

func newComponentMemo() *componentMemo {
	return &componentMemo{seen: make(map[string]map[uint64]struct{})}
}

// SeenBefore hashes component's structure and reports whether an
// identical component was already recorded for viewName. It always
// records the current attempt, seen or not.
func (m *componentMemo) SeenBefore(viewName string, component *ProcessedComponent) bool {
	h, err := hashstructure.Hash(component, nil)
	if err != nil {
		// A component that can't be hashed is treated as always-novel;
		// this only costs a redundant pipeline run, never correctness.
		return false
	}
	hashes, ok := m.seen[viewName]
	if !ok {
		hashes = make(map[uint64]struct{})
		m.seen[viewName] = hashes
	}
	_, seen := hashes[h]
	hashes[h] = struct{}{}
	return seen
}
