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
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/mv-rewrite/sql/plan"
)

func TestLoadCatalogYAML_RewritesAgainstFixtureCatalog(t *testing.T) {
	data, err := os.ReadFile("testdata/catalog.yaml")
	require.NoError(t, err)

	catalog, err := LoadCatalogYAML(data)
	require.NoError(t, err)

	e := NewEngine(catalog, Options{})
	out := e.Rewrite(context.Background(), equalitySubsetQuery())

	proj, ok := out.(*plan.Project)
	require.True(t, ok, "expected Project at the root, got %T", out)
	filter, ok := proj.Child.(*plan.Filter)
	require.True(t, ok, "expected the compensation filter under the project, got %T", proj.Child)
	scan, ok := filter.Child.(*plan.TableScan)
	require.True(t, ok, "expected TableScan under the filter, got %T", filter.Child)
	require.Equal(t, "paid_orders_fixture", scan.Name)
}

func TestLoadCatalogYAML_UnknownColumnIsAnError(t *testing.T) {
	_, err := LoadCatalogYAML([]byte(`
table: orders
columns:
  - name: id
    type: long
views:
  - name: bad_view
    project: [id, nonexistent]
`))
	require.Error(t, err)
}
