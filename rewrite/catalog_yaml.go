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
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/dolthub/mv-rewrite/sql/expr"
	"github.com/dolthub/mv-rewrite/sql/plan"
)

// columnSpec, viewSpec and catalogSpec are the declarative fixture
// format LoadCatalogYAML understands: a base table's schema and a list
// of single-table, single-equality-filter views over it. This covers
// the non-aggregate rule's shapes; an aggregate view still has to be
// built directly with the plan package, the same as in the package's
// other tests.
type columnSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type viewSpec struct {
	Name         string   `yaml:"name"`
	Project      []string `yaml:"project"`
	FilterColumn string   `yaml:"filter_column"`
	FilterValue  string   `yaml:"filter_value"`
}

type catalogSpec struct {
	Table   string       `yaml:"table"`
	Columns []columnSpec `yaml:"columns"`
	Views   []viewSpec   `yaml:"views"`
}

// kindFromName maps a fixture's column type name to expr.Kind, falling
// back to expr.Other for anything unrecognized.
func kindFromName(name string) expr.Kind {
	switch name {
	case "long":
		return expr.Long
	case "int":
		return expr.Int
	case "short":
		return expr.Short
	case "float":
		return expr.Float
	case "double":
		return expr.Double
	case "string":
		return expr.String
	default:
		return expr.Other
	}
}

// LoadCatalogYAML parses a declarative catalog fixture and returns a
// MemoryCatalog populated with every view it describes. It exists so
// tests can express a table-and-its-views fixture as data rather than
// hand-built plan.Node trees.
func LoadCatalogYAML(data []byte) (*MemoryCatalog, error) {
	var spec catalogSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errors.Wrap(err, "rewrite: parsing catalog fixture")
	}

	schema := make([]*expr.AttributeRef, len(spec.Columns))
	byName := make(map[string]*expr.AttributeRef, len(spec.Columns))
	for i, c := range spec.Columns {
		ref := expr.NewAttributeRef(c.Name, kindFromName(c.Type))
		schema[i] = ref
		byName[c.Name] = ref
	}
	tableScan := plan.NewTableScan(spec.Table, schema)

	catalog := NewMemoryCatalog()
	for _, v := range spec.Views {
		projExprs := make([]expr.Expression, len(v.Project))
		outSchema := make([]*expr.AttributeRef, len(v.Project))
		for i, col := range v.Project {
			ref, ok := byName[col]
			if !ok {
				return nil, errors.Errorf("rewrite: view %q projects unknown column %q", v.Name, col)
			}
			projExprs[i] = ref
			outSchema[i] = ref
		}

		var defChild plan.Node = tableScan
		if v.FilterColumn != "" {
			ref, ok := byName[v.FilterColumn]
			if !ok {
				return nil, errors.Errorf("rewrite: view %q filters on unknown column %q", v.Name, v.FilterColumn)
			}
			defChild = plan.NewFilter(expr.NewEquals(ref, expr.NewLiteral(v.FilterValue, expr.String)), tableScan)
		}

		catalog.Register(v.Name, spec.Table, plan.NewProject(projExprs, defChild), plan.NewTableScan(v.Name, outSchema))
	}
	return catalog, nil
}
