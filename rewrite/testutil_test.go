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
	"fmt"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/mv-rewrite/sql/plan"
)

// assertPlansEqualWithDiff asserts that expected and actual render the
// same String() and, if they don't, prints a unified diff of the two
// renderings so a test failure shows exactly where the trees diverge
// instead of two opaque struct dumps.
func assertPlansEqualWithDiff(t *testing.T, expected, actual plan.Node) bool {
	expectedStr := expected.String()
	actualStr := actual.String()
	if !assert.Equal(t, expectedStr, actualStr) {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(expectedStr),
			B:        difflib.SplitLines(actualStr),
			FromFile: "expected",
			ToFile:   "actual",
			Context:  2,
		})
		require.NoError(t, err)
		fmt.Println(diff)
		return false
	}
	return true
}
