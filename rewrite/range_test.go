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

	"github.com/stretchr/testify/require"

	"github.com/dolthub/mv-rewrite/sql/expr"
)

func a(v int64) *expr.Literal { return expr.NewLiteral(v, expr.Long) }

func keyRange(lower, upper *expr.Literal, inclLower, inclUpper bool) RangeCondition {
	return RangeCondition{Key: expr.NewAttributeRef("a", expr.Long), Lower: lower, Upper: upper, InclLower: inclLower, InclUpper: inclUpper}
}

func TestClassifyRangeTable(t *testing.T) {
	k := expr.NewAttributeRef("a", expr.Long)
	lit := a(10)

	cases := []struct {
		name    string
		cmp     *expr.BinaryComparison
		wantLow *expr.Literal
		wantHi  *expr.Literal
		incl    bool
		isLow   bool
	}{
		{"k>L", expr.NewGreaterThan(k, lit), lit, nil, false, true},
		{"L>k", expr.NewGreaterThan(lit, k), nil, lit, false, false},
		{"k>=L", expr.NewGreaterThanOrEqual(k, lit), lit, nil, true, true},
		{"L>=k", expr.NewGreaterThanOrEqual(lit, k), nil, lit, true, false},
		{"k<L", expr.NewLessThan(k, lit), nil, lit, false, false},
		{"L<k", expr.NewLessThan(lit, k), lit, nil, false, true},
		{"k<=L", expr.NewLessThanOrEqual(k, lit), nil, lit, true, false},
		{"L<=k", expr.NewLessThanOrEqual(lit, k), lit, nil, true, true},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rc, ok := classifyRange(tt.cmp)
			require.True(t, ok)
			if tt.isLow {
				require.Equal(t, tt.wantLow, rc.Lower)
				require.Nil(t, rc.Upper)
				require.Equal(t, tt.incl, rc.InclLower)
			} else {
				require.Equal(t, tt.wantHi, rc.Upper)
				require.Nil(t, rc.Lower)
				require.Equal(t, tt.incl, rc.InclUpper)
			}
		})
	}
}

func TestClassifyRangeToleratesCastOverLiteral(t *testing.T) {
	k := expr.NewAttributeRef("a", expr.Long)
	cmp := expr.NewGreaterThan(k, expr.NewCast(a(3), expr.Int))
	rc, ok := classifyRange(cmp)
	require.True(t, ok)
	require.Equal(t, int64(3), rc.Lower.Value)
}

func TestIsSubRangeReflexive(t *testing.T) {
	r := keyRange(a(1), a(10), true, false)
	require.True(t, isSubRange(r, r))
}

func TestMergeProducesSubRangeOfBoth(t *testing.T) {
	r1 := keyRange(a(1), a(10), true, true)
	r2 := keyRange(a(3), a(7), true, true)
	merged := merge(r1, r2)
	require.True(t, isSubRange(merged, r1))
	require.True(t, isSubRange(merged, r2))
	require.Equal(t, int64(3), merged.Lower.Value)
	require.Equal(t, int64(7), merged.Upper.Value)
}

func TestIsSubRangeTransitive(t *testing.T) {
	r1 := keyRange(a(5), a(6), true, true)
	r2 := keyRange(a(3), a(8), true, true)
	r3 := keyRange(a(0), a(10), true, true)
	require.True(t, isSubRange(r1, r2))
	require.True(t, isSubRange(r2, r3))
	require.True(t, isSubRange(r1, r3))
}

func TestIsSubRangeIgnoresInclusivity(t *testing.T) {
	// query ">= 3" treated as sub-range of view "> 3" even though
	// strictly speaking it is not (spec.md §9 accepted approximation).
	query := keyRange(a(3), nil, true, false)
	view := keyRange(a(3), nil, false, false)
	require.True(t, isSubRange(query, view))
	require.False(t, StrictIsSubRange(query, view))
}

func TestUnboundedSidesActAsInfinities(t *testing.T) {
	unboundedLower := keyRange(nil, a(10), false, true)
	boundedBelow := keyRange(a(-1000), a(10), true, true)
	require.False(t, isSubRange(unboundedLower, boundedBelow))
	require.True(t, isSubRange(boundedBelow, unboundedLower))
}

func TestToExpressionsRendersBothBounds(t *testing.T) {
	r := keyRange(a(3), a(7), true, true)
	exprs := r.toExpressions()
	require.Len(t, exprs, 2)
	require.Equal(t, "(a >= CAST(3 AS LONG))", exprs[0].String())
	require.Equal(t, "(a <= CAST(7 AS LONG))", exprs[1].String())
}

func TestGroupRangesByKeyFoldsIntersection(t *testing.T) {
	k := expr.NewAttributeRef("a", expr.Long)
	conjuncts := []expr.Expression{
		expr.NewGreaterThanOrEqual(k, a(3)),
		expr.NewLessThanOrEqual(k, a(10)),
		expr.NewLessThanOrEqual(k, a(7)),
		expr.NewEquals(expr.NewAttributeRef("b", expr.String), expr.NewLiteral("x", expr.String)),
	}
	ranges, rest := groupRangesByKey(conjuncts)
	require.Len(t, ranges, 1)
	require.Equal(t, int64(3), ranges[0].Lower.Value)
	require.Equal(t, int64(7), ranges[0].Upper.Value)
	require.Len(t, rest, 1)
}
