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

// Package rewrite is the match-and-compensate engine: range algebra,
// matchers, rewriters, the pipeline that drives them, and the rules
// that pick candidate views and invoke it.
package rewrite

import "gopkg.in/src-d/go-errors.v1"

// Typed rewrite failures. A failure aborts the current candidate, not
// the process: it is data returned from a Matcher, never a panic. Each
// Kind carries a distinct, greppable message so a failure tag never
// collides with another's text (spec.md §9 flags the source's sharing
// of one message between ProjectUnmatch and the column-not-in-view
// case as a defect; this implementation gives every tag its own
// message).
var (
	ErrPredicateUnmatch = errors.NewKind(
		"view has more conjunctive predicates (%d) than the query (%d)")
	ErrPredicateEqualsUnmatch = errors.NewKind(
		"view equality predicates are not a subset of the query's")
	ErrPredicateRangeUnmatch = errors.NewKind("%s")
	ErrPredicateResidualUnmatch = errors.NewKind(
		"view residual predicates are not a subset of the query's")
	ErrPredicateColumnsNotInView = errors.NewKind(
		"compensation predicate references column %q not projected by the view")
	ErrProjectUnmatch = errors.NewKind(
		"query projects column %q not projected by the view")
	ErrGroupBySizeUnmatch = errors.NewKind(
		"query has more grouping columns (%d) than the view (%d)")
	ErrGroupByColumnsNotInView = errors.NewKind(
		"query groups by column %q not projected by the view")
	ErrAggNumberUnmatch = errors.NewKind(
		"query uses COUNT(*) but the view has no COUNT(*) aggregate")
	ErrAggColumnsUnmatch = errors.NewKind(
		"query aggregate %s has no equivalent in the view's aggregate list")
	ErrAggViewMissingCountStar = errors.NewKind(
		"query uses AVG(%s) but the view has no COUNT(*) aggregate to derive it from")
	ErrJoinUnmatch = errors.NewKind(
		"join present in %s plan; this release does not match through joins")
)
