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

import "github.com/pkg/errors"

// invariantViolation panics with a stack-carrying error for conditions
// spec.md §7 calls fatal rather than data: "malformed ProcessedComponent
// (bounds-of-list violation expected to be unreachable)". These are bugs
// in the rule that built the ProcessedComponent, not rejectable
// candidates, so they are not modeled as typed failures.
func invariantViolation(format string, args ...interface{}) {
	panic(errors.Errorf("rewrite: invariant violation: "+format, args...))
}
