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

import "github.com/sirupsen/logrus"

// candidateFields builds the structured fields attached to every log
// line emitted while a rule evaluates one candidate view. The trace_id
// is the candidate's own RewriteContext.TraceID, so it ties together the
// lines of one candidate attempt; each candidate gets a new one.
func candidateFields(ctx *RewriteContext, rule string) logrus.Fields {
	return logrus.Fields{
		"trace_id": ctx.TraceID.String(),
		"rule":     rule,
		"view":     ctx.ViewName,
	}
}

// logStageFailure records why a pipeline stage rejected a candidate.
// Rejection is an ordinary, expected outcome of trying several
// candidates — this is logged at Debug, not Warn or Error.
func logStageFailure(logger *logrus.Logger, ctx *RewriteContext, rule, stage string, err error) {
	if logger == nil {
		return
	}
	fields := candidateFields(ctx, rule)
	fields["stage"] = stage
	logger.WithFields(fields).Debugf("candidate rejected: %v", err)
}

// logRewritten records a successful substitution.
func logRewritten(logger *logrus.Logger, ctx *RewriteContext, rule string) {
	if logger == nil {
		return
	}
	logger.WithFields(candidateFields(ctx, rule)).Info("rewrote plan against materialized view")
}
