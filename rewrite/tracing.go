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

	"github.com/opentracing/opentracing-go"
)

// startRewriteSpan opens the top-level span for one Engine.Rewrite call.
// Tracer may be nil (opentracing.NoopTracer is the zero-cost default
// when the caller hasn't configured one), in which case the returned
// span is a no-op and Finish is still safe to call.
func startRewriteSpan(ctx context.Context, tracer opentracing.Tracer) (opentracing.Span, context.Context) {
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	span := tracer.StartSpan("mvrewrite.rewrite")
	return span, opentracing.ContextWithSpan(ctx, span)
}

// startRuleSpan opens a child span for one Rule's attempt against the
// whole plan.
func startRuleSpan(ctx context.Context, ruleName string) (opentracing.Span, context.Context) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "mvrewrite.rule")
	span.SetTag("rule", ruleName)
	return span, spanCtx
}

// startCandidateSpan opens a child span for one candidate view within a
// rule's attempt.
func startCandidateSpan(ctx context.Context, viewName string) (opentracing.Span, context.Context) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "mvrewrite.candidate")
	span.SetTag("view", viewName)
	return span, spanCtx
}
