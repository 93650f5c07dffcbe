// Package invoker runs one capability call: validate the input, render the
// prompt, make a single model call and enforce the output contract.
package invoker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/growthdesk-backend/internal/ai/aierr"
	"github.com/yungbote/growthdesk-backend/internal/ai/prompts"
	"github.com/yungbote/growthdesk-backend/internal/observability"
	"github.com/yungbote/growthdesk-backend/internal/platform/llm"
	"github.com/yungbote/growthdesk-backend/internal/platform/logger"
)

const tracerName = "github.com/yungbote/growthdesk-backend/internal/ai/invoker"

type hooks[Out any] struct {
	check  func(Out) error
	advise func(Out) []string
}

// Option configures the post-decode checks of an Invoker.
type Option[Out any] func(*hooks[Out])

// WithCheck adds a hard check on the decoded output. A failing check is an
// output contract violation.
func WithCheck[Out any](check func(Out) error) Option[Out] {
	return func(h *hooks[Out]) { h.check = check }
}

// WithAdvice adds a soft check. Its findings are logged and never fail the call.
func WithAdvice[Out any](advise func(Out) []string) Option[Out] {
	return func(h *hooks[Out]) { h.advise = advise }
}

// Invoker is immutable after New and safe for concurrent use.
type Invoker[In, Out any] struct {
	log     *logger.Logger
	backend llm.Backend
	tmpl    prompts.Template
	check   func(Out) error
	advise  func(Out) []string
	tracer  trace.Tracer
}

func New[In, Out any](log *logger.Logger, backend llm.Backend, tmpl prompts.Template, opts ...Option[Out]) *Invoker[In, Out] {
	h := &hooks[Out]{}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Invoker[In, Out]{
		log:     log.With("flow", string(tmpl.Name)),
		backend: backend,
		tmpl:    tmpl,
		check:   h.check,
		advise:  h.advise,
		tracer:  otel.Tracer(tracerName),
	}
}

func (iv *Invoker[In, Out]) Name() string { return string(iv.tmpl.Name) }

// Invoke makes at most one backend call. The caller's cancellation is not
// propagated into that call; once started it runs until the backend answers.
func (iv *Invoker[In, Out]) Invoke(ctx context.Context, in In) (Out, error) {
	flow := string(iv.tmpl.Name)
	ctx, span := iv.tracer.Start(context.WithoutCancel(ctx), "ai.invoke",
		trace.WithAttributes(
			attribute.String("ai.flow", flow),
			attribute.Int("ai.version", iv.tmpl.Version),
		),
	)
	defer span.End()

	start := time.Now()
	out, fingerprint, err := iv.run(ctx, flow, in)
	dur := time.Since(start)

	outcome := "ok"
	if err != nil {
		outcome = "error"
		if kind, ok := aierr.KindOf(err); ok {
			outcome = string(kind)
		}
		span.SetAttributes(attribute.String("ai.failure_kind", outcome))
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	if m := observability.Current(); m != nil {
		m.ObserveAIInvocation(flow, outcome, dur)
	}

	fields := []interface{}{
		"version", iv.tmpl.Version,
		"prompt_fingerprint", fingerprint,
		"duration_ms", dur.Milliseconds(),
		"outcome", outcome,
	}
	if err != nil {
		iv.log.Warn("ai invocation failed", append(fields, "error", err)...)
		var zero Out
		return zero, err
	}
	iv.log.Debug("ai invocation finished", fields...)
	return out, nil
}

func (iv *Invoker[In, Out]) run(ctx context.Context, flow string, in In) (Out, string, error) {
	var zero Out

	input, err := toMap(in)
	if err != nil {
		return zero, "", aierr.Validation(flow, err)
	}
	if err := iv.tmpl.Input.Validate(input); err != nil {
		return zero, "", aierr.Validation(flow, err)
	}

	prompt, err := iv.tmpl.Bind(input)
	if err != nil {
		return zero, "", aierr.Validation(flow, err)
	}
	fingerprint := prompt.Fingerprint()

	if iv.backend == nil {
		return zero, fingerprint, aierr.Upstream(flow, errors.New("no model backend configured"))
	}
	raw, err := iv.backend.GenerateJSON(ctx, prompt.Request())
	if err != nil {
		if errors.Is(err, llm.ErrMalformedOutput) {
			return zero, fingerprint, aierr.Contract(flow, err)
		}
		return zero, fingerprint, aierr.Upstream(flow, err)
	}

	if err := iv.tmpl.Output.Validate(raw); err != nil {
		return zero, fingerprint, aierr.Contract(flow, err)
	}
	out, err := fromMap[Out](raw)
	if err != nil {
		return zero, fingerprint, aierr.Contract(flow, err)
	}
	if iv.check != nil {
		if err := iv.check(out); err != nil {
			return zero, fingerprint, aierr.Contract(flow, err)
		}
	}
	if iv.advise != nil {
		if notes := iv.advise(out); len(notes) > 0 {
			iv.log.Warn("ai output outside expected bounds", "notes", notes, "prompt_fingerprint", fingerprint)
		}
	}
	return out, fingerprint, nil
}

func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode input: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("input must be an object: %w", err)
	}
	return m, nil
}

func fromMap[T any](m map[string]any) (T, error) {
	var out T
	b, err := json.Marshal(m)
	if err != nil {
		return out, fmt.Errorf("encode output: %w", err)
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return out, fmt.Errorf("decode output: %w", err)
	}
	return out, nil
}
