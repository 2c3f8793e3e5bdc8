package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/instructgen/internal/llm"
)

// Runner executes variants against one provider with one Config. It holds
// no per-invocation state and is safe for concurrent use when its Sampler is.
type Runner struct {
	provider llm.Provider
	cfg      Config
	rng      Sampler
	registry *Registry
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithRand sets the randomness source for temperature draws.
func WithRand(s Sampler) Option {
	return func(r *Runner) { r.rng = s }
}

// WithRegistry sets the registry Pipeline looks names up in.
func WithRegistry(reg *Registry) Option {
	return func(r *Runner) { r.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner. The provider must be ready to use.
func New(provider llm.Provider, cfg Config, opts ...Option) (*Runner, error) {
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	r := &Runner{
		provider: provider,
		cfg:      cfg,
		rng:      globalSampler{},
		registry: Default,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.With("component", "pipeline", "provider", provider.Name())
	return r, nil
}

// Config returns a copy of the runner's configuration.
func (r *Runner) Config() Config { return r.cfg }

// Run executes every stage of v in order and assembles the record. The first
// failing stage aborts the invocation; earlier outputs are discarded.
func (r *Runner) Run(ctx context.Context, v *Variant, input Vars) (Record, error) {
	vars := make(Vars, len(input)+len(v.Stages))
	for k, val := range input {
		vars[k] = val
	}
	subject := subjectOf(v, vars)

	for i, st := range v.Stages {
		req := llm.CompletionRequest{
			Model:       r.cfg.Model,
			Messages:    st.Prompt(vars),
			MaxTokens:   r.cfg.MaxTokens,
			Temperature: SampleTemperature(r.cfg.TempMin, r.cfg.TempMax, r.rng),
			TopP:        r.cfg.TopP,
		}
		r.logger.Debug("stage started",
			"pipeline", v.Name,
			"stage", st.Name,
			"step", i+1,
			"steps", len(v.Stages),
			"temperature", req.Temperature,
		)

		resp, err := r.provider.Complete(ctx, req)
		if err != nil {
			return nil, r.fail(v, st, subject, err)
		}
		text, ok := resp.FirstContent()
		if !ok {
			return nil, r.fail(v, st, subject, ErrNoChoices)
		}
		vars[st.Name] = text

		r.logger.Debug("stage finished",
			"pipeline", v.Name,
			"stage", st.Name,
			"input_tokens", resp.InputTokens,
			"output_tokens", resp.OutputTokens,
		)
	}

	rec := v.Assemble(vars)
	if err := v.checkPattern(rec); err != nil {
		return nil, fmt.Errorf("assembling %s record: %w", v.Name, err)
	}
	return rec, nil
}

func (r *Runner) fail(v *Variant, st Stage, subject string, err error) error {
	r.logger.Warn("generation failed", "pipeline", v.Name, "stage", st.Name, "err", err)
	return &GenerationError{
		Pipeline: v.Name,
		Stage:    st.Name,
		Input:    subject,
		Err:      err,
	}
}

// subjectOf picks the value quoted in error messages: the first parameter,
// or nothing for variants that take no input.
func subjectOf(v *Variant, vars Vars) string {
	if len(v.Params) == 0 {
		return ""
	}
	return vars[v.Params[0]]
}

// Pipeline returns the named registered variant bound to this runner.
func (r *Runner) Pipeline(name string) (*Pipeline, error) {
	v, err := r.registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &Pipeline{runner: r, variant: v}, nil
}

// Pipeline is one variant bound to a Runner.
type Pipeline struct {
	runner  *Runner
	variant *Variant
}

// Name returns the variant name.
func (p *Pipeline) Name() string { return p.variant.Name }

// Variant returns the bound variant.
func (p *Pipeline) Variant() *Variant { return p.variant }

// Invoke binds content to the variant's first parameter and runs it.
// Variants without parameters ignore content.
func (p *Pipeline) Invoke(ctx context.Context, content string) (Record, error) {
	vars := Vars{}
	if len(p.variant.Params) > 0 {
		vars[p.variant.Params[0]] = content
	}
	return p.runner.Run(ctx, p.variant, vars)
}

// InvokeWith runs the variant with several named inputs.
func (p *Pipeline) InvokeWith(ctx context.Context, vars Vars) (Record, error) {
	return p.runner.Run(ctx, p.variant, vars)
}
