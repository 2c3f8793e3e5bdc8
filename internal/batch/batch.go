// Package batch runs many independent pipeline invocations concurrently and
// writes the resulting records as JSONL.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/ziadkadry99/instructgen/internal/pipeline"
	"github.com/ziadkadry99/instructgen/internal/progress"
)

// Job is one invocation: a registered pipeline name and its inputs.
type Job struct {
	Pipeline string
	Vars     pipeline.Vars
}

// Item is a successfully generated record and the job that produced it.
type Item struct {
	ID       string
	Pipeline string
	Input    pipeline.Vars
	Record   pipeline.Record
}

// Failure is a job that did not produce a record.
type Failure struct {
	Index int
	Job   Job
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("job %d (%s): %v", f.Index, f.Job.Pipeline, f.Err)
}

// Result holds the outcome of a batch. Items keep job order.
type Result struct {
	Items  []Item
	Errors []Failure
}

// Runner executes jobs through a bounded worker pool.
type Runner struct {
	runner   *pipeline.Runner
	size     int
	reporter progress.Reporter
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConcurrency sets the number of workers. Values below one select
// runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(r *Runner) { r.size = n }
}

// WithReporter sets the progress reporter.
func WithReporter(rep progress.Reporter) Option {
	return func(r *Runner) { r.reporter = rep }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner returns a batch runner over pr.
func NewRunner(pr *pipeline.Runner, opts ...Option) *Runner {
	r := &Runner{
		runner:   pr,
		reporter: progress.Nop{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.size < 1 {
		r.size = runtime.NumCPU()
	}
	return r
}

// Run executes every job. A failing job never affects the others; its error
// is collected in Result.Errors. Jobs not yet started when ctx is cancelled
// fail with the context error.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Result, error) {
	pool, err := ants.NewPool(r.size)
	if err != nil {
		return nil, fmt.Errorf("creating worker pool: %w", err)
	}
	defer pool.Release()

	type slot struct {
		item *Item
		err  error
	}
	slots := make([]slot, len(jobs))

	r.reporter.Start(len(jobs))
	defer r.reporter.Finish()

	var (
		wg   sync.WaitGroup
		done atomic.Int64
	)
	for i, job := range jobs {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			item, err := r.runOne(ctx, job)
			slots[i] = slot{item: item, err: err}
			r.reporter.Update(int(done.Add(1)), job.Pipeline)
		})
		if submitErr != nil {
			wg.Done()
			slots[i] = slot{err: fmt.Errorf("submitting job: %w", submitErr)}
		}
	}
	wg.Wait()

	res := &Result{}
	for i, s := range slots {
		if s.err != nil {
			res.Errors = append(res.Errors, Failure{Index: i, Job: jobs[i], Err: s.err})
			continue
		}
		res.Items = append(res.Items, *s.item)
	}
	r.logger.Info("batch finished", "records", len(res.Items), "failed", len(res.Errors))
	return res, nil
}

func (r *Runner) runOne(ctx context.Context, job Job) (*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.runner.Pipeline(job.Pipeline)
	if err != nil {
		return nil, err
	}
	rec, err := p.InvokeWith(ctx, job.Vars)
	if err != nil {
		return nil, err
	}
	return &Item{
		ID:       uuid.NewString(),
		Pipeline: job.Pipeline,
		Input:    job.Vars,
		Record:   rec,
	}, nil
}

// Jobs builds one job per input, binding each input to the variant's first
// parameter on top of the shared extra values. A variant without parameters
// gets one job per input with only the extra values.
func Jobs(v *pipeline.Variant, inputs []string, extra pipeline.Vars) []Job {
	jobs := make([]Job, 0, len(inputs))
	for _, in := range inputs {
		vars := make(pipeline.Vars, len(extra)+1)
		for k, val := range extra {
			vars[k] = val
		}
		if len(v.Params) > 0 {
			vars[v.Params[0]] = in
		}
		jobs = append(jobs, Job{Pipeline: v.Name, Vars: vars})
	}
	return jobs
}

// Repeat builds n identical jobs, for variants driven by a fixed language or
// domain rather than by distinct content.
func Repeat(name string, vars pipeline.Vars, n int) []Job {
	jobs := make([]Job, n)
	for i := range jobs {
		jobs[i] = Job{Pipeline: name, Vars: vars}
	}
	return jobs
}
